package request

import "room-booking/internal/usecase/queries"

// PageQuery carries ?page=&size=&sort=field,dir. Zero values fall back to the
// query service defaults.
type PageQuery struct {
	Page int    `form:"page" binding:"min=0"`
	Size int    `form:"size" binding:"omitempty,min=1,max=100"`
	Sort string `form:"sort" binding:"omitempty,sortspec"`
}

func (q PageQuery) ToPageRequest() queries.PageRequest {
	field, dir := queries.ParseSort(q.Sort)
	return queries.PageRequest{
		Page:      q.Page,
		Size:      q.Size,
		Sort:      field,
		Direction: dir,
	}
}

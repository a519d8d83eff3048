package response

import "room-booking/internal/usecase/queries"

type PageResponse[T any] struct {
	Content    []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// FromPage converts every item with conv and keeps the paging metadata.
func FromPage[V any, T any](p *queries.Page[V], conv func(V) (T, error)) (*PageResponse[T], error) {
	content := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		r, err := conv(item)
		if err != nil {
			return nil, err
		}
		content = append(content, r)
	}
	return &PageResponse[T]{
		Content:    content,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}, nil
}

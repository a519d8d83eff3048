package response

import (
	"time"

	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID          uuid.UUID   `json:"id"`
	Identifier  string      `json:"identifier"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Capacity    int         `json:"capacity"`
	Status      string      `json:"status"`
	Type        string      `json:"type"`
	AmenityIDs  []uuid.UUID `json:"amenityIds"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func FromRoomView(v *queries.RoomView) (*RoomResponse, error) {
	var res RoomResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	if res.AmenityIDs == nil {
		res.AmenityIDs = []uuid.UUID{}
	}
	return &res, nil
}

type CatalogEntryResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func FromCatalog(entries []queries.CatalogEntry) []CatalogEntryResponse {
	out := make([]CatalogEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = CatalogEntryResponse{Code: e.Code, Label: e.Label}
	}
	return out
}

//go:build unit || e2e

package builder

import (
	"time"

	"room-booking/internal/domain/room"
	reqdto "room-booking/internal/handler/dto/request"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID          uuid.UUID
	Identifier  string
	Name        string
	Description *string
	Capacity    int
	Status      room.Status
	Type        room.Type
	AmenityIDs  []uuid.UUID
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:         uuid.New(),
		Identifier: "B-101",
		Name:       "Seminar B101",
		Capacity:   30,
		Status:     room.StatusAvailable,
		Type:       room.TypeSeminarRoom,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

func (r *RoomBuilder) BuildSpec() room.Spec {
	capacity, status, typ := r.Capacity, r.Status, r.Type
	return room.Spec{
		Identifier:  r.Identifier,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    &capacity,
		Status:      &status,
		Type:        &typ,
		AmenityIDs:  r.AmenityIDs,
	}
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	capacity, status, typ := r.Capacity, r.Status.String(), r.Type.String()
	return reqdto.CreateRoomRequest{
		Identifier:  r.Identifier,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    &capacity,
		Status:      &status,
		Type:        &typ,
		AmenityIDs:  r.AmenityIDs,
	}
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	now := time.Now().UTC()
	return &queries.RoomView{
		ID:          r.ID,
		Identifier:  r.Identifier,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Status:      r.Status.String(),
		Type:        r.Type.String(),
		AmenityIDs:  r.AmenityIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Fluent builder methods
func (r *RoomBuilder) WithIdentifier(identifier string) *RoomBuilder {
	r.Identifier = identifier
	return r
}

func (r *RoomBuilder) WithName(name string) *RoomBuilder {
	r.Name = name
	return r
}

func (r *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	r.Capacity = capacity
	return r
}

func (r *RoomBuilder) WithStatus(status room.Status) *RoomBuilder {
	r.Status = status
	return r
}

func (r *RoomBuilder) WithAmenities(ids ...uuid.UUID) *RoomBuilder {
	r.AmenityIDs = ids
	return r
}

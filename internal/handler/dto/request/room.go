package request

import (
	"room-booking/internal/domain/room"
	"room-booking/internal/usecase/commands"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// CreateRoomRequest only checks enum spelling here; required fields are
// validated by the room entity in a fixed order.
type CreateRoomRequest struct {
	Identifier  string      `json:"identifier"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Capacity    *int        `json:"capacity"`
	Status      *string     `json:"status" binding:"omitempty,roomstatus"`
	Type        *string     `json:"type" binding:"omitempty,roomtype"`
	AmenityIDs  []uuid.UUID `json:"amenityIds"`
}

func (r CreateRoomRequest) ToParams() commands.CreateRoomParams {
	return commands.CreateRoomParams{
		Identifier:  r.Identifier,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Status:      toStatus(r.Status),
		Type:        toType(r.Type),
		AmenityIDs:  r.AmenityIDs,
	}
}

type UpdateRoomRequest struct {
	Identifier  *string     `json:"identifier"`
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Capacity    *int        `json:"capacity"`
	Status      *string     `json:"status" binding:"omitempty,roomstatus"`
	Type        *string     `json:"type" binding:"omitempty,roomtype"`
	AmenityIDs  []uuid.UUID `json:"amenityIds"`
}

func (r UpdateRoomRequest) ToParams() commands.UpdateRoomParams {
	return commands.UpdateRoomParams{
		Identifier:  r.Identifier,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Status:      toStatus(r.Status),
		Type:        toType(r.Type),
		AmenityIDs:  r.AmenityIDs,
	}
}

type RoomFilterQuery struct {
	Name        *string  `form:"name"`
	MinCapacity *int     `form:"minCapacity" binding:"omitempty,min=0"`
	MaxCapacity *int     `form:"maxCapacity" binding:"omitempty,min=0"`
	Status      *string  `form:"status" binding:"omitempty,roomstatus"`
	Type        *string  `form:"type" binding:"omitempty,roomtype"`
	AmenityIDs  []string `form:"amenityIds" binding:"omitempty,dive,uuid"`
}

func (q RoomFilterQuery) ToFilter() queries.RoomFilter {
	f := queries.RoomFilter{
		Name:        q.Name,
		MinCapacity: q.MinCapacity,
		MaxCapacity: q.MaxCapacity,
		Status:      toStatus(q.Status),
		Type:        toType(q.Type),
	}
	for _, raw := range q.AmenityIDs {
		if id := optionalUUID(raw); id != nil {
			f.AmenityIDs = append(f.AmenityIDs, *id)
		}
	}
	return f
}

func toStatus(s *string) *room.Status {
	if s == nil {
		return nil
	}
	st := room.Status(*s)
	return &st
}

func toType(s *string) *room.Type {
	if s == nil {
		return nil
	}
	t := room.Type(*s)
	return &t
}

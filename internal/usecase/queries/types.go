package queries

import (
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/domain/room"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	RequestedBy uuid.UUID
	ApprovedBy  *uuid.UUID
	Approved    bool
	Status      string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RoomView struct {
	ID          uuid.UUID
	Identifier  string
	Name        string
	Description *string
	Capacity    int
	Status      string
	Type        string
	AmenityIDs  []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CatalogEntry struct {
	Code  string
	Label string
}

func NewBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:          b.ID(),
		RoomID:      b.RoomID(),
		RequestedBy: b.RequestedBy(),
		ApprovedBy:  b.ApprovedBy(),
		Approved:    b.Approved(),
		Status:      b.Status().String(),
		StartTime:   b.StartTime(),
		EndTime:     b.EndTime(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func NewRoomView(r *room.Room) *RoomView {
	return &RoomView{
		ID:          r.ID(),
		Identifier:  r.Identifier(),
		Name:        r.Name(),
		Description: r.Description(),
		Capacity:    r.Capacity(),
		Status:      r.Status().String(),
		Type:        r.Type().String(),
		AmenityIDs:  r.AmenityIDs(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

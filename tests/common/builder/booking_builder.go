//go:build unit || e2e

package builder

import (
	"time"

	"room-booking/internal/domain/booking"
	reqdto "room-booking/internal/handler/dto/request"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	RequestedBy uuid.UUID
	ApprovedBy  *uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	return &BookingBuilder{
		ID:          uuid.New(),
		RoomID:      uuid.New(),
		RequestedBy: uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		CreatedAt:   time.Now().UTC(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	roomID, start, end := b.RoomID, b.StartTime, b.EndTime
	return reqdto.CreateBookingRequest{
		RoomID:    &roomID,
		StartTime: &start,
		EndTime:   &end,
	}
}

func (b *BookingBuilder) BuildUpdateRequestDTO() reqdto.UpdateBookingRequest {
	start, end := b.StartTime, b.EndTime
	return reqdto.UpdateBookingRequest{StartTime: &start, EndTime: &end}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	status := booking.StatusPending
	if b.ApprovedBy != nil {
		status = booking.StatusApproved
	}
	return &queries.BookingView{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RequestedBy: b.RequestedBy,
		ApprovedBy:  b.ApprovedBy,
		Approved:    b.ApprovedBy != nil,
		Status:      status.String(),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithRoomID(roomID uuid.UUID) *BookingBuilder {
	b.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithRequestedBy(userID uuid.UUID) *BookingBuilder {
	b.RequestedBy = userID
	return b
}

func (b *BookingBuilder) WithSlot(start time.Time, d time.Duration) *BookingBuilder {
	b.StartTime = start
	b.EndTime = start.Add(d)
	return b
}

func (b *BookingBuilder) ApprovedByUser(approver uuid.UUID) *BookingBuilder {
	b.ApprovedBy = &approver
	return b
}

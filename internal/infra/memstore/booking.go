package memstore

import (
	"context"
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/infra"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type bookingRepository struct {
	tx *memTx
}

func (r *bookingRepository) IsBooked(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	return r.IsBookedExcluding(ctx, roomID, uuid.Nil, start, end)
}

func (r *bookingRepository) IsBookedExcluding(ctx context.Context, roomID, excludeID uuid.UUID, start, end time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, infra.WrapRepoErr("failed to check room availability", err)
	}
	return r.tx.store.overlaps(roomID, excludeID, start, end), nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	row, ok := r.tx.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return row.toDomain()
}

func (r *bookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}
	s := r.tx.store
	if _, exists := s.bookings[b.ID()]; exists {
		return nil, infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	if err := r.checkWrite(b); err != nil {
		return nil, err
	}

	row := bookingRowFrom(b)
	r.tx.putBooking(row)
	return row.toDomain()
}

func (r *bookingRepository) Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to update booking", err)
	}
	s := r.tx.store
	if _, exists := s.bookings[b.ID()]; !exists {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if err := r.checkWrite(b); err != nil {
		return nil, err
	}

	row := bookingRowFrom(b)
	r.tx.putBooking(row)
	return row.toDomain()
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if _, exists := r.tx.store.bookings[id]; !exists {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.tx.deleteBooking(id)
	return nil
}

// checkWrite mirrors the foreign key and exclusion constraints of the
// Postgres schema.
func (r *bookingRepository) checkWrite(b *booking.Booking) error {
	s := r.tx.store
	if _, ok := s.rooms[b.RoomID()]; !ok {
		return infra.WrapRepoErr("room does not exist", nil, infra.KindForeignKeyViolated)
	}
	if s.overlaps(b.RoomID(), b.ID(), b.StartTime(), b.EndTime()) {
		return infra.WrapRepoErr("booking overlaps an existing booking", nil, infra.KindExclusionViolated)
	}
	return nil
}

// overlaps walks the room's bookings in start order and stops at the first
// one starting at or after end.
func (s *Store) overlaps(roomID, excludeID uuid.UUID, start, end time.Time) bool {
	for _, id := range s.byRoom[roomID] {
		b := s.bookings[id]
		if !b.start.Before(end) {
			return false
		}
		if id != excludeID && start.Before(b.end) {
			return true
		}
	}
	return false
}

func bookingRowFrom(b *booking.Booking) bookingRow {
	return bookingRow{
		id:          b.ID(),
		roomID:      b.RoomID(),
		requestedBy: b.RequestedBy(),
		approvedBy:  b.ApprovedBy(),
		approved:    b.Approved(),
		start:       b.StartTime(),
		end:         b.EndTime(),
		createdAt:   b.CreatedAt(),
		updatedAt:   b.UpdatedAt(),
	}
}

func (row bookingRow) toDomain() (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(row.start, row.end)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has an invalid slot", err, infra.KindDBFailure)
	}
	var approvedBy *uuid.UUID
	if row.approvedBy != nil {
		id := *row.approvedBy
		approvedBy = &id
	}
	return booking.Reconstruct(row.id, row.roomID, row.requestedBy, approvedBy, row.approved, slot, row.createdAt, row.updatedAt), nil
}

func (row bookingRow) toView() *queries.BookingView {
	v := &queries.BookingView{
		ID:          row.id,
		RoomID:      row.roomID,
		RequestedBy: row.requestedBy,
		Approved:    row.approved,
		Status:      booking.StatusPending.String(),
		StartTime:   row.start,
		EndTime:     row.end,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
	if row.approved {
		v.Status = booking.StatusApproved.String()
	}
	if row.approvedBy != nil {
		id := *row.approvedBy
		v.ApprovedBy = &id
	}
	return v
}

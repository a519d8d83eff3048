package repository

import (
	"context"
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/infra"
	"room-booking/internal/infra/db"
	"room-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, room_id, requested_by, approved_by, approved, start_time, end_time, created_at, updated_at`

// Served by the (room_id, start_time, end_time) index. uuid.Nil never matches
// a stored id, so IsBooked reuses the excluding form.
const isBookedSQL = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE room_id = $1
	  AND id <> $2
	  AND start_time < $4
	  AND end_time > $3
)`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) IsBooked(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	return r.IsBookedExcluding(ctx, roomID, uuid.Nil, start, end)
}

func (r *BookingRepository) IsBookedExcluding(ctx context.Context, roomID, excludeID uuid.UUID, start, end time.Time) (bool, error) {
	var booked bool
	err := r.db.QueryRow(ctx, isBookedSQL, roomID, excludeID, pgconv.TimeToPgtype(start), pgconv.TimeToPgtype(end)).Scan(&booked)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check room availability", err)
	}
	return booked, nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
INSERT INTO bookings (`+bookingColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+bookingColumns,
		b.ID(),
		b.RoomID(),
		b.RequestedBy(),
		pgconv.UUIDPtrToPgtype(b.ApprovedBy()),
		b.Approved(),
		pgconv.TimeToPgtype(b.StartTime()),
		pgconv.TimeToPgtype(b.EndTime()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	stored, err := scanBooking(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return stored, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
UPDATE bookings
SET approved_by = $2, approved = $3, start_time = $4, end_time = $5, updated_at = $6
WHERE id = $1
RETURNING `+bookingColumns,
		b.ID(),
		pgconv.UUIDPtrToPgtype(b.ApprovedBy()),
		b.Approved(),
		pgconv.TimeToPgtype(b.StartTime()),
		pgconv.TimeToPgtype(b.EndTime()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	stored, err := scanBooking(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to update booking", err)
	}
	return stored, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, roomID, requestedBy uuid.UUID
		approvedBy              pgtype.UUID
		approved                bool
		start, end              pgtype.Timestamptz
		createdAt, updatedAt    pgtype.Timestamptz
	)
	if err := row.Scan(&id, &roomID, &requestedBy, &approvedBy, &approved, &start, &end, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(pgconv.TimeFromPgtype(start), pgconv.TimeFromPgtype(end))
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(
		id,
		roomID,
		requestedBy,
		pgconv.UUIDPtrFromPgtype(approvedBy),
		approved,
		slot,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

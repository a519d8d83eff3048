package readstore

import (
	"context"

	"room-booking/internal/domain/booking"
	"room-booking/internal/infra"
	"room-booking/internal/infra/db"
	"room-booking/internal/pkg/pgconv"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectBookingViews = `SELECT id, room_id, requested_by, approved_by, approved, start_time, end_time, created_at, updated_at FROM bookings`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, selectBookingViews+` WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindPage(ctx context.Context, filter queries.BookingFilter, page queries.PageRequest) ([]*queries.BookingView, int64, error) {
	q := buildPageQuery(selectBookingViews, "bookings", bookingWhere(filter), bookingSortColumns, "start_time", page)

	var total int64
	if err := r.db.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := make([]*queries.BookingView, 0, page.Size)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}

	return result, total, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v          queries.BookingView
		approvedBy pgtype.UUID
		start, end pgtype.Timestamptz
		created    pgtype.Timestamptz
		updated    pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.RoomID, &v.RequestedBy, &approvedBy, &v.Approved, &start, &end, &created, &updated); err != nil {
		return nil, err
	}

	v.ApprovedBy = pgconv.UUIDPtrFromPgtype(approvedBy)
	v.StartTime = pgconv.TimeFromPgtype(start)
	v.EndTime = pgconv.TimeFromPgtype(end)
	v.CreatedAt = pgconv.TimeFromPgtype(created)
	v.UpdatedAt = pgconv.TimeFromPgtype(updated)
	v.Status = booking.StatusPending.String()
	if v.Approved {
		v.Status = booking.StatusApproved.String()
	}
	return &v, nil
}

package queries

import (
	"context"

	"room-booking/internal/domain/booking"
	"room-booking/internal/infra"
	"room-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// FindPage returns one page of matching bookings and the total match count.
	// The page request is already normalised.
	FindPage(ctx context.Context, filter BookingFilter, page PageRequest) ([]*BookingView, int64, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, page PageRequest) (*Page[*BookingView], error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, page PageRequest) (*Page[*BookingView], error)
	ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) (*Page[*BookingView], error)
	Filter(ctx context.Context, filter BookingFilter, page PageRequest) (*Page[*BookingView], error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.NotFound(booking.ErrNotFound)
		}
		return nil, errs.DatabaseFailure(err)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, page PageRequest) (*Page[*BookingView], error) {
	return q.Filter(ctx, BookingFilter{}, page)
}

func (q *bookingQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID, page PageRequest) (*Page[*BookingView], error) {
	return q.Filter(ctx, BookingFilter{RoomID: &roomID}, page)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) (*Page[*BookingView], error) {
	return q.Filter(ctx, BookingFilter{RequestedBy: &userID}, page)
}

func (q *bookingQueriesImpl) Filter(ctx context.Context, filter BookingFilter, page PageRequest) (*Page[*BookingView], error) {
	req, err := normalizePage(page, BookingSortStartTime, BookingSortKeys)
	if err != nil {
		return nil, err
	}
	items, total, err := q.store.FindPage(ctx, filter, req)
	if err != nil {
		return nil, errs.DatabaseFailure(err)
	}
	return NewPage(items, req, total), nil
}

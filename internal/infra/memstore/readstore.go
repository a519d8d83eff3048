package memstore

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"

	"room-booking/internal/infra"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingReadStore serves booking listings from the same maps the unit of
// work writes to.
func (s *Store) BookingReadStore() queries.BookingReadStore {
	return &bookingReadStore{store: s}
}

func (s *Store) RoomReadStore() queries.RoomReadStore {
	return &roomReadStore{store: s}
}

type bookingReadStore struct {
	store *Store
}

func (r *bookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return row.toView(), nil
}

// FindPage filters and sorts every matching booking before cutting the page,
// unlike the Postgres read store. Fine for local runs and tests, not for large
// data sets.
func (r *bookingReadStore) FindPage(ctx context.Context, filter queries.BookingFilter, page queries.PageRequest) ([]*queries.BookingView, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	predicates := filter.Predicates()

	r.store.mu.RLock()
	matched := make([]*queries.BookingView, 0)
	for _, row := range r.store.bookings {
		v := row.toView()
		if all(predicates, v) {
			matched = append(matched, v)
		}
	}
	r.store.mu.RUnlock()

	key := bookingSortKey(page.Sort)
	slices.SortFunc(matched, func(a, b *queries.BookingView) int {
		return orderBy(key(a, b), page.Direction, a.ID, b.ID)
	})
	return paginate(matched, page), int64(len(matched)), nil
}

type roomReadStore struct {
	store *Store
}

func (r *roomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return row.toView(), nil
}

func (r *roomReadStore) FindByIdentifier(ctx context.Context, identifier string) (*queries.RoomView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.rooms {
		if row.identifier == identifier {
			return row.toView(), nil
		}
	}
	return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
}

// FindPage materializes the whole match set before paging, like the booking
// variant.
func (r *roomReadStore) FindPage(ctx context.Context, filter queries.RoomFilter, page queries.PageRequest) ([]*queries.RoomView, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list rooms", err)
	}
	predicates := filter.Predicates()

	r.store.mu.RLock()
	matched := make([]*queries.RoomView, 0)
	for _, row := range r.store.rooms {
		v := row.toView()
		if all(predicates, v) {
			matched = append(matched, v)
		}
	}
	r.store.mu.RUnlock()

	key := roomSortKey(page.Sort)
	slices.SortFunc(matched, func(a, b *queries.RoomView) int {
		return orderBy(key(a, b), page.Direction, a.ID, b.ID)
	})
	return paginate(matched, page), int64(len(matched)), nil
}

func bookingSortKey(field string) func(a, b *queries.BookingView) int {
	switch field {
	case queries.BookingSortEndTime:
		return func(a, b *queries.BookingView) int { return a.EndTime.Compare(b.EndTime) }
	case queries.BookingSortCreatedAt:
		return func(a, b *queries.BookingView) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case queries.BookingSortUpdatedAt:
		return func(a, b *queries.BookingView) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		return func(a, b *queries.BookingView) int { return a.StartTime.Compare(b.StartTime) }
	}
}

func roomSortKey(field string) func(a, b *queries.RoomView) int {
	switch field {
	case queries.RoomSortIdentifier:
		return func(a, b *queries.RoomView) int { return strings.Compare(a.Identifier, b.Identifier) }
	case queries.RoomSortCapacity:
		return func(a, b *queries.RoomView) int { return cmp.Compare(a.Capacity, b.Capacity) }
	case queries.RoomSortCreatedAt:
		return func(a, b *queries.RoomView) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b *queries.RoomView) int { return strings.Compare(a.Name, b.Name) }
	}
}

// orderBy applies the direction to the sort key; ties always fall back to
// ascending id so pages are stable.
func orderBy(c int, dir queries.SortDirection, aID, bID uuid.UUID) int {
	if c != 0 {
		if dir == queries.SortDesc {
			return -c
		}
		return c
	}
	return bytes.Compare(aID[:], bID[:])
}

func all[P ~func(T) bool, T any](predicates []P, v T) bool {
	for _, p := range predicates {
		if !p(v) {
			return false
		}
	}
	return true
}

func paginate[T any](items []T, page queries.PageRequest) []T {
	from := min(page.Offset(), len(items))
	to := min(from+page.Size, len(items))
	return items[from:to]
}

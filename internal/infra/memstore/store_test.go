//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/domain/room"
	"room-booking/internal/domain/user"
	"room-booking/internal/infra"
	"room-booking/internal/infra/memstore"
	"room-booking/internal/pkg/ptr"
	"room-booking/internal/usecase/queries"
	"room-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 5, 1, 7, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return time.Date(2030, 5, 1, hour, 0, 0, 0, time.UTC)
}

func seedRoom(t *testing.T, s *memstore.Store, identifier, name string, capacity int, amenities ...uuid.UUID) *room.Room {
	t.Helper()
	r, err := room.NewRoom(uuid.New(), room.Spec{
		Identifier: identifier,
		Name:       name,
		Capacity:   ptr.To(capacity),
		Status:     ptr.To(room.StatusAvailable),
		Type:       ptr.To(room.TypeSeminarRoom),
		AmenityIDs: amenities,
	}, now)
	require.NoError(t, err)
	require.NoError(t, s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Rooms().Create(ctx, r)
		return err
	}))
	return r
}

func seedBooking(t *testing.T, s *memstore.Store, roomID uuid.UUID, start, end time.Time) *booking.Booking {
	t.Helper()
	slot, err := booking.NewTimeSlot(start, end)
	require.NoError(t, err)
	requester, err := user.NewPrincipal(uuid.New(), user.RoleUser)
	require.NoError(t, err)

	b := booking.New(uuid.New(), roomID, requester, slot, now)
	require.NoError(t, s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Bookings().Create(ctx, b)
		return err
	}))
	return b
}

func isBooked(t *testing.T, s *memstore.Store, roomID, exclude uuid.UUID, start, end time.Time) bool {
	t.Helper()
	var booked bool
	require.NoError(t, s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		booked, err = tx.Bookings().IsBookedExcluding(ctx, roomID, exclude, start, end)
		return err
	}))
	return booked
}

func TestStore_Overlaps(t *testing.T) {
	s := memstore.New()
	r := seedRoom(t, s, "R-1", "Room", 10)
	other := seedRoom(t, s, "R-2", "Other", 10)
	// inserted out of order to exercise the sorted index
	late := seedBooking(t, s, r.ID(), at(14), at(15))
	seedBooking(t, s, r.ID(), at(10), at(11))

	tests := []struct {
		name    string
		roomID  uuid.UUID
		exclude uuid.UUID
		start   time.Time
		end     time.Time
		want    bool
	}{
		{name: "same interval", roomID: r.ID(), start: at(10), end: at(11), want: true},
		{name: "partial overlap", roomID: r.ID(), start: at(10).Add(30 * time.Minute), end: at(12), want: true},
		{name: "touching end", roomID: r.ID(), start: at(11), end: at(12), want: false},
		{name: "touching start", roomID: r.ID(), start: at(9), end: at(10), want: false},
		{name: "gap between bookings", roomID: r.ID(), start: at(12), end: at(14), want: false},
		{name: "later booking", roomID: r.ID(), start: at(13), end: at(16), want: true},
		{name: "later booking excluded", roomID: r.ID(), exclude: late.ID(), start: at(13), end: at(16), want: false},
		{name: "other room", roomID: other.ID(), start: at(10), end: at(11), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBooked(t, s, tt.roomID, tt.exclude, tt.start, tt.end))
		})
	}
}

func TestStore_RollbackOnError(t *testing.T) {
	s := memstore.New()
	r := seedRoom(t, s, "R-1", "Room", 10)
	existing := seedBooking(t, s, r.ID(), at(8), at(9))

	slot, err := booking.NewTimeSlot(at(10), at(11))
	require.NoError(t, err)
	requester, err := user.NewPrincipal(uuid.New(), user.RoleUser)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Bookings().Create(ctx, booking.New(uuid.New(), r.ID(), requester, slot, now)); err != nil {
			return err
		}
		if err := tx.Bookings().Delete(ctx, existing.ID()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.False(t, isBooked(t, s, r.ID(), uuid.Nil, at(10), at(11)), "insert must be undone")
	assert.True(t, isBooked(t, s, r.ID(), uuid.Nil, at(8), at(9)), "delete must be undone")

	view, err := s.BookingReadStore().FindByID(context.Background(), existing.ID())
	require.NoError(t, err)
	assert.Equal(t, existing.StartTime(), view.StartTime)
}

func TestStore_BookingConstraints(t *testing.T) {
	s := memstore.New()
	r := seedRoom(t, s, "R-1", "Room", 10)
	seedBooking(t, s, r.ID(), at(10), at(11))

	requester, err := user.NewPrincipal(uuid.New(), user.RoleUser)
	require.NoError(t, err)

	create := func(roomID uuid.UUID, start, end time.Time) error {
		slot, err := booking.NewTimeSlot(start, end)
		require.NoError(t, err)
		return s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Bookings().Create(ctx, booking.New(uuid.New(), roomID, requester, slot, now))
			return err
		})
	}

	t.Run("overlap violates the exclusion constraint", func(t *testing.T) {
		err := create(r.ID(), at(10), at(12))
		assert.True(t, infra.IsKind(err, infra.KindExclusionViolated))
	})

	t.Run("unknown room violates the foreign key", func(t *testing.T) {
		err := create(uuid.New(), at(10), at(12))
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		err := s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Delete(ctx, uuid.New())
		})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestStore_RoomDeleteCascades(t *testing.T) {
	s := memstore.New()
	r := seedRoom(t, s, "R-1", "Room", 10)
	b := seedBooking(t, s, r.ID(), at(10), at(11))

	require.NoError(t, s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Delete(ctx, r.ID())
	}))

	_, err := s.BookingReadStore().FindByID(context.Background(), b.ID())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	_, err = s.RoomReadStore().FindByID(context.Background(), r.ID())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestStore_RoomIdentifierUnique(t *testing.T) {
	s := memstore.New()
	seedRoom(t, s, "R-1", "Room", 10)

	dup, err := room.NewRoom(uuid.New(), room.Spec{
		Identifier: "R-1",
		Name:       "Copy",
		Capacity:   ptr.To(5),
		Status:     ptr.To(room.StatusAvailable),
		Type:       ptr.To(room.TypeStudyRoom),
	}, now)
	require.NoError(t, err)

	err = s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Rooms().Create(ctx, dup)
		return err
	})
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}

func TestStore_EnsureAmenitiesIsIdempotent(t *testing.T) {
	s := memstore.New()
	amenities := room.DefaultAmenities()

	require.NoError(t, s.EnsureAmenities(context.Background(), amenities))
	require.NoError(t, s.EnsureAmenities(context.Background(), amenities))

	ids := make([]uuid.UUID, 0, len(amenities))
	for _, a := range amenities {
		ids = append(ids, a.ID)
	}
	var n int
	require.NoError(t, s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Rooms().CountAmenities(ctx, append(ids, uuid.New()))
		return err
	}))
	assert.Equal(t, len(amenities), n)
}

func TestReadStore_FindPage(t *testing.T) {
	s := memstore.New()
	amenities := room.DefaultAmenities()
	require.NoError(t, s.EnsureAmenities(context.Background(), amenities))
	projector, whiteboard := amenities[0].ID, amenities[1].ID

	seedRoom(t, s, "B-2", "Beta", 30, projector, whiteboard)
	seedRoom(t, s, "A-1", "Alpha", 10, projector)
	seedRoom(t, s, "C-3", "Gamma", 50, projector, whiteboard)

	t.Run("amenities are AND-combined", func(t *testing.T) {
		items, total, err := s.RoomReadStore().FindPage(context.Background(),
			queries.RoomFilter{AmenityIDs: []uuid.UUID{projector, whiteboard, projector}},
			queries.PageRequest{Size: 10, Sort: queries.RoomSortName, Direction: queries.SortAsc})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, "Beta", items[0].Name)
		assert.Equal(t, "Gamma", items[1].Name)
	})

	t.Run("sorted descending and paged", func(t *testing.T) {
		items, total, err := s.RoomReadStore().FindPage(context.Background(),
			queries.RoomFilter{},
			queries.PageRequest{Page: 1, Size: 2, Sort: queries.RoomSortCapacity, Direction: queries.SortDesc})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Alpha", items[0].Name)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		items, total, err := s.RoomReadStore().FindPage(context.Background(),
			queries.RoomFilter{}, queries.PageRequest{Page: 5, Size: 2, Sort: queries.RoomSortName})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Empty(t, items)
	})
}

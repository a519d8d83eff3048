// Package memstore is the in-process store behind STORE_DRIVER=memory. Every
// unit of work holds the store-wide write lock, which gives the same
// check-then-write atomicity the Postgres store gets from row locks.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"room-booking/internal/domain/room"
	"room-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type bookingRow struct {
	id          uuid.UUID
	roomID      uuid.UUID
	requestedBy uuid.UUID
	approvedBy  *uuid.UUID
	approved    bool
	start       time.Time
	end         time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type roomRow struct {
	id          uuid.UUID
	identifier  string
	name        string
	description *string
	capacity    int
	status      room.Status
	roomType    room.Type
	amenityIDs  []uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

type Store struct {
	mu        sync.RWMutex
	bookings  map[uuid.UUID]bookingRow
	byRoom    map[uuid.UUID][]uuid.UUID // booking ids ordered by start time
	rooms     map[uuid.UUID]roomRow
	amenities map[uuid.UUID]string
}

func New() *Store {
	return &Store{
		bookings:  make(map[uuid.UUID]bookingRow),
		byRoom:    make(map[uuid.UUID][]uuid.UUID),
		rooms:     make(map[uuid.UUID]roomRow),
		amenities: make(map[uuid.UUID]string),
	}
}

// Within runs fn under the write lock. If fn fails, its writes are undone.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// EnsureAmenities inserts the amenities whose names are not present yet.
func (s *Store) EnsureAmenities(ctx context.Context, amenities []room.Amenity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range amenities {
		exists := false
		for _, name := range s.amenities {
			if name == a.Name {
				exists = true
				break
			}
		}
		if !exists {
			s.amenities[a.ID] = a.Name
		}
	}
	return nil
}

type memTx struct {
	store *Store
	undo  []func()
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &bookingRepository{tx: t}
}

func (t *memTx) Rooms() shared.RoomRepository {
	return &roomRepository{tx: t}
}

func (t *memTx) onRollback(f func()) {
	t.undo = append(t.undo, f)
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// putBooking inserts or replaces a booking and keeps the room index ordered.
func (t *memTx) putBooking(row bookingRow) {
	s := t.store
	prev, existed := s.bookings[row.id]
	t.snapshotIndex(row.roomID)
	if existed && prev.roomID != row.roomID {
		t.snapshotIndex(prev.roomID)
		s.byRoom[prev.roomID] = removeID(s.byRoom[prev.roomID], row.id)
	}
	t.onRollback(func() {
		if existed {
			s.bookings[row.id] = prev
		} else {
			delete(s.bookings, row.id)
		}
	})

	s.bookings[row.id] = row
	ids := removeID(s.byRoom[row.roomID], row.id)
	pos, _ := slices.BinarySearchFunc(ids, row.start, func(id uuid.UUID, start time.Time) int {
		return s.bookings[id].start.Compare(start)
	})
	s.byRoom[row.roomID] = slices.Insert(ids, pos, row.id)
}

func (t *memTx) deleteBooking(id uuid.UUID) {
	s := t.store
	prev, ok := s.bookings[id]
	if !ok {
		return
	}
	t.snapshotIndex(prev.roomID)
	t.onRollback(func() { s.bookings[id] = prev })

	delete(s.bookings, id)
	s.byRoom[prev.roomID] = removeID(s.byRoom[prev.roomID], id)
}

func (t *memTx) putRoom(row roomRow) {
	s := t.store
	prev, existed := s.rooms[row.id]
	t.onRollback(func() {
		if existed {
			s.rooms[row.id] = prev
		} else {
			delete(s.rooms, row.id)
		}
	})
	s.rooms[row.id] = row
}

func (t *memTx) deleteRoom(id uuid.UUID) {
	s := t.store
	prev, ok := s.rooms[id]
	if !ok {
		return
	}
	for _, bookingID := range slices.Clone(s.byRoom[id]) {
		t.deleteBooking(bookingID)
	}
	t.onRollback(func() { s.rooms[id] = prev })
	delete(s.rooms, id)
}

func (t *memTx) snapshotIndex(roomID uuid.UUID) {
	s := t.store
	prev, existed := s.byRoom[roomID]
	prev = slices.Clone(prev)
	t.onRollback(func() {
		if existed {
			s.byRoom[roomID] = prev
		} else {
			delete(s.byRoom, roomID)
		}
	})
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(slices.Clone(ids), func(x uuid.UUID) bool { return x == id })
}

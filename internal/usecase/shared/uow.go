package shared

import (
	"context"
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn atomically. Everything fn does through tx commits together
	// or not at all; concurrent units touching the same room are serialised.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
}

// BookingRepository is the write side of bookings plus the overlap index.
// Errors are infra.RepositoryError values; lookups of absent rows report
// KindNotFound.
type BookingRepository interface {
	// IsBooked reports whether any booking of the room overlaps [start, end).
	IsBooked(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
	// IsBookedExcluding is IsBooked ignoring the booking excludeID.
	IsBookedExcluding(ctx context.Context, roomID, excludeID uuid.UUID, start, end time.Time) (bool, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoomRepository interface {
	// FindByIDForUpdate loads the room and holds it until the unit of work ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error)
	Create(ctx context.Context, r *room.Room) (*room.Room, error)
	Update(ctx context.Context, r *room.Room) (*room.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountAmenities returns how many of ids exist in the amenity catalog.
	CountAmenities(ctx context.Context, ids []uuid.UUID) (int, error)
}

// AmenitySeeder inserts reference amenities that are not present yet.
type AmenitySeeder interface {
	EnsureAmenities(ctx context.Context, amenities []room.Amenity) error
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"room-booking/internal/domain/booking"
	"room-booking/internal/domain/room"
	"room-booking/internal/domain/user"
	"room-booking/internal/infra"
	"room-booking/internal/pkg/clock"
	"room-booking/internal/pkg/errs"
	"room-booking/internal/usecase/queries"
	"room-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	RoomID    *uuid.UUID
	StartTime *time.Time
	EndTime   *time.Time
}

// UpdateBookingParams overrides the non-nil bounds; the room cannot change.
type UpdateBookingParams struct {
	StartTime *time.Time
	EndTime   *time.Time
}

// BookingCommands is the admission engine. Errors are marked with one of the
// errs kinds: ErrInvalidRequest, ErrConflict, ErrNotFound, ErrForbidden, or
// ErrDatabaseOperationFailed.
type BookingCommands interface {
	Create(ctx context.Context, params CreateBookingParams, principal user.Principal) (*queries.BookingView, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateBookingParams) (*queries.BookingView, error)
	Approve(ctx context.Context, id uuid.UUID, principal user.Principal) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, params CreateBookingParams, principal user.Principal) (*queries.BookingView, error) {
	now := c.clock.Now()
	roomID, slot, err := booking.Request{
		RoomID:    params.RoomID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
	}.Validate(now)
	if err != nil {
		return nil, errs.InvalidRequest(err)
	}

	var created *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Locking the room first serialises admissions per room. A missing room
		// is only reported after the overlap check.
		rm, roomErr := tx.Rooms().FindByIDForUpdate(ctx, roomID)
		if roomErr != nil && !infra.IsKind(roomErr, infra.KindNotFound) {
			return errs.DatabaseFailure(roomErr)
		}

		booked, err := tx.Bookings().IsBooked(ctx, roomID, slot.Start(), slot.End())
		if err != nil {
			return errs.DatabaseFailure(err)
		}
		if booked {
			return errs.Conflict(booking.ErrSlotUnavailable)
		}
		if roomErr != nil {
			return errs.NotFound(room.ErrNotFound)
		}
		if !rm.IsAvailable() {
			return errs.Conflict(booking.ErrSlotUnavailable)
		}

		stored, err := tx.Bookings().Create(ctx, booking.New(uuid.New(), roomID, principal, slot, now))
		if err != nil {
			return mapBookingWriteErr(err)
		}
		created = stored
		return nil
	})
	if err != nil {
		c.logger.DebugContext(ctx, "booking rejected",
			slog.String("room_id", roomID.String()),
			slog.String("principal_id", principal.ID.String()),
			slog.String("reason", errs.Reason(err)))
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking admitted",
		slog.String("booking_id", created.ID().String()),
		slog.String("room_id", created.RoomID().String()),
		slog.Bool("approved", created.Approved()))
	return queries.NewBookingView(created), nil
}

func (c *bookingCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdateBookingParams) (*queries.BookingView, error) {
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapBookingLookupErr(err)
		}

		slot, err := b.EffectiveSlot(params.StartTime, params.EndTime)
		if err != nil {
			return errs.InvalidRequest(err)
		}

		// Same per-room lock as Create so a concurrent admission cannot slip in.
		if _, err := tx.Rooms().FindByIDForUpdate(ctx, b.RoomID()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return errs.DatabaseFailure(err)
		}

		booked, err := tx.Bookings().IsBookedExcluding(ctx, b.RoomID(), b.ID(), slot.Start(), slot.End())
		if err != nil {
			return errs.DatabaseFailure(err)
		}
		if booked {
			return errs.Conflict(booking.ErrSlotUnavailable)
		}

		b.Reschedule(slot, c.clock.Now())
		stored, err := tx.Bookings().Update(ctx, b)
		if err != nil {
			return mapBookingWriteErr(err)
		}
		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking rescheduled",
		slog.String("booking_id", updated.ID().String()),
		slog.Time("start_time", updated.StartTime()),
		slog.Time("end_time", updated.EndTime()))
	return queries.NewBookingView(updated), nil
}

func (c *bookingCommandsImpl) Approve(ctx context.Context, id uuid.UUID, principal user.Principal) (*queries.BookingView, error) {
	if !principal.CanApproveBookings() {
		return nil, errs.Forbidden(booking.ErrApprovalNotPermitted)
	}

	var approved *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapBookingLookupErr(err)
		}

		b.Approve(principal.ID, c.clock.Now())
		stored, err := tx.Bookings().Update(ctx, b)
		if err != nil {
			return mapBookingWriteErr(err)
		}
		approved = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "booking approved",
		slog.String("booking_id", approved.ID().String()),
		slog.String("approved_by", principal.ID.String()))
	return queries.NewBookingView(approved), nil
}

func (c *bookingCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Delete(ctx, id); err != nil {
			return mapBookingLookupErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "booking deleted", slog.String("booking_id", id.String()))
	return nil
}

func mapBookingLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.NotFound(booking.ErrNotFound)
	}
	return errs.DatabaseFailure(err)
}

// The exclusion constraint backs up the overlap check; a room deleted
// mid-flight surfaces as a foreign key violation.
func mapBookingWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindExclusionViolated):
		return errs.Conflict(booking.ErrSlotUnavailable)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.NotFound(room.ErrNotFound)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.NotFound(booking.ErrNotFound)
	default:
		return errs.DatabaseFailure(err)
	}
}

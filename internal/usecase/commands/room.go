package commands

import (
	"context"
	"log/slog"

	"room-booking/internal/domain/room"
	"room-booking/internal/domain/user"
	"room-booking/internal/infra"
	"room-booking/internal/pkg/clock"
	"room-booking/internal/pkg/errs"
	"room-booking/internal/usecase/queries"
	"room-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errRoomWriteNotPermitted = errs.New("principal is not allowed to manage rooms.")

type CreateRoomParams = room.Spec

type UpdateRoomParams = room.Patch

type RoomCommands interface {
	Create(ctx context.Context, params CreateRoomParams, principal user.Principal) (*queries.RoomView, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateRoomParams, principal user.Principal) (*queries.RoomView, error)
	Delete(ctx context.Context, id uuid.UUID, principal user.Principal) error
}

type roomCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewRoomCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) RoomCommands {
	return &roomCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (c *roomCommandsImpl) Create(ctx context.Context, params CreateRoomParams, principal user.Principal) (*queries.RoomView, error) {
	if !principal.Can(user.CapCreateRooms) {
		return nil, errs.Forbidden(errRoomWriteNotPermitted)
	}

	r, err := room.NewRoom(uuid.New(), params, c.clock.Now())
	if err != nil {
		return nil, errs.InvalidRequest(err)
	}

	var created *room.Room
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := checkAmenities(ctx, tx, r.AmenityIDs()); err != nil {
			return err
		}
		stored, err := tx.Rooms().Create(ctx, r)
		if err != nil {
			return mapRoomWriteErr(err)
		}
		created = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "room created",
		slog.String("room_id", created.ID().String()),
		slog.String("identifier", created.Identifier()))
	return queries.NewRoomView(created), nil
}

func (c *roomCommandsImpl) Update(ctx context.Context, id uuid.UUID, params UpdateRoomParams, principal user.Principal) (*queries.RoomView, error) {
	if !principal.Can(user.CapEditRooms) {
		return nil, errs.Forbidden(errRoomWriteNotPermitted)
	}

	var updated *room.Room
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Rooms().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.NotFound(room.ErrNotFound)
			}
			return errs.DatabaseFailure(err)
		}

		if err := r.ApplyPatch(params, c.clock.Now()); err != nil {
			return errs.InvalidRequest(err)
		}
		if params.AmenityIDs != nil {
			if err := checkAmenities(ctx, tx, r.AmenityIDs()); err != nil {
				return err
			}
		}

		stored, err := tx.Rooms().Update(ctx, r)
		if err != nil {
			return mapRoomWriteErr(err)
		}
		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "room updated", slog.String("room_id", updated.ID().String()))
	return queries.NewRoomView(updated), nil
}

// Delete removes the room together with its bookings.
func (c *roomCommandsImpl) Delete(ctx context.Context, id uuid.UUID, principal user.Principal) error {
	if !principal.Can(user.CapDeleteRooms) {
		return errs.Forbidden(errRoomWriteNotPermitted)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rooms().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.NotFound(room.ErrNotFound)
			}
			return errs.DatabaseFailure(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "room deleted", slog.String("room_id", id.String()))
	return nil
}

func checkAmenities(ctx context.Context, tx shared.Tx, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := tx.Rooms().CountAmenities(ctx, ids)
	if err != nil {
		return errs.DatabaseFailure(err)
	}
	if n != len(ids) {
		return errs.InvalidRequest(room.ErrUnknownAmenity)
	}
	return nil
}

func mapRoomWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Conflict(room.ErrIdentifierTaken)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.InvalidRequest(room.ErrUnknownAmenity)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.NotFound(room.ErrNotFound)
	default:
		return errs.DatabaseFailure(err)
	}
}

package memstore

import (
	"context"
	"slices"

	"room-booking/internal/domain/room"
	"room-booking/internal/infra"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type roomRepository struct {
	tx *memTx
}

func (r *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	row, ok := r.tx.store.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r *roomRepository) Create(ctx context.Context, rm *room.Room) (*room.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to create room", err)
	}
	if _, exists := r.tx.store.rooms[rm.ID()]; exists {
		return nil, infra.WrapRepoErr("room already exists", nil, infra.KindDuplicateKey)
	}
	if err := r.checkWrite(rm); err != nil {
		return nil, err
	}

	row := roomRowFrom(rm)
	r.tx.putRoom(row)
	return row.toDomain(), nil
}

func (r *roomRepository) Update(ctx context.Context, rm *room.Room) (*room.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to update room", err)
	}
	if _, exists := r.tx.store.rooms[rm.ID()]; !exists {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	if err := r.checkWrite(rm); err != nil {
		return nil, err
	}

	row := roomRowFrom(rm)
	r.tx.putRoom(row)
	return row.toDomain(), nil
}

// Delete removes the room together with its bookings.
func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if _, exists := r.tx.store.rooms[id]; !exists {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	r.tx.deleteRoom(id)
	return nil
}

func (r *roomRepository) CountAmenities(ctx context.Context, ids []uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, infra.WrapRepoErr("failed to count amenities", err)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := r.tx.store.amenities[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen), nil
}

func (r *roomRepository) checkWrite(rm *room.Room) error {
	s := r.tx.store
	for id, other := range s.rooms {
		if id != rm.ID() && other.identifier == rm.Identifier() {
			return infra.WrapRepoErr("room identifier already exists", nil, infra.KindDuplicateKey)
		}
	}
	for _, id := range rm.AmenityIDs() {
		if _, ok := s.amenities[id]; !ok {
			return infra.WrapRepoErr("amenity does not exist", nil, infra.KindForeignKeyViolated)
		}
	}
	return nil
}

func roomRowFrom(rm *room.Room) roomRow {
	var description *string
	if d := rm.Description(); d != nil {
		v := *d
		description = &v
	}
	return roomRow{
		id:          rm.ID(),
		identifier:  rm.Identifier(),
		name:        rm.Name(),
		description: description,
		capacity:    rm.Capacity(),
		status:      rm.Status(),
		roomType:    rm.Type(),
		amenityIDs:  rm.AmenityIDs(),
		createdAt:   rm.CreatedAt(),
		updatedAt:   rm.UpdatedAt(),
	}
}

func (row roomRow) toDomain() *room.Room {
	return room.ReconstructRoom(
		row.id,
		row.identifier,
		row.name,
		row.description,
		row.capacity,
		row.status,
		row.roomType,
		slices.Clone(row.amenityIDs),
		row.createdAt,
		row.updatedAt,
	)
}

func (row roomRow) toView() *queries.RoomView {
	return queries.NewRoomView(row.toDomain())
}

package repository

import (
	"context"

	"room-booking/internal/domain/room"
	"room-booking/internal/infra"
	"room-booking/internal/infra/db"
	"room-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const roomColumns = `id, identifier, name, description, capacity, status, type, created_at, updated_at`

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(db db.DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

// FindByIDForUpdate row-locks the room. Booking admissions for the same room
// queue behind this lock until the transaction ends.
func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `
SELECT `+roomColumns+`,
	COALESCE((SELECT array_agg(ra.amenity_id::text) FROM room_amenities ra WHERE ra.room_id = rooms.id), '{}')
FROM rooms
WHERE id = $1
FOR UPDATE`, id)

	var (
		rec        roomRecord
		amenityIDs []string
	)
	if err := row.Scan(rec.targets(&amenityIDs)...); err != nil {
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	ids, err := pgconv.ParseUUIDs(amenityIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to parse room amenities", err)
	}
	return rec.toDomain(ids), nil
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `
INSERT INTO rooms (`+roomColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+roomColumns,
		rm.ID(),
		rm.Identifier(),
		rm.Name(),
		pgconv.StringPtrToPgtype(rm.Description()),
		rm.Capacity(),
		rm.Status().String(),
		rm.Type().String(),
		pgconv.TimeToPgtype(rm.CreatedAt()),
		pgconv.TimeToPgtype(rm.UpdatedAt()),
	)

	var rec roomRecord
	if err := row.Scan(rec.targets(nil)...); err != nil {
		return nil, infra.WrapRepoErr("failed to create room", err)
	}
	if err := r.insertAmenities(ctx, rm.ID(), rm.AmenityIDs()); err != nil {
		return nil, err
	}
	return rec.toDomain(rm.AmenityIDs()), nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `
UPDATE rooms
SET identifier = $2, name = $3, description = $4, capacity = $5, status = $6, type = $7, updated_at = $8
WHERE id = $1
RETURNING `+roomColumns,
		rm.ID(),
		rm.Identifier(),
		rm.Name(),
		pgconv.StringPtrToPgtype(rm.Description()),
		rm.Capacity(),
		rm.Status().String(),
		rm.Type().String(),
		pgconv.TimeToPgtype(rm.UpdatedAt()),
	)

	var rec roomRecord
	if err := row.Scan(rec.targets(nil)...); err != nil {
		return nil, infra.WrapRepoErr("failed to update room", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM room_amenities WHERE room_id = $1`, rm.ID()); err != nil {
		return nil, infra.WrapRepoErr("failed to clear room amenities", err)
	}
	if err := r.insertAmenities(ctx, rm.ID(), rm.AmenityIDs()); err != nil {
		return nil, err
	}
	return rec.toDomain(rm.AmenityIDs()), nil
}

// Delete removes the room; bookings and amenity links go with it through
// ON DELETE CASCADE.
func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) CountAmenities(ctx context.Context, ids []uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM amenities WHERE id = ANY($1::uuid[])`,
		pgconv.UUIDStrings(ids),
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count amenities", err)
	}
	return n, nil
}

func (r *RoomRepository) insertAmenities(ctx context.Context, roomID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO room_amenities (room_id, amenity_id) SELECT $1, unnest($2::uuid[])`,
		roomID, pgconv.UUIDStrings(ids),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to link room amenities", err)
	}
	return nil
}

type roomRecord struct {
	id          uuid.UUID
	identifier  string
	name        string
	description pgtype.Text
	capacity    int32
	status      string
	roomType    string
	createdAt   pgtype.Timestamptz
	updatedAt   pgtype.Timestamptz
}

// targets lists scan destinations in roomColumns order, optionally followed
// by the aggregated amenity ids.
func (rec *roomRecord) targets(amenityIDs *[]string) []any {
	out := []any{
		&rec.id, &rec.identifier, &rec.name, &rec.description, &rec.capacity,
		&rec.status, &rec.roomType, &rec.createdAt, &rec.updatedAt,
	}
	if amenityIDs != nil {
		out = append(out, amenityIDs)
	}
	return out
}

func (rec *roomRecord) toDomain(amenityIDs []uuid.UUID) *room.Room {
	return room.ReconstructRoom(
		rec.id,
		rec.identifier,
		rec.name,
		pgconv.StringPtrFromPgtype(rec.description),
		int(rec.capacity),
		room.Status(rec.status),
		room.Type(rec.roomType),
		amenityIDs,
		pgconv.TimeFromPgtype(rec.createdAt),
		pgconv.TimeFromPgtype(rec.updatedAt),
	)
}

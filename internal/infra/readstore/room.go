package readstore

import (
	"context"

	"room-booking/internal/infra"
	"room-booking/internal/infra/db"
	"room-booking/internal/pkg/pgconv"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectRoomViews = `SELECT id, identifier, name, description, capacity, status, type, created_at, updated_at,
	COALESCE((SELECT array_agg(ra.amenity_id::text ORDER BY ra.amenity_id) FROM room_amenities ra WHERE ra.room_id = rooms.id), '{}')
FROM rooms`

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(db db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	return r.findOne(ctx, selectRoomViews+` WHERE id = $1`, id)
}

func (r *RoomReadStore) FindByIdentifier(ctx context.Context, identifier string) (*queries.RoomView, error) {
	return r.findOne(ctx, selectRoomViews+` WHERE identifier = $1`, identifier)
}

func (r *RoomReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.RoomView, error) {
	view, err := scanRoomView(r.db.QueryRow(ctx, sql, arg))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return view, nil
}

func (r *RoomReadStore) FindPage(ctx context.Context, filter queries.RoomFilter, page queries.PageRequest) ([]*queries.RoomView, int64, error) {
	q := buildPageQuery(selectRoomViews, "rooms", roomWhere(filter), roomSortColumns, "name", page)

	var total int64
	if err := r.db.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count rooms", err)
	}

	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	result := make([]*queries.RoomView, 0, page.Size)
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan room", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list rooms", err)
	}

	return result, total, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var (
		v           queries.RoomView
		description pgtype.Text
		capacity    int32
		created     pgtype.Timestamptz
		updated     pgtype.Timestamptz
		amenityIDs  []string
	)
	if err := row.Scan(&v.ID, &v.Identifier, &v.Name, &description, &capacity, &v.Status, &v.Type, &created, &updated, &amenityIDs); err != nil {
		return nil, err
	}

	ids, err := pgconv.ParseUUIDs(amenityIDs)
	if err != nil {
		return nil, err
	}
	v.Description = pgconv.StringPtrFromPgtype(description)
	v.Capacity = int(capacity)
	v.CreatedAt = pgconv.TimeFromPgtype(created)
	v.UpdatedAt = pgconv.TimeFromPgtype(updated)
	v.AmenityIDs = ids
	return &v, nil
}

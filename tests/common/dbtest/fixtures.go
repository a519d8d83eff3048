//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"room-booking/internal/domain/room"
	"room-booking/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both the pool and a pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestRoom inserts a room directly and returns its id. Identifiers are
// unique, so an existing room with the same identifier is reused.
func CreateTestRoom(t *testing.T, db DBLike, identifier string, status room.Status, amenities ...uuid.UUID) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO rooms (id, identifier, name, capacity, status, type)
		VALUES ($1, $2, $3, 30, $4, 'SEMINAR_ROOM')
		ON CONFLICT (identifier) DO NOTHING`,
		roomID, identifier, "Room "+identifier, string(status))
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM rooms WHERE identifier = $1", identifier).Scan(&roomID))
		return roomID
	}

	for _, a := range amenities {
		_, err := db.Exec(ctx, "INSERT INTO room_amenities (room_id, amenity_id) VALUES ($1, $2)", roomID, a)
		require.NoError(t, err)
	}
	return roomID
}

// CountBookings returns the number of stored bookings of the room.
func CountBookings(t *testing.T, db DBLike, roomID uuid.UUID) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM bookings WHERE room_id = $1", roomID).Scan(&n))
	return n
}

// inserts the amenity catalog the application seeds on start
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repository.NewAmenityRepository(pool).EnsureAmenities(ctx, room.DefaultAmenities())
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil || len(tables) == 0 {
			truncateSQL.Store("")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}

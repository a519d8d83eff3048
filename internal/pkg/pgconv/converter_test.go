//go:build unit

package pgconv_test

import (
	"fmt"
	"testing"
	"time"

	"room-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDPtrRoundTrip(t *testing.T) {
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))
	assert.False(t, pgconv.UUIDPtrToPgtype(nil).Valid)

	id := uuid.New()
	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

func TestTimeIsNormalisedToUTC(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	local := time.Date(2030, 1, 1, 9, 0, 0, 0, jst)

	ts := pgconv.TimeToPgtype(local)
	assert.Equal(t, time.UTC, ts.Time.Location())
	assert.True(t, local.Equal(pgconv.TimeFromPgtype(ts)))
}

func TestParseUUIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	parsed, err := pgconv.ParseUUIDs(pgconv.UUIDStrings(ids))
	require.NoError(t, err)
	assert.Equal(t, ids, parsed)

	_, err = pgconv.ParseUUIDs([]string{"not-a-uuid"})
	assert.Error(t, err)
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("lookup: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(assert.AnError))

	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	assert.Equal(t, "23P01", pgconv.PgErrorCode(wrapped))
	assert.Equal(t, "", pgconv.PgErrorCode(assert.AnError))
}

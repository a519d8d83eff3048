//go:build unit

package readstore

import (
	"testing"
	"time"

	"room-booking/internal/domain/room"
	"room-booking/internal/pkg/pgconv"
	"room-booking/internal/pkg/ptr"
	"room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildPageQuery_Bookings(t *testing.T) {
	roomID := uuid.New()
	minStart := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		filter        queries.BookingFilter
		page          queries.PageRequest
		wantSQL       string
		wantCountSQL  string
		wantArgs      []any
		wantCountArgs []any
	}{
		{
			name:          "no filter",
			filter:        queries.BookingFilter{},
			page:          queries.PageRequest{Page: 0, Size: 20, Sort: queries.BookingSortStartTime, Direction: queries.SortAsc},
			wantSQL:       selectBookingViews + " ORDER BY start_time ASC, id ASC LIMIT $1 OFFSET $2",
			wantCountSQL:  "SELECT COUNT(*) FROM bookings",
			wantArgs:      []any{20, 0},
			wantCountArgs: []any{},
		},
		{
			name:          "room and start time",
			filter:        queries.BookingFilter{RoomID: &roomID, MinStartTime: &minStart},
			page:          queries.PageRequest{Page: 2, Size: 10, Sort: queries.BookingSortCreatedAt, Direction: queries.SortDesc},
			wantSQL:       selectBookingViews + " WHERE room_id = $1 AND start_time >= $2 ORDER BY created_at DESC, id ASC LIMIT $3 OFFSET $4",
			wantCountSQL:  "SELECT COUNT(*) FROM bookings WHERE room_id = $1 AND start_time >= $2",
			wantArgs:      []any{roomID, pgconv.TimeToPgtype(minStart), 10, 20},
			wantCountArgs: []any{roomID, pgconv.TimeToPgtype(minStart)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildPageQuery(selectBookingViews, "bookings", bookingWhere(tt.filter), bookingSortColumns, "start_time", tt.page)
			assert.Equal(t, tt.wantSQL, q.sql)
			assert.Equal(t, tt.wantCountSQL, q.countSQL)
			assert.Equal(t, tt.wantArgs, q.args)
			assert.ElementsMatch(t, tt.wantCountArgs, q.countArgs)
		})
	}
}

func TestRoomWhere(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	w := roomWhere(queries.RoomFilter{
		Name:        ptr.To("Lab"),
		MinCapacity: ptr.To(10),
		Status:      ptr.To(room.StatusAvailable),
		AmenityIDs:  []uuid.UUID{a, b, a},
	})

	assert.Equal(t,
		" WHERE strpos(name, $1) > 0 AND capacity >= $2 AND status = $3"+
			" AND id IN (SELECT room_id FROM room_amenities WHERE amenity_id = ANY($4::uuid[])"+
			" GROUP BY room_id HAVING COUNT(DISTINCT amenity_id) = $5)",
		w.String())
	assert.Equal(t, []any{"Lab", 10, "AVAILABLE", []string{a.String(), b.String()}, 2}, w.args)
}

func TestBuildPageQuery_UnknownSortFallsBack(t *testing.T) {
	q := buildPageQuery(selectRoomViews, "rooms", roomWhere(queries.RoomFilter{}), roomSortColumns, "name",
		queries.PageRequest{Size: 5, Sort: "password"})
	assert.Equal(t, selectRoomViews+" ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2", q.sql)
}

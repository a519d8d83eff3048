package readstore

import (
	"slices"
	"strconv"
	"strings"

	"room-booking/internal/pkg/pgconv"
	"room-booking/internal/usecase/queries"
)

var bookingSortColumns = map[string]string{
	queries.BookingSortStartTime: "start_time",
	queries.BookingSortEndTime:   "end_time",
	queries.BookingSortCreatedAt: "created_at",
	queries.BookingSortUpdatedAt: "updated_at",
}

var roomSortColumns = map[string]string{
	queries.RoomSortName:       "name",
	queries.RoomSortIdentifier: "identifier",
	queries.RoomSortCapacity:   "capacity",
	queries.RoomSortCreatedAt:  "created_at",
}

// where collects AND-combined predicates with positional arguments.
type where struct {
	clauses []string
	args    []any
}

func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *where) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

type pageQuery struct {
	sql       string
	args      []any
	countSQL  string
	countArgs []any
}

// buildPageQuery appends ordering and paging to a filtered select. The count
// statement shares the predicates but not the LIMIT/OFFSET arguments.
func buildPageQuery(selectSQL, table string, w *where, sortColumns map[string]string, fallback string, page queries.PageRequest) pageQuery {
	column, ok := sortColumns[page.Sort]
	if !ok {
		column = fallback
	}
	dir := "ASC"
	if page.Direction == queries.SortDesc {
		dir = "DESC"
	}

	filter := w.String()
	countArgs := slices.Clone(w.args)
	limit := w.arg(page.Size)
	offset := w.arg(page.Offset())

	return pageQuery{
		sql:       selectSQL + filter + " ORDER BY " + column + " " + dir + ", id ASC LIMIT " + limit + " OFFSET " + offset,
		args:      w.args,
		countSQL:  "SELECT COUNT(*) FROM " + table + filter,
		countArgs: countArgs,
	}
}

func bookingWhere(f queries.BookingFilter) *where {
	w := &where{}
	if f.RoomID != nil {
		w.add("room_id = " + w.arg(*f.RoomID))
	}
	if f.RequestedBy != nil {
		w.add("requested_by = " + w.arg(*f.RequestedBy))
	}
	if f.ApprovedBy != nil {
		w.add("approved_by = " + w.arg(*f.ApprovedBy))
	}
	if f.MinStartTime != nil {
		w.add("start_time >= " + w.arg(pgconv.TimeToPgtype(*f.MinStartTime)))
	}
	if f.MaxEndTime != nil {
		w.add("end_time <= " + w.arg(pgconv.TimeToPgtype(*f.MaxEndTime)))
	}
	return w
}

func roomWhere(f queries.RoomFilter) *where {
	w := &where{}
	if f.Name != nil {
		// strpos keeps the match literal and case-sensitive, unlike LIKE
		w.add("strpos(name, " + w.arg(*f.Name) + ") > 0")
	}
	if f.MinCapacity != nil {
		w.add("capacity >= " + w.arg(*f.MinCapacity))
	}
	if f.MaxCapacity != nil {
		w.add("capacity <= " + w.arg(*f.MaxCapacity))
	}
	if f.Status != nil {
		w.add("status = " + w.arg(f.Status.String()))
	}
	if f.Type != nil {
		w.add("type = " + w.arg(f.Type.String()))
	}
	if ids := f.DistinctAmenityIDs(); len(ids) > 0 {
		set := w.arg(pgconv.UUIDStrings(ids))
		n := w.arg(len(ids))
		w.add("id IN (SELECT room_id FROM room_amenities WHERE amenity_id = ANY(" + set + "::uuid[]) " +
			"GROUP BY room_id HAVING COUNT(DISTINCT amenity_id) = " + n + ")")
	}
	return w
}

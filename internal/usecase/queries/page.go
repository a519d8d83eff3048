package queries

import (
	"math"
	"slices"
	"strings"

	"room-booking/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// Sort keys exposed to clients. Stores map them onto their own columns.
const (
	BookingSortStartTime = "startTime"
	BookingSortEndTime   = "endTime"
	BookingSortCreatedAt = "createdAt"
	BookingSortUpdatedAt = "updatedAt"

	RoomSortName       = "name"
	RoomSortIdentifier = "identifier"
	RoomSortCapacity   = "capacity"
	RoomSortCreatedAt  = "createdAt"
)

var (
	BookingSortKeys = []string{BookingSortStartTime, BookingSortEndTime, BookingSortCreatedAt, BookingSortUpdatedAt}
	RoomSortKeys    = []string{RoomSortName, RoomSortIdentifier, RoomSortCapacity, RoomSortCreatedAt}
)

// PageRequest is zero-based. Zero values fall back to defaults.
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction SortDirection
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// ParseSort splits "field" or "field,dir" into its parts.
func ParseSort(raw string) (string, SortDirection) {
	field, dir, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(field), SortDirection(strings.ToLower(strings.TrimSpace(dir)))
}

func normalizePage(p PageRequest, defaultSort string, allowed []string) (PageRequest, error) {
	if p.Page < 0 {
		return PageRequest{}, invalidPage("page must not be negative.")
	}
	switch {
	case p.Size == 0:
		p.Size = DefaultPageSize
	case p.Size < 0 || p.Size > MaxPageSize:
		return PageRequest{}, invalidPage("size must be between 1 and %d.", MaxPageSize)
	}
	// the offset must stay representable
	if p.Page > math.MaxInt/p.Size {
		return PageRequest{}, invalidPage("page is out of range.")
	}
	if p.Sort == "" {
		p.Sort = defaultSort
	}
	if !slices.Contains(allowed, p.Sort) {
		return PageRequest{}, invalidPage("unsupported sort field %q.", p.Sort)
	}
	if p.Direction == "" {
		p.Direction = SortAsc
	}
	if !p.Direction.IsValid() {
		return PageRequest{}, invalidPage("unsupported sort direction %q.", p.Direction)
	}
	return p, nil
}

func invalidPage(format string, args ...any) error {
	return errs.InvalidRequest(errs.Newf(format, args...))
}

type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}

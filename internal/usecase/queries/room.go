package queries

import (
	"context"
	"strings"

	"room-booking/internal/domain/room"
	"room-booking/internal/infra"
	"room-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindByIdentifier(ctx context.Context, identifier string) (*RoomView, error)
	FindPage(ctx context.Context, filter RoomFilter, page PageRequest) ([]*RoomView, int64, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	GetByIdentifier(ctx context.Context, identifier string) (*RoomView, error)
	List(ctx context.Context, page PageRequest) (*Page[*RoomView], error)
	Filter(ctx context.Context, filter RoomFilter, page PageRequest) (*Page[*RoomView], error)
	Types() []CatalogEntry
	Statuses() []CatalogEntry
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return q.lookup(q.store.FindByID(ctx, id))
}

func (q *roomQueriesImpl) GetByIdentifier(ctx context.Context, identifier string) (*RoomView, error) {
	return q.lookup(q.store.FindByIdentifier(ctx, strings.TrimSpace(identifier)))
}

func (q *roomQueriesImpl) lookup(view *RoomView, err error) (*RoomView, error) {
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.NotFound(room.ErrNotFound)
		}
		return nil, errs.DatabaseFailure(err)
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, page PageRequest) (*Page[*RoomView], error) {
	return q.Filter(ctx, RoomFilter{}, page)
}

func (q *roomQueriesImpl) Filter(ctx context.Context, filter RoomFilter, page PageRequest) (*Page[*RoomView], error) {
	req, err := normalizePage(page, RoomSortName, RoomSortKeys)
	if err != nil {
		return nil, err
	}
	items, total, err := q.store.FindPage(ctx, filter, req)
	if err != nil {
		return nil, errs.DatabaseFailure(err)
	}
	return NewPage(items, req, total), nil
}

func (q *roomQueriesImpl) Types() []CatalogEntry {
	types := room.SortedTypes()
	out := make([]CatalogEntry, len(types))
	for i, t := range types {
		out[i] = CatalogEntry{Code: t.String(), Label: t.Label()}
	}
	return out
}

func (q *roomQueriesImpl) Statuses() []CatalogEntry {
	statuses := room.AllStatuses()
	out := make([]CatalogEntry, len(statuses))
	for i, s := range statuses {
		out[i] = CatalogEntry{Code: s.String(), Label: s.Label()}
	}
	return out
}

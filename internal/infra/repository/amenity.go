package repository

import (
	"context"

	"room-booking/internal/domain/room"
	"room-booking/internal/infra"
	"room-booking/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type AmenityRepository struct {
	db db.DBTX
}

func NewAmenityRepository(db db.DBTX) *AmenityRepository {
	return &AmenityRepository{db: db}
}

// EnsureAmenities inserts the catalog in one batch. Names already present are
// skipped, so running it on every start is safe.
func (r *AmenityRepository) EnsureAmenities(ctx context.Context, amenities []room.Amenity) error {
	if len(amenities) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range amenities {
		batch.Queue(`INSERT INTO amenities (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`, a.ID, a.Name)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range amenities {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to seed amenities", err)
		}
	}
	return nil
}

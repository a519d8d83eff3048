package components

import (
	"context"
	"log/slog"

	"room-booking/internal/domain/room"
	"room-booking/internal/infra/db"
	"room-booking/internal/infra/memstore"
	"room-booking/internal/infra/readstore"
	"room-booking/internal/infra/repository"
	"room-booking/internal/infra/uow"
	"room-booking/internal/pkg/config"
	"room-booking/internal/usecase/queries"
	"room-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PostgresModule = fx.Module("persistence/postgres",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomReadStore)),
		),
		fx.Annotate(
			repository.NewAmenityRepository,
			fx.As(new(shared.AmenitySeeder)),
		),
	),
)

// MemoryModule keeps everything in process. Bookings are lost on restart.
var MemoryModule = fx.Module("persistence/memory",
	fx.Provide(
		memstore.New,
		fx.Annotate(
			func(s *memstore.Store) *memstore.Store { return s },
			fx.As(new(shared.UnitOfWork)),
			fx.As(new(shared.AmenitySeeder)),
		),
		func(s *memstore.Store) queries.BookingReadStore { return s.BookingReadStore() },
		func(s *memstore.Store) queries.RoomReadStore { return s.RoomReadStore() },
	),
)

var SeedModule = fx.Module("persistence/seed",
	fx.Invoke(SeedAmenities),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// SeedAmenities installs the reference amenity catalog on start. Existing
// rows are kept, so it is safe on every boot and from several instances.
func SeedAmenities(lc fx.Lifecycle, cfg config.Config, seeder shared.AmenitySeeder, logger *slog.Logger) {
	if !cfg.Store.SeedAmenities {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			amenities := room.DefaultAmenities()
			if err := seeder.EnsureAmenities(ctx, amenities); err != nil {
				return err
			}
			logger.Info("amenity catalog ready", "count", len(amenities))
			return nil
		},
	})
}

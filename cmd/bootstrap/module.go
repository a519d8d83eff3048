package bootstrap

import (
	"room-booking/cmd/bootstrap/components"
	"room-booking/internal/pkg/config"

	"go.uber.org/fx"
)

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		storeModule(cfg.Store),
		components.SeedModule,
		components.UseCaseModule,
		components.HandlerModule,
	)
}

func storeModule(cfg config.StoreConfig) fx.Option {
	if cfg.Driver == config.StoreDriverMemory {
		return components.MemoryModule
	}
	return fx.Options(
		DBModule,
		components.PostgresModule,
	)
}

package bootstrap

import (
	"room-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies the configuration loaded by main, which has already
// used it to pick the store modules.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}

//go:build unit

package config_test

import (
	"os"
	"testing"

	"room-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("memory driver needs no database settings", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "memory")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
		assert.Equal(t, int32(20), cfg.DB.MaxConns)
		assert.True(t, cfg.Store.SeedAmenities)
	})

	t.Run("postgres driver requires credentials", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "sqlite")

		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
	})

	t.Run("missing JWT secret fails", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))
		t.Setenv("STORE_DRIVER", "memory")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: "5432", User: "u", Password: "p",
		DBName: "rooms", SSLMode: "disable", TimeZone: "UTC",
	}
	assert.Equal(t, "postgres://u:p@db:5432/rooms?sslmode=disable&timezone=UTC", cfg.BuildDSN())
}

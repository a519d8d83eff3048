package middleware

import (
	"log/slog"
	"slices"

	"room-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware builds the API's CORS policy. An empty origin list or "*"
// opens the API to any origin, in which case credentials are not allowed.
// Authorization is always an allowed header since every /api route needs it.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	if !slices.Contains(corsCfg.AllowHeaders, "Authorization") {
		corsCfg.AllowHeaders = append(slices.Clone(corsCfg.AllowHeaders), "Authorization")
	}

	slog.Info("CORS middleware initialized",
		slog.Any("allow_origins", corsCfg.AllowOrigins),
		slog.Bool("allow_all_origins", corsCfg.AllowAllOrigins))
	return cors.New(corsCfg)
}

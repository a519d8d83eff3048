package components

import (
	"room-booking/internal/handler"
	"room-booking/internal/handler/api"
	"room-booking/internal/handler/middleware"
	"room-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewRoomHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(RegisterRoutes),
)

type routeParams struct {
	fx.In

	Engine  *gin.Engine
	Config  config.Config
	Logger  *middleware.Logger
	Booking *api.BookingHandler
	Room    *api.RoomHandler
	Auth    *middleware.AuthMiddleware
}

func RegisterRoutes(p routeParams) error {
	return handler.NewRouter(p.Engine, p.Config, p.Logger, handler.Handlers{
		Booking: p.Booking,
		Room:    p.Room,
	}, p.Auth)
}

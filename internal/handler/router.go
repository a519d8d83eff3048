package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"room-booking/internal/domain/user"
	"room-booking/internal/handler/api"
	"room-booking/internal/handler/dto/request"
	"room-booking/internal/handler/middleware"
	"room-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking *api.BookingHandler
	Room    *api.RoomHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, handlers Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := request.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func can(caps ...user.Capability) []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.RequireCapability(caps...)}
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		bookings := apiGroup.Group("/booking")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: can(user.CapRequestBooking, user.CapCreateBookings)},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List, Mw: can(user.CapViewBookings)},
			{Method: http.MethodGet, Path: "/id/:id", Handler: h.Booking.GetByID, Mw: can(user.CapViewBookings)},
			{Method: http.MethodGet, Path: "/room/:roomId", Handler: h.Booking.ListByRoom, Mw: can(user.CapViewBookings)},
			{Method: http.MethodGet, Path: "/user/:userId", Handler: h.Booking.ListByUser, Mw: can(user.CapViewBookings)},
			{Method: http.MethodGet, Path: "/filter", Handler: h.Booking.Filter, Mw: can(user.CapViewBookings)},
			// approval rights are checked by the booking commands
			{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Booking.Approve},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Booking.Update, Mw: can(user.CapEditBookings, user.CapEditOwnBookings)},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.Delete, Mw: can(user.CapDeleteBookings, user.CapDeleteOwnBookings)},
		})

		rooms := apiGroup.Group("/room")
		addRoutes(rooms, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Room.Create, Mw: can(user.CapCreateRooms)},
			{Method: http.MethodGet, Path: "", Handler: h.Room.List, Mw: can(user.CapViewRooms)},
			{Method: http.MethodGet, Path: "/id/:id", Handler: h.Room.GetByID, Mw: can(user.CapViewRooms)},
			{Method: http.MethodGet, Path: "/identifier/:identifier", Handler: h.Room.GetByIdentifier, Mw: can(user.CapViewRooms)},
			{Method: http.MethodGet, Path: "/filter", Handler: h.Room.Filter, Mw: can(user.CapViewRooms)},
			{Method: http.MethodGet, Path: "/type", Handler: h.Room.Types, Mw: can(user.CapViewRooms)},
			{Method: http.MethodGet, Path: "/status", Handler: h.Room.Statuses, Mw: can(user.CapViewRooms)},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Room.Update, Mw: can(user.CapEditRooms)},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Room.Delete, Mw: can(user.CapDeleteRooms)},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

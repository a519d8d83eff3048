//go:build unit

package handler_test

import (
	"net/http"
	"testing"

	"room-booking/internal/domain/user"
	"room-booking/internal/handler"
	"room-booking/internal/handler/api"
	"room-booking/internal/handler/middleware"
	"room-booking/internal/pkg/config"
	"room-booking/internal/pkg/jwt"
	"room-booking/internal/usecase"
	"room-booking/internal/usecase/queries"
	"room-booking/tests/common/authtest"
	"room-booking/tests/common/builder"
	"room-booking/tests/common/httptest"
	commandsmock "room-booking/tests/mock/commands"
	queriesmock "room-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RouterTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	bookingCmds *commandsmock.MockBookingCommands
	bookingQ    *queriesmock.MockBookingQueries
	roomCmds    *commandsmock.MockRoomCommands
	roomQ       *queriesmock.MockRoomQueries
	tokens      *authtest.JWTHelper
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()

	s.mockCtrl = gomock.NewController(s.T())
	s.bookingCmds = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.bookingQ = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.roomCmds = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.roomQ = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.tokens = authtest.NewJWTHelper(cfg.JWT)

	validator := usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, 0))
	s.router = gin.New()
	err := handler.NewRouter(s.router, cfg, middleware.NewLogger(cfg.Log), handler.Handlers{
		Booking: api.NewBookingHandler(s.bookingCmds, s.bookingQ),
		Room:    api.NewRoomHandler(s.roomCmds, s.roomQ),
	}, middleware.NewAuthMiddleware(validator))
	s.Require().NoError(err)
}

func (s *RouterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) token(role user.Role) string {
	return s.tokens.GenerateToken(s.T(), uuid.New(), role)
}

func (s *RouterTestSuite) TestHealthIsPublic() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *RouterTestSuite) TestRequestID() {
	s.Run("generated when absent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
		_, err := uuid.Parse(rec.Header().Get(middleware.RequestIDHeader))
		s.NoError(err)
	})

	s.Run("client id is echoed", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "",
			httptest.WithHeader(middleware.RequestIDHeader, "trace-42"))
		httptest.AssertHeaders(s.T(), rec, map[string]string{middleware.RequestIDHeader: "trace-42"})
	})
}

func (s *RouterTestSuite) TestCORS() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "",
		httptest.WithHeader("Origin", "http://localhost:3000"))

	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	httptest.AssertHeaders(s.T(), rec, map[string]string{
		"Access-Control-Allow-Origin": "http://localhost:3000",
	})
}

func (s *RouterTestSuite) TestAuthentication() {
	s.Run("missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/room/type", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("garbage token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/room/type", nil, "not.a.jwt")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("expired token", func() {
		expired := s.tokens.CreateExpiredToken(s.T(), uuid.New(), user.RoleAdmin)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/room/type", nil, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("token from the access_token cookie", func() {
		s.roomQ.EXPECT().Types().Return([]queries.CatalogEntry{}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/room/type", nil, "",
			httptest.WithAccessTokenCookie(s.token(user.RoleUser)))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("unknown role", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/room/type", nil, s.token(user.Role("guest")))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *RouterTestSuite) TestCapabilityGuards() {
	roomID := uuid.New().String()
	bookingID := uuid.New().String()

	forbidden := []struct {
		name   string
		role   user.Role
		method string
		path   string
	}{
		{name: "user cannot create rooms", role: user.RoleUser, method: http.MethodPost, path: "/api/room"},
		{name: "user cannot edit rooms", role: user.RoleUser, method: http.MethodPut, path: "/api/room/" + roomID},
		{name: "user cannot delete rooms", role: user.RoleUser, method: http.MethodDelete, path: "/api/room/" + roomID},
	}
	for _, tc := range forbidden {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, tc.method, tc.path, map[string]any{}, s.token(tc.role))
			httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
		})
	}

	s.Run("admin creates bookings through create_bookings", func() {
		s.bookingCmds.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(builder.NewBookingBuilder().BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/booking", map[string]any{}, s.token(user.RoleAdmin))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("user may read catalogs", func() {
		s.roomQ.EXPECT().Statuses().Return([]queries.CatalogEntry{}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/room/status", nil, s.token(user.RoleUser))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("approve is left to the engine", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.bookingCmds.EXPECT().Approve(gomock.Any(), view.ID, gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/booking/"+view.ID.String()+"/approve", nil, s.token(user.RoleUser))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("user reaches delete through the own-bookings capability", func() {
		s.bookingQ.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(builder.NewBookingBuilder().BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/booking/"+bookingID, nil, s.token(user.RoleUser))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"room-booking/internal/domain/user"
	"room-booking/internal/handler/httperr"
	"room-booking/internal/pkg/cookie"
	"room-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ctxPrincipalKey = "principal"

var (
	errMissingToken     = errors.New("access token required")
	errMissingPrincipal = errors.New("principal missing from context")
	errInsufficientCaps = errors.New("insufficient capabilities")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth resolves the bearer token into a principal once per request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.BearerToken(c)
		if token == "" {
			httperr.Abort(c, http.StatusUnauthorized, errMissingToken, "Access token required")
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.Abort(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireCapability passes when the principal holds at least one of caps.
// It must run after RequireAuth.
func RequireCapability(caps ...user.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.Internal(c, errMissingPrincipal)
			return
		}
		if !principal.CanAny(caps...) {
			httperr.Abort(c, http.StatusForbidden, errInsufficientCaps, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p user.Principal) {
	c.Set(ctxPrincipalKey, p)
}

func GetPrincipal(c *gin.Context) (user.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return user.Principal{}, false
	}
	p, ok := v.(user.Principal)
	return p, ok
}

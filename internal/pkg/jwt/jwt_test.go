//go:build unit

package jwt

import (
	"testing"
	"time"

	"room-booking/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secret"

var issuedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func fixedService(ttl time.Duration, at time.Time) *Service {
	svc := NewService(secret, ttl)
	svc.now = func() time.Time { return at }
	return svc
}

func sign(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(subject, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
}

func TestService_ParsePrincipal(t *testing.T) {
	svc := NewService(secret, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, user.RoleManager)
	require.NoError(t, err)

	p, err := svc.ParsePrincipal(token)
	require.NoError(t, err)
	assert.Equal(t, userID, p.ID)
	assert.Equal(t, user.RoleManager, p.Role)
	assert.True(t, p.Can(user.CapApproveBookingRequest))
}

func TestService_Expiry(t *testing.T) {
	token, err := fixedService(time.Minute, issuedAt).GenerateToken(uuid.New(), user.RoleUser)
	require.NoError(t, err)

	t.Run("accepted within the leeway", func(t *testing.T) {
		_, err := fixedService(time.Minute, issuedAt.Add(time.Minute+leeway/2)).ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("expired past the leeway", func(t *testing.T) {
		_, err := fixedService(time.Minute, issuedAt.Add(2*time.Minute)).ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestService_Rejects(t *testing.T) {
	svc := fixedService(time.Hour, issuedAt)
	subject := uuid.NewString()

	noExpiry := validClaims(subject, "user")
	noExpiry.ExpiresAt = nil
	otherAudience := validClaims(subject, "user")
	otherAudience.Audience = jwt.ClaimStrings{"billing"}
	otherIssuer := validClaims(subject, "user")
	otherIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: func() string {
			other := fixedService(time.Hour, issuedAt)
			other.secretKey = []byte("other")
			tok, err := other.GenerateToken(uuid.New(), user.RoleUser)
			require.NoError(t, err)
			return tok
		}()},
		{name: "other signing method", token: sign(t, jwt.SigningMethodHS512, validClaims(subject, "user"))},
		{name: "missing expiry", token: sign(t, jwt.SigningMethodHS256, noExpiry)},
		{name: "other audience", token: sign(t, jwt.SigningMethodHS256, otherAudience)},
		{name: "other issuer", token: sign(t, jwt.SigningMethodHS256, otherIssuer)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClaims_Principal(t *testing.T) {
	svc := fixedService(time.Hour, issuedAt)

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.ParsePrincipal(sign(t, jwt.SigningMethodHS256, validClaims(uuid.NewString(), "guest")))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		_, err := svc.ParsePrincipal(sign(t, jwt.SigningMethodHS256, validClaims("alice", "user")))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("nil user id", func(t *testing.T) {
		_, err := svc.ParsePrincipal(sign(t, jwt.SigningMethodHS256, validClaims(uuid.Nil.String(), "admin")))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

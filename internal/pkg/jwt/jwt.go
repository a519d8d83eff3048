package jwt

import (
	"errors"
	"time"

	"room-booking/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	issuer   = "room-booking"
	audience = "room-booking-api"
	leeway   = 5 * time.Second
)

// Claims identify the caller by subject (the user id) and role. Capabilities
// are resolved from the role on every request, so a role change takes effect
// without reissuing tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal maps the claims onto the request principal. An unknown role or a
// subject that is not a user id makes the token unusable.
func (c *Claims) Principal() (user.Principal, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return user.Principal{}, ErrInvalidToken
	}
	role, err := user.NewRole(c.Role)
	if err != nil {
		return user.Principal{}, err
	}
	return user.NewPrincipal(id, role)
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(secretKey string, ttl time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *Service) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ValidateToken accepts only HS256 tokens of this service that carry an expiry.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParsePrincipal validates the token and resolves its principal.
func (s *Service) ParsePrincipal(tokenString string) (user.Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return user.Principal{}, err
	}
	return claims.Principal()
}

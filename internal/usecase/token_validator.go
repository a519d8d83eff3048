package usecase

import (
	"room-booking/internal/domain/user"
	"room-booking/internal/pkg/jwt"
)

// TokenValidator resolves a bearer token into the calling principal.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Principal, error) {
	return t.jwtService.ParsePrincipal(tokenString)
}

package services

import (
	"fmt"
	"time"

	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/utils"
)

type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a TokenSvc that issues HS256 JWTs.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvc {
	return &tokenService{
		secret: secret,
		expiry: expiry,
		issuer: issuer,
	}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

// GenerateToken issues a signed JWT with the user ID as subject.
// Implements portssvc.TokenSvc
func (s *tokenService) GenerateToken(userID string) (string, error) {
	token, err := utils.GenerateJWT(userID, s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

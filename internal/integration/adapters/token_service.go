// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	defaultTokenTTL = 15 * time.Minute

	tokenIssuer   = "expense-tracker"
	tokenAudience = "expense-tracker-api"

	// scopeTransactions grants access to the owner's transactions.
	scopeTransactions = "transactions"
)

// ownerClaims is the JWT payload. The owner id travels in the subject claim.
type ownerClaims struct {
	Email string `json:"email,omitempty"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// jwtTokenService implements adapter.TokenService with HS256 tokens.
type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) adapter.TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &jwtTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithAudience(tokenAudience),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *jwtTokenService) IssueOwnerToken(_ context.Context, ownerID uuid.UUID, email string) (string, error) {
	now := time.Now().UTC()
	claims := ownerClaims{
		Email: email,
		Scope: scopeTransactions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID.String(),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign owner token: %w", err)
	}
	return signed, nil
}

func (s *jwtTokenService) VerifyOwnerToken(_ context.Context, raw string) (*adapter.OwnerClaims, error) {
	var claims ownerClaims
	_, err := s.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, domainerror.ErrExpiredToken.Error(), err)
		}
		return nil, invalidToken(err)
	}

	if claims.Scope != scopeTransactions {
		return nil, invalidToken(fmt.Errorf("unexpected scope %q", claims.Scope))
	}

	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, invalidToken(fmt.Errorf("subject is not an owner id: %w", err))
	}

	return &adapter.OwnerClaims{
		OwnerID:   ownerID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func invalidToken(err error) error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, domainerror.ErrInvalidToken.Error(), err)
}

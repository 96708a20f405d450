package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	ownerID := uuid.New()

	token, err := svc.IssueOwnerToken(context.Background(), ownerID, "owner@example.com")
	require.NoError(t, err)

	claims, err := svc.VerifyOwnerToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	ownerID := uuid.New()

	sign := func(method jwt.SigningMethod, secret string, claims ownerClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}
	claims := func(mutate func(*ownerClaims)) ownerClaims {
		now := time.Now()
		c := ownerClaims{
			Scope: scopeTransactions,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   ownerID.String(),
				Issuer:    tokenIssuer,
				Audience:  jwt.ClaimStrings{tokenAudience},
				IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		if mutate != nil {
			mutate(&c)
		}
		return c
	}

	tests := []struct {
		name     string
		token    string
		wantCode domainerror.AuthErrorCode
	}{
		{"garbage", "not-a-jwt", domainerror.ErrCodeInvalidToken},
		{"wrong secret", sign(jwt.SigningMethodHS256, "other-secret", claims(nil)), domainerror.ErrCodeInvalidToken},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, "test-secret", claims(nil)), domainerror.ErrCodeInvalidToken},
		{"expired", sign(jwt.SigningMethodHS256, "test-secret", claims(func(c *ownerClaims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		})), domainerror.ErrCodeExpiredToken},
		{"no expiry", sign(jwt.SigningMethodHS256, "test-secret", claims(func(c *ownerClaims) {
			c.ExpiresAt = nil
		})), domainerror.ErrCodeInvalidToken},
		{"other audience", sign(jwt.SigningMethodHS256, "test-secret", claims(func(c *ownerClaims) {
			c.Audience = jwt.ClaimStrings{"someone-else"}
		})), domainerror.ErrCodeInvalidToken},
		{"other scope", sign(jwt.SigningMethodHS256, "test-secret", claims(func(c *ownerClaims) {
			c.Scope = "admin"
		})), domainerror.ErrCodeInvalidToken},
		{"subject not a uuid", sign(jwt.SigningMethodHS256, "test-secret", claims(func(c *ownerClaims) {
			c.Subject = "owner@example.com"
		})), domainerror.ErrCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyOwnerToken(context.Background(), tt.token)
			require.Error(t, err)

			var authErr *domainerror.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

type contextKey string

const (
	ownerIDKey    contextKey = "owner_id"
	ownerEmailKey contextKey = "owner_email"
)

var unauthorizedMessages = map[domainerror.AuthErrorCode]string{
	domainerror.ErrCodeMissingToken: "Authorization header is required",
	domainerror.ErrCodeInvalidToken: "Invalid access token",
	domainerror.ErrCodeExpiredToken: "Access token has expired",
}

// AuthMiddleware resolves the owner of a request from its bearer token.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate rejects requests without a valid owner token with 401.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code := bearerToken(c.GetHeader("Authorization"))
		if code != "" {
			abortUnauthorized(c, code)
			return
		}

		claims, err := m.tokenService.VerifyOwnerToken(c.Request.Context(), token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			var authErr *domainerror.AuthError
			if errors.As(err, &authErr) {
				code = authErr.Code
			}
			abortUnauthorized(c, code)
			return
		}

		SetOwner(c, claims.OwnerID, claims.Email)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, domainerror.AuthErrorCode) {
	if header == "" {
		return "", domainerror.ErrCodeMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domainerror.ErrCodeInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domainerror.ErrCodeMissingToken
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: unauthorizedMessages[code],
		Code:  string(code),
	})
}

// SetOwner stores the authenticated owner on the request context.
func SetOwner(c *gin.Context, ownerID uuid.UUID, email string) {
	c.Set(string(ownerIDKey), ownerID)
	c.Set(string(ownerEmailKey), email)
}

// OwnerIDFromContext returns the owner stored by Authenticate.
func OwnerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(string(ownerIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// OwnerEmailFromContext returns the token email, or "" when the token carried none.
func OwnerEmailFromContext(c *gin.Context) string {
	return c.GetString(string(ownerEmailKey))
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OwnerClaims identifies the owner an access token was issued to.
type OwnerClaims struct {
	OwnerID   uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies owner access tokens.
type TokenService interface {
	// IssueOwnerToken signs an access token for the given owner.
	IssueOwnerToken(ctx context.Context, ownerID uuid.UUID, email string) (string, error)

	// VerifyOwnerToken checks signature, issuer, audience and expiry.
	// Failures are returned as *domainerror.AuthError.
	VerifyOwnerToken(ctx context.Context, token string) (*OwnerClaims, error)
}

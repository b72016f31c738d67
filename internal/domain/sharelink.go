package domain

import (
	"context"
	"time"
)

// ShareLinkTTL is how long a share token stays resolvable. Expiry is
// enforced by the storage layer (Redis key TTL), not by application logic.
const ShareLinkTTL = 24 * time.Hour

// ShareLinkRepository maps opaque share tokens to the owning user.
type ShareLinkRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// ResolveUser returns the owning user id, or ErrNotFound for an
	// unknown or expired token.
	ResolveUser(ctx context.Context, token string) (string, error)
}

// SharedProfile is the read-only view exposed to anonymous visitors.
type SharedProfile struct {
	User         *User         `json:"user"`
	Applications []Application `json:"applications"`
}

type ShareLinkUsecase interface {
	Create(ctx context.Context, userID string) (token string, err error)
	Resolve(ctx context.Context, token string) (*SharedProfile, error)
}

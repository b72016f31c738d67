package redisstore

import (
	"context"
	"errors"
	"time"

	"go-jobtrack-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const shareLinkKeyPrefix = "sharelink:"

type shareLinkRepo struct {
	client *redis.Client
}

// NewShareLinkRepository creates a share link repository backed by Redis.
// Expiry is handled entirely by the key TTL: a token stops resolving the
// moment Redis drops the key, with no application-side cleanup.
func NewShareLinkRepository(client *redis.Client) domain.ShareLinkRepository {
	return &shareLinkRepo{client: client}
}

// errUnavailable covers deployments without a configured Redis; share
// links simply cannot be created or resolved there.
var errUnavailable = errors.New("share links unavailable: redis not configured")

func (r *shareLinkRepo) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if r.client == nil {
		return errUnavailable
	}
	return r.client.Set(ctx, shareLinkKeyPrefix+token, userID, ttl).Err()
}

func (r *shareLinkRepo) ResolveUser(ctx context.Context, token string) (string, error) {
	if r.client == nil {
		return "", errUnavailable
	}
	userID, err := r.client.Get(ctx, shareLinkKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

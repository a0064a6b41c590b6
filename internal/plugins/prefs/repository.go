package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rondelui/rondel/internal/apperror"
)

// keyPrefix namespaces preference keys so Rondel can share a Redis
// instance with other services.
const keyPrefix = "rondel:prefs:"

// prefsTTL is how long an untouched preference set survives. Every write
// refreshes it, so only abandoned clients expire.
const prefsTTL = 180 * 24 * time.Hour

// themeField is the hash field holding the theme ID.
const themeField = "theme"

// PrefsRepository defines the storage contract for client preferences.
type PrefsRepository interface {
	// Get returns the stored preferences for a client. A client with no
	// stored preferences gets the zero value, not an error.
	Get(ctx context.Context, clientID string) (*Preferences, error)

	// Set stores the preferences for a client and refreshes the TTL.
	Set(ctx context.Context, clientID string, p *Preferences) error

	// Delete removes a client's preferences.
	Delete(ctx context.Context, clientID string) error
}

// prefsRepository implements PrefsRepository using a Redis hash per client.
type prefsRepository struct {
	rdb *redis.Client
}

// NewPrefsRepository creates a new preferences repository backed by Redis.
func NewPrefsRepository(rdb *redis.Client) PrefsRepository {
	return &prefsRepository{rdb: rdb}
}

func prefsKey(clientID string) string {
	return keyPrefix + clientID
}

// Get reads the client's preference hash. Missing keys map to the zero
// value so first-time clients take the defaults without a special case.
func (r *prefsRepository) Get(ctx context.Context, clientID string) (*Preferences, error) {
	theme, err := r.rdb.HGet(ctx, prefsKey(clientID), themeField).Result()
	if errors.Is(err, redis.Nil) {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading preferences for %s: %w", clientID, err))
	}
	return &Preferences{Theme: theme}, nil
}

// Set writes the preference hash and refreshes the TTL in one pipeline.
func (r *prefsRepository) Set(ctx context.Context, clientID string, p *Preferences) error {
	key := prefsKey(clientID)

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, themeField, p.Theme)
	pipe.Expire(ctx, key, prefsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewInternal(fmt.Errorf("writing preferences for %s: %w", clientID, err))
	}
	return nil
}

// Delete removes the client's preference hash.
func (r *prefsRepository) Delete(ctx context.Context, clientID string) error {
	if err := r.rdb.Del(ctx, prefsKey(clientID)).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting preferences for %s: %w", clientID, err))
	}
	return nil
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"urbanmind-be/models"
)

// ErrNotFound is returned when no session record exists for a user.
var ErrNotFound = errors.New("session not found")

// Session is the server-side login record: the bearer token issued at
// login plus a serialized copy of the user's public profile. Saved on
// login, refreshed on profile update, cleared on logout.
type Session struct {
	Token   string               `json:"token"`
	Profile models.PublicProfile `json:"profile"`
	SavedAt time.Time            `json:"savedAt"`
}

// Store persists session records keyed by user id.
type Store interface {
	Save(ctx context.Context, userID string, s Session) error
	Get(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}

// RedisStore keeps sessions in Redis with a TTL matching the token's.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID string) string {
	return "session:" + userID
}

func (r *RedisStore) Save(ctx context.Context, userID string, s Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(userID), payload, r.ttl).Err()
}

// Get hydrates a session record. A missing key returns ErrNotFound; a
// corrupt payload is treated the same way so callers fall back to the
// database instead of failing the request.
func (r *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	payload, err := r.client.Get(ctx, key(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return Decode(payload)
}

func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, key(userID)).Err()
}

// Decode parses a stored session payload. Corrupt or empty payloads map
// to ErrNotFound rather than surfacing a decode error.
func Decode(payload []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, ErrNotFound
	}
	if s.Token == "" {
		return nil, ErrNotFound
	}
	return &s, nil
}

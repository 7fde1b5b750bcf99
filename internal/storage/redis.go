package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.SessionStore = (*RedisStore)(nil)
	_ domain.CommandLog   = (*RedisCommandLog)(nil)
)

// RedisStore persists cooking sessions in Redis as JSON values with a
// TTL, plus a per-user pointer key to the active session so lookups
// don't scan.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string, ttl time.Duration, log *logger.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage: connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl, log: log}, nil
}

func sessionKey(id string) string     { return "session:" + id }
func activeKey(userID string) string  { return "active:" + userID }
func commandKey(userID string) string { return "voicelog:" + userID }

// Save writes the session and keeps the user's active-session pointer
// in sync with its IsActive flag.
func (s *RedisStore) Save(ctx context.Context, session *domain.CookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("storage: marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storage: save session: %w", err)
	}

	if session.IsActive {
		err = s.client.Set(ctx, activeKey(session.UserID), session.ID, s.ttl).Err()
	} else {
		err = s.client.Del(ctx, activeKey(session.UserID)).Err()
	}
	if err != nil {
		return fmt.Errorf("storage: update active pointer: %w", err)
	}

	s.log.Debug("saved session %s to redis (active=%v)", session.ID, session.IsActive)
	return nil
}

// ActiveForUser follows the active-session pointer. A dangling pointer
// (session expired before the pointer) counts as not found.
func (s *RedisStore) ActiveForUser(ctx context.Context, userID string) (*domain.CookingSession, error) {
	id, err := s.client.Get(ctx, activeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load active pointer: %w", err)
	}

	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load session: %w", err)
	}

	var session domain.CookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("storage: parse session: %w", err)
	}
	return &session, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// RedisCommandLog appends voice command records to a per-user Redis
// list. Write-only; nothing in the service reads it back.
type RedisCommandLog struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCommandLog creates a command log sharing the store's client.
func NewRedisCommandLog(store *RedisStore) *RedisCommandLog {
	return &RedisCommandLog{client: store.client, ttl: store.ttl}
}

// Record appends one audit entry and refreshes the list's TTL.
func (l *RedisCommandLog) Record(ctx context.Context, rec *domain.VoiceCommandRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: marshal command record: %w", err)
	}
	key := commandKey(rec.UserID)
	if err := l.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("storage: append command record: %w", err)
	}
	// Best effort: a failed TTL refresh only means the list outlives
	// the session horizon, never lost records.
	if l.ttl > 0 {
		l.client.Expire(ctx, key, l.ttl)
	}
	return nil
}

// Package store persists quotation form sessions in Redis.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"quotation_backend/internal/quotation/domain"
	"quotation_backend/platform/apperr"
)

const sessionKeyPrefix = "quotation:session:"

// Store is the persistence boundary for form sessions.
type Store interface {
	Create(ctx context.Context) (domain.FormSession, error)
	Get(ctx context.Context, id uuid.UUID) (domain.FormSession, error)
	Save(ctx context.Context, session domain.FormSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisStore keeps sessions as JSON values with a sliding TTL: every save
// refreshes the expiry, so a session lives for the TTL after its last touch.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a session store on the given Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

// Create initializes and persists a fresh session.
func (s *RedisStore) Create(ctx context.Context) (domain.FormSession, error) {
	session := domain.NewFormSession()
	if err := s.Save(ctx, session); err != nil {
		return domain.FormSession{}, err
	}
	return session, nil
}

// Get loads a session by ID. Expired or unknown sessions return a Gone error
// so the client knows to start over.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (domain.FormSession, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.FormSession{}, apperr.Gone("form session expired or not found")
		}
		return domain.FormSession{}, fmt.Errorf("get form session: %w", err)
	}

	var session domain.FormSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.FormSession{}, fmt.Errorf("decode form session: %w", err)
	}
	if session.FormErrors == nil {
		session.FormErrors = map[string]string{}
	}

	return session, nil
}

// Save persists the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, session domain.FormSession) error {
	session.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode form session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save form session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete form session: %w", err)
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

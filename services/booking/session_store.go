package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"patitas/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "bookingSession:"

// sessionTTL bounds how long an abandoned selection survives.
const sessionTTL = 10 * time.Minute

// RedisSessionStore keeps booking sessions as JSON blobs with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

// NewRedisSessionStore creates a SessionStore backed by the given client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

// Save writes the session, resetting its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, session models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+session.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

// Get retrieves a session, nil when absent or expired.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	return &session, nil
}

// Delete removes a session.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionPrefix+sessionID).Err()
}

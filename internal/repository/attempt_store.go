package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"eyecare-service/internal/models"
)

// ErrAttemptNotFound is returned when a quiz token is unknown or expired.
var ErrAttemptNotFound = errors.New("quiz attempt not found")

// AttemptStore keeps in-progress quiz attempts in Redis under a TTL, so an
// abandoned quiz disappears on its own. Finished attempts are deleted
// explicitly to make tokens single-use.
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

func (s *AttemptStore) key(token string) string {
	return "vision:attempt:" + token
}

// Save writes the attempt and refreshes its TTL.
func (s *AttemptStore) Save(ctx context.Context, attempt *models.QuizAttempt) error {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(attempt.Token), payload, s.ttl).Err()
}

func (s *AttemptStore) Get(ctx context.Context, token string) (*models.QuizAttempt, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	var attempt models.QuizAttempt
	if err := json.Unmarshal(payload, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Delete removes a finished attempt so its token cannot be scored twice.
func (s *AttemptStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bakbukBack/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps refresh-token sessions in Redis. Expiry is enforced
// by the key TTL, so stale sessions disappear without a cleaner.
type SessionRepository struct {
	RDB *redis.Client
}

func (r *SessionRepository) SaveSession(ctx context.Context, s models.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, sessionKeyPrefix+s.RefreshToken, data, ttl).Err()
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	data, err := r.RDB.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	var s models.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	return r.RDB.Del(ctx, sessionKeyPrefix+token).Err()
}

package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
)

const (
	wizardPrefix = "booking:wizard:"
	submitSuffix = ":submitting"
)

// RedisStore keeps wizard snapshots as JSON with a TTL, so abandoned
// sessions expire on their own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, id string, snap booking.Snapshot, ttl time.Duration) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, wizardPrefix+id, b, ttl).Err()
}

// SaveIfExists uses SET XX so a session deleted by a finished submit is
// not recreated.
func (s *RedisStore) SaveIfExists(ctx context.Context, id string, snap booking.Snapshot, ttl time.Duration) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	ok, err := s.client.SetXX(ctx, wizardPrefix+id, b, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return booking.ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (booking.Snapshot, error) {
	data, err := s.client.Get(ctx, wizardPrefix+id).Bytes()
	if err == redis.Nil {
		return booking.Snapshot{}, booking.ErrSessionNotFound
	}
	if err != nil {
		return booking.Snapshot{}, err
	}

	var snap booking.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return booking.Snapshot{}, err
	}
	return snap, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, wizardPrefix+id).Err()
}

func (s *RedisStore) Lock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, wizardPrefix+id+submitSuffix, 1, ttl).Result()
}

func (s *RedisStore) Unlock(ctx context.Context, id string) error {
	return s.client.Del(ctx, wizardPrefix+id+submitSuffix).Err()
}

var _ booking.SessionStore = (*RedisStore)(nil)

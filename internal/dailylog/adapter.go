package dailylog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
)

// Adapter persists day-bucketed stores and small auxiliary scalars (e.g. a
// calorie goal) in a string-keyed storage medium. Keys are always the
// explicit (userID, logical store name) pair; callers never concatenate
// their own namespacing.
//
// Reads fail open: a missing key or malformed stored value yields the empty
// store / empty scalar and a nil error.
type Adapter interface {
	SaveStore(ctx context.Context, userID int, name string, store Store) error
	ReadStore(ctx context.Context, userID int, name string) (Store, error)
	SaveScalar(ctx context.Context, userID int, name string, value string) error
	ReadScalar(ctx context.Context, userID int, name string) (string, error)
}

const (
	storeKeyPrefix  = "fitlife-log||"
	scalarKeyPrefix = "fitlife-val||"
)

func storeKey(userID int, name string) string {
	return fmt.Sprintf("%s%s||%d", storeKeyPrefix, name, userID)
}

func scalarKey(userID int, name string) string {
	return fmt.Sprintf("%s%s||%d", scalarKeyPrefix, name, userID)
}

// RedisAdapter keeps each user's store as a single JSON value in redis.
type RedisAdapter struct {
	redisClient *redis.Client
}

func NewRedisAdapter(redisClient *redis.Client) *RedisAdapter {
	return &RedisAdapter{
		redisClient: redisClient,
	}
}

func (a *RedisAdapter) SaveStore(ctx context.Context, userID int, name string, store Store) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dailylog.adapter.saveStore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	storeJson, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if err := a.redisClient.Set(ctx, storeKey(userID, name), storeJson, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (a *RedisAdapter) ReadStore(ctx context.Context, userID int, name string) (_ Store, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dailylog.adapter.readStore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	storeJson, err := a.redisClient.Get(ctx, storeKey(userID, name)).Result()
	if err == redis.Nil {
		return NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var store Store
	if err := json.Unmarshal([]byte(storeJson), &store); err != nil {
		// stored garbage is not fatal, user starts over with an empty log
		log.Warnf("malformed %s store for user %d, falling back to empty: %s", name, userID, err)
		return NewStore(), nil
	}
	if store == nil {
		store = NewStore()
	}
	return store, nil
}

func (a *RedisAdapter) SaveScalar(ctx context.Context, userID int, name string, value string) error {
	if err := a.redisClient.Set(ctx, scalarKey(userID, name), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (a *RedisAdapter) ReadScalar(ctx context.Context, userID int, name string) (string, error) {
	value, err := a.redisClient.Get(ctx, scalarKey(userID, name)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Package idempotency guards side effects with a Redis-backed key state so a
// retried request does not repeat work that already completed.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInProgress = errors.New("idempotency: operation already in progress")
	ErrCompleted  = errors.New("idempotency: operation already completed")
	ErrEmptyKey   = errors.New("idempotency: key is empty")
)

type State string

const (
	StateNone       State = ""
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Idempotency runs fn at most once per key until the completed state expires.
type Idempotency interface {
	Do(ctx context.Context, key string, fn func(context.Context) error) error
}

type Config struct {
	// Prefix namespaces keys in Redis.
	Prefix string
	// LockDuration bounds how long an in-progress key blocks retries.
	LockDuration time.Duration
	// TTL is how long a completed key is remembered.
	TTL time.Duration
}

const (
	defaultPrefix       = "idempotency:"
	defaultLockDuration = 30 * time.Second
	defaultTTL          = 24 * time.Hour
)

type Redis struct {
	client *redis.Client
	cfg    Config
}

func New(client *redis.Client, cfg Config) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = defaultLockDuration
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Redis{client: client, cfg: cfg}
}

// State reports the current state of key.
func (r *Redis) State(ctx context.Context, key string) (State, error) {
	v, err := r.client.Get(ctx, r.cfg.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return StateNone, nil
	}
	if err != nil {
		return StateNone, err
	}
	return State(v), nil
}

// Do claims key and runs fn. A failed fn releases the key so the caller may
// retry; a successful one marks it completed for TTL.
func (r *Redis) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	if key == "" {
		return ErrEmptyKey
	}
	fk := r.cfg.Prefix + key

	claimed, err := r.client.SetNX(ctx, fk, string(StateInProgress), r.cfg.LockDuration).Result()
	if err != nil {
		return err
	}
	if !claimed {
		state, err := r.State(ctx, key)
		if err != nil {
			return err
		}
		if state == StateCompleted {
			return ErrCompleted
		}
		return ErrInProgress
	}

	if err := fn(ctx); err != nil {
		if delErr := r.client.Del(context.WithoutCancel(ctx), fk).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return r.client.Set(context.WithoutCancel(ctx), fk, string(StateCompleted), r.cfg.TTL).Err()
}

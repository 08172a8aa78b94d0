package redis

import (
	"errors"
	"time"

	"github.com/tokenmart/goapi/base/ctx"
)

// Forever is the expire value for keys without an associated ttl
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: not found")

	// ErrGapTime is returned when no pool can serve the command
	ErrGapTime = errors.New("redis: in gap time")

	// ErrExpireNotExistOrTimeout is returned by Expire when the key does
	// not exist or the timeout could not be set
	ErrExpireNotExistOrTimeout = errors.New("redis: key not exist or timeout not set")
)

// MVal is one element of a multi-key reply. Valid is false when the
// key was missing.
type MVal struct {
	Valid bool
	Value []byte
}

type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	MGet(c ctx.Ctx, keys []string) ([]MVal, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	SetNX(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	Incrby(c ctx.Ctx, key string, val int) (int64, error)
	// TTL returns the remaining time to live of a key in seconds
	TTL(c ctx.Ctx, key string) (int, error)
	Expire(c ctx.Ctx, key string, ttl time.Duration) error
}

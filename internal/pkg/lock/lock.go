package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v8"

	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
)

var (
	// ErrEmptyKey is returned when an empty lock key is provided
	ErrEmptyKey = errors.New("lock key cannot be empty")
	// ErrNilFn is returned when WithLock is called without a function
	ErrNilFn = errors.New("lock function is nil")
	// ErrNotAcquired is returned when the lock could not be taken within the configured tries
	ErrNotAcquired = errors.New("lock could not be acquired")
)

// Options configures how a lock is taken
type Options struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// DefaultOptions mirrors the 30 second expiry used for staged groups
func DefaultOptions() Options {
	return Options{
		Expiry:     30 * time.Second,
		Tries:      64,
		RetryDelay: 250 * time.Millisecond,
	}
}

// Manager hands out named locks backed by Redis (RedLock with a single node)
type Manager struct {
	redsync *redsync.Redsync
	prefix  string
	opts    Options
	logger  *logger.ZapLogger
}

// NewManager creates a lock manager over an existing Redis client
func NewManager(client *redis.Client, cfg models.LockConfig, l *logger.ZapLogger) *Manager {
	if l == nil {
		l = logger.NewNopLogger()
	}
	opts := DefaultOptions()
	if cfg.Expiry > 0 {
		opts.Expiry = cfg.Expiry
	}
	if cfg.Tries > 0 {
		opts.Tries = cfg.Tries
	}
	if cfg.RetryDelay > 0 {
		opts.RetryDelay = cfg.RetryDelay
	}

	return &Manager{
		redsync: redsync.New(goredis.NewPool(client)),
		prefix:  cfg.Prefix,
		opts:    opts,
		logger:  l,
	}
}

// WithLock runs fn while holding the lock named key. The lock is released
// when fn returns, and expires on its own if the process dies first.
// Errors returned by fn are passed through unchanged.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if fn == nil {
		return ErrNilFn
	}
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	name := m.prefix + key
	mutex := m.redsync.NewMutex(name,
		redsync.WithExpiry(m.opts.Expiry),
		redsync.WithTries(m.opts.Tries),
		redsync.WithRetryDelay(m.opts.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		m.logger.Warn("Failed to acquire lock",
			logger.String("lock_key", name),
			logger.Err(err))
		return fmt.Errorf("%w: %s: %v", ErrNotAcquired, name, err)
	}
	m.logger.Debug("Lock acquired", logger.String("lock_key", name))

	defer func() {
		// release even when the caller's context is already done
		if ok, err := mutex.UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
			m.logger.Error("Failed to release lock",
				logger.String("lock_key", name),
				logger.Bool("unlock_ok", ok),
				logger.Err(err))
		}
	}()

	return fn(ctx)
}

package gateway

import (
	"context"
	"errors"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/lock"
	"github.com/piresc/finstorage/services/transactions"
)

// Locker is implemented by lock.Manager
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// LockGW takes the named lock guarding a staged transaction group
type LockGW struct {
	locker Locker
}

var _ transactions.LockGW = (*LockGW)(nil)

// NewLockGW creates a new lock gateway
func NewLockGW(locker Locker) *LockGW {
	return &LockGW{locker: locker}
}

// WithLock runs fn under the lock named key. Failing to get the lock is an
// internal error, errors from fn are returned as they are.
func (g *LockGW) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	err := g.locker.WithLock(ctx, key, fn)
	if errors.Is(err, lock.ErrNotAcquired) {
		return apperror.Internal("could not acquire lock "+key, err)
	}
	return err
}

package transactions

import (
	"context"

	"github.com/piresc/finstorage/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateways.go -package=mocks github.com/piresc/finstorage/services/transactions LockGW,EventGW

// LockGW serializes work on a named resource across processes
type LockGW interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EventGW announces commits to other modules
type EventGW interface {
	PublishCommitted(ctx context.Context, event *models.TransactionsCommittedEvent) error
}

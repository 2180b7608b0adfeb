package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/finstorage/internal/pkg/circuitbreaker"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	nrpkg "github.com/piresc/finstorage/internal/pkg/newrelic"
	"github.com/piresc/finstorage/internal/pkg/retry"
	"github.com/piresc/finstorage/services/transactions"
)

// Publisher is implemented by the NATS JetStream client and the NSQ producer
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, msgID string) error
}

// EventGW publishes commit events through a broker, retrying transient
// failures and backing off entirely while the breaker is open
type EventGW struct {
	publisher Publisher
	broker    string
	subject   string
	breaker   *circuitbreaker.CircuitBreaker
	retrier   *retry.Retrier
}

var _ transactions.EventGW = (*EventGW)(nil)

// NewEventGW creates a new event gateway
func NewEventGW(publisher Publisher, broker, subject string, breaker *circuitbreaker.CircuitBreaker, retrier *retry.Retrier) *EventGW {
	return &EventGW{
		publisher: publisher,
		broker:    broker,
		subject:   subject,
		breaker:   breaker,
		retrier:   retrier,
	}
}

// PublishCommitted publishes a transactions committed event
func (g *EventGW) PublishCommitted(ctx context.Context, event *models.TransactionsCommittedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal commit event: %w", err)
	}
	msgID := messageID(event)

	seg := nrpkg.StartMessageSegment(ctx, g.broker, g.subject)
	defer seg.End()

	publish := func(ctx context.Context) error {
		return g.publisher.Publish(ctx, g.subject, data, msgID)
	}
	if g.retrier != nil {
		once := publish
		publish = func(ctx context.Context) error { return g.retrier.Execute(ctx, once) }
	}
	if g.breaker != nil {
		err = g.breaker.Execute(ctx, publish)
	} else {
		err = publish(ctx)
	}

	if err != nil {
		logger.ErrorCtx(ctx, "Failed to publish transactions committed event",
			logger.String("broker", g.broker),
			logger.String("subject", g.subject),
			logger.String("msg_id", msgID),
			logger.Err(err))
		return fmt.Errorf("failed to publish transactions committed event: %w", err)
	}

	logger.InfoCtx(ctx, "Published transactions committed event",
		logger.String("subject", g.subject),
		logger.String("msg_id", msgID),
		logger.Int("created", len(event.Created)),
		logger.Int("updated", len(event.Updated)),
		logger.Int("deleted", len(event.Deleted)))
	return nil
}

// messageID is stable for one commit so a retried publish is deduplicated
func messageID(event *models.TransactionsCommittedEvent) string {
	return fmt.Sprintf("%s-%s-%s-%d", event.Tenant, event.Protocol, event.GroupID, event.CommittedAt.UnixNano())
}

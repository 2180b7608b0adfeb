package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/piresc/finstorage/internal/pkg/circuitbreaker"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishCall struct {
	subject string
	data    []byte
	msgID   string
}

type fakePublisher struct {
	calls []publishCall
	errs  []error
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, data []byte, msgID string) error {
	p.calls = append(p.calls, publishCall{subject: subject, data: data, msgID: msgID})
	if len(p.errs) == 0 {
		return nil
	}
	err := p.errs[0]
	p.errs = p.errs[1:]
	return err
}

func testEvent() *models.TransactionsCommittedEvent {
	return &models.TransactionsCommittedEvent{
		Tenant:      "diku",
		Protocol:    "staged",
		GroupID:     "order-1",
		Created:     []string{"enc-1", "enc-2"},
		BudgetIDs:   []string{"budget-1"},
		CommittedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func fastRetrier(maxRetries int) *retry.Retrier {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = maxRetries
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	cfg.Jitter = false
	return retry.New(cfg, nil)
}

func TestEventGW_PublishCommitted(t *testing.T) {
	// Arrange
	pub := &fakePublisher{}
	gw := NewEventGW(pub, "nats", "finance.transactions.committed", nil, nil)
	event := testEvent()

	// Act
	err := gw.PublishCommitted(context.Background(), event)

	// Assert
	require.NoError(t, err)
	require.Len(t, pub.calls, 1)
	assert.Equal(t, "finance.transactions.committed", pub.calls[0].subject)
	assert.Equal(t, messageID(event), pub.calls[0].msgID)

	var decoded models.TransactionsCommittedEvent
	require.NoError(t, json.Unmarshal(pub.calls[0].data, &decoded))
	assert.Equal(t, "order-1", decoded.GroupID)
	assert.Equal(t, []string{"enc-1", "enc-2"}, decoded.Created)
}

func TestEventGW_RetriesWithSameMessageID(t *testing.T) {
	pub := &fakePublisher{errs: []error{errors.New("timeout"), errors.New("timeout")}}
	gw := NewEventGW(pub, "nats", "subject", circuitbreaker.New(circuitbreaker.DefaultConfig("events"), nil), fastRetrier(3))

	err := gw.PublishCommitted(context.Background(), testEvent())

	require.NoError(t, err)
	require.Len(t, pub.calls, 3)
	assert.Equal(t, pub.calls[0].msgID, pub.calls[2].msgID)
}

func TestEventGW_FailsWhenBreakerOpen(t *testing.T) {
	// Arrange
	boom := errors.New("broker down")
	pub := &fakePublisher{errs: []error{boom, boom}}
	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:         "events",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}, nil)
	gw := NewEventGW(pub, "nats", "subject", breaker, nil)

	// Act
	err1 := gw.PublishCommitted(context.Background(), testEvent())
	err2 := gw.PublishCommitted(context.Background(), testEvent())
	err3 := gw.PublishCommitted(context.Background(), testEvent())

	// Assert
	assert.ErrorIs(t, err1, boom)
	assert.ErrorIs(t, err2, boom)
	assert.ErrorIs(t, err3, circuitbreaker.ErrOpen)
	assert.Len(t, pub.calls, 2)
}

func TestMessageID_StablePerCommit(t *testing.T) {
	a := testEvent()
	b := testEvent()
	assert.Equal(t, messageID(a), messageID(b))

	b.CommittedAt = b.CommittedAt.Add(time.Second)
	assert.NotEqual(t, messageID(a), messageID(b))
}

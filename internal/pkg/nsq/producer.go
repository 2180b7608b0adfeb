package nsq

import (
	"context"
	"fmt"

	"github.com/nsqio/go-nsq"

	"github.com/piresc/finstorage/internal/pkg/logger"
)

// Producer handles publishing messages to NSQ topics
type Producer struct {
	producer *nsq.Producer
}

// NewProducer creates a new NSQ producer
func NewProducer(address string) (*Producer, error) {
	config := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelWarning)

	// Ping the NSQ daemon to ensure connectivity
	if err = producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{producer: producer}, nil
}

// Publish sends data to the specified topic. NSQ has no server side
// deduplication, so msgID is only logged for correlation.
func (p *Producer) Publish(ctx context.Context, topic string, data []byte, msgID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.producer.Publish(topic, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.DebugCtx(ctx, "Published message to NSQ",
		logger.String("topic", topic),
		logger.String("msg_id", msgID))
	return nil
}

// Ping checks the connection to nsqd, used by readiness probes
func (p *Producer) Ping(ctx context.Context) error {
	return p.producer.Ping()
}

// Stop gracefully stops the producer
func (p *Producer) Stop() {
	p.producer.Stop()
}

// Close stops the producer, matching the other broker clients
func (p *Producer) Close() {
	p.Stop()
}

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_TripsAfterFailureRatio(t *testing.T) {
	// Arrange
	cb := New(Config{
		Name:         "events",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}, nil)
	boom := errors.New("broker down")
	failing := func(ctx context.Context) error { return boom }

	// Act
	err1 := cb.Execute(context.Background(), failing)
	err2 := cb.Execute(context.Background(), failing)
	called := false
	err3 := cb.Execute(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	// Assert
	assert.ErrorIs(t, err1, boom)
	assert.ErrorIs(t, err2, boom)
	require.Error(t, err3)
	assert.ErrorIs(t, err3, ErrOpen)
	assert.False(t, called)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_PassesThroughWhenClosed(t *testing.T) {
	cb := New(DefaultConfig("events"), nil)

	err := cb.Execute(context.Background(), func(ctx context.Context) error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestFromConfig(t *testing.T) {
	c := FromConfig("events", models.BreakerConfig{MaxRequests: 3, FailureRatio: 0.8})

	assert.Equal(t, "events", c.Name)
	assert.Equal(t, uint32(3), c.MaxRequests)
	assert.Equal(t, 0.8, c.FailureRatio)
	assert.Equal(t, uint32(5), c.MinRequests)
}

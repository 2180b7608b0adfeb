package nsq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer("127.0.0.1:1")

	assert.Error(t, err)
	assert.Nil(t, producer)
	assert.Contains(t, err.Error(), "failed to ping NSQ daemon")
}

func TestNewProducer_InvalidAddress(t *testing.T) {
	producer, err := NewProducer("")

	assert.Error(t, err)
	assert.Nil(t, producer)
}

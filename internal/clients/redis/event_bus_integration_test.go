package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	bus, err := NewEventBus(logger.NewNop(), addr, "profiling.test."+t.Name())
	require.NoError(t, err)
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []byte, 1)
	require.NoError(t, bus.Subscribe(ctx, func(p []byte) { got <- p }))
	require.NoError(t, bus.Publish(ctx, map[string]string{"type": "ping"}))

	select {
	case raw := <-got:
		var m map[string]string
		require.NoError(t, json.Unmarshal(raw, &m))
		assert.Equal(t, "ping", m["type"])
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestNewEventBus_RequiresAddr(t *testing.T) {
	_, err := NewEventBus(logger.NewNop(), " ", "")
	assert.Error(t, err)
	_, err = NewEventBus(nil, "localhost:6379", "")
	assert.Error(t, err)
}

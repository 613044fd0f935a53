package eventbus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(ExecuteEvent{Source: "fd 10"}))
	require.NoError(t, eb.SendToUI(StateUpdateEvent{Version: 3}))

	assert.Equal(t, ExecuteEvent{Source: "fd 10"}, <-eb.UIToCore())
	update, ok := (<-eb.CoreToUI()).(StateUpdateEvent)
	require.True(t, ok)
	assert.Equal(t, 3, update.Version)
}

func TestFullChannelTripsBreaker(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	require.NoError(t, eb.SendToCore(ExecuteEvent{}))
	for i := 0; i < 5; i++ {
		err := eb.SendToCore(ExecuteEvent{})
		assert.True(t, errors.Is(err, ErrChannelFull))
	}
	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())

	err := eb.SendToCore(ExecuteEvent{})
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Len(t, reported, 6)
	assert.Equal(t, "SendToCore", reported[0].Operation)
}

func TestCircuitBreakerHalfOpens(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(1, time.Second)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Second)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()
	assert.ErrorIs(t, eb.SendToCore(ExecuteEvent{}), ErrClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrClosed)
}

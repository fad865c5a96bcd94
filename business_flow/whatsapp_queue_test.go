package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchSessionWalksQueueInOrder(t *testing.T) {
	session := &DispatchSession{State: QueueIdle}
	numbers := []string{"+15551230001", "+15551230002", "+15551230003"}

	require.NoError(t, session.Begin(numbers))
	assert.Equal(t, QueueActive, session.State)

	for i, want := range numbers {
		number, done, err := session.Step()
		require.NoError(t, err)
		assert.False(t, done, "step %d should not complete the session", i)
		assert.Equal(t, want, number)
	}

	// one more advance past the end completes the session
	number, done, err := session.Step()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, number)
	assert.Equal(t, QueueComplete, session.State)

	// a completed session refuses further steps
	_, _, err = session.Step()
	assert.ErrorIs(t, err, ErrDispatchSessionClosed)
}

func TestDispatchSessionBeginRejectsEmptyQueue(t *testing.T) {
	session := &DispatchSession{State: QueueIdle}
	assert.ErrorIs(t, session.Begin(nil), ErrDispatchQueueEmpty)
	assert.Equal(t, QueueIdle, session.State)
}

func TestDispatchSessionBeginRejectsActiveSession(t *testing.T) {
	session := &DispatchSession{State: QueueIdle}
	require.NoError(t, session.Begin([]string{"+15551230001"}))

	assert.ErrorIs(t, session.Begin([]string{"+15551230002"}), ErrDispatchSessionActive)
	assert.Equal(t, []string{"+15551230001"}, session.Queue)
}

func TestDispatchSessionStepRequiresActiveState(t *testing.T) {
	session := &DispatchSession{State: QueueIdle}
	_, _, err := session.Step()
	assert.ErrorIs(t, err, ErrDispatchSessionClosed)
}

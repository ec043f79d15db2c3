package proc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStubControllerIdempotence(t *testing.T) {
	c := NewStubController()

	require.NoError(t, c.Pause(1))
	require.NoError(t, c.Pause(1), "pausing an already-paused task is a no-op success")
	require.True(t, c.Paused(1))

	require.NoError(t, c.Resume(1))
	require.NoError(t, c.Resume(1), "resuming a running task is a no-op success")
	require.False(t, c.Paused(1))
}

func TestStubControllerNeverObservesCompletion(t *testing.T) {
	c := NewStubController()

	done, err := c.PollCompleted(7)
	require.NoError(t, err)
	require.False(t, done, "completion is driven by the loop's accounting")
}

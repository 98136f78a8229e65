package ws

import (
	"context"
	"testing"
	"time"

	"github.com/centrifugal/centrifuge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskChannel(t *testing.T) {
	assert.Equal(t, "tasks:1", TaskChannel(1))
	assert.Equal(t, "tasks:42", TaskChannel(42))
}

func TestShutdownOnDoneStopsNodeAfterCancel(t *testing.T) {
	node, err := centrifuge.New(centrifuge.Config{})
	require.NoError(t, err)
	require.NoError(t, node.Run())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		shutdownOnDone(ctx, node)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("node was not stopped after context cancel")
	}
}

package goroutine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_RecoversPanic(t *testing.T) {
	log, hook := test.NewNullLogger()
	g := NewGroup(log)

	g.Go(context.Background(), "boom", func(context.Context) {
		panic("boom")
	})

	require.NoError(t, g.Wait(context.Background()))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "boom", hook.LastEntry().Data["task"])
}

func TestGroup_WaitsForAll(t *testing.T) {
	log, _ := test.NewNullLogger()
	g := NewGroup(log)

	var done atomic.Int32
	for i := 0; i < 10; i++ {
		g.Go(context.Background(), "work", func(context.Context) {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
		})
	}

	require.NoError(t, g.Wait(context.Background()))
	assert.Equal(t, int32(10), done.Load())
}

func TestGroup_WaitHonoursContext(t *testing.T) {
	log, _ := test.NewNullLogger()
	g := NewGroup(log)

	release := make(chan struct{})
	g.Go(context.Background(), "blocked", func(context.Context) { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, g.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, g.Wait(context.Background()))
}

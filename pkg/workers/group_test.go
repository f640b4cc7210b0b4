package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingWorker struct {
	name    string
	stopped atomic.Bool
}

func (b *blockingWorker) Name() string { return b.name }

func (b *blockingWorker) Start(ctx context.Context) error {
	<-ctx.Done()
	b.stopped.Store(true)
	return nil
}

type failingWorker struct {
	err error
}

func (f *failingWorker) Name() string { return "failing" }

func (f *failingWorker) Start(context.Context) error { return f.err }

func TestGroup_StopsOnCancel(t *testing.T) {
	a, b := &blockingWorker{name: "a"}, &blockingWorker{name: "b"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- Group{a, b}.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("group did not stop")
	}
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())
}

func TestGroup_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	blocking := &blockingWorker{name: "blocking"}

	err := Group{blocking, &failingWorker{err: boom}}.Start(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing: boom")
	assert.True(t, blocking.stopped.Load())
}

type countingEvictor struct {
	calls atomic.Int32
}

func (c *countingEvictor) EvictExpired() int {
	c.calls.Add(1)
	return 1
}

func (c *countingEvictor) Len() int { return 0 }

func TestSessionJanitor(t *testing.T) {
	evictor := &countingEvictor{}
	janitor, err := NewSessionJanitor(evictor, 5*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- janitor.Start(ctx) }()

	assert.Eventually(t, func() bool { return evictor.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestHTTPServer_RequiresAddr(t *testing.T) {
	_, err := NewHTTPServer("", nil)
	assert.Error(t, err)
}

func TestHTTPServer_ShutsDownOnCancel(t *testing.T) {
	srv, err := NewHTTPServer("127.0.0.1:0", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

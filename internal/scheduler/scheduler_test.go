package scheduler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pkordes/smarttravel/internal/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// syncBuffer is a bytes.Buffer safe for the scheduler goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestScheduler_RunsJob(t *testing.T) {
	s := scheduler.New(discardLogger())
	var runs atomic.Int32
	require.NoError(t, s.Add("count", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_LogsFailures(t *testing.T) {
	var buf syncBuffer
	s := scheduler.New(slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, s.Add("refresh", "@every 1s", func(context.Context) error {
		return errors.New("db down")
	}))

	s.Start()
	require.Eventually(t, func() bool {
		out := buf.String()
		return bytes.Contains([]byte(out), []byte(`"job":"refresh"`)) &&
			bytes.Contains([]byte(out), []byte("db down"))
	}, 3*time.Second, 20*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := scheduler.New(discardLogger())
	var runs atomic.Int32
	require.NoError(t, s.Add("panicky", "@every 1s", func(context.Context) error {
		runs.Add(1)
		panic("boom")
	}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := scheduler.New(discardLogger())
	started := make(chan struct{})
	var once sync.Once
	require.NoError(t, s.Add("long", "@every 1s", func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}))

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_Add_InvalidSpec(t *testing.T) {
	s := scheduler.New(discardLogger())

	err := s.Add("bad", "not a cron spec", func(context.Context) error { return nil })

	assert.Error(t, err)
	require.NoError(t, s.Stop(context.Background()))
}

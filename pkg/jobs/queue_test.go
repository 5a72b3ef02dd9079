package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultRecorder struct {
	mu      sync.Mutex
	results map[string]error
	done    chan struct{}
}

func newResultRecorder() *resultRecorder {
	return &resultRecorder{results: map[string]error{}, done: make(chan struct{}, 16)}
}

func (r *resultRecorder) hook(job Job, err error) {
	r.mu.Lock()
	r.results[job.ID] = err
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *resultRecorder) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for job result %d", i+1)
		}
	}
}

func TestQueueProcessesJobs(t *testing.T) {
	rec := newResultRecorder()
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{Workers: 2, OnResult: rec.hook})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a"}))
	require.NoError(t, q.Enqueue(Job{ID: "b"}))
	rec.wait(t, 2)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.NoError(t, rec.results["a"])
	assert.NoError(t, rec.results["b"])
}

func TestQueueRetriesThenReportsFailure(t *testing.T) {
	rec := newResultRecorder()
	var mu sync.Mutex
	attempts := 0
	boom := errors.New("boom")
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		attempts++
		mu.Unlock()
		return boom
	}, QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond, OnResult: rec.hook})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "x"}))
	rec.wait(t, 1)

	mu.Lock()
	assert.Equal(t, 3, attempts)
	mu.Unlock()
	rec.mu.Lock()
	assert.ErrorIs(t, rec.results["x"], boom)
	rec.mu.Unlock()
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	assert.ErrorIs(t, q.Enqueue(Job{ID: "a"}), ErrNotStarted)
}

func TestQueueFull(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		<-block
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer func() {
		close(block)
		q.Stop()
	}()

	require.NoError(t, q.Enqueue(Job{ID: "1"}))
	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = q.Enqueue(Job{ID: "n"})
	}
	assert.ErrorIs(t, err, ErrQueueFull)
}

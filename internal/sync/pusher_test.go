// ABOUTME: Tests for the fire-and-forget push queue
// ABOUTME: Verifies delivery, non-blocking enqueue under a full queue, and shutdown

package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPusher_DeliversJob(t *testing.T) {
	var pushes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	pusher := NewPusher(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pusher.Run(ctx)

	pusher.Enqueue(testState(), nil)

	deadline := time.After(2 * time.Second)
	for pushes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("push never delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPusher_EnqueueNeverBlocks(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	pusher := NewPusher(client, nil)

	// No Run loop draining; flood well past the queue depth
	done := make(chan struct{})
	go func() {
		for i := 0; i < pushQueueDepth*4; i++ {
			pusher.Enqueue(testState(), nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestPusher_DisabledClientSkipsQueue(t *testing.T) {
	pusher := NewPusher(NewClient(Config{}, nil), nil)
	pusher.Enqueue(testState(), nil)
	select {
	case <-pusher.jobs:
		t.Error("job queued despite disabled client")
	default:
	}
}

func TestPusher_RunStopsOnCancel(t *testing.T) {
	pusher := NewPusher(NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		pusher.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

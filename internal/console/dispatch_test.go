package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abdullathedruid/conpane/internal/host"
)

func TestQueue_RunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	done := make(chan struct{})

	for i := 0; i < 100; i++ {
		q.Post(func() { got = append(got, i) })
	}
	q.Post(func() {
		q.Post(func() { close(done) })
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("queue did not drain")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran as %d", v, i)
		}
	}
	if len(got) != 100 {
		t.Errorf("ran %d tasks, want 100", len(got))
	}
}

func TestQueue_StopsOnCancel(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- q.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConsole_RunForwardsEvents(t *testing.T) {
	c, doc, h := running(t)

	h.events <- host.Event{Kind: host.Output, Content: "one\n"}
	h.events <- host.Event{Kind: host.Error, Content: "two\n"}
	h.events <- host.Event{Kind: host.Exit, ExitCode: 3}
	close(h.events)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := doc.Text(); got != "one\ntwo\n" {
		t.Errorf("document = %q, want %q", got, "one\ntwo\n")
	}
	if c.State() != StateStopped {
		t.Errorf("State() = %v, want stopped", c.State())
	}
}

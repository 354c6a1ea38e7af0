package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/yndnr/skywalker-go/internal/telemetry/logger"
)

func newTestHandler(timeout time.Duration) *Handler {
	h := NewHandler(timeout)
	h.SetLogger(logger.Discard())
	return h
}

func TestHandler_ReverseOrder(t *testing.T) {
	h := newTestHandler(time.Second)

	var order []int
	var mu sync.Mutex
	for i := 1; i <= 3; i++ {
		h.OnShutdown("hook", func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	h.Trigger()
	if err := h.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	want := []int{3, 2, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done() not closed after Wait")
	}
}

func TestHandler_JoinsErrors(t *testing.T) {
	h := newTestHandler(time.Second)
	errA := errors.New("a")
	errB := errors.New("b")
	h.OnShutdown("a", func(context.Context) error { return errA })
	h.OnShutdown("ok", func(context.Context) error { return nil })
	h.OnShutdown("b", func(context.Context) error { return errB })

	h.Trigger()
	err := h.Wait(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Wait() error = %v, want both hook errors", err)
	}
}

func TestHandler_ContextDone(t *testing.T) {
	h := newTestHandler(time.Second)
	called := false
	h.OnShutdown("hook", func(context.Context) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !called {
		t.Error("hook not called after ctx done")
	}
}

func TestHandler_HookDeadline(t *testing.T) {
	h := newTestHandler(50 * time.Millisecond)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	h.Trigger()
	if err := h.Wait(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}
}

func TestHandler_Signal(t *testing.T) {
	h := newTestHandler(time.Second)
	done := make(chan error, 1)
	go func() { done <- h.Wait(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after SIGTERM")
	}
}

func TestHandler_TriggerTwice(t *testing.T) {
	h := newTestHandler(time.Second)
	h.Trigger()
	h.Trigger()
	if err := h.Wait(context.Background()); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

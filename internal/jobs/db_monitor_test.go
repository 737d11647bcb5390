package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakePinger struct {
	calls atomic.Int32
	err   error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestDBMonitor_Check(t *testing.T) {
	p := &fakePinger{}
	m := NewDBMonitor(p, time.Minute)

	if !m.check(context.Background()) {
		t.Error("check() = false, want true for healthy database")
	}

	p.err = errors.New("connection refused")
	if m.check(context.Background()) {
		t.Error("check() = true, want false for failing ping")
	}
	if m.up == nil || *m.up {
		t.Errorf("last state = %v, want down", m.up)
	}
}

func TestDBMonitor_StartStopsOnCancel(t *testing.T) {
	p := &fakePinger{}
	m := NewDBMonitor(p, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for p.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("monitor pinged %d times, want at least 2", p.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

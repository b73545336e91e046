package realtime

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var calls int32
	deb := newDebouncer(30*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	for i := 0; i < 10; i++ {
		deb.trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 call for a burst, got %d", got)
	}
}

func TestDebouncer_SeparateEventsFireSeparately(t *testing.T) {
	var calls int32
	deb := newDebouncer(10*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	deb.trigger()
	time.Sleep(50 * time.Millisecond)
	deb.trigger()
	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestDebouncer_StopPreventsPendingFire(t *testing.T) {
	var calls int32
	deb := newDebouncer(20*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	deb.trigger()
	deb.stop()

	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no calls after stop, got %d", got)
	}
}

func TestDebouncer_NoCallbackAfterStopReturns(t *testing.T) {
	// stop() concorrendo com o timer: depois que stop retorna o
	// contador não pode mais avançar, mesmo com um disparo já agendado.
	var calls int32
	deb := newDebouncer(time.Millisecond, func() {
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&calls, 1)
	})

	deb.trigger()
	time.Sleep(time.Millisecond)
	deb.stop()

	snapshot := atomic.LoadInt32(&calls)
	time.Sleep(30 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != snapshot {
		t.Fatalf("callback fired after stop returned: %d -> %d", snapshot, got)
	}
}

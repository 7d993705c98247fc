package application

import (
	"sync"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

const (
	DefaultWatchdogThreshold = 5 * time.Second
	DefaultWatchdogHeartbeat = 100 * time.Millisecond
)

type WatchdogOptions struct {
	Threshold time.Duration
	Heartbeat time.Duration
	Clock     ports.Clock
}

// Watchdog bounds how long a script may compute without yielding. A
// background heartbeat keeps the execution alive only while it is parked in
// a blocking primitive; script time between parks counts against Threshold.
type Watchdog struct {
	clock     ports.Clock
	threshold time.Duration

	mu        sync.Mutex
	lastAlive time.Time
	parked    int
	tripped   bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func StartWatchdog(opts WatchdogOptions) *Watchdog {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultWatchdogThreshold
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = DefaultWatchdogHeartbeat
	}

	w := &Watchdog{
		clock:     opts.Clock,
		threshold: opts.Threshold,
		lastAlive: opts.Clock.Now(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.beat(opts.Heartbeat)

	return w
}

func (w *Watchdog) beat(every time.Duration) {
	defer close(w.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.mu.Lock()
			if w.parked > 0 {
				w.lastAlive = w.clock.Now()
			}
			w.mu.Unlock()
		}
	}
}

// Check reports domain.ErrExecutionTimeout once the execution has gone
// Threshold without yielding. A tripped watchdog stays tripped.
func (w *Watchdog) Check() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tripped {
		return domain.ErrExecutionTimeout
	}
	if w.parked > 0 {
		return nil
	}
	if w.clock.Now().Sub(w.lastAlive) > w.threshold {
		w.tripped = true
		return domain.ErrExecutionTimeout
	}

	return nil
}

// Park marks the execution as suspended in a blocking primitive. The returned
// func resumes it; calling it more than once is a no-op.
func (w *Watchdog) Park() func() {
	w.mu.Lock()
	w.parked++
	w.lastAlive = w.clock.Now()
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			w.parked--
			w.lastAlive = w.clock.Now()
			w.mu.Unlock()
		})
	}
}

// Busy marks the execution as running script code again while a blocking
// primitive is still parked, for example while a prompt validator runs. The
// returned func restores the parked state; calling it more than once is a
// no-op. Busy outside any park does nothing.
func (w *Watchdog) Busy() func() {
	w.mu.Lock()
	unparked := w.parked > 0
	if unparked {
		w.parked--
		w.lastAlive = w.clock.Now()
	}
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			if !unparked {
				return
			}
			w.mu.Lock()
			w.parked++
			w.lastAlive = w.clock.Now()
			w.mu.Unlock()
		})
	}
}

func (w *Watchdog) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	<-w.done
}

package timer

import (
	"sync"
	"time"
)

// Cancel stops a schedule. Calling it more than once is safe.
type Cancel func()

// Scheduler fires fn every d until cancelled. Consecutive calls of fn for
// one schedule must not overlap.
type Scheduler interface {
	Every(d time.Duration, fn func()) Cancel
}

// TickerScheduler runs each schedule on its own goroutine driven by a time.Ticker
type TickerScheduler struct{}

// Every starts a ticker goroutine calling fn sequentially
func (TickerScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// ManualScheduler fires callbacks only when told to. Used by tests and by
// callers that drive the timer from their own loop.
type ManualScheduler struct {
	mu     sync.Mutex
	nextID int
	active map[int]func()
	last   func()
}

// NewManualScheduler returns an empty manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{active: make(map[int]func())}
}

// Every registers fn until the returned Cancel is called
func (m *ManualScheduler) Every(_ time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.active[id] = fn
	m.last = fn

	return func() {
		m.mu.Lock()
		delete(m.active, id)
		m.mu.Unlock()
	}
}

// Fire invokes every active callback once
func (m *ManualScheduler) Fire() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.active))
	for _, fn := range m.active {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// FireN calls Fire n times
func (m *ManualScheduler) FireN(n int) {
	for i := 0; i < n; i++ {
		m.Fire()
	}
}

// FireLast invokes the most recently registered callback even if it was
// cancelled, simulating a ticker that raced with cancellation.
func (m *ManualScheduler) FireLast() {
	m.mu.Lock()
	fn := m.last
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Active returns the number of live schedules
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

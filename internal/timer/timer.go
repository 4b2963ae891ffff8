// Package timer implements the pomodoro countdown: a start/pause/stop state
// machine advanced by a once-per-second tick.
package timer

import (
	"sync"
	"time"
)

// Phase is the coarse state of a Timer
type Phase int

const (
	Idle Phase = iota
	Paused
	Running
)

func (p Phase) String() string {
	switch p {
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// State is a snapshot of the timer. Target 0 means no target is set.
type State struct {
	Accumulated int  `json:"accumulated_seconds"`
	Target      int  `json:"target_seconds"`
	Running     bool `json:"running"`
}

// Phase derives Idle/Paused/Running from the snapshot
func (s State) Phase() Phase {
	switch {
	case s.Running:
		return Running
	case s.Accumulated == 0 && s.Target == 0:
		return Idle
	default:
		return Paused
	}
}

// Remaining returns the seconds left until the target, never negative
func (s State) Remaining() int {
	if s.Target == 0 || s.Accumulated >= s.Target {
		return 0
	}
	return s.Target - s.Accumulated
}

// TickInterval is how often a running timer advances
const TickInterval = time.Second

// Timer is a single-target countdown. All methods are safe to call from
// any goroutine; ticks are applied one at a time.
type Timer struct {
	mu     sync.Mutex
	state  State
	gen    uint64 // bumped on every transition away from Running
	epoch  uint64 // bumped whenever Start or Stop overwrites the state
	cancel Cancel

	sched  Scheduler
	events Events
}

// New creates an idle timer. A nil events sink discards notifications.
func New(sched Scheduler, events Events) *Timer {
	if events == nil {
		events = Nop{}
	}
	return &Timer{
		sched:  sched,
		events: events,
	}
}

// State returns the current snapshot
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Start runs the timer towards target, counting from alreadyUsed.
// If alreadyUsed already reaches target the next tick reports it reached;
// callers wanting a fresh session should Stop first (see Restart).
func (t *Timer) Start(target, alreadyUsed int) {
	if target < 0 {
		target = 0
	}
	if alreadyUsed < 0 {
		alreadyUsed = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTicking()
	t.epoch++
	t.state = State{Accumulated: alreadyUsed, Target: target, Running: true}
	t.startTicking()
}

// Restart starts towards target continuing from the banked seconds,
// resetting to zero first when they already reach target.
func (t *Timer) Restart(target int) {
	used := t.State().Accumulated
	if used >= target {
		t.Stop()
		used = 0
	}
	t.Start(target, used)
}

// Pause freezes the accumulated count. No-op unless running.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.Running {
		return
	}
	t.state.Running = false
	t.stopTicking()
}

// Resume continues a paused timer. No-op when running or never started.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Running || t.state.Target == 0 {
		return
	}
	t.state.Running = true
	t.startTicking()
}

// Stop resets the timer to Idle from any state
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTicking()
	t.epoch++
	t.state = State{}
}

// startTicking must be called with mu held
func (t *Timer) startTicking() {
	gen := t.gen
	t.cancel = t.sched.Every(TickInterval, func() {
		t.tick(gen)
	})
}

// stopTicking must be called with mu held. Bumping gen makes any tick
// already in flight from the old schedule a no-op.
func (t *Timer) stopTicking() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

func (t *Timer) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.state.Running {
		t.mu.Unlock()
		return
	}

	t.state.Accumulated++
	elapsed := t.state.Accumulated
	reached := t.state.Target > 0 && elapsed >= t.state.Target
	if reached {
		// auto-pause, keep the count for display
		t.state.Running = false
		t.stopTicking()
	}
	epoch := t.epoch
	t.mu.Unlock()

	// Notify outside the lock so sinks may call back into the timer.
	// Once Start or Stop has replaced the state, the old count is dropped.
	if !t.sameEpoch(epoch) {
		return
	}
	t.events.ElapsedUpdated(elapsed)
	if reached && t.sameEpoch(epoch) {
		t.events.TargetReached(elapsed)
	}
}

func (t *Timer) sameEpoch(epoch uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.epoch == epoch
}

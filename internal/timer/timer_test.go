package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures notifications in order
type recorder struct {
	mu      sync.Mutex
	elapsed []int
	reached []int
}

func (r *recorder) ElapsedUpdated(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = append(r.elapsed, seconds)
}

func (r *recorder) TargetReached(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reached = append(r.reached, seconds)
}

func (r *recorder) reachedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reached)
}

func newTestTimer() (*Timer, *ManualScheduler, *recorder) {
	sched := NewManualScheduler()
	rec := &recorder{}
	return New(sched, rec), sched, rec
}

func TestNewTimerIsIdle(t *testing.T) {
	tm, sched, _ := newTestTimer()

	assert.Equal(t, State{}, tm.State())
	assert.Equal(t, Idle, tm.State().Phase())
	assert.Zero(t, sched.Active())
}

func TestRunToTarget(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(5, 0)
	assert.Equal(t, Running, tm.State().Phase())

	for i := 1; i <= 4; i++ {
		sched.Fire()
		assert.Equal(t, 0, rec.reachedCount(), "no target notification before tick 5")
	}

	sched.Fire()
	assert.Equal(t, State{Accumulated: 5, Target: 5, Running: false}, tm.State())
	assert.Equal(t, Paused, tm.State().Phase())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.elapsed)
	assert.Equal(t, []int{5}, rec.reached)

	// Auto-pause cancels the schedule, further fires do nothing
	assert.Zero(t, sched.Active())
	sched.FireN(3)
	assert.Equal(t, 5, tm.State().Accumulated)
	assert.Equal(t, 1, rec.reachedCount())
}

func TestPauseResumeMatchesUninterruptedRun(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(5, 0)
	sched.FireN(2)

	tm.Pause()
	assert.Equal(t, Paused, tm.State().Phase())
	sched.FireN(4) // nothing registered while paused
	assert.Equal(t, 2, tm.State().Accumulated)

	tm.Resume()
	assert.True(t, tm.State().Running)
	sched.FireN(3)

	assert.Equal(t, State{Accumulated: 5, Target: 5, Running: false}, tm.State())
	assert.Equal(t, []int{5}, rec.reached)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.elapsed)
}

func TestStopResetsAndIgnoresLateTick(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(10, 0)
	sched.FireN(3)
	tm.Stop()

	assert.Equal(t, State{}, tm.State())
	assert.Equal(t, Idle, tm.State().Phase())

	// A tick that raced with Stop must not apply
	sched.FireLast()
	sched.Fire()
	assert.Equal(t, State{}, tm.State())
	assert.Equal(t, []int{1, 2, 3}, rec.elapsed)
}

func TestStopFromEveryPhase(t *testing.T) {
	tm, sched, _ := newTestTimer()

	tm.Stop()
	assert.Equal(t, State{}, tm.State())

	tm.Start(3, 1)
	tm.Pause()
	tm.Stop()
	assert.Equal(t, State{}, tm.State())

	tm.Start(2, 0)
	sched.FireN(2)
	require.Equal(t, Paused, tm.State().Phase())
	tm.Stop()
	assert.Equal(t, State{}, tm.State())
	assert.Zero(t, sched.Active())
}

func TestPauseIgnoresLateTick(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(10, 0)
	sched.Fire()
	tm.Pause()
	sched.FireLast()

	assert.Equal(t, 1, tm.State().Accumulated)
	assert.Equal(t, []int{1}, rec.elapsed)
}

func TestResumeNoOps(t *testing.T) {
	tm, sched, _ := newTestTimer()

	// Never started: nothing to resume
	tm.Resume()
	assert.Equal(t, State{}, tm.State())
	assert.Zero(t, sched.Active())

	// Already running: no second schedule
	tm.Start(5, 0)
	tm.Resume()
	assert.Equal(t, 1, sched.Active())
	sched.Fire()
	assert.Equal(t, 1, tm.State().Accumulated)
}

func TestPauseWhenIdleIsNoOp(t *testing.T) {
	tm, _, _ := newTestTimer()

	tm.Pause()
	assert.Equal(t, State{}, tm.State())
}

func TestStartWithAlreadyUsed(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(5, 3)
	assert.Equal(t, State{Accumulated: 3, Target: 5, Running: true}, tm.State())
	assert.Equal(t, 2, tm.State().Remaining())

	sched.FireN(2)
	assert.Equal(t, []int{5}, rec.reached)
}

func TestStartAtTargetReachesOnNextTick(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(5, 5)
	sched.Fire()

	assert.Equal(t, 6, tm.State().Accumulated)
	assert.Equal(t, []int{6}, rec.reached)
}

func TestRestartResetsFinishedSession(t *testing.T) {
	tm, sched, _ := newTestTimer()

	tm.Start(2, 0)
	sched.FireN(2)
	require.Equal(t, 2, tm.State().Accumulated)

	tm.Restart(2)
	assert.Equal(t, State{Accumulated: 0, Target: 2, Running: true}, tm.State())

	sched.Fire()
	tm.Pause()
	tm.Restart(4)
	assert.Equal(t, State{Accumulated: 1, Target: 4, Running: true}, tm.State())
}

func TestNoTargetCountsForever(t *testing.T) {
	tm, sched, rec := newTestTimer()

	tm.Start(0, 0)
	sched.FireN(100)

	assert.Equal(t, 100, tm.State().Accumulated)
	assert.True(t, tm.State().Running)
	assert.Empty(t, rec.reached)
}

func TestNegativeArgumentsClamp(t *testing.T) {
	tm, _, _ := newTestTimer()

	tm.Start(-3, -7)
	assert.Equal(t, State{Accumulated: 0, Target: 0, Running: true}, tm.State())
}

func TestChanSink(t *testing.T) {
	sched := NewManualScheduler()
	sink := NewChanSink(8)
	tm := New(sched, sink)

	tm.Start(2, 0)
	sched.FireN(2)

	assert.Equal(t, Event{Kind: ElapsedUpdated, Seconds: 1}, <-sink)
	assert.Equal(t, Event{Kind: ElapsedUpdated, Seconds: 2}, <-sink)
	assert.Equal(t, Event{Kind: TargetReached, Seconds: 2}, <-sink)
	assert.Equal(t, "target reached", TargetReached.String())
}

func TestFuncsAdapter(t *testing.T) {
	sched := NewManualScheduler()
	var reached []int
	tm := New(sched, Funcs{OnReached: func(s int) { reached = append(reached, s) }})

	tm.Start(1, 0)
	sched.Fire()
	assert.Equal(t, []int{1}, reached)

	assert.NotPanics(t, func() {
		Funcs{}.ElapsedUpdated(1)
		Funcs{}.TargetReached(1)
	})
}

func TestTickerSchedulerStopsOnCancel(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	cancel := TickerScheduler{}.Every(5*time.Millisecond, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 2
	}, time.Second, time.Millisecond)

	cancel()
	cancel() // safe to call twice
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	after := calls
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, calls)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "running", Running.String())
}

func TestStopFromSinkDropsPendingNotification(t *testing.T) {
	sched := NewManualScheduler()
	var tm *Timer
	var elapsed, reached []int
	tm = New(sched, Funcs{
		OnElapsed: func(s int) {
			elapsed = append(elapsed, s)
			if s == 2 {
				tm.Stop()
			}
		},
		OnReached: func(s int) { reached = append(reached, s) },
	})

	tm.Start(2, 0)
	sched.FireN(2)

	assert.Equal(t, []int{1, 2}, elapsed)
	assert.Empty(t, reached, "no target notification once Stop returned")
	assert.Equal(t, State{}, tm.State())
}

func TestRestartFromSinkDropsOldCount(t *testing.T) {
	sched := NewManualScheduler()
	var tm *Timer
	var reached []int
	tm = New(sched, Funcs{
		OnElapsed: func(s int) {
			if s == 3 && tm.State().Target == 3 {
				tm.Start(10, 0)
			}
		},
		OnReached: func(s int) { reached = append(reached, s) },
	})

	tm.Start(3, 0)
	sched.FireN(3)

	assert.Empty(t, reached)
	assert.Equal(t, State{Accumulated: 0, Target: 10, Running: true}, tm.State())
}

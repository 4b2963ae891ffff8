package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/stickies/internal/timer"
)

type fakeRecorder struct {
	domain  string
	minutes int
	err     error
}

func (f *fakeRecorder) AddLearningTime(_ context.Context, domain string, minutes int) error {
	if f.err != nil {
		return f.err
	}
	f.domain = domain
	f.minutes += minutes
	return nil
}

func newTestPomodoro(target time.Duration, domain string, rec LearningRecorder) (PomodoroModel, *timer.ManualScheduler, timer.ChanSink) {
	sched := timer.NewManualScheduler()
	sink := timer.NewChanSink(16)
	tm := timer.New(sched, sink)
	return NewPomodoroModel(bg, tm, sink, target, "Deep work", domain, rec), sched, sink
}

func pomodoroUpdate(t *testing.T, m PomodoroModel, msg tea.Msg) (PomodoroModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PomodoroModel)
	require.True(t, ok)
	return pm, cmd
}

// drain feeds every pending timer event back into the model
func drain(t *testing.T, m PomodoroModel, sink timer.ChanSink) PomodoroModel {
	t.Helper()
	for len(sink) > 0 {
		m, _ = pomodoroUpdate(t, m, timerEventMsg(<-sink))
	}
	return m
}

func TestPomodoroStartPauseResume(t *testing.T) {
	m, sched, sink := newTestPomodoro(5*time.Second, "", nil)

	m, _ = pomodoroUpdate(t, m, key("space"))
	assert.Equal(t, timer.Running, m.State().Phase())

	sched.FireN(2)
	m = drain(t, m, sink)
	assert.Equal(t, 2, m.State().Accumulated)

	m, _ = pomodoroUpdate(t, m, key("space"))
	assert.Equal(t, timer.Paused, m.State().Phase())
	assert.Equal(t, 1, m.pauses)

	m, _ = pomodoroUpdate(t, m, key("space"))
	assert.Equal(t, timer.Running, m.State().Phase())
	assert.Equal(t, 2, m.State().Accumulated)
}

func TestPomodoroTargetLogsLearning(t *testing.T) {
	rec := &fakeRecorder{}
	m, sched, sink := newTestPomodoro(2*time.Second, "golang", rec)

	m, _ = pomodoroUpdate(t, m, key("space"))
	sched.FireN(2)
	m = drain(t, m, sink)

	assert.Equal(t, 1, m.reached)
	assert.Equal(t, timer.Paused, m.State().Phase())

	cmd := m.logLearning()
	require.NotNil(t, cmd)
	m, _ = pomodoroUpdate(t, m, cmd())
	assert.Equal(t, "golang", rec.domain)
	assert.Equal(t, 1, rec.minutes, "sub-minute targets still log one minute")
	assert.Equal(t, 1, m.Logged())

	// space after the target restarts a fresh session
	m, _ = pomodoroUpdate(t, m, key("space"))
	assert.Equal(t, timer.State{Accumulated: 0, Target: 2, Running: true}, m.State())
}

func TestPomodoroLogFailureIsShown(t *testing.T) {
	m, _, _ := newTestPomodoro(25*time.Minute, "golang", &fakeRecorder{err: errors.New("disk full")})

	m, _ = pomodoroUpdate(t, m, m.logLearning()())
	assert.Zero(t, m.Logged())

	m, _ = pomodoroUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.View(), "disk full")
}

func TestPomodoroWithoutDomainDoesNotLog(t *testing.T) {
	m, _, _ := newTestPomodoro(time.Minute, "", &fakeRecorder{})
	assert.Nil(t, m.logLearning())
}

func TestPomodoroStopAndQuit(t *testing.T) {
	m, sched, sink := newTestPomodoro(time.Minute, "", nil)

	m, _ = pomodoroUpdate(t, m, key("space"))
	sched.FireN(3)
	m = drain(t, m, sink)

	m, _ = pomodoroUpdate(t, m, key("s"))
	assert.Equal(t, timer.State{}, m.State())

	m, _ = pomodoroUpdate(t, m, key("space"))
	_, cmd := pomodoroUpdate(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Zero(t, sched.Active())
}

func TestPomodoroCountUpWithoutTarget(t *testing.T) {
	m, sched, sink := newTestPomodoro(0, "", nil)

	m, _ = pomodoroUpdate(t, m, key("space"))
	sched.FireN(4)
	m = drain(t, m, sink)
	m, _ = pomodoroUpdate(t, m, key("space"))
	m, _ = pomodoroUpdate(t, m, key("space"))

	assert.Equal(t, timer.State{Accumulated: 4, Target: 0, Running: true}, m.State())
}

func TestRenderBigClock(t *testing.T) {
	lines := strings.Split(renderBigClock("12:05"), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.Equal(t, 29, len([]rune(l)))
	}
}

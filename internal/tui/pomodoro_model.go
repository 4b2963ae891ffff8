package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/stickies/internal/parser"
	"github.com/balkashynov/stickies/internal/timer"
)

// LearningRecorder receives the minutes of a finished pomodoro
type LearningRecorder interface {
	AddLearningTime(ctx context.Context, domain string, minutes int) error
}

// timerEventMsg carries one notification from the timer goroutine
type timerEventMsg timer.Event

// learningLoggedMsg reports the outcome of logging a finished session
type learningLoggedMsg struct {
	minutes int
	err     error
}

// frameTickMsg drives the header animation
type frameTickMsg struct{}

// PomodoroModel drives a timer.Timer from the keyboard
type PomodoroModel struct {
	ctx    context.Context
	timer  *timer.Timer
	events timer.ChanSink

	width  int
	height int

	target   int // seconds
	label    string
	domain   string
	recorder LearningRecorder

	state   timer.State
	reached int
	logged  int
	logErr  error
	frame   int
	pauses  int
}

// NewPomodoroModel wires the model to a timer whose events land on sink.
// When domain is set and recorder is not nil, every reached target is
// logged as learning time.
func NewPomodoroModel(ctx context.Context, t *timer.Timer, sink timer.ChanSink, target time.Duration, label, domain string, recorder LearningRecorder) PomodoroModel {
	return PomodoroModel{
		ctx:      ctx,
		timer:    t,
		events:   sink,
		target:   int(target / time.Second),
		label:    label,
		domain:   domain,
		recorder: recorder,
		state:    t.State(),
	}
}

// waitForTimer blocks until the timer emits its next notification
func waitForTimer(sink timer.ChanSink) tea.Cmd {
	return func() tea.Msg {
		return timerEventMsg(<-sink)
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return frameTickMsg{}
	})
}

// Init starts listening for timer events
func (m PomodoroModel) Init() tea.Cmd {
	return tea.Batch(waitForTimer(m.events), frameTick())
}

// Update handles messages
func (m PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerEventMsg:
		m.state = m.timer.State()
		next := waitForTimer(m.events)
		if msg.Kind == timer.TargetReached {
			m.reached++
			return m, tea.Batch(next, m.logLearning())
		}
		return m, next

	case learningLoggedMsg:
		if msg.err != nil {
			m.logErr = msg.err
		} else {
			m.logged += msg.minutes
		}
		return m, nil

	case frameTickMsg:
		m.frame = (m.frame + 1) % 4
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space":
			m.toggle()
		case "s", "S":
			m.timer.Stop()
			m.state = m.timer.State()
		case "ctrl+c", "esc", "q":
			m.timer.Stop()
			return m, tea.Quit
		}
	}

	return m, nil
}

// toggle starts an idle or finished session, otherwise pauses or resumes
func (m *PomodoroModel) toggle() {
	state := m.timer.State()
	switch state.Phase() {
	case timer.Running:
		m.timer.Pause()
		m.pauses++
	case timer.Paused:
		switch {
		case state.Target == 0:
			// count-up sessions have nothing for Resume to aim at
			m.timer.Start(0, state.Accumulated)
		case state.Accumulated >= state.Target:
			m.timer.Restart(m.target)
		default:
			m.timer.Resume()
		}
	default:
		m.timer.Start(m.target, 0)
	}
	m.state = m.timer.State()
}

// logLearning records one full target as learning minutes
func (m PomodoroModel) logLearning() tea.Cmd {
	if m.domain == "" || m.recorder == nil {
		return nil
	}
	minutes := m.target / 60
	if minutes < 1 {
		minutes = 1
	}
	ctx, recorder, domain := m.ctx, m.recorder, m.domain
	return func() tea.Msg {
		return learningLoggedMsg{minutes: minutes, err: recorder.AddLearningTime(ctx, domain, minutes)}
	}
}

// State returns the last observed timer snapshot
func (m PomodoroModel) State() timer.State {
	return m.state
}

// Logged returns the minutes written to the learning log this session
func (m PomodoroModel) Logged() int {
	return m.logged
}

// View renders the pomodoro
func (m PomodoroModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)

	icons := []string{"🍅", "⏳", "🍅", "⌛"}
	icon := icons[0]
	if m.state.Running {
		icon = icons[m.frame]
	}
	header := fmt.Sprintf("%s  %s  %s", icon, strings.ToUpper(m.state.Phase().String()), icon)
	components = append(components, center.Bold(true).Foreground(lipgloss.Color(ColorAccent)).Render(header))

	if m.label != "" {
		components = append(components, center.Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render(m.label))
	}

	// Count down while a target is set, up otherwise
	shown := m.state.Accumulated
	if m.target > 0 {
		shown = m.target - m.state.Accumulated
		if shown < 0 {
			shown = 0
		}
	}
	clockColor := ColorShortTerm
	if m.target > 0 && m.state.Accumulated >= m.target {
		clockColor = ColorSuccess
	}
	for _, line := range strings.Split(renderBigClock(parser.FormatSeconds(shown)), "\n") {
		components = append(components, center.Bold(true).Foreground(lipgloss.Color(clockColor)).Render(line))
	}

	info := fmt.Sprintf("elapsed %s · target %s · sessions %d · pauses %d",
		parser.FormatSeconds(m.state.Accumulated), parser.FormatSeconds(m.target), m.reached, m.pauses)
	components = append(components, center.Inherit(mutedStyle).Render(info))

	if m.domain != "" {
		line := fmt.Sprintf("logging to %q · %s so far", m.domain, parser.FormatMinutes(m.logged))
		components = append(components, center.Inherit(mutedStyle).Render(line))
	}
	if m.logErr != nil {
		components = append(components, center.Inherit(errorStyle).Render("Error: "+m.logErr.Error()))
	}

	components = append(components, "", helpStyle.Width(m.width).Align(lipgloss.Center).
		Render("space start/pause/resume · s stop · q quit"))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n"))
}

// bigDigits is a 5-row block font for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock draws a MM:SS or HH:MM:SS string in the block font
func renderBigClock(clock string) string {
	var rows [5][]string
	for _, r := range clock {
		glyph, ok := bigDigits[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], glyph[i])
		}
	}

	out := make([]string, len(rows))
	for i := range rows {
		out[i] = strings.Join(rows[i], " ")
	}
	return strings.Join(out, "\n")
}

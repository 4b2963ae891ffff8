package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/stickies/internal/planner"
)

// planResultMsg wraps the single result of a plan request
type planResultMsg planner.Result

// PlanModel waits on a plan request and shows the reply
type PlanModel struct {
	results <-chan planner.Result
	spinner spinner.Model
	count   int

	width  int
	height int

	done   bool
	result planner.Result
}

// NewPlanModel shows a spinner until results delivers
func NewPlanModel(results <-chan planner.Result, taskCount int) PlanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return PlanModel{
		results: results,
		spinner: s,
		count:   taskCount,
	}
}

func waitForPlan(results <-chan planner.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return planResultMsg{Err: &planner.RequestError{Reason: "no reply delivered"}}
		}
		return planResultMsg(res)
	}
}

// Init starts the spinner and the wait
func (m PlanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForPlan(m.results))
}

// Update handles messages
func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planResultMsg:
		m.done = true
		m.result = planner.Result(msg)
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q", "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

// Result returns the delivered result and whether it has arrived
func (m PlanModel) Result() (planner.Result, bool) {
	return m.result, m.done
}

// View renders the plan screen
func (m PlanModel) View() string {
	width := m.width - 4
	if width < 20 {
		width = 76
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLongTerm)).Render("AI plan"))
	b.WriteString("\n\n")

	switch {
	case !m.done:
		b.WriteString(m.spinner.View())
		b.WriteString(mutedStyle.Render(" Planning " + plural(m.count, "open task") + "..."))
	case m.result.Err != nil:
		b.WriteString(errorStyle.Render("Plan request failed"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(m.result.Err.Error()))
	default:
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color(ColorPrimaryText)).Render(m.result.Text))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/stickies/internal/models"
)

// BoardStore is the slice of the task store the board works against
type BoardStore interface {
	GetTasks(ctx context.Context, includeCompleted bool) ([]models.Task, error)
	CompleteTask(ctx context.Context, id uint) error
	DeleteTask(ctx context.Context, id uint) error
	AddSubTask(ctx context.Context, parentID uint, title string) (uint, error)
	GetChildren(ctx context.Context, parentID uint, completedOnly bool) ([]models.Task, error)
}

// BoardModel shows short-term and long-term notes side by side
type BoardModel struct {
	ctx   context.Context
	store BoardStore

	width  int
	height int

	// Task data, short-term first then long-term, each in id order
	tasks       []models.Task
	selected    int
	showAll     bool
	shortCount  int
	children    []models.Task
	showingKids bool

	status    string
	statusErr bool
	err       error

	highlight *Highlighter
}

// NewBoardModel loads the board. showAll includes completed tasks.
func NewBoardModel(ctx context.Context, store BoardStore, showAll bool) (BoardModel, error) {
	m := BoardModel{
		ctx:       ctx,
		store:     store,
		showAll:   showAll,
		highlight: NewHighlighter(true),
	}
	if err := m.reload(); err != nil {
		return m, err
	}
	return m, nil
}

// Init starts the highlight animation
func (m BoardModel) Init() tea.Cmd {
	if m.highlight.Enabled() {
		return highlightTick()
	}
	return nil
}

// reload re-reads the store after every mutation
func (m *BoardModel) reload() error {
	tasks, err := m.store.GetTasks(m.ctx, m.showAll)
	if err != nil {
		return err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return !tasks[i].IsLongTerm() && tasks[j].IsLongTerm()
	})
	m.tasks = tasks
	m.shortCount = 0
	for _, t := range tasks {
		if !t.IsLongTerm() {
			m.shortCount++
		}
	}

	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return nil
}

// Selected returns the highlighted task, if any
func (m BoardModel) Selected() (models.Task, bool) {
	if len(m.tasks) == 0 {
		return models.Task{}, false
	}
	return m.tasks[m.selected], true
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case highlightTickMsg:
		m.highlight.Advance()
		return m, highlightTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.showingKids {
				m.showingKids = false
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.showingKids = false
				m.highlight.Reset()
			}
			return m, nil

		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
				m.showingKids = false
				m.highlight.Reset()
			}
			return m, nil

		case "c":
			return m.completeSelected(), nil

		case "d":
			return m.deleteSelected(), nil

		case "g":
			return m.generateSubTask(), nil

		case "v":
			return m.toggleChildren(), nil

		case "r":
			m.apply("Reloaded", m.reload())
			return m, nil
		}
	}

	return m, nil
}

// apply records the outcome of an action in the status line
func (m *BoardModel) apply(success string, err error) {
	if err != nil {
		m.status = "Error: " + err.Error()
		m.statusErr = true
		return
	}
	m.status = success
	m.statusErr = false
}

func (m BoardModel) completeSelected() BoardModel {
	task, ok := m.Selected()
	if !ok {
		return m
	}
	if task.IsCompleted {
		m.apply(fmt.Sprintf("Task #%d is already completed", task.ID), nil)
		return m
	}
	if err := m.store.CompleteTask(m.ctx, task.ID); err != nil {
		m.apply("", err)
		return m
	}
	m.apply(fmt.Sprintf("Completed #%d %s", task.ID, task.Title), m.reload())
	m.showingKids = false
	return m
}

func (m BoardModel) deleteSelected() BoardModel {
	task, ok := m.Selected()
	if !ok {
		return m
	}
	if err := m.store.DeleteTask(m.ctx, task.ID); err != nil {
		m.apply("", err)
		return m
	}
	m.apply(fmt.Sprintf("Deleted #%d %s", task.ID, task.Title), m.reload())
	m.showingKids = false
	return m
}

func (m BoardModel) generateSubTask() BoardModel {
	task, ok := m.Selected()
	if !ok {
		return m
	}
	if !task.IsLongTerm() {
		m.apply("", fmt.Errorf("sub-tasks can only be generated from long-term tasks"))
		return m
	}
	id, err := m.store.AddSubTask(m.ctx, task.ID, "")
	if err != nil {
		m.apply("", err)
		return m
	}
	m.apply(fmt.Sprintf("Generated short-term task #%d from #%d", id, task.ID), m.reload())
	return m
}

func (m BoardModel) toggleChildren() BoardModel {
	if m.showingKids {
		m.showingKids = false
		return m
	}
	task, ok := m.Selected()
	if !ok {
		return m
	}
	if !task.IsLongTerm() {
		m.apply("", fmt.Errorf("only long-term tasks have sub-tasks"))
		return m
	}
	children, err := m.store.GetChildren(m.ctx, task.ID, true)
	if err != nil {
		m.apply("", err)
		return m
	}
	m.children = children
	m.showingKids = true
	m.apply(fmt.Sprintf("%d completed sub-task(s) of #%d", len(children), task.ID), nil)
	return m
}

// View renders the board
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	colWidth := (m.width - 3) / 2
	if colWidth < 24 {
		colWidth = m.width - 2
	}

	short := m.renderColumn("Short-term", m.tasks[:m.shortCount], 0, colWidth, false)
	long := m.renderColumn("Long-term", m.tasks[m.shortCount:], m.shortCount, colWidth, true)

	var content string
	if colWidth == m.width-2 {
		content = lipgloss.JoinVertical(lipgloss.Left, short, long)
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Top, short, " ", long)
	}

	parts := []string{"", content}
	if m.showingKids {
		parts = append(parts, m.renderChildren())
	}
	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderColumn draws one sticky-note column. offset maps rows back to m.tasks.
func (m BoardModel) renderColumn(title string, tasks []models.Task, offset, width int, longTerm bool) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(goalColor(longTerm))
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", title, len(tasks))))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Italic(true).Render("Nothing here"))
	}

	titleWidth := width - 16
	if titleWidth < 8 {
		titleWidth = 8
	}

	for i, task := range tasks {
		isSelected := offset+i == m.selected

		mark := "○"
		if task.IsCompleted {
			mark = "✓"
		}
		title := truncate(task.Title, titleWidth)
		if isSelected {
			title = m.highlight.Render(title)
		} else if task.IsCompleted {
			title = mutedStyle.Strikethrough(true).Render(title)
		}

		kind := string(task.TaskType)
		if task.HasParent() {
			kind = fmt.Sprintf("^%d", *task.ParentID)
		}
		row := fmt.Sprintf("%s #%-3d %s %s", mark, task.ID, title, mutedStyle.Render(kind))

		if isSelected {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccent)).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(goalColor(longTerm)).
		Padding(0, 1).
		Width(width).
		Render(strings.TrimRight(b.String(), "\n"))
}

// renderChildren lists the completed sub-tasks of the selected goal
func (m BoardModel) renderChildren() string {
	var b strings.Builder
	if len(m.children) == 0 {
		b.WriteString(mutedStyle.Render("No completed sub-tasks yet"))
	}
	for _, c := range m.children {
		done := "-"
		if c.CompletedAt != nil {
			done = c.CompletedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(&b, "ID: %d | %s | completed %s\n", c.ID, c.Title, done)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorLongTerm)).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

// renderHelpBar renders the help bar with hotkey hints
func (m BoardModel) renderHelpBar() string {
	return helpStyle.Width(m.width).Align(lipgloss.Center).
		Render("↑/↓ nav · c complete · d delete · g sub-task · v done sub-tasks · r reload · q quit")
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

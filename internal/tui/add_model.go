package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/stickies/internal/db"
	"github.com/balkashynov/stickies/internal/models"
)

// TaskCreator is the slice of the task store the add form needs
type TaskCreator interface {
	AddTask(ctx context.Context, req db.CreateTaskRequest) (uint, error)
}

// Step represents the current field of the add form
type Step int

const (
	StepTitle Step = iota
	StepDescription
	StepTaskType
	StepGoalType
	StepSave
)

var stepLabels = []string{"Title", "Description", "Task type", "Goal type"}

// AddTaskModel is a step-by-step form for a new note
type AddTaskModel struct {
	ctx   context.Context
	store TaskCreator

	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	parentID *uint

	// State
	err           error
	validationErr string
	completed     bool
	cancelled     bool
	createdID     uint
	createdTitle  string
}

// NewAddTaskModel creates the form, pre-filled from flags or smart syntax
func NewAddTaskModel(ctx context.Context, store TaskCreator, prefill db.CreateTaskRequest) AddTaskModel {
	inputs := make([]textinput.Model, len(stepLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = mutedStyle
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	}

	inputs[StepTitle].Placeholder = "What needs doing? (required)"
	inputs[StepTitle].CharLimit = 200
	inputs[StepDescription].Placeholder = "Details (Enter to skip)"
	inputs[StepDescription].CharLimit = 500
	inputs[StepTaskType].Placeholder = "daily or monthly (Enter for daily)"
	inputs[StepTaskType].CharLimit = 10
	inputs[StepGoalType].Placeholder = "short or long (Enter for short-term)"
	inputs[StepGoalType].CharLimit = 12

	inputs[StepTitle].SetValue(prefill.Title)
	inputs[StepDescription].SetValue(prefill.Description)
	inputs[StepTaskType].SetValue(string(prefill.TaskType))
	inputs[StepGoalType].SetValue(string(prefill.GoalType))
	inputs[StepTitle].Focus()

	return AddTaskModel{
		ctx:      ctx,
		store:    store,
		inputs:   inputs,
		parentID: prefill.ParentID,
	}
}

// Init initializes the model
func (m AddTaskModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddTaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := m.width - 20
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 80 {
			inputWidth = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if m.currentStep == StepTitle && strings.TrimSpace(m.value(StepTitle)) == "" {
				m.validationErr = "Task title is required"
				return m, nil
			}
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m AddTaskModel) value(step Step) string {
	return strings.TrimSpace(m.inputs[step].Value())
}

// handleEnter validates the current field and moves on, or saves
func (m AddTaskModel) handleEnter() (AddTaskModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case StepTitle:
		if m.value(StepTitle) == "" {
			m.validationErr = "Task title is required"
			return m, nil
		}
	case StepTaskType:
		if v := m.value(StepTaskType); v != "" {
			if _, err := models.ParseTaskType(v); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
		}
	case StepGoalType:
		if v := m.value(StepGoalType); v != "" {
			goal, err := models.ParseGoalType(v)
			if err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
			if goal == models.GoalTypeLongTerm && m.parentID != nil {
				m.validationErr = "Long-term tasks cannot belong to another goal"
				return m, nil
			}
		}
	case StepSave:
		return m.createTask()
	}

	return m.nextStep()
}

// Request assembles the create request from the form fields
func (m AddTaskModel) Request() db.CreateTaskRequest {
	req := db.CreateTaskRequest{
		Title:       m.value(StepTitle),
		Description: m.value(StepDescription),
		ParentID:    m.parentID,
	}
	if t, err := models.ParseTaskType(m.value(StepTaskType)); err == nil {
		req.TaskType = t
	}
	if g, err := models.ParseGoalType(m.value(StepGoalType)); err == nil {
		req.GoalType = g
	}
	return req
}

func (m AddTaskModel) createTask() (AddTaskModel, tea.Cmd) {
	req := m.Request()
	id, err := m.store.AddTask(m.ctx, req)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.completed = true
	m.createdID = id
	m.createdTitle = req.Title
	return m, tea.Quit
}

func (m AddTaskModel) nextStep() (AddTaskModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

func (m AddTaskModel) prevStep() (AddTaskModel, tea.Cmd) {
	if m.currentStep > StepTitle {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// View renders the form
func (m AddTaskModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorShortTerm)).Render("New sticky note"))
	if m.parentID != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (sub-task of #%d)", *m.parentID)))
	}
	b.WriteString("\n\n")

	for i, label := range stepLabels {
		step := Step(i)
		labelStyle := mutedStyle
		if step == m.currentStep {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	saveStyle := mutedStyle
	if m.currentStep == StepSave {
		saveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSuccess))
	}
	b.WriteString(saveStyle.Render("[ Save ]"))
	b.WriteString("\n\n")

	if m.validationErr != "" {
		b.WriteString(errorStyle.Render(m.validationErr))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter next/save · tab/↓ next · shift+tab/↑ back · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

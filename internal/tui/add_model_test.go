package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/stickies/internal/db"
	"github.com/balkashynov/stickies/internal/models"
)

func asAdd(t *testing.T, m tea.Model) AddTaskModel {
	t.Helper()
	am, ok := m.(AddTaskModel)
	require.True(t, ok)
	return am
}

func TestAddFormCreatesTask(t *testing.T) {
	s := newTestStore(t)
	var m tea.Model = NewAddTaskModel(bg, s, db.CreateTaskRequest{})

	m = typeText(m, "Learn Go")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "tour and effective go")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "m")
	m, _ = m.Update(key("enter"))
	m = typeText(m, "long")
	m, _ = m.Update(key("enter"))
	require.Equal(t, StepSave, asAdd(t, m).currentStep)

	m, cmd := m.Update(key("enter"))
	am := asAdd(t, m)
	require.NoError(t, am.err)
	assert.True(t, am.completed)
	require.NotNil(t, cmd)

	task, err := s.GetTask(bg, am.createdID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", task.Title)
	assert.Equal(t, "tour and effective go", task.Description)
	assert.Equal(t, models.TaskTypeMonthly, task.TaskType)
	assert.Equal(t, models.GoalTypeLongTerm, task.GoalType)
}

func TestAddFormRequiresTitle(t *testing.T) {
	var m tea.Model = NewAddTaskModel(bg, newTestStore(t), db.CreateTaskRequest{})

	m, _ = m.Update(key("enter"))
	assert.Equal(t, StepTitle, asAdd(t, m).currentStep)
	assert.Equal(t, "Task title is required", asAdd(t, m).validationErr)

	m, _ = m.Update(key("down"))
	assert.Equal(t, StepTitle, asAdd(t, m).currentStep)
}

func TestAddFormRejectsBadTypes(t *testing.T) {
	var m tea.Model = NewAddTaskModel(bg, newTestStore(t), db.CreateTaskRequest{Title: "x"})

	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("enter"))
	m = typeText(m, "weekly")
	m, _ = m.Update(key("enter"))

	am := asAdd(t, m)
	assert.Equal(t, StepTaskType, am.currentStep)
	assert.Contains(t, am.validationErr, "invalid task type")
}

func TestAddFormPrefillAndParent(t *testing.T) {
	s := newTestStore(t)
	goal, err := s.AddTask(bg, db.CreateTaskRequest{Title: "Learn Go", GoalType: models.GoalTypeLongTerm})
	require.NoError(t, err)

	m := NewAddTaskModel(bg, s, db.CreateTaskRequest{
		Title:    "Read tour",
		TaskType: models.TaskTypeMonthly,
		ParentID: &goal,
	})
	req := m.Request()
	assert.Equal(t, "Read tour", req.Title)
	assert.Equal(t, models.TaskTypeMonthly, req.TaskType)
	assert.Empty(t, req.GoalType)
	require.NotNil(t, req.ParentID)

	// long-term goals cannot be nested
	var tm tea.Model = m
	for i := 0; i < 3; i++ {
		tm, _ = tm.Update(key("enter"))
	}
	tm = typeText(tm, "long")
	tm, _ = tm.Update(key("enter"))
	assert.Equal(t, StepGoalType, asAdd(t, tm).currentStep)
	assert.NotEmpty(t, asAdd(t, tm).validationErr)
}

func TestAddFormStoreErrorKeepsForm(t *testing.T) {
	s := newTestStore(t)
	missing := uint(42)
	var m tea.Model = NewAddTaskModel(bg, s, db.CreateTaskRequest{Title: "Orphan", ParentID: &missing})

	for i := 0; i < 5; i++ {
		m, _ = m.Update(key("enter"))
	}

	am := asAdd(t, m)
	assert.False(t, am.completed)
	assert.ErrorIs(t, am.err, db.ErrValidation)
	assert.Contains(t, am.View(), "Error:")
}

func TestAddFormCancel(t *testing.T) {
	var m tea.Model = NewAddTaskModel(bg, newTestStore(t), db.CreateTaskRequest{})

	m, cmd := m.Update(key("esc"))
	assert.True(t, asAdd(t, m).cancelled)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

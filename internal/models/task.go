package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskType is the informational cadence of a task
type TaskType string

// GoalType separates short-term tasks from long-term goals
type GoalType string

const (
	TaskTypeDaily   TaskType = "daily"
	TaskTypeMonthly TaskType = "monthly"

	GoalTypeShortTerm GoalType = "short-term"
	GoalTypeLongTerm  GoalType = "long-term"
)

// Task represents a sticky note. ParentID is only set on short-term tasks
// generated from a long-term goal.
type Task struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	TaskType    TaskType   `json:"task_type"`
	GoalType    GoalType   `json:"goal_type"`
	ParentID    *uint      `gorm:"index" json:"parent_id"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// IsLongTerm reports whether the task is a long-term goal
func (t Task) IsLongTerm() bool {
	return t.GoalType == GoalTypeLongTerm
}

// HasParent reports whether the task was generated from a long-term goal
func (t Task) HasParent() bool {
	return t.ParentID != nil
}

// ParseTaskType converts user input to a TaskType.
// Accepts "daily"/"d" and "monthly"/"m", case-insensitive.
func ParseTaskType(input string) (TaskType, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "daily", "d", "day":
		return TaskTypeDaily, nil
	case "monthly", "m", "month":
		return TaskTypeMonthly, nil
	default:
		return "", fmt.Errorf("invalid task type '%s'. Use: daily or monthly", input)
	}
}

// ParseGoalType converts user input to a GoalType.
// Accepts "short-term"/"short"/"s" and "long-term"/"long"/"l".
func ParseGoalType(input string) (GoalType, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "short-term", "short", "s", "shortterm", "short_term":
		return GoalTypeShortTerm, nil
	case "long-term", "long", "l", "longterm", "long_term":
		return GoalTypeLongTerm, nil
	default:
		return "", fmt.Errorf("invalid goal type '%s'. Use: short-term or long-term", input)
	}
}

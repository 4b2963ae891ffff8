package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/stickies/internal/models"
)

// ExportAll reads every task and every raw learning entry, in id order
func (s *Store) ExportAll(ctx context.Context) ([]models.Task, []models.LearningLog, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, nil, storageErr("export tasks", err)
	}

	var logs []models.LearningLog
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, nil, storageErr("export learning logs", err)
	}

	return tasks, logs, nil
}

// ReplaceAll swaps the local content for the given records in a single
// transaction, keeping their identifiers.
// Records that break a store rule are rejected before anything is changed.
func (s *Store) ReplaceAll(ctx context.Context, tasks []models.Task, logs []models.LearningLog) error {
	if err := ValidateRecords(tasks, logs); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&models.LearningLog{}).Error; err != nil {
			return err
		}

		if len(tasks) > 0 {
			if err := tx.Create(&tasks).Error; err != nil {
				return err
			}
		}
		if len(logs) > 0 {
			if err := tx.Create(&logs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("replace all", err)
	}

	s.logger.Infow("store content replaced", "tasks", len(tasks), "learning_logs", len(logs))
	return nil
}

// ValidateRecords checks imported records against the rules AddTask and
// AddLearningTime enforce. A parent_id must name a long-term task when that
// task is among the records; a parent missing from them is kept as the
// dangling reference DeleteTask leaves behind.
func ValidateRecords(tasks []models.Task, logs []models.LearningLog) error {
	byID := make(map[uint]models.Task, len(tasks))
	for _, t := range tasks {
		if t.ID == 0 {
			return invalid("task id", "must be set")
		}
		if _, dup := byID[t.ID]; dup {
			return invalid("task id", fmt.Sprintf("#%d appears twice", t.ID))
		}
		byID[t.ID] = t
	}

	for _, t := range tasks {
		field := func(name string) string { return fmt.Sprintf("task #%d %s", t.ID, name) }

		if strings.TrimSpace(t.Title) == "" {
			return invalid(field("title"), "must not be empty")
		}
		if t.TaskType != models.TaskTypeDaily && t.TaskType != models.TaskTypeMonthly {
			return invalid(field("task_type"), fmt.Sprintf("unknown value %q", t.TaskType))
		}
		if t.GoalType != models.GoalTypeShortTerm && t.GoalType != models.GoalTypeLongTerm {
			return invalid(field("goal_type"), fmt.Sprintf("unknown value %q", t.GoalType))
		}

		if t.ParentID != nil {
			if t.IsLongTerm() {
				return invalid(field("parent_id"), "long-term tasks cannot have a parent")
			}
			if parent, ok := byID[*t.ParentID]; ok && !parent.IsLongTerm() {
				return invalid(field("parent_id"), fmt.Sprintf("task #%d is not a long-term task", parent.ID))
			}
		}

		switch {
		case t.IsCompleted && t.CompletedAt == nil:
			return invalid(field("completed_at"), "must be set on a completed task")
		case !t.IsCompleted && t.CompletedAt != nil:
			return invalid(field("completed_at"), "must be empty on an open task")
		case t.CompletedAt != nil && t.CompletedAt.Before(t.CreatedAt):
			return invalid(field("completed_at"), "must not be before created_at")
		}
	}

	for i, l := range logs {
		if strings.TrimSpace(l.Domain) == "" {
			return invalid(fmt.Sprintf("learning entry %d domain", i+1), "must not be empty")
		}
		if l.Minutes <= 0 {
			return invalid(fmt.Sprintf("learning entry %d minutes", i+1), "must be a positive number")
		}
	}
	return nil
}

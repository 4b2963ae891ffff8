package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/stickies/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title       string
	Description string
	TaskType    models.TaskType // empty means daily
	GoalType    models.GoalType // empty means short-term
	ParentID    *uint           // only for short-term tasks generated from a long-term goal
}

// AddTask validates the request and inserts a new incomplete task.
// Returns the identifier assigned by the database.
func (s *Store) AddTask(ctx context.Context, req CreateTaskRequest) (uint, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return 0, invalid("title", "must not be empty")
	}

	taskType := req.TaskType
	if taskType == "" {
		taskType = models.TaskTypeDaily
	}
	if taskType != models.TaskTypeDaily && taskType != models.TaskTypeMonthly {
		return 0, invalid("task_type", fmt.Sprintf("unknown value %q", taskType))
	}

	goalType := req.GoalType
	if goalType == "" {
		goalType = models.GoalTypeShortTerm
	}
	if goalType != models.GoalTypeShortTerm && goalType != models.GoalTypeLongTerm {
		return 0, invalid("goal_type", fmt.Sprintf("unknown value %q", goalType))
	}

	if req.ParentID != nil && goalType == models.GoalTypeLongTerm {
		return 0, invalid("parent_id", "long-term tasks cannot have a parent")
	}

	task := models.Task{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		TaskType:    taskType,
		GoalType:    goalType,
		ParentID:    req.ParentID,
		CreatedAt:   s.now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.ParentID != nil {
			if err := checkParent(tx, *req.ParentID); err != nil {
				return err
			}
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return 0, err
		}
		return 0, storageErr("add task", err)
	}

	s.logger.Debugw("task added", "id", task.ID, "goal_type", task.GoalType, "parent_id", task.ParentID)
	return task.ID, nil
}

// checkParent verifies that parentID refers to an existing long-term task
func checkParent(tx *gorm.DB, parentID uint) error {
	var parent models.Task
	err := tx.First(&parent, parentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("parent_id", fmt.Sprintf("task #%d not found", parentID))
	}
	if err != nil {
		return err
	}
	if !parent.IsLongTerm() {
		return invalid("parent_id", fmt.Sprintf("task #%d is not a long-term task", parentID))
	}
	return nil
}

// AddSubTask generates a short-term task from a long-term goal.
// The child inherits the goal's description and task type; an empty title
// becomes "<goal title> - short-term".
func (s *Store) AddSubTask(ctx context.Context, parentID uint, title string) (uint, error) {
	parent, err := s.GetTask(ctx, parentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, invalid("parent_id", fmt.Sprintf("task #%d not found", parentID))
		}
		return 0, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = parent.Title + " - short-term"
	}

	return s.AddTask(ctx, CreateTaskRequest{
		Title:       title,
		Description: parent.Description,
		TaskType:    parent.TaskType,
		GoalType:    models.GoalTypeShortTerm,
		ParentID:    &parent.ID,
	})
}

// GetTask retrieves a task by ID
func (s *Store) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task #%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("get task", err)
	}
	return &task, nil
}

// GetTasks returns every task, or only incomplete ones unless includeCompleted
func (s *Store) GetTasks(ctx context.Context, includeCompleted bool) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	if !includeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, storageErr("get tasks", err)
	}
	return tasks, nil
}

// GetCompletedTasks returns all tasks marked as completed
func (s *Store) GetCompletedTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("is_completed = ?", true).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, storageErr("get completed tasks", err)
	}
	return tasks, nil
}

// CompleteTask marks a task as completed and stamps completed_at.
// Unknown ids and already completed tasks are left alone; completed_at is
// only ever stamped once.
func (s *Store) CompleteTask(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND is_completed = ?", id, false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": s.now(),
		})
	if res.Error != nil {
		return storageErr("complete task", res.Error)
	}

	s.logger.Debugw("task completed", "id", id, "changed", res.RowsAffected)
	return nil
}

// DeleteTask removes a task. Children keep their parent_id; unknown ids are a no-op.
func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return storageErr("delete task", res.Error)
	}

	s.logger.Debugw("task deleted", "id", id, "changed", res.RowsAffected)
	return nil
}

// DeleteCompletedTasks removes every completed task in one transaction.
// Returns the number of tasks removed.
func (s *Store) DeleteCompletedTasks(ctx context.Context) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("is_completed = ?", true).Delete(&models.Task{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, storageErr("delete completed tasks", err)
	}

	s.logger.Infow("completed tasks purged", "count", removed)
	return removed, nil
}

// GetChildren returns the tasks generated from parentID.
// With completedOnly set, only completed children are returned.
func (s *Store) GetChildren(ctx context.Context, parentID uint, completedOnly bool) ([]models.Task, error) {
	query := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("id ASC")
	if completedOnly {
		query = query.Where("is_completed = ?", true)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, storageErr("get children", err)
	}
	return tasks, nil
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchTasks does a case-insensitive substring match against title and
// description. % and _ in query are matched literally.
func (s *Store) SearchTasks(ctx context.Context, query string, includeCompleted bool) ([]models.Task, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"

	q := s.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id ASC")
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, storageErr("search tasks", err)
	}
	return tasks, nil
}

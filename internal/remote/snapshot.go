package remote

import (
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/stickies/internal/models"
)

// Snapshot is the full content of one local store at a point in time
type Snapshot struct {
	ID         string               `json:"id"`
	ExportedAt time.Time            `json:"exported_at"`
	Tasks      []models.Task        `json:"tasks"`
	Learning   []models.LearningLog `json:"learning"`
}

// NewSnapshot wraps exported records with a fresh id and timestamp
func NewSnapshot(tasks []models.Task, learning []models.LearningLog, now time.Time) *Snapshot {
	if tasks == nil {
		tasks = []models.Task{}
	}
	if learning == nil {
		learning = []models.LearningLog{}
	}
	return &Snapshot{
		ID:         uuid.New().String(),
		ExportedAt: now.UTC(),
		Tasks:      tasks,
		Learning:   learning,
	}
}

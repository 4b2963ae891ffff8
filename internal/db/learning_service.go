package db

import (
	"context"
	"strings"

	"github.com/balkashynov/stickies/internal/models"
)

// AddLearningTime appends one study record for domain
func (s *Store) AddLearningTime(ctx context.Context, domain string, minutes int) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return invalid("domain", "must not be empty")
	}
	if minutes <= 0 {
		return invalid("minutes", "must be a positive number")
	}

	entry := models.LearningLog{
		Domain:    domain,
		Minutes:   minutes,
		CreatedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return storageErr("add learning time", err)
	}

	s.logger.Debugw("learning time added", "domain", domain, "minutes", minutes)
	return nil
}

// GetLearningLogs returns total minutes per domain, sorted by domain.
// Domains without entries are simply absent.
func (s *Store) GetLearningLogs(ctx context.Context) ([]models.DomainTotal, error) {
	var totals []models.DomainTotal
	err := s.db.WithContext(ctx).
		Model(&models.LearningLog{}).
		Select("domain, SUM(minutes) AS total_minutes").
		Group("domain").
		Order("domain ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, storageErr("get learning logs", err)
	}
	return totals, nil
}

package models

import "time"

// LearningLog is one append-only study record
type LearningLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain    string    `gorm:"not null;index" json:"domain"`
	Minutes   int       `gorm:"not null" json:"minutes"`
	CreatedAt time.Time `json:"created_at"`
}

// DomainTotal is the aggregated study time for one domain
type DomainTotal struct {
	Domain       string `json:"domain"`
	TotalMinutes int    `json:"total_minutes"`
}

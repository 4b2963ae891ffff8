package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the handle to the local sticky-notes database. One Store per
// running application instance; callers must Close it on shutdown.
type Store struct {
	db     *gorm.DB
	path   string
	now    func() time.Time
	logger *zap.SugaredLogger
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the clock used for created_at / completed_at stamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for store diagnostics
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open sets up the database connection and runs migrations.
// An empty path falls back to DefaultPath.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		path = p
	}

	s := &Store{
		path:   path,
		now:    time.Now,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent), // Quiet by default
		NowFunc: func() time.Time { return s.now() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = gdb

	if err := s.runMigrations(context.Background()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s.logger.Debugw("store opened", "path", path)
	return s, nil
}

// DefaultPath returns the path to the SQLite database file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".stickies", "stickies.db"), nil
}

// schema keeps AUTOINCREMENT on both tables so identifiers are never reused
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		task_type TEXT NOT NULL DEFAULT 'daily',
		goal_type TEXT NOT NULL DEFAULT 'short-term',
		parent_id INTEGER,
		is_completed NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		completed_at DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent_id ON tasks(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_is_completed ON tasks(is_completed)`,
	`CREATE TABLE IF NOT EXISTS learning_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		minutes INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_learning_logs_domain ON learning_logs(domain)`,
}

// runMigrations creates the schema if it does not exist yet
func (s *Store) runMigrations(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schema {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Path returns the database file backing the store
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

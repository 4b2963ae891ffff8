package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all stickies settings
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Timer    TimerConfig    `mapstructure:"timer"`
}

// DatabaseConfig locates the local SQLite file
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures the diagnostic log
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty disables the file log
}

// PlannerConfig configures the AI planning client
type PlannerConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SyncConfig configures remote push/pull
type SyncConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
	Listen string `mapstructure:"listen"`
}

// TimerConfig holds pomodoro defaults
type TimerConfig struct {
	DefaultMinutes int `mapstructure:"default_minutes"`
}

// Dir returns ~/.stickies
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stickies"
	}
	return filepath.Join(home, ".stickies")
}

// DefaultPath returns the path of the global config file
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration
func Default() *Config {
	dir := Dir()
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "stickies.db")},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "logs", "stickies.log"),
		},
		Planner: PlannerConfig{
			BaseURL: "https://api.deepseek.com",
			Model:   "deepseek-chat",
			Timeout: 45 * time.Second,
		},
		Sync: SyncConfig{
			Listen: ":8765",
		},
		Timer: TimerConfig{DefaultMinutes: 25},
	}
}

// Load reads .env from the working directory, then the YAML config at path
// (DefaultPath when empty), then STICKIES_* environment overrides.
// A missing .env or config file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("STICKIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// The planner key is commonly exported under its provider name
	if cfg.Planner.APIKey == "" {
		cfg.Planner.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	}

	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("planner.api_key", d.Planner.APIKey)
	v.SetDefault("planner.base_url", d.Planner.BaseURL)
	v.SetDefault("planner.model", d.Planner.Model)
	v.SetDefault("planner.timeout", d.Planner.Timeout)
	v.SetDefault("sync.url", d.Sync.URL)
	v.SetDefault("sync.api_key", d.Sync.APIKey)
	v.SetDefault("sync.listen", d.Sync.Listen)
	v.SetDefault("timer.default_minutes", d.Timer.DefaultMinutes)
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("config: database.path must not be empty")
	}
	if c.Planner.Timeout <= 0 {
		return fmt.Errorf("config: planner.timeout must be positive, got %s", c.Planner.Timeout)
	}
	if c.Timer.DefaultMinutes <= 0 {
		return fmt.Errorf("config: timer.default_minutes must be positive, got %d", c.Timer.DefaultMinutes)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}

// Package config defines the run configuration and how it is loaded.
//
// Values are layered, lowest precedence first: built-in defaults, an optional
// YAML file, then PBP_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/pbp-scores/internal/schedule"
)

// Checkpoints configures the resampling grid
type Checkpoints struct {
	// Enabled turns resampling on. When off, events are exported at the time
	// they happened.
	Enabled bool `koanf:"enabled"`

	// Step is the grid spacing in minutes.
	Step float64 `koanf:"step"`

	// End is the last grid point in minutes. 40.75 covers regulation.
	End float64 `koanf:"end"`
}

// Config contains process configuration.
type Config struct {
	// ScoreboardURL is the per-day scoreboard page; ?date=YYYYMMDD is appended.
	ScoreboardURL string `koanf:"scoreboard_url"`

	// UserAgent is sent with every request.
	UserAgent string `koanf:"user_agent"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `koanf:"timeout"`

	// Retries is the number of extra attempts for a transient fetch failure.
	Retries int `koanf:"retries"`

	// Workers is the number of games fetched in parallel within a day.
	Workers int `koanf:"workers"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Output is the export path; "-" means stdout.
	Output string `koanf:"output"`

	// Format is the export format: csv or json.
	Format string `koanf:"format"`

	// MetricsFile, when set, receives the run's metrics in textfile format.
	MetricsFile string `koanf:"metrics_file"`

	Checkpoints Checkpoints `koanf:"checkpoints"`

	// Schedule maps tournament dates to round numbers.
	Schedule []schedule.Entry `koanf:"schedule"`
}

// Default values
const (
	DefaultScoreboardURL = "http://scores.espn.go.com/ncb/scoreboard"
	DefaultUserAgent     = "pbp-scores/1.0 (github.com/pfrederiksen/pbp-scores)"
	DefaultOutput        = "data/tournament_pbp.csv"
)

// New returns a Config holding the defaults. Schedule is left empty; Load
// fills it with schedule.DefaultEntries when no source provides one.
func New() *Config {
	return &Config{
		ScoreboardURL: DefaultScoreboardURL,
		UserAgent:     DefaultUserAgent,
		Timeout:       30 * time.Second,
		Retries:       3,
		Workers:       1,
		LogLevel:      "info",
		Output:        DefaultOutput,
		Format:        "csv",
		Checkpoints: Checkpoints{
			Enabled: true,
			Step:    0.25,
			End:     40.75,
		},
	}
}

// Validate checks the values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.ScoreboardURL == "" {
		return fmt.Errorf("%w: scoreboard_url must not be empty", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must be >= 0", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Format) {
	case "csv", "json":
	default:
		return fmt.Errorf("%w: format must be csv or json, got %q", ErrInvalidConfig, c.Format)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output must not be empty", ErrInvalidConfig)
	}
	if c.Checkpoints.Enabled && c.Checkpoints.Step <= 0 {
		return fmt.Errorf("%w: checkpoints.step must be positive", ErrInvalidConfig)
	}
	if c.Checkpoints.Enabled && c.Checkpoints.End < 0 {
		return fmt.Errorf("%w: checkpoints.end must be >= 0", ErrInvalidConfig)
	}
	if _, err := schedule.Build(c.Schedule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

type ImportOptions struct {
	ChunkSize int `env:"IMPORT_CHUNK_SIZE" envDefault:"50"`
}

type InviteOptions struct {
	URL           string        `env:"INVITE_URL,required"`
	Delay         time.Duration `env:"INVITE_DELAY" envDefault:"500ms"`
	RatePerSecond float64       `env:"INVITE_RATE_PER_SECOND" envDefault:"0"`
	Burst         int           `env:"INVITE_BURST" envDefault:"1"`
}

type EnrichmentOptions struct {
	GeocodeURL string        `env:"GEOCODE_URL"`
	Workers    int           `env:"ENRICHMENT_WORKERS" envDefault:"2"`
	QueueSize  int           `env:"ENRICHMENT_QUEUE_SIZE" envDefault:"1000"`
	Timeout    time.Duration `env:"ENRICHMENT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether imported appraisals are sent for geocoding.
func (e EnrichmentOptions) Enabled() bool {
	return e.GeocodeURL != ""
}

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	ProgressTTL    time.Duration `env:"PROGRESS_TTL" envDefault:"24h"`
	MaxUploadSize  string        `env:"MAX_UPLOAD_SIZE" envDefault:"10M"`
	FunctionsToken string        `env:"FUNCTIONS_TOKEN"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`

	Import     ImportOptions
	Invite     InviteOptions
	Enrichment EnrichmentOptions
}

// LoadEnvFiles loads the files that exist and reports how many were found.
func LoadEnvFiles(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads the optional env files and then the process environment.
func Load() (Config, error) {
	if _, err := LoadEnvFiles(DefaultEnvFiles); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}
	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Import.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("IMPORT_CHUNK_SIZE must be positive, got %d", c.Import.ChunkSize))
	}
	if c.Invite.Delay < 0 {
		errs = append(errs, fmt.Errorf("INVITE_DELAY must not be negative, got %s", c.Invite.Delay))
	}
	if c.Invite.RatePerSecond < 0 {
		errs = append(errs, fmt.Errorf("INVITE_RATE_PER_SECOND must not be negative, got %g", c.Invite.RatePerSecond))
	}
	if c.Enrichment.Workers <= 0 {
		errs = append(errs, fmt.Errorf("ENRICHMENT_WORKERS must be positive, got %d", c.Enrichment.Workers))
	}
	if c.Enrichment.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("ENRICHMENT_QUEUE_SIZE must be positive, got %d", c.Enrichment.QueueSize))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got '%s'", c.LogFormat))
	}
	return errors.Join(errs...)
}

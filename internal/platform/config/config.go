// Package config loads application configuration from environment variables.
// All variables use the STUDY_ prefix. A .env file in the working directory is
// read first when present; real environment variables win over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Progress backend names accepted by STUDY_PROGRESS_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Exam     ExamConfig
	Progress ProgressConfig
	Database DatabaseConfig
	Cache    CacheConfig
	SQLite   SQLiteConfig
	Scroll   ScrollConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	Host        string
	CORSOrigins []string
}

// AIConfig holds configuration for the generative-text service.
type AIConfig struct {
	Google GoogleConfig
}

// GoogleConfig holds Google Gemini provider settings.
// An empty APIKey is allowed; generation requests then fail with a
// configuration error instead of the server refusing to start.
type GoogleConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ExamConfig names the exam every prompt is framed around.
type ExamConfig struct {
	Name string
}

// ProgressConfig selects where completion flags and scroll offsets live.
type ProgressConfig struct {
	Backend   string
	Path      string // directory for the file backend
	Namespace string // key prefix for the redis backend
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Dragonfly/Redis connection settings.
type CacheConfig struct {
	URL string
}

// SQLiteConfig holds the sqlite database file location.
type SQLiteConfig struct {
	Path string
}

// ScrollConfig holds reading-progress timing.
type ScrollConfig struct {
	Debounce time.Duration
	Settle   time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// Load reads configuration from environment variables with STUDY_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        envInt("STUDY_SERVER_PORT", 8080),
			Host:        envStr("STUDY_SERVER_HOST", "0.0.0.0"),
			CORSOrigins: envList("STUDY_SERVER_CORS_ORIGINS", []string{"http://localhost:8080"}),
		},
		AI: AIConfig{
			Google: GoogleConfig{
				APIKey:  envStr("STUDY_AI_GOOGLE_API_KEY", ""),
				Model:   envStr("STUDY_AI_GOOGLE_MODEL", "gemini-2.5-flash"),
				BaseURL: envStr("STUDY_AI_GOOGLE_BASE_URL", ""),
			},
		},
		Exam: ExamConfig{
			Name: envStr("STUDY_EXAM_NAME", "JKSSB Finance Account Assistant"),
		},
		Progress: ProgressConfig{
			Backend:   envStr("STUDY_PROGRESS_BACKEND", BackendFile),
			Path:      envStr("STUDY_PROGRESS_PATH", "./data"),
			Namespace: envStr("STUDY_PROGRESS_NAMESPACE", "studymate"),
		},
		Database: DatabaseConfig{
			URL:      envStr("STUDY_DATABASE_URL", ""),
			MaxConns: envInt("STUDY_DATABASE_MAX_CONNS", 5),
			MinConns: envInt("STUDY_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL: envStr("STUDY_CACHE_URL", ""),
		},
		SQLite: SQLiteConfig{
			Path: envStr("STUDY_SQLITE_PATH", "studymate.db"),
		},
		Scroll: ScrollConfig{
			Debounce: envDuration("STUDY_SCROLL_DEBOUNCE", 500*time.Millisecond),
			Settle:   envDuration("STUDY_SCROLL_SETTLE", 100*time.Millisecond),
		},
		Log: LogConfig{
			Level:     envStr("STUDY_LOG_LEVEL", "info"),
			Format:    envStr("STUDY_LOG_FORMAT", "json"),
			AddSource: envBool("STUDY_LOG_SOURCE", false),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Progress.Backend {
	case BackendFile:
		if c.Progress.Path == "" {
			return fmt.Errorf("STUDY_PROGRESS_PATH is required for the file backend")
		}
	case BackendMemory:
	case BackendRedis:
		if c.Cache.URL == "" {
			return fmt.Errorf("STUDY_CACHE_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("STUDY_DATABASE_URL is required for the postgres backend")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("STUDY_SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("STUDY_PROGRESS_BACKEND must be one of file, memory, redis, postgres, sqlite, got %q", c.Progress.Backend)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("STUDY_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	if c.Scroll.Debounce <= 0 {
		return fmt.Errorf("STUDY_SCROLL_DEBOUNCE must be positive")
	}

	return nil
}

// HasAIProvider returns true if the Gemini credential is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.Google.APIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

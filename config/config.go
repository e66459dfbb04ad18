package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRandomURL is TheMealDB endpoint that returns one random meal per call.
const DefaultRandomURL = "https://www.themealdb.com/api/json/v1/1/random.php"

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	MealDB     MealDBConfig     `yaml:"mealdb"`
	Session    SessionConfig    `yaml:"session"`
	UI         UIConfig         `yaml:"ui"`
	Database   DatabaseConfig   `yaml:"database"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the diagnostics journal worker pool.
type WorkerPoolConfig struct {
	Size   int `yaml:"size"`
	Buffer int `yaml:"buffer"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port              int           `yaml:"port"`
	RateLimitPerSec   float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst    int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds   int           `yaml:"cache_ttl_seconds"`
	CacheTTL          time.Duration `yaml:"-"`
	SettleWaitMillis  int           `yaml:"settle_wait_millis"`
	SettleWait        time.Duration `yaml:"-"`
	RefreshSeconds    int           `yaml:"refresh_seconds"`
	ShutdownTimeoutMs int           `yaml:"shutdown_timeout_millis"`
}

// MealDBConfig describes how the random recipe endpoint is reached.
type MealDBConfig struct {
	URL            string            `yaml:"url"`
	HTTPProxy      string            `yaml:"http_proxy"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"`
}

// SessionConfig controls how long an idle viewer session is kept alive.
type SessionConfig struct {
	CookieName   string        `yaml:"cookie_name"`
	TTLSeconds   int           `yaml:"ttl_seconds"`
	TTL          time.Duration `yaml:"-"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

// UIConfig selects the label set used by the screen.
type UIConfig struct {
	Language string `yaml:"language"`
}

// DatabaseConfig holds the diagnostics database connection configuration.
type DatabaseConfig struct {
	Enabled                bool   `yaml:"enabled"`
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogSQL                 bool   `yaml:"log_sql"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with working defaults and derives the duration fields.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cfg.Server.SettleWaitMillis < 0 {
		cfg.Server.SettleWaitMillis = 0
	} else if cfg.Server.SettleWaitMillis == 0 {
		cfg.Server.SettleWaitMillis = 1500
	}
	cfg.Server.SettleWait = time.Duration(cfg.Server.SettleWaitMillis) * time.Millisecond
	if cfg.Server.RefreshSeconds <= 0 {
		cfg.Server.RefreshSeconds = 1
	}
	if cfg.Server.ShutdownTimeoutMs <= 0 {
		cfg.Server.ShutdownTimeoutMs = 5000
	}

	if cfg.MealDB.URL == "" {
		cfg.MealDB.URL = DefaultRandomURL
	}
	if cfg.MealDB.TimeoutSeconds <= 0 {
		cfg.MealDB.TimeoutSeconds = 30
	}
	cfg.MealDB.Timeout = time.Duration(cfg.MealDB.TimeoutSeconds) * time.Second

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "mealview_session"
	}
	if cfg.Session.TTLSeconds <= 0 {
		cfg.Session.TTLSeconds = 1800
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLSeconds) * time.Second

	if cfg.UI.Language == "" {
		cfg.UI.Language = "en"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	if cfg.WorkerPool.Buffer <= 0 {
		cfg.WorkerPool.Buffer = 64
	}
}

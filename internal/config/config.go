package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"melody-quest"`
	Version     string `env:"VERSION" envDefault:"dev"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/melodyquest.db"`

	DBUser           string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword       string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost           string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort           string        `env:"DB_PORT" envDefault:"5432"`
	DBName           string        `env:"DB_NAME" envDefault:"melodyquest"`
	DBMaxConns       int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxIdleTime    time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	DBMaxLifetime    time.Duration `env:"DB_MAX_LIFETIME" envDefault:"30m"`
	StorageCacheSize int           `env:"STORAGE_CACHE_SIZE" envDefault:"4096"`
	StorageCacheTTL  time.Duration `env:"STORAGE_CACHE_TTL" envDefault:"10m"`

	ExperienceFile      string        `env:"EXPERIENCE_FILE" envDefault:"configs/experience.json"`
	PlayerCacheSize     int           `env:"PLAYER_CACHE_SIZE" envDefault:"1024"`
	PlayerCacheTTL      time.Duration `env:"PLAYER_CACHE_TTL" envDefault:"2h"`
	CaptureFrameTimeout time.Duration `env:"CAPTURE_FRAME_TIMEOUT" envDefault:"30s"`
	ProbeInterval       time.Duration `env:"PROBE_INTERVAL" envDefault:"30s"`

	// DebugAPIKey guards the debug routes; empty disables them
	DebugAPIKey    string   `env:"DEBUG_API_KEY"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return c.connString(c.DBName)
}

// GetServerConnString targets the server's maintenance database, for
// creating DB_NAME
func (c *Config) GetServerConnString() string {
	return c.connString("postgres")
}

func (c *Config) connString(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		dbName,
	)
}

// StorageOptions returns the options for storage.Open
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:      c.StorageDriver,
		SQLitePath:  c.SQLitePath,
		PostgresURL: c.GetDBConnString(),
		MaxConns:    c.DBMaxConns,
		MaxIdleTime: c.DBMaxIdleTime,
		MaxLifetime: c.DBMaxLifetime,
		CacheSize:   c.StorageCacheSize,
		CacheTTL:    c.StorageCacheTTL,
	}
}

// LoggerConfig returns the logger settings
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, false)
}

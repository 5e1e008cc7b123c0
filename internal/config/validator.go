package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if !slices.Contains(StorageDrivers, c.StorageDriver) {
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be one of %s, got %q", strings.Join(StorageDrivers, ", "), c.StorageDriver))
	}
	if !slices.Contains(LogFormats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of %s, got %q", strings.Join(LogFormats, ", "), c.LogFormat))
	}
	if c.StorageDriver == "sqlite" && c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH must be set for the sqlite driver"))
	}
	if c.ExperienceFile == "" {
		errs = append(errs, errors.New("EXPERIENCE_FILE must be set"))
	}
	if c.PlayerCacheSize < 1 {
		errs = append(errs, fmt.Errorf("PLAYER_CACHE_SIZE must be positive, got %d", c.PlayerCacheSize))
	}
	if c.PlayerCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("PLAYER_CACHE_TTL must be positive, got %s", c.PlayerCacheTTL))
	}
	if c.CaptureFrameTimeout <= 0 {
		errs = append(errs, fmt.Errorf("CAPTURE_FRAME_TIMEOUT must be positive, got %s", c.CaptureFrameTimeout))
	}
	if c.ProbeInterval <= 0 {
		errs = append(errs, fmt.Errorf("PROBE_INTERVAL must be positive, got %s", c.ProbeInterval))
	}
	if c.DBMaxConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}

	return errors.Join(errs...)
}

// Warnings returns non-fatal issues such as example credentials in production
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StorageDriver == "postgres" && c.Environment == "production" && c.DBPassword == "postgres" {
		warnings = append(warnings, "DB_PASSWORD is the default value in production - please use a secure password")
	}
	if c.DebugAPIKey != "" && c.Environment == "production" {
		warnings = append(warnings, "DEBUG_API_KEY is set in production - debug navigation is reachable")
	}
	if c.StorageDriver == "memory" && c.Environment == "production" {
		warnings = append(warnings, "STORAGE_DRIVER is memory in production - progress is lost on restart")
	}

	return warnings
}

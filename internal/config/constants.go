package config

const (
	// ConfigPathExperience is the default experience definition
	ConfigPathExperience = "configs/experience.json"
)

// Storage drivers accepted in STORAGE_DRIVER
var StorageDrivers = []string{"memory", "sqlite", "postgres"}

// Log formats accepted in LOG_FORMAT
var LogFormats = []string{"text", "json"}

package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept beside the new session
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStartingMelodyQuest  = "Starting MelodyQuest"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgConfigurationWarning = "Configuration warning"
	LogMsgFailedCreateLogsDir  = "failed to create logs directory"
	LogMsgFailedOpenLogFile    = "failed to open log file"
	LogMsgFailedDeleteOldLog   = "Failed to delete old log file"
)

// =============================================================================
// Startup
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
	LogMsgStorageOpened              = "Storage opened"
	LogMsgExperienceLoaded           = "Experience loaded"
	LogMsgBackgroundJobsStarted      = "Background jobs started"

	ErrMsgFailedOpenStorage    = "failed to open storage"
	ErrMsgFailedLoadExperience = "failed to load experience"
)

// Background job pool sizing
const (
	BackgroundWorkers   = 1
	BackgroundQueueSize = 4
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgPlayersReleased      = "Players released"
	LogMsgStorageCloseFailed   = "Storage close failed"
	LogMsgServerStopped        = "Server stopped"
)

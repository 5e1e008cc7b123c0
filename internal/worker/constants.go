package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgJobDropped is logged when the queue is full
const LogMsgJobDropped = "Worker queue full, job dropped"

// ============================================================================
// Log Messages - Probes
// ============================================================================

const (
	LogMsgStorageDown      = "Storage probe failed"
	LogMsgStorageRecovered = "Storage probe recovered"
)

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultJobTimeout bounds one job run
	DefaultJobTimeout = 10 * time.Second

	// StorageProbeTimeout bounds one storage ping
	StorageProbeTimeout = 2 * time.Second
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount = 2
	TestQueueSize   = 10
)

package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Stale Pending Sweeper
// ============================================================================

// Log messages for the pending spin sweeper
const (
	LogMsgSweepStarting      = "Pending spin sweep starting"
	LogMsgSweepCompleted     = "Pending spin sweep completed"
	LogMsgSweepFailed        = "Pending spin sweep failed"
	LogMsgStalePendingFound  = "Stale pending spins detected"
	LogMsgSweeperShutDown    = "Pending spin sweeper shut down"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)

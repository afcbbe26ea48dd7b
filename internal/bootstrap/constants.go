package bootstrap

import "time"

// Log file rotation
const (
	LogFileMaxSizeMB  = 50
	LogFileMaxBackups = 9
	LogFileMaxAgeDays = 28
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLootLoop    = "Starting LootLoop"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Storage
const (
	// SaveJobTimeout bounds a single background save
	SaveJobTimeout = 10 * time.Second

	LogMsgStorageReady           = "Storage initialized"
	LogMsgEventStreamInitialized = "Event stream initialized"
	ErrMsgFailedOpenDB           = "failed to open save database"
	ErrMsgFailedLoadCatalog      = "failed to load catalogs"
	ErrMsgFailedLoadTuning       = "failed to load tuning"
	ErrMsgFailedSubGames         = "failed to create sub-game service"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgClosingEventStreams  = "Closing event streams"
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgSubGamesFailed       = "Sub-game shutdown failed"
	LogMsgSavePoolFailed       = "Save pool shutdown failed"
	LogMsgFlushFailed          = "Final save flush failed"
	LogMsgDBCloseFailed        = "Database close failed"
	LogMsgFlushedSaves         = "Pending saves flushed"
)

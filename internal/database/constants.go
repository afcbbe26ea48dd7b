package database

// Connection settings
const (
	// DriverName is the database/sql name registered by modernc.org/sqlite
	DriverName = "sqlite"

	// DSNPragmas are appended to every file path
	DSNPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	// MaxOpenConnections serializes writers; SQLite allows one at a time
	MaxOpenConnections = 1
)

// Error Messages - Database Operations
const (
	ErrMsgPathRequired         = "database path is required"
	ErrMsgFailedToCreateDir    = "failed to create database directory"
	ErrMsgFailedToOpenDatabase = "failed to open database"
	ErrMsgFailedToPingDatabase = "failed to ping database"
	ErrMsgFailedToApplySchema  = "failed to apply schema"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)

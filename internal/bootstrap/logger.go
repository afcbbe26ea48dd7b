package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/LootLoop_Go/internal/config"
	"github.com/osse101/LootLoop_Go/internal/logger"
)

// SetupLogger installs the process logger from configuration. When LogFile
// is set output is also written to a rotated file; the returned closer
// releases it.
func SetupLogger(cfg *config.Config) io.Closer {
	// source locations only outside production
	lc := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, cfg.Version, cfg.Environment, !cfg.IsProduction())
	if cfg.LogFile != "" {
		lc = lc.WithFile(cfg.LogFile, LogFileMaxSizeMB, LogFileMaxBackups, LogFileMaxAgeDays)
	}
	closer := logger.InitLogger(lc)

	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel(), "file", cfg.LogFile)
	slog.Info(LogMsgStartingLootLoop,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_path", cfg.DBPath,
		"port", cfg.Port,
		"tuning_file", cfg.TuningFile,
		"save_workers", cfg.SaveWorkers)

	return closer
}

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/osse101/LootLoop_Go/internal/config"
	"github.com/osse101/LootLoop_Go/internal/database"
	"github.com/osse101/LootLoop_Go/internal/database/sqlite"
	"github.com/osse101/LootLoop_Go/internal/progress"
	"github.com/osse101/LootLoop_Go/internal/save"
	"github.com/osse101/LootLoop_Go/internal/scheduler"
	"github.com/osse101/LootLoop_Go/internal/worker"
)

// Storage is the persistence stack: the SQLite save store, the background
// pool writing to it, and the progress store mirrored through them.
type Storage struct {
	DB       *sql.DB
	Saves    *sqlite.Store
	Pool     *worker.Pool
	Mirror   *save.Mirror
	Progress *progress.Store
	Flusher  *scheduler.Scheduler
}

// OpenStorage opens the save database and starts the write-behind pool.
// Progress loads lazily from the database and every commit is mirrored back.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDB, err)
	}

	saves := sqlite.NewStore(db)
	pool := worker.NewPool(cfg.SaveWorkers, cfg.SaveQueueSize, SaveJobTimeout)
	pool.Start()

	mirror := save.NewMirror(saves, pool)
	store := progress.NewStore(save.NewLoader(saves), mirror)

	// writes deferred by a full queue are retried on the next flush
	flusher := scheduler.New(pool)
	if cfg.SaveFlushInterval > 0 {
		flusher.Schedule("save-flush", cfg.SaveFlushInterval, worker.JobFunc(mirror.Flush))
	}

	slog.Info(LogMsgStorageReady, "db_path", cfg.DBPath, "save_workers", cfg.SaveWorkers)

	return &Storage{
		DB:       db,
		Saves:    saves,
		Pool:     pool,
		Mirror:   mirror,
		Progress: store,
		Flusher:  flusher,
	}, nil
}

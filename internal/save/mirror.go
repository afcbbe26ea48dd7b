package save

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/logger"
	"github.com/osse101/LootLoop_Go/internal/metrics"
	"github.com/osse101/LootLoop_Go/internal/worker"
)

// Enqueuer is the part of worker.Pool the mirror needs.
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Mirror writes progress snapshots behind the caller. At most one write per
// player is queued and at most one is in flight; later snapshots replace the
// pending one and are drained by the in-flight writer.
type Mirror struct {
	store Store
	pool  Enqueuer
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]domain.Progress
	queued  map[string]bool
	writing map[string]bool
}

// NewMirror creates a mirror writing to store through pool.
func NewMirror(store Store, pool Enqueuer) *Mirror {
	return &Mirror{
		store:   store,
		pool:    pool,
		now:     time.Now,
		pending: make(map[string]domain.Progress),
		queued:  make(map[string]bool),
		writing: make(map[string]bool),
	}
}

// Changed records a committed snapshot and schedules its write.
func (m *Mirror) Changed(playerID string, snapshot domain.Progress) {
	m.mu.Lock()
	if _, superseded := m.pending[playerID]; superseded {
		metrics.SavesDropped.Inc()
	}
	m.pending[playerID] = snapshot
	if m.queued[playerID] {
		m.mu.Unlock()
		return
	}
	m.queued[playerID] = true
	m.mu.Unlock()

	if !m.pool.TryEnqueue(worker.JobFunc(func(ctx context.Context) error {
		return m.write(ctx, playerID)
	})) {
		// left pending; the next change or Flush picks it up
		m.mu.Lock()
		m.queued[playerID] = false
		m.mu.Unlock()
		logger.Warn("Save queue full, deferring write", "player_id", playerID)
	}
}

// Flush synchronously writes every pending snapshot. Players with a write
// already in flight are left to that writer.
func (m *Mirror) Flush(ctx context.Context) error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.write(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pending reports how many players have unwritten snapshots.
func (m *Mirror) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// write drains the player's pending snapshots one Put at a time. A second
// caller for the same player returns at once and leaves the draining to the
// writer already running.
func (m *Mirror) write(ctx context.Context, playerID string) error {
	m.mu.Lock()
	m.queued[playerID] = false
	if m.writing[playerID] {
		m.mu.Unlock()
		return nil
	}
	m.writing[playerID] = true
	m.mu.Unlock()

	for {
		m.mu.Lock()
		snapshot, ok := m.pending[playerID]
		if !ok {
			delete(m.writing, playerID)
			m.mu.Unlock()
			return nil
		}
		delete(m.pending, playerID)
		m.mu.Unlock()

		if err := m.put(ctx, playerID, snapshot); err != nil {
			metrics.SaveErrors.Inc()
			m.mu.Lock()
			// anything pending now is newer than the failed snapshot
			if _, newer := m.pending[playerID]; !newer {
				m.pending[playerID] = snapshot
			}
			delete(m.writing, playerID)
			m.mu.Unlock()
			return fmt.Errorf("failed to save progress for %s: %w", playerID, err)
		}
		metrics.SavesTotal.Inc()
	}
}

func (m *Mirror) put(ctx context.Context, playerID string, snapshot domain.Progress) error {
	raw, err := Encode(playerID, snapshot, m.now())
	if err != nil {
		return err
	}
	return m.store.Put(ctx, Key(playerID), raw)
}

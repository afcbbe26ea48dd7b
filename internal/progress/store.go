// Package progress owns the in-memory player aggregates. Every mutation goes
// through Update so overlapping manual and automatic actions never lose writes.
package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/LootLoop_Go/internal/concurrency"
	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/logger"
)

// Loader hydrates a player the first time they are touched.
// It returns domain.ErrPlayerNotFound for unknown players.
type Loader interface {
	Load(ctx context.Context, playerID string) (domain.Progress, error)
}

// Observer is told about every committed aggregate, in commit order. It runs
// with the player's lock held and must not call back into the Store.
type Observer interface {
	Changed(playerID string, snapshot domain.Progress)
}

// UpdateFunc maps the previous aggregate to the next one. Returning an error
// discards the change.
type UpdateFunc func(prev domain.Progress) (domain.Progress, error)

// Store serializes read-modify-write per player.
type Store struct {
	locks    *concurrency.LockManager
	loader   Loader
	mu       sync.RWMutex
	players  map[string]domain.Progress
	observer []Observer
}

// NewStore creates a store. loader may be nil for a purely in-memory store.
func NewStore(loader Loader, observers ...Observer) *Store {
	return &Store{
		locks:    concurrency.NewLockManager(),
		loader:   loader,
		players:  make(map[string]domain.Progress),
		observer: observers,
	}
}

// Get returns a copy of the player's aggregate.
func (s *Store) Get(ctx context.Context, playerID string) (domain.Progress, error) {
	var out domain.Progress
	err := s.View(ctx, playerID, func(p domain.Progress) {
		out = p
	})
	return out, err
}

// View calls fn with a copy of the committed aggregate while holding the
// player's lock, so fn is ordered with observer notifications. Like an
// Observer, fn must not call back into the Store.
func (s *Store) View(ctx context.Context, playerID string, fn func(domain.Progress)) error {
	return s.locks.WithLock(playerID, func() error {
		p, err := s.current(ctx, playerID)
		if err != nil {
			return err
		}
		fn(p.Clone())
		return nil
	})
}

// Update applies fn atomically for the player and notifies observers with the
// committed snapshot.
func (s *Store) Update(ctx context.Context, playerID string, fn UpdateFunc) (domain.Progress, error) {
	if playerID == "" {
		return domain.Progress{}, fmt.Errorf("%w: empty player id", domain.ErrInvalidInput)
	}

	var committed domain.Progress
	err := s.locks.WithLock(playerID, func() error {
		prev, err := s.current(ctx, playerID)
		if err != nil {
			return err
		}
		next, err := fn(prev.Clone())
		if err != nil {
			return err
		}

		s.mu.Lock()
		s.players[playerID] = next
		s.mu.Unlock()

		committed = next.Clone()

		// notified under the player lock so observers see commits in order
		s.mu.RLock()
		observers := s.observer
		s.mu.RUnlock()
		for _, o := range observers {
			o.Changed(playerID, committed.Clone())
		}
		return nil
	})
	if err != nil {
		return domain.Progress{}, err
	}
	return committed, nil
}

// Observe registers another observer for committed changes.
func (s *Store) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = append(s.observer[:len(s.observer):len(s.observer)], o)
}

// Players lists the ids currently held in memory.
func (s *Store) Players() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.players))
	for id := range s.players {
		out = append(out, id)
	}
	return out
}

// current must be called with the player's lock held.
func (s *Store) current(ctx context.Context, playerID string) (domain.Progress, error) {
	s.mu.RLock()
	p, ok := s.players[playerID]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	p = domain.NewProgress()
	if s.loader != nil {
		loaded, err := s.loader.Load(ctx, playerID)
		switch {
		case err == nil:
			p = normalize(loaded)
		case errors.Is(err, domain.ErrPlayerNotFound):
			logger.FromContext(ctx).Debug("Starting fresh progress", "player_id", playerID)
		default:
			return domain.Progress{}, fmt.Errorf("failed to load progress for %s: %w", playerID, err)
		}
	}

	s.mu.Lock()
	s.players[playerID] = p
	s.mu.Unlock()
	return p, nil
}

// normalize fills nil collections from older saves.
func normalize(p domain.Progress) domain.Progress {
	fresh := domain.NewProgress()
	if p.Stats.Levels == nil {
		p.Stats.Levels = fresh.Stats.Levels
	}
	if p.Loot == nil {
		p.Loot = fresh.Loot
	}
	for _, sg := range domain.AllSubGames() {
		if inv, _ := p.Resources(sg); inv == nil {
			_ = p.SetResources(sg, []domain.ResourceSlot{})
		}
	}
	return p
}

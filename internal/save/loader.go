package save

import (
	"context"
	"fmt"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// Loader reads player progress back out of a Store.
type Loader struct {
	store Store
}

// NewLoader creates a loader over store.
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// Load returns the saved progress or domain.ErrPlayerNotFound.
func (l *Loader) Load(ctx context.Context, playerID string) (domain.Progress, error) {
	raw, ok, err := l.store.Get(ctx, Key(playerID))
	if err != nil {
		return domain.Progress{}, fmt.Errorf("failed to read save for %s: %w", playerID, err)
	}
	if !ok {
		return domain.Progress{}, domain.ErrPlayerNotFound
	}
	st, err := Decode(raw)
	if err != nil {
		return domain.Progress{}, err
	}
	return st.Progress, nil
}

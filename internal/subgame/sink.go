package subgame

import (
	"context"
	"time"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/inventory"
	"github.com/osse101/LootLoop_Go/internal/progress"
)

// storeSink commits a controller's drops into one player's aggregate.
type storeSink struct {
	store    *progress.Store
	playerID string
	now      func() time.Time
}

func (s *storeSink) Commit(ctx context.Context, sg domain.SubGame, counts map[int]int, credits int) error {
	_, err := s.store.Update(ctx, s.playerID, func(prev domain.Progress) (domain.Progress, error) {
		inv, err := prev.Resources(sg)
		if err != nil {
			return prev, err
		}
		if err := prev.SetResources(sg, inventory.MergeResources(inv, counts, s.now())); err != nil {
			return prev, err
		}
		prev.Stats.GachaCredits += int64(credits)
		return prev, nil
	})
	return err
}

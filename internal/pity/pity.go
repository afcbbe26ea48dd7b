// Package pity implements the entropy counter that guarantees a boosted roll
// after a run of non-qualifying results.
package pity

import "github.com/osse101/LootLoop_Go/internal/domain"

const (
	// Threshold is the entropy at which the next batch opens with a pity roll.
	Threshold = 1000

	// Multiplier scales normal luck on the pity roll.
	Multiplier = 500
)

// State classifies an entropy value.
type State int

const (
	StateNormal State = iota
	StatePrimed
)

func (s State) String() string {
	if s == StatePrimed {
		return "primed"
	}
	return "normal"
}

// Classify returns Primed once entropy reaches Threshold.
func Classify(entropy int) State {
	if entropy >= Threshold {
		return StatePrimed
	}
	return StateNormal
}

// Next is the single entropy transition. A qualifying result or a consumed
// pity roll resets to zero; anything else increments, capped at Threshold.
func Next(entropy int, qualifying, consumedPity bool) int {
	if qualifying || consumedPity {
		return 0
	}
	if entropy < 0 {
		entropy = 0
	}
	if entropy >= Threshold {
		return Threshold
	}
	return entropy + 1
}

// Luck returns the luck to roll with.
func Luck(normal float64, usePity bool) float64 {
	if usePity {
		return normal * Multiplier
	}
	return normal
}

// Batch walks one batch of rolls. Only the first roll of a batch that starts
// Primed consumes pity; the rest use normal luck.
type Batch struct {
	entropy  int
	index    int
	consumed bool
	pityUsed bool
}

// NewBatch starts a batch from the stored entropy.
func NewBatch(entropy int) *Batch {
	if entropy < 0 {
		entropy = 0
	}
	if entropy > Threshold {
		entropy = Threshold
	}
	return &Batch{entropy: entropy}
}

// LuckFor returns the luck for the next roll and whether it is the pity roll.
func (b *Batch) LuckFor(normal float64) (float64, bool) {
	usePity := b.index == 0 && Classify(b.entropy) == StatePrimed
	b.consumed = usePity
	if usePity {
		b.pityUsed = true
	}
	return Luck(normal, usePity), usePity
}

// Record applies the roll's outcome. Call once after every LuckFor.
func (b *Batch) Record(rarity domain.RarityID) {
	b.entropy = Next(b.entropy, rarity.Qualifies(), b.consumed)
	b.consumed = false
	b.index++
}

// Entropy is the running entropy after the rolls recorded so far.
func (b *Batch) Entropy() int {
	return b.entropy
}

// PityUsed reports whether this batch consumed pity.
func (b *Batch) PityUsed() bool {
	return b.pityUsed
}

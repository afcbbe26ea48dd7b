// Package script arms deterministic drop overrides for debugging and tests.
package script

import (
	"sync"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// Checker is consulted by resolvers strictly before any randomness is drawn.
type Checker interface {
	CheckScript(category domain.Category) (string, bool)
}

type armed struct {
	target   string
	category domain.Category
	rounds   int
}

// Registry holds at most one armed override.
type Registry struct {
	mu      sync.Mutex
	current *armed
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// SetScript arms "deliver target on the rounds-th matching call for category".
// rounds below 1 fire on the next call. Arming replaces any previous override.
func (r *Registry) SetScript(target string, category domain.Category, rounds int) {
	if rounds < 1 {
		rounds = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &armed{target: target, category: category, rounds: rounds}
}

// Clear disarms any pending override.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// Pending reports the armed target, category and remaining rounds.
func (r *Registry) Pending() (target string, category domain.Category, rounds int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return "", "", 0, false
	}
	return r.current.target, r.current.category, r.current.rounds, true
}

// CheckScript counts down only on a category match and returns the target
// once, on the call that reaches zero, disarming the override.
func (r *Registry) CheckScript(category domain.Category) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.category != category {
		return "", false
	}
	r.current.rounds--
	if r.current.rounds > 0 {
		return "", false
	}
	target := r.current.target
	r.current = nil
	return target, true
}

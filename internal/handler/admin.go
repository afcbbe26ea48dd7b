package handler

import (
	"context"
	"net/http"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/logger"
	"github.com/osse101/LootLoop_Go/internal/luck"
	"github.com/osse101/LootLoop_Go/internal/progress"
)

// ScriptRegistry arms debug overrides
type ScriptRegistry interface {
	SetScript(target string, category domain.Category, rounds int)
	Clear()
	Pending() (target string, category domain.Category, rounds int, ok bool)
}

// ProgressUpdater applies atomic changes to a player's aggregate
type ProgressUpdater interface {
	Update(ctx context.Context, playerID string, fn progress.UpdateFunc) (domain.Progress, error)
}

// BonusSetter replaces a player's external bonus
type BonusSetter interface {
	Set(playerID string, subGame domain.SubGame, b luck.Bonus)
}

// Refresher recomputes a player's live loop configuration
type Refresher interface {
	Refresh(ctx context.Context, playerID string) error
}

// ScriptRequest arms a forced result
type ScriptRequest struct {
	Target   string `json:"target" validate:"required,max=100"`
	Category string `json:"category" validate:"required,category"`
	Rounds   int    `json:"rounds" validate:"omitempty,min=1,max=1000"`
}

// ScriptStatus describes the armed script, if any
type ScriptStatus struct {
	Armed    bool   `json:"armed"`
	Target   string `json:"target,omitempty"`
	Category string `json:"category,omitempty"`
	Rounds   int    `json:"rounds,omitempty"`
}

// LevelsRequest sets upgrade levels on one track. Omitted fields are untouched.
type LevelsRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Track    string `json:"track" validate:"required,track"`
	Luck     *int   `json:"luck" validate:"omitempty,min=0,max=10000"`
	Speed    *int   `json:"speed" validate:"omitempty,min=0,max=10000"`
	Multi    *int   `json:"multi" validate:"omitempty,min=0,max=10000"`
	Prestige *int   `json:"prestige" validate:"omitempty,min=0,max=10000"`
}

// BonusRequest replaces a player's bonus on one track
type BonusRequest struct {
	PlayerID   string  `json:"player_id" validate:"required,max=64"`
	Track      string  `json:"track" validate:"required,track"`
	BonusLuck  float64 `json:"bonus_luck" validate:"gte=0"`
	BonusSpeed float64 `json:"bonus_speed" validate:"gte=0"`
	BonusMulti float64 `json:"bonus_multi" validate:"gte=0"`
}

// HandleSetScript arms a scripted result for the next matching draw
func HandleSetScript(scripts ScriptRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScriptRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set script"); err != nil {
			return
		}

		scripts.SetScript(req.Target, domain.Category(req.Category), req.Rounds)
		logger.FromContext(r.Context()).Info("Script armed", "target", req.Target, "category", req.Category, "rounds", req.Rounds)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgScriptArmed})
	}
}

// HandleGetScript reports the armed script
func HandleGetScript(scripts ScriptRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, category, rounds, ok := scripts.Pending()
		if !ok {
			respondJSON(w, http.StatusOK, ScriptStatus{})
			return
		}
		respondJSON(w, http.StatusOK, ScriptStatus{Armed: true, Target: target, Category: string(category), Rounds: rounds})
	}
}

// HandleClearScript disarms any script
func HandleClearScript(scripts ScriptRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scripts.Clear()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgScriptCleared})
	}
}

// HandleSetLevels overwrites upgrade levels. The commit reconfigures any
// running loops through the progress observers.
func HandleSetLevels(store ProgressUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LevelsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set levels"); err != nil {
			return
		}

		track := domain.SubGame(req.Track)
		p, err := store.Update(r.Context(), req.PlayerID, func(prev domain.Progress) (domain.Progress, error) {
			set := func(kind string, v *int) {
				if v != nil {
					prev.Stats.Levels[domain.LevelKey(track, kind)] = *v
				}
			}
			set(domain.LevelLuck, req.Luck)
			set(domain.LevelSpeed, req.Speed)
			set(domain.LevelMulti, req.Multi)
			if req.Prestige != nil {
				prev.Stats.Prestige = *req.Prestige
			}
			return prev, nil
		})
		if err != nil {
			respondServiceError(w, r, ErrMsgSetLevelsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgLevelsUpdated, Data: p.Stats})
	}
}

// HandleSetBonus replaces a player's external bonus and refreshes their loops
func HandleSetBonus(bonuses BonusSetter, loops Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BonusRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set bonus"); err != nil {
			return
		}

		bonuses.Set(req.PlayerID, domain.SubGame(req.Track), luck.Bonus{
			BonusLuck:  req.BonusLuck,
			BonusSpeed: req.BonusSpeed,
			BonusMulti: req.BonusMulti,
		})
		if err := loops.Refresh(r.Context(), req.PlayerID); err != nil {
			respondServiceError(w, r, ErrMsgSetBonusFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBonusUpdated})
	}
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/subgame"
)

// SubGameRequest names the acting player
type SubGameRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
}

// ToggleRequest sets a boolean flag; Enabled must be present
type ToggleRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	Enabled  *bool  `json:"enabled" validate:"required"`
}

// ResourceLockRequest toggles protection on a resource row
type ResourceLockRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	ID       int    `json:"id" validate:"min=1"`
	Locked   bool   `json:"locked"`
}

// ConsumeRequest spends resources
type ConsumeRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	ID       int    `json:"id" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// ConsumeResponse reports the remaining count
type ConsumeResponse struct {
	Remaining int `json:"remaining"`
}

func subGameParam(r *http.Request) domain.SubGame {
	return domain.SubGame(chi.URLParam(r, "name"))
}

// HandleSubGameAction performs one manual action
func HandleSubGameAction(svc subgame.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubGameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sub-game action"); err != nil {
			return
		}

		summary, err := svc.Act(r.Context(), req.PlayerID, subGameParam(r))
		if err != nil {
			respondServiceError(w, r, ErrMsgSubGameActionFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleSubGameStatus reports one controller's state
func HandleSubGameStatus(svc subgame.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		status, err := svc.Status(r.Context(), playerID, subGameParam(r))
		if err != nil {
			respondServiceError(w, r, ErrMsgSubGameUpdateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleSetAuto arms or disarms a sub-game's timer
func HandleSetAuto(svc subgame.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set auto"); err != nil {
			return
		}

		status, err := svc.SetAuto(r.Context(), req.PlayerID, subGameParam(r), *req.Enabled)
		if err != nil {
			respondServiceError(w, r, ErrMsgSubGameUpdateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleSetMute mutes or unmutes a sub-game's rarity sounds
func HandleSetMute(svc subgame.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set mute"); err != nil {
			return
		}

		status, err := svc.SetMuted(r.Context(), req.PlayerID, subGameParam(r), *req.Enabled)
		if err != nil {
			respondServiceError(w, r, ErrMsgSubGameUpdateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleLockResource toggles protection on a resource row
func HandleLockResource(svc subgame.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResourceLockRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Lock resource"); err != nil {
			return
		}

		if err := svc.LockResource(r.Context(), req.PlayerID, subGameParam(r), req.ID, req.Locked); err != nil {
			respondServiceError(w, r, ErrMsgLockFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLockUpdated})
	}
}

// HandleConsumeResource spends resources from a sub-game inventory
func HandleConsumeResource(svc subgame.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConsumeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Consume resource"); err != nil {
			return
		}

		remaining, err := svc.ConsumeResource(r.Context(), req.PlayerID, subGameParam(r), req.ID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, ErrMsgSubGameUpdateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, ConsumeResponse{Remaining: remaining})
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/LootLoop_Go/internal/domain"
)

// StateReader reads a player's aggregate
type StateReader interface {
	Get(ctx context.Context, playerID string) (domain.Progress, error)
}

// CreatePlayerResponse carries a freshly issued player id
type CreatePlayerResponse struct {
	PlayerID string `json:"player_id"`
}

// HandleCreatePlayer issues a new player id. Progress is created lazily on
// the first read or write.
func HandleCreatePlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusCreated, CreatePlayerResponse{PlayerID: uuid.NewString()})
	}
}

// HandleGetState returns the player's full progress
func HandleGetState(store StateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		p, err := store.Get(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

package handler

import (
	"net/http"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/logger"
	"github.com/osse101/LootLoop_Go/internal/roll"
)

// RollRequest asks for a batch of primary rolls
type RollRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=1000"`
	Moon     bool   `json:"moon"`
}

// LootKeyRequest identifies one loot row
type LootKeyRequest struct {
	Text      string `json:"text" validate:"required,max=200"`
	RarityID  int    `json:"rarity_id" validate:"min=1"`
	VariantID int    `json:"variant_id" validate:"min=0,max=10"`
}

func (k LootKeyRequest) key() domain.LootKey {
	return domain.LootKey{Text: k.Text, RarityID: domain.RarityID(k.RarityID), VariantID: domain.VariantID(k.VariantID)}
}

// SellRequest sells part of one loot row
type SellRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	LootKeyRequest
	Quantity int `json:"quantity" validate:"required,min=1,max=1000000"`
}

// SellAllRequest bulk-sells everything below a rarity
type SellAllRequest struct {
	PlayerID    string `json:"player_id" validate:"required,max=64"`
	BelowRarity int    `json:"below_rarity" validate:"required,min=2,max=15"`
}

// LockRequest toggles bulk-sell protection
type LockRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
	LootKeyRequest
	Locked bool `json:"locked"`
}

// HandleRoll runs a batch of primary rolls
func HandleRoll(roller roll.Roller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RollRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Roll"); err != nil {
			return
		}
		if req.Count == 0 {
			req.Count = 1
		}

		res, err := roller.Roll(r.Context(), req.PlayerID, req.Count, req.Moon)
		if err != nil {
			respondServiceError(w, r, ErrMsgRollFailed, err)
			return
		}

		logger.FromContext(r.Context()).Debug("Roll completed", "player_id", req.PlayerID, "count", req.Count, "kept", res.Kept)
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleSell sells quantity of one loot row
func HandleSell(roller roll.Roller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell"); err != nil {
			return
		}

		res, err := roller.Sell(r.Context(), req.PlayerID, req.key(), req.Quantity)
		if err != nil {
			respondServiceError(w, r, ErrMsgSellFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleSellAll sells every unlocked row below a rarity
func HandleSellAll(roller roll.Roller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellAllRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell all"); err != nil {
			return
		}

		res, err := roller.SellAll(r.Context(), req.PlayerID, domain.RarityID(req.BelowRarity))
		if err != nil {
			respondServiceError(w, r, ErrMsgSellFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleLockLoot toggles bulk-sell protection on a loot row
func HandleLockLoot(roller roll.Roller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LockRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Lock loot"); err != nil {
			return
		}

		if err := roller.SetLocked(r.Context(), req.PlayerID, req.key(), req.Locked); err != nil {
			respondServiceError(w, r, ErrMsgLockFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLockUpdated})
	}
}

package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Roll and inventory error messages
	ErrMsgRollFailed     = "Failed to roll"
	ErrMsgSellFailed     = "Failed to sell loot"
	ErrMsgLockFailed     = "Failed to update lock"
	ErrMsgGetStateFailed = "Failed to get player state"

	// Sub-game error messages
	ErrMsgSubGameActionFailed = "Failed to perform action"
	ErrMsgSubGameUpdateFailed = "Failed to update sub-game"

	// Admin error messages
	ErrMsgSetLevelsFailed = "Failed to set levels"
	ErrMsgSetBonusFailed  = "Failed to set bonus"
)

// Success messages for API responses
const (
	MsgScriptArmed   = "Script armed"
	MsgScriptCleared = "Script cleared"
	MsgLevelsUpdated = "Levels updated"
	MsgBonusUpdated  = "Bonus updated"
	MsgLockUpdated   = "Lock updated"
)

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgItemNotFound         = "item not found"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgItemLocked           = "item is locked"
	ErrMsgInvalidInput         = "invalid input"
	ErrMsgUnknownSubGame       = "unknown sub-game"
	ErrMsgUnknownCatalog       = "unknown catalog"
	ErrMsgPlayerNotFound       = "player not found"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrItemNotFound         = errors.New(ErrMsgItemNotFound)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrItemLocked           = errors.New(ErrMsgItemLocked)
	ErrInvalidInput         = errors.New(ErrMsgInvalidInput)
	ErrUnknownSubGame       = errors.New(ErrMsgUnknownSubGame)
	ErrUnknownCatalog       = errors.New(ErrMsgUnknownCatalog)
	ErrPlayerNotFound       = errors.New(ErrMsgPlayerNotFound)
)

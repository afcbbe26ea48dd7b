package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackStruct struct {
	Loop  string `json:"loop" validate:"required,subgame"`
	Track string `json:"track" validate:"required,track"`
}

func TestValidator_SubGameAndTrack(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		input   trackStruct
		wantErr bool
	}{
		{"mining loop", trackStruct{Loop: "mining", Track: "mining"}, false},
		{"roll track", trackStruct{Loop: "moon", Track: "roll"}, false},
		{"roll is not a loop", trackStruct{Loop: "roll", Track: "roll"}, true},
		{"case sensitive", trackStruct{Loop: "Mining", Track: "mining"}, true},
		{"unknown track", trackStruct{Loop: "fishing", Track: "smelting"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError_UsesJSONNames(t *testing.T) {
	err := GetValidator().ValidateStruct(RollRequest{Count: 5000})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["player_id"])
	assert.Equal(t, "Must be at most 1000", fields["count"])
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
	assert.Nil(t, FormatValidationError(nil))
}

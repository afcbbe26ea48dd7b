package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/roll"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestHandleRoll(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMock      func(*MockRoller)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: RollRequest{PlayerID: "p1", Count: 10},
			setupMock: func(m *MockRoller) {
				m.On("Roll", mock.Anything, "p1", 10, false).Return(&roll.Result{Kept: 2, Entropy: 8, TotalRolls: 10}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"entropy":8`,
		},
		{
			name: "Count defaults to one",
			body: `{"player_id":"p1","moon":true}`,
			setupMock: func(m *MockRoller) {
				m.On("Roll", mock.Anything, "p1", 1, true).Return(&roll.Result{TotalRolls: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"totalRolls":1`,
		},
		{
			name:           "Missing player",
			body:           RollRequest{Count: 1},
			setupMock:      func(m *MockRoller) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"player_id":"This field is required"`,
		},
		{
			name:           "Count above batch limit",
			body:           RollRequest{PlayerID: "p1", Count: roll.MaxBatch + 1},
			setupMock:      func(m *MockRoller) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Unknown field",
			body:           `{"player_id":"p1","cheat":true}`,
			setupMock:      func(m *MockRoller) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Service error",
			body: RollRequest{PlayerID: "p1", Count: 1},
			setupMock: func(m *MockRoller) {
				m.On("Roll", mock.Anything, "p1", 1, false).Return(nil, errors.New("disk on fire"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgRollFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockRoller{}
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/roll", jsonBody(t, tt.body))
			w := httptest.NewRecorder()
			HandleRoll(m).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}

func TestHandleSell(t *testing.T) {
	key := domain.LootKey{Text: "Old Boot", RarityID: domain.RarityEpic, VariantID: 2}

	t.Run("Success", func(t *testing.T) {
		m := &MockRoller{}
		m.On("Sell", mock.Anything, "p1", key, 2).Return(&roll.SaleResult{Earned: 640, Sold: 2, Balance: 640}, nil)

		body := `{"player_id":"p1","text":"Old Boot","rarity_id":4,"variant_id":2,"quantity":2}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sell", jsonBody(t, body))
		w := httptest.NewRecorder()
		HandleSell(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"earned":640,"sold":2,"balance":640}`, w.Body.String())
		m.AssertExpectations(t)
	})

	domainErrors := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{domain.ErrInsufficientQuantity, http.StatusBadRequest, ErrMsgInsufficientItemsErr},
		{domain.ErrItemLocked, http.StatusConflict, ErrMsgItemLockedError},
	}
	for _, tc := range domainErrors {
		t.Run(tc.err.Error(), func(t *testing.T) {
			m := &MockRoller{}
			m.On("Sell", mock.Anything, "p1", key, 1).Return(nil, fmt.Errorf("%w: wrapped", tc.err))

			body := `{"player_id":"p1","text":"Old Boot","rarity_id":4,"variant_id":2,"quantity":1}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sell", jsonBody(t, body))
			w := httptest.NewRecorder()
			HandleSell(m).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.msg)
		})
	}

	t.Run("Variant out of range", func(t *testing.T) {
		m := &MockRoller{}
		body := `{"player_id":"p1","text":"Old Boot","rarity_id":4,"variant_id":11,"quantity":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sell", jsonBody(t, body))
		w := httptest.NewRecorder()
		HandleSell(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"variant_id"`)
		m.AssertNotCalled(t, "Sell")
	})
}

func TestHandleSellAll(t *testing.T) {
	m := &MockRoller{}
	m.On("SellAll", mock.Anything, "p1", domain.RarityRare).Return(&roll.SaleResult{Earned: 5, Sold: 3, Balance: 5}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sell/all", jsonBody(t, SellAllRequest{PlayerID: "p1", BelowRarity: 3}))
	w := httptest.NewRecorder()
	HandleSellAll(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sold":3`)
	m.AssertExpectations(t)
}

func TestHandleLockLoot(t *testing.T) {
	m := &MockRoller{}
	key := domain.LootKey{Text: "Crown", RarityID: domain.RarityMythic}
	m.On("SetLocked", mock.Anything, "p1", key, true).Return(nil)

	body := `{"player_id":"p1","text":"Crown","rarity_id":6,"variant_id":0,"locked":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/loot/lock", jsonBody(t, body))
	w := httptest.NewRecorder()
	HandleLockLoot(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgLockUpdated)
	m.AssertExpectations(t)
}

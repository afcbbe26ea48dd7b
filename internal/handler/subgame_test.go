package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/loop"
	"github.com/osse101/LootLoop_Go/internal/subgame"
)

func subGameRouter(svc subgame.Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/subgames/{name}", func(r chi.Router) {
		r.Get("/", HandleSubGameStatus(svc))
		r.Post("/action", HandleSubGameAction(svc))
		r.Put("/auto", HandleSetAuto(svc))
		r.Put("/mute", HandleSetMute(svc))
		r.Put("/resources/lock", HandleLockResource(svc))
		r.Post("/resources/consume", HandleConsumeResource(svc))
	})
	return r
}

func TestHandleSubGameAction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("Act", mock.Anything, "p1", domain.SubGameFishing).Return(&loop.Summary{
			SubGame: domain.SubGameFishing, Count: 3, BestID: 7, BestName: "Pike", Counts: map[int]int{1: 2, 7: 1},
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/subgames/fishing/action", jsonBody(t, SubGameRequest{PlayerID: "p1"}))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"bestName":"Pike"`)
		m.AssertExpectations(t)
	})

	t.Run("Unknown sub-game", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("Act", mock.Anything, "p1", domain.SubGame("smelting")).
			Return(nil, fmt.Errorf("%w: smelting", domain.ErrUnknownSubGame))

		req := httptest.NewRequest(http.MethodPost, "/subgames/smelting/action", jsonBody(t, SubGameRequest{PlayerID: "p1"}))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnknownSubGameError)
	})
}

func TestHandleSetAuto(t *testing.T) {
	t.Run("Enable", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("SetAuto", mock.Anything, "p1", domain.SubGameMining, true).
			Return(&subgame.Status{SubGame: domain.SubGameMining, State: "auto"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/subgames/mining/auto", jsonBody(t, `{"player_id":"p1","enabled":true}`))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"auto"`)
		m.AssertExpectations(t)
	})

	t.Run("Explicit false is honoured", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("SetAuto", mock.Anything, "p1", domain.SubGameMining, false).
			Return(&subgame.Status{SubGame: domain.SubGameMining, State: "idle"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/subgames/mining/auto", jsonBody(t, `{"player_id":"p1","enabled":false}`))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.AssertExpectations(t)
	})

	t.Run("Missing flag", func(t *testing.T) {
		m := &MockSubGameService{}

		req := httptest.NewRequest(http.MethodPut, "/subgames/mining/auto", jsonBody(t, `{"player_id":"p1"}`))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"enabled":"This field is required"`)
		m.AssertNotCalled(t, "SetAuto")
	})
}

func TestHandleSetMute(t *testing.T) {
	m := &MockSubGameService{}
	m.On("SetMuted", mock.Anything, "p1", domain.SubGameMoon, true).
		Return(&subgame.Status{SubGame: domain.SubGameMoon, State: "idle", Muted: true}, nil)

	req := httptest.NewRequest(http.MethodPut, "/subgames/moon/mute", jsonBody(t, `{"player_id":"p1","enabled":true}`))
	w := httptest.NewRecorder()
	subGameRouter(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"muted":true`)
	m.AssertExpectations(t)
}

func TestHandleSubGameStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("Status", mock.Anything, "p1", domain.SubGameHarvesting).
			Return(&subgame.Status{SubGame: domain.SubGameHarvesting, State: "idle", Config: domain.LoopConfig{SpeedMs: 1500, Multi: 1}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/subgames/harvesting/?player_id=p1", nil)
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"speedMs":1500`)
	})

	t.Run("Missing player", func(t *testing.T) {
		m := &MockSubGameService{}

		req := httptest.NewRequest(http.MethodGet, "/subgames/harvesting/", nil)
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing player_id query parameter")
	})
}

func TestHandleResources(t *testing.T) {
	t.Run("Consume", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("ConsumeResource", mock.Anything, "p1", domain.SubGameGoldMining, 4, 2).Return(3, nil)

		req := httptest.NewRequest(http.MethodPost, "/subgames/gold_mining/resources/consume", jsonBody(t, ConsumeRequest{PlayerID: "p1", ID: 4, Quantity: 2}))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"remaining":3}`, w.Body.String())
	})

	t.Run("Consume too many", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("ConsumeResource", mock.Anything, "p1", domain.SubGameGoldMining, 4, 9).
			Return(0, fmt.Errorf("%w: have 3", domain.ErrInsufficientQuantity))

		req := httptest.NewRequest(http.MethodPost, "/subgames/gold_mining/resources/consume", jsonBody(t, ConsumeRequest{PlayerID: "p1", ID: 4, Quantity: 9}))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientItemsErr)
	})

	t.Run("Lock", func(t *testing.T) {
		m := &MockSubGameService{}
		m.On("LockResource", mock.Anything, "p1", domain.SubGamePrismMining, 12, true).Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/subgames/prism_mining/resources/lock", jsonBody(t, ResourceLockRequest{PlayerID: "p1", ID: 12, Locked: true}))
		w := httptest.NewRecorder()
		subGameRouter(m).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.AssertExpectations(t)
	})
}

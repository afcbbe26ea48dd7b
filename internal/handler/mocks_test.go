package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/loop"
	"github.com/osse101/LootLoop_Go/internal/roll"
	"github.com/osse101/LootLoop_Go/internal/subgame"
)

type MockRoller struct {
	mock.Mock
}

func (m *MockRoller) Roll(ctx context.Context, playerID string, count int, moonMode bool) (*roll.Result, error) {
	args := m.Called(ctx, playerID, count, moonMode)
	res, _ := args.Get(0).(*roll.Result)
	return res, args.Error(1)
}

func (m *MockRoller) Sell(ctx context.Context, playerID string, key domain.LootKey, qty int) (*roll.SaleResult, error) {
	args := m.Called(ctx, playerID, key, qty)
	res, _ := args.Get(0).(*roll.SaleResult)
	return res, args.Error(1)
}

func (m *MockRoller) SellAll(ctx context.Context, playerID string, below domain.RarityID) (*roll.SaleResult, error) {
	args := m.Called(ctx, playerID, below)
	res, _ := args.Get(0).(*roll.SaleResult)
	return res, args.Error(1)
}

func (m *MockRoller) SetLocked(ctx context.Context, playerID string, key domain.LootKey, locked bool) error {
	return m.Called(ctx, playerID, key, locked).Error(0)
}

type MockSubGameService struct {
	mock.Mock
}

var _ subgame.Service = (*MockSubGameService)(nil)

func (m *MockSubGameService) Act(ctx context.Context, playerID string, sg domain.SubGame) (*loop.Summary, error) {
	args := m.Called(ctx, playerID, sg)
	res, _ := args.Get(0).(*loop.Summary)
	return res, args.Error(1)
}

func (m *MockSubGameService) SetAuto(ctx context.Context, playerID string, sg domain.SubGame, enabled bool) (*subgame.Status, error) {
	args := m.Called(ctx, playerID, sg, enabled)
	res, _ := args.Get(0).(*subgame.Status)
	return res, args.Error(1)
}

func (m *MockSubGameService) SetMuted(ctx context.Context, playerID string, sg domain.SubGame, muted bool) (*subgame.Status, error) {
	args := m.Called(ctx, playerID, sg, muted)
	res, _ := args.Get(0).(*subgame.Status)
	return res, args.Error(1)
}

func (m *MockSubGameService) Status(ctx context.Context, playerID string, sg domain.SubGame) (*subgame.Status, error) {
	args := m.Called(ctx, playerID, sg)
	res, _ := args.Get(0).(*subgame.Status)
	return res, args.Error(1)
}

func (m *MockSubGameService) Refresh(ctx context.Context, playerID string) error {
	return m.Called(ctx, playerID).Error(0)
}

func (m *MockSubGameService) LockResource(ctx context.Context, playerID string, sg domain.SubGame, id int, locked bool) error {
	return m.Called(ctx, playerID, sg, id, locked).Error(0)
}

func (m *MockSubGameService) ConsumeResource(ctx context.Context, playerID string, sg domain.SubGame, id, qty int) (int, error) {
	args := m.Called(ctx, playerID, sg, id, qty)
	return args.Int(0), args.Error(1)
}

func (m *MockSubGameService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

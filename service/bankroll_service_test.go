package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tipbook/models"
)

func TestBankrollService_Snapshot(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBankrollRepo := new(MockBankrollRepository)

	mockUoW.SetRepositories(nil, nil, mockBankrollRepo, nil, nil)

	service := NewBankrollService(mockFactory, testConfig())

	bankroll := freshBankroll()

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockBankrollRepo.On("Get", ctx).Return(bankroll, nil)

	got, err := service.Snapshot(ctx)

	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(5000)))
	mockBankrollRepo.AssertExpectations(t)
}

func TestBankrollService_Snapshot_MissingSingleton(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBankrollRepo := new(MockBankrollRepository)

	mockUoW.SetRepositories(nil, nil, mockBankrollRepo, nil, nil)

	service := NewBankrollService(mockFactory, testConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockBankrollRepo.On("Get", ctx).Return(nil, NewNotFoundError("bankroll", "singleton"))

	_, err := service.Snapshot(ctx)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestBankrollService_Recompute(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockPredictionRepo := new(MockPredictionRepository)
	mockBankrollRepo := new(MockBankrollRepository)

	mockUoW.SetRepositories(mockPredictionRepo, nil, mockBankrollRepo, nil, nil)

	service := NewBankrollService(mockFactory, testConfig())

	now := time.Now()
	won := pendingPrediction("10", "3.00")
	wonProfit := decimal.RequireFromString("20.00")
	won.Status = models.PredictionStatusWon
	won.Profit = &wonProfit
	won.SettledAt = &now

	lost := pendingPrediction("30", "1.50")
	lostProfit := decimal.NewFromInt(-30)
	lost.Status = models.PredictionStatusLost
	lost.Profit = &lostProfit
	lost.SettledAt = &now

	// Ledger was corrupted out of band; recompute discards it entirely
	corrupted := freshBankroll()
	corrupted.Balance = decimal.NewFromInt(999)
	corrupted.WonCount = 7

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBankrollRepo.On("GetForUpdate", ctx).Return(corrupted, nil)
	mockPredictionRepo.On("GetSettled", ctx).Return([]*models.Prediction{won, lost}, nil)
	mockBankrollRepo.On("Update", ctx, mock.MatchedBy(func(b *models.Bankroll) bool {
		// 5000 + 20 - 30 = 4990
		return b.Balance.Equal(decimal.NewFromInt(4990)) &&
			b.TotalProfit.Equal(decimal.RequireFromString("20.00")) &&
			b.TotalLoss.Equal(decimal.NewFromInt(30)) &&
			b.WonCount == 1 && b.LostCount == 1
	})).Return(nil)

	got, err := service.Recompute(ctx, testAdmin())

	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(4990)))
	assert.Equal(t, 2, got.SettledCount())

	mockPredictionRepo.AssertExpectations(t)
	mockBankrollRepo.AssertExpectations(t)
}

func TestBankrollService_Recompute_NilProfit(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockPredictionRepo := new(MockPredictionRepository)
	mockBankrollRepo := new(MockBankrollRepository)

	mockUoW.SetRepositories(mockPredictionRepo, nil, mockBankrollRepo, nil, nil)

	service := NewBankrollService(mockFactory, testConfig())

	// A settled record without stored profit means the store is corrupt
	broken := pendingPrediction("10", "2.00")
	broken.Status = models.PredictionStatusWon

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBankrollRepo.On("GetForUpdate", ctx).Return(freshBankroll(), nil)
	mockPredictionRepo.On("GetSettled", ctx).Return([]*models.Prediction{broken}, nil)

	_, err := service.Recompute(ctx, testAdmin())

	require.Error(t, err)
	assert.True(t, IsConsistency(err))
	mockBankrollRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBankrollService_Recompute_NonAdmin(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewBankrollService(mockFactory, testConfig())

	_, err := service.Recompute(ctx, &models.User{ID: uuid.New()})

	require.Error(t, err)
	assert.True(t, IsPermission(err))
	mockFactory.AssertNotCalled(t, "Create")
}

// Recomputing twice over the same settled set must write the same aggregate
// both times.
func TestBankrollService_Recompute_Idempotent(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockPredictionRepo := new(MockPredictionRepository)
	mockBankrollRepo := new(MockBankrollRepository)

	mockUoW.SetRepositories(mockPredictionRepo, nil, mockBankrollRepo, nil, nil)

	service := NewBankrollService(mockFactory, testConfig())

	now := time.Now()
	won := pendingPrediction("10", "3.00")
	wonProfit := decimal.RequireFromString("20.00")
	won.Status = models.PredictionStatusWon
	won.Profit = &wonProfit
	won.SettledAt = &now

	lost := pendingPrediction("15", "2.00")
	lostProfit := decimal.NewFromInt(-15)
	lost.Status = models.PredictionStatusLost
	lost.Profit = &lostProfit
	lost.SettledAt = &now

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBankrollRepo.On("GetForUpdate", ctx).Return(freshBankroll(), nil)
	mockPredictionRepo.On("GetSettled", ctx).Return([]*models.Prediction{won, lost}, nil)

	var writes []models.Bankroll
	mockBankrollRepo.On("Update", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			writes = append(writes, *args.Get(1).(*models.Bankroll))
		}).Return(nil)

	first, err := service.Recompute(ctx, testAdmin())
	require.NoError(t, err)
	second, err := service.Recompute(ctx, testAdmin())
	require.NoError(t, err)

	// 5000 + 20 - 15 = 5005 both times
	assert.True(t, first.Balance.Equal(decimal.NewFromInt(5005)))
	assert.True(t, second.Balance.Equal(first.Balance))
	assert.Equal(t, first.SettledCount(), second.SettledCount())

	require.Len(t, writes, 2)
	assert.True(t, writes[0].Balance.Equal(writes[1].Balance))
	assert.True(t, writes[0].TotalProfit.Equal(writes[1].TotalProfit))
	assert.True(t, writes[0].TotalLoss.Equal(writes[1].TotalLoss))
	assert.Equal(t, writes[0].WonCount, writes[1].WonCount)
	assert.Equal(t, writes[0].LostCount, writes[1].LostCount)
}

// Replaying any settlement history through Apply must always land on a ledger
// that reconciles, regardless of order.
func TestBankrollApply_FoldIsOrderIndependent(t *testing.T) {
	initial := decimal.NewFromInt(5000)
	rng := rand.New(rand.NewSource(42))

	profits := make([]decimal.Decimal, 0, 50)
	wins := make([]bool, 0, 50)
	for i := 0; i < 50; i++ {
		stake := decimal.NewFromInt(int64(rng.Intn(100) + 1))
		if rng.Intn(2) == 0 {
			odds := decimal.NewFromFloat(1 + rng.Float64()*4).Round(2)
			profits = append(profits, stake.Mul(odds).Sub(stake).Round(2))
			wins = append(wins, true)
		} else {
			profits = append(profits, stake.Neg())
			wins = append(wins, false)
		}
	}

	forward := &models.Bankroll{Balance: initial}
	for i := range profits {
		forward.Apply(profits[i], wins[i])
	}

	backward := &models.Bankroll{Balance: initial}
	for i := len(profits) - 1; i >= 0; i-- {
		backward.Apply(profits[i], wins[i])
	}

	assert.True(t, forward.CheckInvariant(initial))
	assert.True(t, backward.CheckInvariant(initial))
	assert.True(t, forward.Balance.Equal(backward.Balance))
	assert.Equal(t, forward.WonCount, backward.WonCount)
	assert.Equal(t, forward.LostCount, backward.LostCount)
	assert.Equal(t, len(profits), forward.SettledCount())
}

// Interleaving settlements with deletions, each deletion rebuilding the
// ledger from the surviving picks, must keep the running aggregate
// reconciled and identical to a from-scratch fold at every step.
func TestBankrollLedger_InterleavedDeletesReconcile(t *testing.T) {
	initial := decimal.NewFromInt(5000)
	rng := rand.New(rand.NewSource(7))

	type settlement struct {
		profit decimal.Decimal
		won    bool
	}

	refold := func(live []settlement) *models.Bankroll {
		b := &models.Bankroll{}
		b.Reset(initial)
		for _, s := range live {
			b.Apply(s.profit, s.won)
		}
		return b
	}

	live := make([]settlement, 0, 64)
	ledger := &models.Bankroll{Balance: initial}

	for i := 0; i < 200; i++ {
		if len(live) > 0 && rng.Intn(4) == 0 {
			// Deleting a settled pick resets the ledger and re-folds the rest
			idx := rng.Intn(len(live))
			live = append(live[:idx], live[idx+1:]...)
			ledger = refold(live)
		} else {
			stake := decimal.NewFromInt(int64(rng.Intn(100) + 1))
			var s settlement
			if rng.Intn(2) == 0 {
				odds := decimal.NewFromFloat(1 + rng.Float64()*4).Round(2)
				s = settlement{profit: stake.Mul(odds).Sub(stake).Round(2), won: true}
			} else {
				s = settlement{profit: stake.Neg(), won: false}
			}
			live = append(live, s)
			ledger.Apply(s.profit, s.won)
		}

		require.True(t, ledger.CheckInvariant(initial))
		require.Equal(t, len(live), ledger.SettledCount())
	}

	// A recompute over the survivors reproduces the running ledger, and
	// running it again changes nothing
	recomputed := refold(live)
	assert.True(t, recomputed.Balance.Equal(ledger.Balance))
	assert.True(t, recomputed.TotalProfit.Equal(ledger.TotalProfit))
	assert.True(t, recomputed.TotalLoss.Equal(ledger.TotalLoss))
	assert.Equal(t, ledger.WonCount, recomputed.WonCount)
	assert.Equal(t, ledger.LostCount, recomputed.LostCount)

	again := refold(live)
	assert.True(t, again.Balance.Equal(recomputed.Balance))
	assert.True(t, again.TotalProfit.Equal(recomputed.TotalProfit))
	assert.True(t, again.TotalLoss.Equal(recomputed.TotalLoss))
}

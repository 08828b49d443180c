package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipbook/events"
	"tipbook/models"
	"tipbook/repository/testutil"
)

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypePredictionCreated, func(_ context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, uow.PredictionRepository().Create(ctx, prediction))

	uow.EventBus().Publish(events.PredictionCreatedEvent{
		PredictionID: prediction.ID,
		Kind:         prediction.Kind,
		Stake:        prediction.Stake,
		TotalOdds:    prediction.TotalOdds,
		Visibility:   prediction.Visibility,
		LegCount:     1,
	})

	// nothing reaches subscribers before commit
	select {
	case <-received:
		t.Fatal("event emitted before commit")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, uow.Commit())

	select {
	case e := <-received:
		created, ok := e.(events.PredictionCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, prediction.ID, created.PredictionID)
	case <-time.After(2 * time.Second):
		t.Fatal("event not emitted after commit")
	}
}

func TestUnitOfWork_RollbackDiscardsWorkAndEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypePredictionCreated, func(_ context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, uow.PredictionRepository().Create(ctx, prediction))
	uow.EventBus().Publish(events.PredictionCreatedEvent{PredictionID: prediction.ID})

	require.NoError(t, uow.Rollback())

	// the insert rolled back
	got, err := NewPredictionRepository(testDB.DB).GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// and the stashed event never fires
	select {
	case <-received:
		t.Fatal("event emitted after rollback")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestUnitOfWork_SettlementRoundTrip(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	// create a pending pick
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.RequireFromString("3.00"))
	require.NoError(t, uow.PredictionRepository().Create(ctx, prediction))
	require.NoError(t, uow.Commit())

	// settle it and move the ledger in one transaction
	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))

	profit := decimal.RequireFromString("20.00")
	now := time.Now().UTC()
	prediction.Status = models.PredictionStatusWon
	prediction.Profit = &profit
	prediction.SettledAt = &now
	require.NoError(t, uow.PredictionRepository().UpdateSettlement(ctx, prediction))

	bankroll, err := uow.BankrollRepository().GetForUpdate(ctx)
	require.NoError(t, err)
	bankroll.Apply(profit, true)
	require.NoError(t, uow.BankrollRepository().Update(ctx, bankroll))
	require.NoError(t, uow.Commit())

	got, err := NewBankrollRepository(testDB.DB).Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(5020)))
	assert.Equal(t, 1, got.WonCount)
	assert.True(t, got.CheckInvariant(decimal.NewFromInt(5000)))
}

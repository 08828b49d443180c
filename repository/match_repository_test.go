package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipbook/models"
	"tipbook/repository/testutil"
)

func TestMatchRepository_CreateBatchAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	predictionRepo := NewPredictionRepository(testDB.DB)
	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.RequireFromString("3.00"))
	prediction.Kind = models.PredictionKindCombined
	require.NoError(t, predictionRepo.Create(ctx, prediction))

	first := testutil.CreateTestMatch(prediction.ID, decimal.RequireFromString("1.50"))
	second := testutil.CreateTestMatch(prediction.ID, decimal.RequireFromString("2.00"))
	second.Sport = models.SportTennis
	second.Team1 = "Alcaraz"
	second.Team2 = "Sinner"
	second.MatchDate = first.MatchDate.Add(48 * time.Hour)

	require.NoError(t, repo.CreateBatch(ctx, []*models.Match{first, second}))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, uuid.Nil, second.ID)

	legs, err := repo.GetByPrediction(ctx, prediction.ID)
	require.NoError(t, err)
	require.Len(t, legs, 2)

	// ordered by match date
	assert.Equal(t, first.ID, legs[0].ID)
	assert.Equal(t, second.ID, legs[1].ID)
	assert.True(t, legs[0].Odds.Equal(decimal.RequireFromString("1.50")))
	assert.Equal(t, models.SportTennis, legs[1].Sport)
}

func TestMatchRepository_GetByPredictions(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	predictionRepo := NewPredictionRepository(testDB.DB)
	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	t.Run("empty input", func(t *testing.T) {
		byOwner, err := repo.GetByPredictions(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, byOwner)
	})

	t.Run("grouped by owner", func(t *testing.T) {
		a := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
		b := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(20), decimal.NewFromInt(3))
		require.NoError(t, predictionRepo.Create(ctx, a))
		require.NoError(t, predictionRepo.Create(ctx, b))

		require.NoError(t, repo.CreateBatch(ctx, []*models.Match{
			testutil.CreateTestMatch(a.ID, decimal.NewFromInt(2)),
			testutil.CreateTestMatch(b.ID, decimal.NewFromInt(3)),
		}))

		byOwner, err := repo.GetByPredictions(ctx, []uuid.UUID{a.ID, b.ID})
		require.NoError(t, err)
		require.Len(t, byOwner, 2)
		assert.Len(t, byOwner[a.ID], 1)
		assert.Len(t, byOwner[b.ID], 1)
	})
}

func TestMatchRepository_DeleteByPrediction(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	predictionRepo := NewPredictionRepository(testDB.DB)
	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	admin := testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)

	prediction := testutil.CreateTestPrediction(admin.ID, decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, predictionRepo.Create(ctx, prediction))
	require.NoError(t, repo.CreateBatch(ctx, []*models.Match{
		testutil.CreateTestMatch(prediction.ID, decimal.NewFromInt(2)),
	}))

	require.NoError(t, repo.DeleteByPrediction(ctx, prediction.ID))

	legs, err := repo.GetByPrediction(ctx, prediction.ID)
	require.NoError(t, err)
	assert.Empty(t, legs)
}

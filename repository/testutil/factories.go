package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tipbook/database"
	"tipbook/models"
)

// InsertTestUser inserts a user directly and returns it with its generated ID
func InsertTestUser(t *testing.T, db *database.DB, email string, admin, vip bool) *models.User {
	t.Helper()

	user := &models.User{
		Email:   email,
		IsAdmin: admin,
		IsVIP:   vip,
	}
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO users (email, is_admin, is_vip) VALUES ($1, $2, $3) RETURNING id, created_at`,
		email, admin, vip,
	).Scan(&user.ID, &user.CreatedAt)
	require.NoError(t, err)

	return user
}

// CreateTestPrediction builds a pending single pick with one leg attached
func CreateTestPrediction(createdBy uuid.UUID, stake, odds decimal.Decimal) *models.Prediction {
	return &models.Prediction{
		Kind:       models.PredictionKindSingle,
		Stake:      stake,
		TotalOdds:  odds,
		Visibility: models.VisibilityRestricted,
		Status:     models.PredictionStatusPending,
		CreatedBy:  createdBy,
	}
}

// CreateTestMatch builds one leg for a prediction
func CreateTestMatch(predictionID uuid.UUID, odds decimal.Decimal) *models.Match {
	return &models.Match{
		PredictionID: predictionID,
		Sport:        models.SportFootball,
		Team1:        "PSG",
		Team2:        "OM",
		BetType:      "1X2 home win",
		Odds:         odds,
		MatchDate:    time.Now().Add(24 * time.Hour).Truncate(time.Second),
	}
}

// CreateTestNews builds an article with default values
func CreateTestNews(createdBy uuid.UUID, title string) *models.News {
	return &models.News{
		Title:      title,
		Content:    "test content",
		Visibility: models.VisibilityPublic,
		Status:     models.PredictionStatusPending,
		Category:   models.NewsCategoryArticle,
		CreatedBy:  &createdBy,
	}
}

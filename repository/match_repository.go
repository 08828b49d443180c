package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tipbook/database"
	"tipbook/models"
)

// MatchRepository implements the MatchRepository interface
type MatchRepository struct {
	q queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

// newMatchRepositoryWithTx creates a new match repository with a transaction
func newMatchRepositoryWithTx(tx queryable) *MatchRepository {
	return &MatchRepository{q: tx}
}

const matchColumns = `id, prediction_id, sport, team1, team2, bet_type, odds, result, match_date, created_at`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID,
		&m.PredictionID,
		&m.Sport,
		&m.Team1,
		&m.Team2,
		&m.BetType,
		&m.Odds,
		&m.Result,
		&m.MatchDate,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateBatch inserts all legs of a prediction
func (r *MatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	query := `
		INSERT INTO matches (prediction_id, sport, team1, team2, bet_type, odds, result, match_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	for _, m := range matches {
		err := r.q.QueryRow(ctx, query,
			m.PredictionID,
			m.Sport,
			m.Team1,
			m.Team2,
			m.BetType,
			m.Odds,
			m.Result,
			m.MatchDate,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create match for prediction %s: %w", m.PredictionID, err)
		}
	}

	return nil
}

// GetByPrediction returns the legs of one prediction ordered by match date
func (r *MatchRepository) GetByPrediction(ctx context.Context, predictionID uuid.UUID) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE prediction_id = $1 ORDER BY match_date`

	rows, err := r.q.Query(ctx, query, predictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches for prediction %s: %w", predictionID, err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}

// GetByPredictions returns legs for many predictions keyed by owner
func (r *MatchRepository) GetByPredictions(ctx context.Context, predictionIDs []uuid.UUID) (map[uuid.UUID][]*models.Match, error) {
	result := make(map[uuid.UUID][]*models.Match)
	if len(predictionIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + matchColumns + ` FROM matches WHERE prediction_id = ANY($1) ORDER BY match_date`

	rows, err := r.q.Query(ctx, query, predictionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches for predictions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		result[match.PredictionID] = append(result[match.PredictionID], match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return result, nil
}

// DeleteByPrediction removes all legs owned by a prediction
func (r *MatchRepository) DeleteByPrediction(ctx context.Context, predictionID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM matches WHERE prediction_id = $1`, predictionID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for prediction %s: %w", predictionID, err)
	}
	return nil
}

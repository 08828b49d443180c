package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tipbook/database"
	"tipbook/models"
	"tipbook/service"
)

// PredictionRepository implements the PredictionRepository interface
type PredictionRepository struct {
	q queryable
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *database.DB) *PredictionRepository {
	return &PredictionRepository{q: db.Pool}
}

// newPredictionRepositoryWithTx creates a new prediction repository with a transaction
func newPredictionRepositoryWithTx(tx queryable) *PredictionRepository {
	return &PredictionRepository{q: tx}
}

const predictionColumns = `id, kind, stake, total_odds, visibility, status, profit, settled_at, created_by, created_at`

func scanPrediction(row pgx.Row) (*models.Prediction, error) {
	var p models.Prediction
	err := row.Scan(
		&p.ID,
		&p.Kind,
		&p.Stake,
		&p.TotalOdds,
		&p.Visibility,
		&p.Status,
		&p.Profit,
		&p.SettledAt,
		&p.CreatedBy,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new prediction and fills in its ID and CreatedAt
func (r *PredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (kind, stake, total_odds, visibility, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		prediction.Kind,
		prediction.Stake,
		prediction.TotalOdds,
		prediction.Visibility,
		prediction.Status,
		prediction.CreatedBy,
	).Scan(&prediction.ID, &prediction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

// GetByID retrieves a prediction by its ID, without legs
func (r *PredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`

	prediction, err := scanPrediction(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction %s: %w", id, err)
	}

	return prediction, nil
}

// List returns predictions matching the filter, newest first
func (r *PredictionRepository) List(ctx context.Context, filter service.PredictionFilter) ([]*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE visibility = ANY($1)`
	args := []any{visibilityStrings(filter.Visibilities)}

	if filter.Status != nil {
		query += ` AND status = $2`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

// GetSettled returns every won or lost prediction
func (r *PredictionRepository) GetSettled(ctx context.Context) ([]*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE status IN ('won', 'lost')`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get settled predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

// UpdateSettlement persists status, profit and settled_at together
func (r *PredictionRepository) UpdateSettlement(ctx context.Context, prediction *models.Prediction) error {
	query := `
		UPDATE predictions
		SET status = $1, profit = $2, settled_at = $3
		WHERE id = $4
	`

	result, err := r.q.Exec(ctx, query,
		prediction.Status,
		prediction.Profit,
		prediction.SettledAt,
		prediction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement for prediction %s: %w", prediction.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prediction %s not found", prediction.ID)
	}

	return nil
}

// UpdateVisibility flips a prediction between public and restricted
func (r *PredictionRepository) UpdateVisibility(ctx context.Context, id uuid.UUID, visibility models.Visibility) error {
	query := `UPDATE predictions SET visibility = $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, visibility, id)
	if err != nil {
		return fmt.Errorf("failed to update visibility for prediction %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prediction %s not found", id)
	}

	return nil
}

// Delete removes a prediction by ID
func (r *PredictionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM predictions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prediction %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prediction %s not found", id)
	}

	return nil
}

func visibilityStrings(visibilities []models.Visibility) []string {
	if len(visibilities) == 0 {
		return []string{string(models.VisibilityPublic), string(models.VisibilityRestricted)}
	}
	out := make([]string, len(visibilities))
	for i, v := range visibilities {
		out[i] = string(v)
	}
	return out
}

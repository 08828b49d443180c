package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tipbook/database"
	"tipbook/models"
	"tipbook/service"
)

// BankrollRepository implements the BankrollRepository interface
type BankrollRepository struct {
	q queryable
}

// NewBankrollRepository creates a new bankroll repository
func NewBankrollRepository(db *database.DB) *BankrollRepository {
	return &BankrollRepository{q: db.Pool}
}

// newBankrollRepositoryWithTx creates a new bankroll repository with a transaction
func newBankrollRepositoryWithTx(tx queryable) *BankrollRepository {
	return &BankrollRepository{q: tx}
}

const bankrollColumns = `id, balance, total_profit, total_loss, won_count, lost_count, created_at, updated_at`

func (r *BankrollRepository) get(ctx context.Context, lock bool) (*models.Bankroll, error) {
	query := `SELECT ` + bankrollColumns + ` FROM bankroll`
	if lock {
		query += ` FOR UPDATE`
	}

	var b models.Bankroll
	err := r.q.QueryRow(ctx, query).Scan(
		&b.ID,
		&b.Balance,
		&b.TotalProfit,
		&b.TotalLoss,
		&b.WonCount,
		&b.LostCount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		// the singleton row is seeded by migration, its absence means the
		// schema is broken
		return nil, service.NewNotFoundError("bankroll", "singleton")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bankroll: %w", err)
	}

	return &b, nil
}

// Get fetches the singleton ledger row
func (r *BankrollRepository) Get(ctx context.Context) (*models.Bankroll, error) {
	return r.get(ctx, false)
}

// GetForUpdate fetches the ledger row under a row lock so concurrent
// settlements and recomputations serialize
func (r *BankrollRepository) GetForUpdate(ctx context.Context) (*models.Bankroll, error) {
	return r.get(ctx, true)
}

// Update persists the aggregate fields
func (r *BankrollRepository) Update(ctx context.Context, bankroll *models.Bankroll) error {
	query := `
		UPDATE bankroll
		SET balance = $1, total_profit = $2, total_loss = $3,
		    won_count = $4, lost_count = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.q.Exec(ctx, query,
		bankroll.Balance,
		bankroll.TotalProfit,
		bankroll.TotalLoss,
		bankroll.WonCount,
		bankroll.LostCount,
		bankroll.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bankroll: %w", err)
	}

	if result.RowsAffected() == 0 {
		return service.NewNotFoundError("bankroll", bankroll.ID.String())
	}

	return nil
}

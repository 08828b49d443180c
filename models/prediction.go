package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PredictionKind distinguishes single-leg picks from combined (accumulator) picks
type PredictionKind string

const (
	PredictionKindSingle   PredictionKind = "single"
	PredictionKindCombined PredictionKind = "combined"
)

// PredictionStatus represents the lifecycle state of a prediction
type PredictionStatus string

const (
	PredictionStatusPending PredictionStatus = "pending"
	PredictionStatusWon     PredictionStatus = "won"
	PredictionStatusLost    PredictionStatus = "lost"
)

// Outcome is the grading applied to a pending prediction at settlement
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// Visibility controls which viewer tiers may see an item
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
)

// Prediction represents a published betting pick and its settlement state.
// Profit and SettledAt are both nil while the prediction is pending and are
// set together, exactly once, when it is settled or archived.
type Prediction struct {
	ID         uuid.UUID        `db:"id"`
	Kind       PredictionKind   `db:"kind"`
	Stake      decimal.Decimal  `db:"stake"`
	TotalOdds  decimal.Decimal  `db:"total_odds"`
	Visibility Visibility       `db:"visibility"`
	Status     PredictionStatus `db:"status"`
	Profit     *decimal.Decimal `db:"profit"`
	SettledAt  *time.Time       `db:"settled_at"`
	CreatedBy  uuid.UUID        `db:"created_by"`
	CreatedAt  time.Time        `db:"created_at"`

	// Legs are loaded alongside the prediction; never partially updated
	Legs []*Match `db:"-"`
}

// IsPending checks whether the prediction can still be settled
func (p *Prediction) IsPending() bool {
	return p.Status == PredictionStatusPending
}

// IsSettled checks whether the prediction has been graded won or lost
func (p *Prediction) IsSettled() bool {
	return p.Status == PredictionStatusWon || p.Status == PredictionStatusLost
}

// IsArchived reports whether a lost prediction was force-closed without a
// real grading. An archived close stores profit of exactly zero, which a
// true loss never does (a real loss always records -stake).
func (p *Prediction) IsArchived() bool {
	return p.Status == PredictionStatusLost && p.Profit != nil && p.Profit.IsZero()
}

// PotentialReturn returns stake * total odds, the gross payout if won
func (p *Prediction) PotentialReturn() decimal.Decimal {
	return p.Stake.Mul(p.TotalOdds)
}

// SettlementResult represents the outcome of a settlement operation
// (returned to the caller alongside the refreshed bankroll)
type SettlementResult struct {
	Prediction *Prediction
	Profit     decimal.Decimal
	NewBalance decimal.Decimal
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bankroll is the single shared ledger aggregate. Exactly one row exists;
// it is created at bootstrap and mutated only by settlement deltas or by a
// full recomputation over the settled predictions.
type Bankroll struct {
	ID          uuid.UUID       `db:"id"`
	Balance     decimal.Decimal `db:"balance"`
	TotalProfit decimal.Decimal `db:"total_profit"`
	TotalLoss   decimal.Decimal `db:"total_loss"`
	WonCount    int             `db:"won_count"`
	LostCount   int             `db:"lost_count"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Apply folds one settlement profit into the aggregate. The accumulation is
// commutative, so recomputation can replay settled predictions in any order.
func (b *Bankroll) Apply(profit decimal.Decimal, won bool) {
	b.Balance = b.Balance.Add(profit)
	if won {
		b.TotalProfit = b.TotalProfit.Add(profit)
		b.WonCount++
	} else {
		b.TotalLoss = b.TotalLoss.Add(profit.Abs())
		b.LostCount++
	}
}

// Reset returns the aggregate to its bootstrap state before a recomputation
func (b *Bankroll) Reset(initialBalance decimal.Decimal) {
	b.Balance = initialBalance
	b.TotalProfit = decimal.Zero
	b.TotalLoss = decimal.Zero
	b.WonCount = 0
	b.LostCount = 0
}

// CheckInvariant verifies balance == initial + total_profit - total_loss
// and that the counters are sane
func (b *Bankroll) CheckInvariant(initialBalance decimal.Decimal) bool {
	if b.WonCount < 0 || b.LostCount < 0 {
		return false
	}
	expected := initialBalance.Add(b.TotalProfit).Sub(b.TotalLoss)
	return b.Balance.Equal(expected)
}

// SettledCount returns the number of settlements folded into the ledger
func (b *Bankroll) SettledCount() int {
	return b.WonCount + b.LostCount
}

// BankrollStats is the derived read model shown to viewers
type BankrollStats struct {
	Balance     decimal.Decimal `json:"balance"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	TotalLoss   decimal.Decimal `json:"total_loss"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	WonCount    int             `json:"won_count"`
	LostCount   int             `json:"lost_count"`
	SettledBets int             `json:"settled_bets"`
	WinRate     decimal.Decimal `json:"win_rate"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Stats computes the derived figures for presentation
func (b *Bankroll) Stats() *BankrollStats {
	settled := b.SettledCount()
	winRate := decimal.Zero
	if settled > 0 {
		winRate = decimal.NewFromInt(int64(b.WonCount)).
			Div(decimal.NewFromInt(int64(settled))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return &BankrollStats{
		Balance:     b.Balance,
		TotalProfit: b.TotalProfit,
		TotalLoss:   b.TotalLoss,
		NetProfit:   b.TotalProfit.Sub(b.TotalLoss),
		WonCount:    b.WonCount,
		LostCount:   b.LostCount,
		SettledBets: settled,
		WinRate:     winRate,
		UpdatedAt:   b.UpdatedAt,
	}
}

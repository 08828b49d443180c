package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sport identifies the sport a match leg belongs to
type Sport string

const (
	SportFootball   Sport = "football"
	SportTennis     Sport = "tennis"
	SportBasketball Sport = "basketball"
	SportHockey     Sport = "hockey"
	SportRugby      Sport = "rugby"
	SportUS         Sport = "sports_us"
)

// ValidSport checks whether s is one of the supported sport tags
func ValidSport(s Sport) bool {
	switch s {
	case SportFootball, SportTennis, SportBasketball, SportHockey, SportRugby, SportUS:
		return true
	}
	return false
}

// Match is one leg of a prediction. Legs are immutable once created and are
// removed only when their owning prediction is deleted.
type Match struct {
	ID           uuid.UUID       `db:"id"`
	PredictionID uuid.UUID       `db:"prediction_id"`
	Sport        Sport           `db:"sport"`
	Team1        string          `db:"team1"`
	Team2        string          `db:"team2"`
	BetType      string          `db:"bet_type"`
	Odds         decimal.Decimal `db:"odds"`
	Result       *string         `db:"result"`
	MatchDate    time.Time       `db:"match_date"`
	CreatedAt    time.Time       `db:"created_at"`
}

package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tipbook/models"
)

type matchResponse struct {
	ID        uuid.UUID       `json:"id"`
	Sport     models.Sport    `json:"sport"`
	Team1     string          `json:"team1"`
	Team2     string          `json:"team2"`
	BetType   string          `json:"bet_type"`
	Odds      decimal.Decimal `json:"odds"`
	Result    *string         `json:"result,omitempty"`
	MatchDate time.Time       `json:"match_date"`
}

type predictionResponse struct {
	ID         uuid.UUID               `json:"id"`
	Kind       models.PredictionKind   `json:"kind"`
	Stake      decimal.Decimal         `json:"stake"`
	TotalOdds  decimal.Decimal         `json:"total_odds"`
	Visibility models.Visibility       `json:"visibility"`
	Status     models.PredictionStatus `json:"status"`
	Profit     *decimal.Decimal        `json:"profit,omitempty"`
	SettledAt  *time.Time              `json:"settled_at,omitempty"`
	Archived   bool                    `json:"archived"`
	CreatedAt  time.Time               `json:"created_at"`
	Legs       []matchResponse         `json:"legs"`
}

func toPredictionResponse(p *models.Prediction) predictionResponse {
	legs := make([]matchResponse, 0, len(p.Legs))
	for _, m := range p.Legs {
		legs = append(legs, matchResponse{
			ID:        m.ID,
			Sport:     m.Sport,
			Team1:     m.Team1,
			Team2:     m.Team2,
			BetType:   m.BetType,
			Odds:      m.Odds,
			Result:    m.Result,
			MatchDate: m.MatchDate,
		})
	}
	return predictionResponse{
		ID:         p.ID,
		Kind:       p.Kind,
		Stake:      p.Stake,
		TotalOdds:  p.TotalOdds,
		Visibility: p.Visibility,
		Status:     p.Status,
		Profit:     p.Profit,
		SettledAt:  p.SettledAt,
		Archived:   p.IsArchived(),
		CreatedAt:  p.CreatedAt,
		Legs:       legs,
	}
}

func toPredictionResponses(predictions []*models.Prediction) []predictionResponse {
	out := make([]predictionResponse, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, toPredictionResponse(p))
	}
	return out
}

type settlementResponse struct {
	Prediction predictionResponse `json:"prediction"`
	Profit     decimal.Decimal    `json:"profit"`
	NewBalance decimal.Decimal    `json:"new_balance"`
}

type newsResponse struct {
	ID         uuid.UUID               `json:"id"`
	Title      string                  `json:"title"`
	Content    string                  `json:"content"`
	ImageURL   *string                 `json:"image_url,omitempty"`
	Visibility models.Visibility       `json:"visibility"`
	Status     models.PredictionStatus `json:"status"`
	Category   models.NewsCategory     `json:"category"`
	CreatedAt  time.Time               `json:"created_at"`
}

func toNewsResponse(n *models.News) newsResponse {
	return newsResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		ImageURL:   n.ImageURL,
		Visibility: n.Visibility,
		Status:     n.Status,
		Category:   n.Category,
		CreatedAt:  n.CreatedAt,
	}
}

type userResponse struct {
	ID        uuid.UUID         `json:"id"`
	Email     string            `json:"email"`
	IsAdmin   bool              `json:"is_admin"`
	IsVIP     bool              `json:"is_vip"`
	Tier      models.ViewerTier `json:"tier"`
	CreatedAt time.Time         `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsVIP:     u.IsVIP,
		Tier:      u.Tier(),
		CreatedAt: u.CreatedAt,
	}
}

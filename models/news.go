package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsCategory classifies an article for display grouping
type NewsCategory string

const (
	NewsCategoryArticle    NewsCategory = "article"
	NewsCategoryAnalysis   NewsCategory = "analysis"
	NewsCategoryPrediction NewsCategory = "prediction"
)

// ValidNewsCategory checks whether c is a supported category
func ValidNewsCategory(c NewsCategory) bool {
	switch c {
	case NewsCategoryArticle, NewsCategoryAnalysis, NewsCategoryPrediction:
		return true
	}
	return false
}

// News is an editorial article. Status reuses the prediction lifecycle as a
// loose "this article's call panned out" marker and has no ledger effect.
type News struct {
	ID         uuid.UUID        `db:"id"`
	Title      string           `db:"title"`
	Content    string           `db:"content"`
	ImageURL   *string          `db:"image_url"`
	Visibility Visibility       `db:"visibility"`
	Status     PredictionStatus `db:"status"`
	Category   NewsCategory     `db:"category"`
	CreatedBy  *uuid.UUID       `db:"created_by"`
	CreatedAt  time.Time        `db:"created_at"`
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tipbook/events"
	"tipbook/models"
)

// PredictionFilter narrows a prediction listing
type PredictionFilter struct {
	// Status restricts to one lifecycle state when set
	Status *models.PredictionStatus

	// Visibilities restricts to the given visibilities; empty means all
	Visibilities []models.Visibility
}

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	// Create inserts a new prediction and fills in its ID and CreatedAt
	Create(ctx context.Context, prediction *models.Prediction) error

	// GetByID retrieves a prediction without its legs; nil when missing
	GetByID(ctx context.Context, id uuid.UUID) (*models.Prediction, error)

	// List returns predictions matching the filter, newest first
	List(ctx context.Context, filter PredictionFilter) ([]*models.Prediction, error)

	// GetSettled returns every won or lost prediction (recomputation input)
	GetSettled(ctx context.Context) ([]*models.Prediction, error)

	// UpdateSettlement persists status, profit and settled_at together
	UpdateSettlement(ctx context.Context, prediction *models.Prediction) error

	// UpdateVisibility flips a prediction between public and restricted
	UpdateVisibility(ctx context.Context, id uuid.UUID, visibility models.Visibility) error

	// Delete removes a prediction by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// MatchRepository defines the interface for match leg data access
type MatchRepository interface {
	// CreateBatch inserts all legs of a prediction
	CreateBatch(ctx context.Context, matches []*models.Match) error

	// GetByPrediction returns the legs of one prediction ordered by match date
	GetByPrediction(ctx context.Context, predictionID uuid.UUID) ([]*models.Match, error)

	// GetByPredictions returns legs for many predictions keyed by owner
	GetByPredictions(ctx context.Context, predictionIDs []uuid.UUID) (map[uuid.UUID][]*models.Match, error)

	// DeleteByPrediction removes all legs owned by a prediction
	DeleteByPrediction(ctx context.Context, predictionID uuid.UUID) error
}

// BankrollRepository defines the interface for the singleton ledger row
type BankrollRepository interface {
	// Get fetches the bankroll; a missing row is a NotFoundError, never a default
	Get(ctx context.Context) (*models.Bankroll, error)

	// GetForUpdate fetches the bankroll under a row lock, serializing
	// concurrent settlements and recomputations
	GetForUpdate(ctx context.Context) (*models.Bankroll, error)

	// Update persists the aggregate fields
	Update(ctx context.Context, bankroll *models.Bankroll) error
}

// NewsRepository defines the interface for news article data access
type NewsRepository interface {
	// Create inserts a new article and fills in its ID and CreatedAt
	Create(ctx context.Context, article *models.News) error

	// GetByID retrieves an article; nil when missing
	GetByID(ctx context.Context, id uuid.UUID) (*models.News, error)

	// List returns articles limited to the given visibilities, newest first
	List(ctx context.Context, visibilities []models.Visibility) ([]*models.News, error)

	// Update persists title, content, image, visibility, status and category
	Update(ctx context.Context, article *models.News) error

	// Delete removes an article by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for reader role lookups
type UserRepository interface {
	// GetByID retrieves a user; nil when missing
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetAll returns all users, newest first
	GetAll(ctx context.Context) ([]*models.User, error)

	// SetVIP toggles the VIP flag for a user
	SetVIP(ctx context.Context, id uuid.UUID, vip bool) error
}

// MatchInput describes one leg of a new prediction
type MatchInput struct {
	Sport     models.Sport
	Team1     string
	Team2     string
	BetType   string
	Odds      decimal.Decimal
	MatchDate string
}

// CreatePredictionInput describes a new prediction and its legs
type CreatePredictionInput struct {
	Kind       models.PredictionKind
	Stake      decimal.Decimal
	Visibility models.Visibility
	Legs       []MatchInput
}

// PredictionService defines the interface for the pick lifecycle
type PredictionService interface {
	// Create validates the input, computes total odds and stores the pick
	// with its legs as pending
	Create(ctx context.Context, actor *models.User, input CreatePredictionInput) (*models.Prediction, error)

	// List returns predictions the viewer tier may see, optionally filtered
	// by status, with legs attached, newest first
	List(ctx context.Context, tier models.ViewerTier, status *models.PredictionStatus) ([]*models.Prediction, error)

	// Settle grades a pending prediction and applies the profit delta to the
	// bankroll in the same transaction
	Settle(ctx context.Context, actor *models.User, id uuid.UUID, outcome models.Outcome) (*models.SettlementResult, error)

	// Archive force-closes a pending prediction as lost with zero profit.
	// The balance is unchanged but the pick still counts as settled, so
	// lost_count moves and a later recompute reproduces the same ledger
	Archive(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Prediction, error)

	// SetVisibility flips a prediction between public and restricted
	SetVisibility(ctx context.Context, actor *models.User, id uuid.UUID, visibility models.Visibility) error

	// Delete removes a prediction and its legs; if it was settled the
	// bankroll is recomputed from the remaining settled set in the same
	// transaction
	Delete(ctx context.Context, actor *models.User, id uuid.UUID) error
}

// BankrollService defines the interface for ledger reads and recovery
type BankrollService interface {
	// Snapshot returns the current bankroll aggregate
	Snapshot(ctx context.Context) (*models.Bankroll, error)

	// Recompute rebuilds the ledger from the settled predictions on record
	Recompute(ctx context.Context, actor *models.User) (*models.Bankroll, error)
}

// UpdateNewsInput carries the mutable fields of an article; nil leaves a
// field unchanged
type UpdateNewsInput struct {
	Title      *string
	Content    *string
	ImageURL   *string
	Visibility *models.Visibility
	Status     *models.PredictionStatus
	Category   *models.NewsCategory
}

// NewsService defines the interface for editorial articles
type NewsService interface {
	// Create publishes a new article
	Create(ctx context.Context, actor *models.User, article *models.News) (*models.News, error)

	// List returns articles the viewer tier may see, newest first
	List(ctx context.Context, tier models.ViewerTier) ([]*models.News, error)

	// Update applies the non-nil fields of input to an article
	Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateNewsInput) (*models.News, error)

	// Delete removes an article
	Delete(ctx context.Context, actor *models.User, id uuid.UUID) error
}

// UserService defines the interface for reader role management
type UserService interface {
	// GetByID resolves a user for viewer-tier classification; nil when unknown
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// List returns all users (admin only)
	List(ctx context.Context, actor *models.User) ([]*models.User, error)

	// SetVIP toggles a user's VIP flag (admin only)
	SetVIP(ctx context.Context, actor *models.User, id uuid.UUID, vip bool) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	PredictionRepository() PredictionRepository
	MatchRepository() MatchRepository
	BankrollRepository() BankrollRepository
	NewsRepository() NewsRepository
	UserRepository() UserRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}

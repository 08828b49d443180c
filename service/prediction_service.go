package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tipbook/config"
	"tipbook/events"
	"tipbook/models"
)

type predictionService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config
}

// NewPredictionService creates a new prediction service
func NewPredictionService(uowFactory UnitOfWorkFactory, cfg *config.Config) PredictionService {
	return &predictionService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (s *predictionService) Create(ctx context.Context, actor *models.User, input CreatePredictionInput) (*models.Prediction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	// Validate inputs before any write
	if !input.Stake.IsPositive() {
		return nil, NewValidationError("stake must be positive, got %s", input.Stake)
	}
	switch input.Kind {
	case models.PredictionKindSingle:
		if len(input.Legs) != 1 {
			return nil, NewValidationError("a single pick must have exactly one leg, got %d", len(input.Legs))
		}
	case models.PredictionKindCombined:
		if len(input.Legs) < 2 {
			return nil, NewValidationError("a combined pick needs at least two legs, got %d", len(input.Legs))
		}
	default:
		return nil, NewValidationError("unknown prediction kind %q", input.Kind)
	}
	if input.Visibility != models.VisibilityPublic && input.Visibility != models.VisibilityRestricted {
		return nil, NewValidationError("unknown visibility %q", input.Visibility)
	}

	legOdds := make([]decimal.Decimal, 0, len(input.Legs))
	legs := make([]*models.Match, 0, len(input.Legs))
	for i, leg := range input.Legs {
		if !models.ValidSport(leg.Sport) {
			return nil, NewValidationError("leg %d has unknown sport %q", i+1, leg.Sport)
		}
		if strings.TrimSpace(leg.Team1) == "" || strings.TrimSpace(leg.Team2) == "" {
			return nil, NewValidationError("leg %d is missing a participant name", i+1)
		}
		if strings.TrimSpace(leg.BetType) == "" {
			return nil, NewValidationError("leg %d is missing a bet type", i+1)
		}
		matchDate, err := parseMatchDate(leg.MatchDate)
		if err != nil {
			return nil, NewValidationError("leg %d has invalid match date %q", i+1, leg.MatchDate)
		}
		legOdds = append(legOdds, leg.Odds)
		legs = append(legs, &models.Match{
			Sport:     leg.Sport,
			Team1:     strings.TrimSpace(leg.Team1),
			Team2:     strings.TrimSpace(leg.Team2),
			BetType:   strings.TrimSpace(leg.BetType),
			Odds:      leg.Odds,
			MatchDate: matchDate,
		})
	}

	totalOdds, err := CombineOdds(legOdds)
	if err != nil {
		return nil, err
	}
	if totalOdds.LessThan(decimal.NewFromInt(1)) {
		return nil, NewValidationError("total odds %s below 1", totalOdds)
	}

	prediction := &models.Prediction{
		Kind:       input.Kind,
		Stake:      input.Stake,
		TotalOdds:  totalOdds,
		Visibility: input.Visibility,
		Status:     models.PredictionStatusPending,
		CreatedBy:  actor.ID,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.PredictionRepository().Create(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	for _, leg := range legs {
		leg.PredictionID = prediction.ID
	}
	if err := uow.MatchRepository().CreateBatch(ctx, legs); err != nil {
		return nil, fmt.Errorf("failed to create match legs: %w", err)
	}
	prediction.Legs = legs

	uow.EventBus().Publish(events.PredictionCreatedEvent{
		PredictionID: prediction.ID,
		Kind:         prediction.Kind,
		Stake:        prediction.Stake,
		TotalOdds:    prediction.TotalOdds,
		Visibility:   prediction.Visibility,
		LegCount:     len(legs),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return prediction, nil
}

func (s *predictionService) List(ctx context.Context, tier models.ViewerTier, status *models.PredictionStatus) ([]*models.Prediction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	filter := PredictionFilter{
		Status:       status,
		Visibilities: VisibleTo(tier),
	}
	predictions, err := uow.PredictionRepository().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(predictions))
	for _, p := range predictions {
		ids = append(ids, p.ID)
	}
	legsByPrediction, err := uow.MatchRepository().GetByPredictions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load match legs: %w", err)
	}
	for _, p := range predictions {
		p.Legs = legsByPrediction[p.ID]
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return predictions, nil
}

func (s *predictionService) Settle(ctx context.Context, actor *models.User, id uuid.UUID, outcome models.Outcome) (*models.SettlementResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if outcome != models.OutcomeWon && outcome != models.OutcomeLost {
		return nil, NewValidationError("unknown outcome %q", outcome)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prediction, err := uow.PredictionRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	if prediction == nil {
		return nil, NewNotFoundError("prediction", id.String())
	}
	if !prediction.IsPending() {
		return nil, NewInvalidStateError("prediction %s is already %s", id, prediction.Status)
	}

	// won: net profit above the returned stake; lost: the stake is gone
	won := outcome == models.OutcomeWon
	var profit decimal.Decimal
	if won {
		profit = prediction.Stake.Mul(prediction.TotalOdds).Sub(prediction.Stake).Round(oddsPlaces)
		prediction.Status = models.PredictionStatusWon
	} else {
		profit = prediction.Stake.Neg()
		prediction.Status = models.PredictionStatusLost
	}
	now := time.Now().UTC()
	prediction.Profit = &profit
	prediction.SettledAt = &now

	if err := uow.PredictionRepository().UpdateSettlement(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to persist settlement: %w", err)
	}

	// The ledger delta commits or rolls back together with the prediction
	// update; the row lock serializes concurrent settlements.
	bankroll, err := uow.BankrollRepository().GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	bankroll.Apply(profit, won)
	if !bankroll.CheckInvariant(s.cfg.InitialBankroll) {
		return nil, NewConsistencyError("balance %s does not reconcile after settling %s", bankroll.Balance, id)
	}
	if err := uow.BankrollRepository().Update(ctx, bankroll); err != nil {
		return nil, fmt.Errorf("failed to update bankroll: %w", err)
	}

	uow.EventBus().Publish(events.PredictionSettledEvent{
		PredictionID: prediction.ID,
		Outcome:      outcome,
		Profit:       profit,
		NewBalance:   bankroll.Balance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.SettlementResult{
		Prediction: prediction,
		Profit:     profit,
		NewBalance: bankroll.Balance,
	}, nil
}

func (s *predictionService) Archive(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Prediction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prediction, err := uow.PredictionRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	if prediction == nil {
		return nil, NewNotFoundError("prediction", id.String())
	}
	if !prediction.IsPending() {
		return nil, NewInvalidStateError("prediction %s is already %s", id, prediction.Status)
	}

	// Force-close with profit of exactly zero. The zero profit is the audit
	// marker distinguishing an archived close from a true loss.
	zero := decimal.Zero
	now := time.Now().UTC()
	prediction.Status = models.PredictionStatusLost
	prediction.Profit = &zero
	prediction.SettledAt = &now

	if err := uow.PredictionRepository().UpdateSettlement(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to persist archive: %w", err)
	}

	// The balance is untouched, but the pick still becomes a settled record:
	// folding a zero loss keeps won_count + lost_count equal to the settled
	// count and keeps recomputation in agreement with the running total.
	bankroll, err := uow.BankrollRepository().GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	bankroll.Apply(decimal.Zero, false)
	if !bankroll.CheckInvariant(s.cfg.InitialBankroll) {
		return nil, NewConsistencyError("balance %s does not reconcile after archiving %s", bankroll.Balance, id)
	}
	if err := uow.BankrollRepository().Update(ctx, bankroll); err != nil {
		return nil, fmt.Errorf("failed to update bankroll: %w", err)
	}

	uow.EventBus().Publish(events.PredictionArchivedEvent{PredictionID: prediction.ID})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return prediction, nil
}

func (s *predictionService) SetVisibility(ctx context.Context, actor *models.User, id uuid.UUID, visibility models.Visibility) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityRestricted {
		return NewValidationError("unknown visibility %q", visibility)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prediction, err := uow.PredictionRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get prediction: %w", err)
	}
	if prediction == nil {
		return NewNotFoundError("prediction", id.String())
	}

	if err := uow.PredictionRepository().UpdateVisibility(ctx, id, visibility); err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *predictionService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	prediction, err := uow.PredictionRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get prediction: %w", err)
	}
	if prediction == nil {
		return NewNotFoundError("prediction", id.String())
	}
	wasSettled := prediction.IsSettled()

	if err := uow.MatchRepository().DeleteByPrediction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match legs: %w", err)
	}
	if err := uow.PredictionRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prediction: %w", err)
	}

	// Deleting a settled record invalidates the running total; rebuild the
	// ledger from the remaining settled picks inside the same transaction so
	// readers never see the two out of sync.
	if wasSettled {
		bankroll, err := recomputeBankroll(ctx, uow, s.cfg.InitialBankroll)
		if err != nil {
			return err
		}
		uow.EventBus().Publish(events.BankrollRecomputedEvent{
			Balance:   bankroll.Balance,
			WonCount:  bankroll.WonCount,
			LostCount: bankroll.LostCount,
		})
	}

	uow.EventBus().Publish(events.PredictionDeletedEvent{
		PredictionID: id,
		WasSettled:   wasSettled,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// recomputeBankroll rebuilds the ledger aggregate from the settled
// predictions on record, under the bankroll row lock. The fold is
// order-independent, so no particular ordering of the settled set is needed.
func recomputeBankroll(ctx context.Context, uow UnitOfWork, initialBalance decimal.Decimal) (*models.Bankroll, error) {
	bankroll, err := uow.BankrollRepository().GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}

	settled, err := uow.PredictionRepository().GetSettled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settled predictions: %w", err)
	}

	bankroll.Reset(initialBalance)
	for _, p := range settled {
		if p.Profit == nil {
			return nil, NewConsistencyError("settled prediction %s has no stored profit", p.ID)
		}
		bankroll.Apply(*p.Profit, p.Status == models.PredictionStatusWon)
	}

	if !bankroll.CheckInvariant(initialBalance) {
		return nil, NewConsistencyError("recomputed balance %s does not reconcile", bankroll.Balance)
	}
	if bankroll.SettledCount() != len(settled) {
		return nil, NewConsistencyError("recomputed counts %d do not match %d settled predictions",
			bankroll.SettledCount(), len(settled))
	}

	if err := uow.BankrollRepository().Update(ctx, bankroll); err != nil {
		return nil, fmt.Errorf("failed to update bankroll: %w", err)
	}
	return bankroll, nil
}

// parseMatchDate accepts the date-only form used by the admin UI as well as
// full RFC 3339 timestamps
func parseMatchDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

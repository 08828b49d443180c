package service

import (
	"context"
	"fmt"

	"tipbook/config"
	"tipbook/events"
	"tipbook/models"
)

type bankrollService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config
}

// NewBankrollService creates a new bankroll service
func NewBankrollService(uowFactory UnitOfWorkFactory, cfg *config.Config) BankrollService {
	return &bankrollService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (s *bankrollService) Snapshot(ctx context.Context) (*models.Bankroll, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bankroll, err := uow.BankrollRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bankroll, nil
}

func (s *bankrollService) Recompute(ctx context.Context, actor *models.User) (*models.Bankroll, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bankroll, err := recomputeBankroll(ctx, uow, s.cfg.InitialBankroll)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.BankrollRecomputedEvent{
		Balance:   bankroll.Balance,
		WonCount:  bankroll.WonCount,
		LostCount: bankroll.LostCount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bankroll, nil
}

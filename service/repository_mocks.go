package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tipbook/events"
	"tipbook/models"
)

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) List(ctx context.Context, filter PredictionFilter) ([]*models.Prediction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) GetSettled(ctx context.Context) ([]*models.Prediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) UpdateSettlement(ctx context.Context, prediction *models.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) UpdateVisibility(ctx context.Context, id uuid.UUID, visibility models.Visibility) error {
	args := m.Called(ctx, id, visibility)
	return args.Error(0)
}

func (m *MockPredictionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByPrediction(ctx context.Context, predictionID uuid.UUID) ([]*models.Match, error) {
	args := m.Called(ctx, predictionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByPredictions(ctx context.Context, predictionIDs []uuid.UUID) (map[uuid.UUID][]*models.Match, error) {
	args := m.Called(ctx, predictionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) DeleteByPrediction(ctx context.Context, predictionID uuid.UUID) error {
	args := m.Called(ctx, predictionID)
	return args.Error(0)
}

// MockBankrollRepository is a mock implementation of BankrollRepository
type MockBankrollRepository struct {
	mock.Mock
}

func (m *MockBankrollRepository) Get(ctx context.Context) (*models.Bankroll, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bankroll), args.Error(1)
}

func (m *MockBankrollRepository) GetForUpdate(ctx context.Context) (*models.Bankroll, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bankroll), args.Error(1)
}

func (m *MockBankrollRepository) Update(ctx context.Context, bankroll *models.Bankroll) error {
	args := m.Called(ctx, bankroll)
	return args.Error(0)
}

// MockNewsRepository is a mock implementation of NewsRepository
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, article *models.News) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockNewsRepository) List(ctx context.Context, visibilities []models.Visibility) ([]*models.News, error) {
	args := m.Called(ctx, visibilities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.News), args.Error(1)
}

func (m *MockNewsRepository) Update(ctx context.Context, article *models.News) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) SetVIP(ctx context.Context, id uuid.UUID, vip bool) error {
	args := m.Called(ctx, id, vip)
	return args.Error(0)
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	Events []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Events = append(m.Events, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories; Begin, Commit and Rollback are regular mock
// expectations.
type MockUnitOfWork struct {
	mock.Mock
	predictionRepo PredictionRepository
	matchRepo      MatchRepository
	bankrollRepo   BankrollRepository
	newsRepo       NewsRepository
	userRepo       UserRepository
	publisher      *MockEventPublisher
}

// SetRepositories wires the mock repositories this unit of work hands out;
// nil is fine for repositories the test never touches
func (m *MockUnitOfWork) SetRepositories(
	predictionRepo PredictionRepository,
	matchRepo MatchRepository,
	bankrollRepo BankrollRepository,
	newsRepo NewsRepository,
	userRepo UserRepository,
) {
	m.predictionRepo = predictionRepo
	m.matchRepo = matchRepo
	m.bankrollRepo = bankrollRepo
	m.newsRepo = newsRepo
	m.userRepo = userRepo
	m.publisher = &MockEventPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) PredictionRepository() PredictionRepository {
	return m.predictionRepo
}

func (m *MockUnitOfWork) MatchRepository() MatchRepository {
	return m.matchRepo
}

func (m *MockUnitOfWork) BankrollRepository() BankrollRepository {
	return m.bankrollRepo
}

func (m *MockUnitOfWork) NewsRepository() NewsRepository {
	return m.newsRepo
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.publisher
}

// PublishedEvents returns the events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := f.Called()
	return args.Get(0).(UnitOfWork)
}

package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"tipbook/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePredictionCreated  EventType = "prediction_created"
	EventTypePredictionSettled  EventType = "prediction_settled"
	EventTypePredictionArchived EventType = "prediction_archived"
	EventTypePredictionDeleted  EventType = "prediction_deleted"
	EventTypeBankrollRecomputed EventType = "bankroll_recomputed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PredictionCreatedEvent represents a newly published pick
type PredictionCreatedEvent struct {
	PredictionID uuid.UUID
	Kind         models.PredictionKind
	Stake        decimal.Decimal
	TotalOdds    decimal.Decimal
	Visibility   models.Visibility
	LegCount     int
}

func (e PredictionCreatedEvent) Type() EventType {
	return EventTypePredictionCreated
}

// PredictionSettledEvent represents a settlement that was applied to the ledger
type PredictionSettledEvent struct {
	PredictionID uuid.UUID
	Outcome      models.Outcome
	Profit       decimal.Decimal
	NewBalance   decimal.Decimal
}

func (e PredictionSettledEvent) Type() EventType {
	return EventTypePredictionSettled
}

// PredictionArchivedEvent represents a force-close with no ledger effect
type PredictionArchivedEvent struct {
	PredictionID uuid.UUID
}

func (e PredictionArchivedEvent) Type() EventType {
	return EventTypePredictionArchived
}

// PredictionDeletedEvent represents a deleted pick; WasSettled signals that
// a ledger recomputation happened in the same transaction
type PredictionDeletedEvent struct {
	PredictionID uuid.UUID
	WasSettled   bool
}

func (e PredictionDeletedEvent) Type() EventType {
	return EventTypePredictionDeleted
}

// BankrollRecomputedEvent represents a full rebuild of the ledger aggregate
type BankrollRecomputedEvent struct {
	Balance   decimal.Decimal
	WonCount  int
	LostCount int
}

func (e BankrollRecomputedEvent) Type() EventType {
	return EventTypeBankrollRecomputed
}

// Handler processes an event
type Handler func(ctx context.Context, event Event)

// Bus is a simple in-process event bus
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// A transactional event bus for holding pending events coupled to the Unit of Work.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Use background context for event emission so handlers outlive the
	// transaction context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// called after db rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Package flightdesk is the high-level entry point for the flight booking
// assistant. It wires the turn router, the state store, and the per
// conversation locking into one Bot, with sensible defaults for embedding:
// in-memory state, clock-seeded pricing, and the built-in card renderer.
package flightdesk

import (
	"context"
	"log/slog"
	"time"

	"flightdesk/internal/bot"
	"flightdesk/internal/flows"
	"flightdesk/internal/logging"
	"flightdesk/pkg/adapters/memory"
	"flightdesk/pkg/domain"
	"flightdesk/pkg/ports"
	"flightdesk/pkg/pricing"
	"flightdesk/pkg/render"
	"flightdesk/pkg/session"
)

// Bot processes conversation turns. It is safe for concurrent use; turns
// of the same conversation are serialized internally.
type Bot struct {
	router   *bot.Router
	sessions *session.Manager
	store    ports.StateStore
	locker   ports.ConversationLocker
	deps     flows.Deps
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithStore replaces the default in-memory state store.
func WithStore(store ports.StateStore) Option {
	return func(b *Bot) {
		b.store = store
	}
}

// WithLocker enables distributed conversation locking.
func WithLocker(locker ports.ConversationLocker) Option {
	return func(b *Bot) {
		b.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithRenderer replaces the built-in card renderer.
func WithRenderer(renderer ports.Renderer) Option {
	return func(b *Bot) {
		b.deps.Renderer = renderer
	}
}

// WithPricer replaces the default cost generator.
func WithPricer(pricer ports.Pricer) Option {
	return func(b *Bot) {
		b.deps.Pricer = pricer
	}
}

// WithReservationIDs replaces the default reservation id source.
func WithReservationIDs(ids ports.ReservationIDs) Option {
	return func(b *Bot) {
		b.deps.IDs = ids
	}
}

// WithClock replaces the clock used for travel date validation.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		b.deps.Now = now
	}
}

// New creates a Bot. Without options it runs fully in memory.
func New(opts ...Option) (*Bot, error) {
	generator := pricing.New()
	b := &Bot{
		store:  memory.NewStore(),
		logger: logging.NewNop(),
		deps: flows.Deps{
			Renderer: render.New(),
			Pricer:   generator,
			IDs:      generator,
			Now:      time.Now,
		},
	}
	for _, opt := range opts {
		opt(b)
	}

	router, err := bot.New(b.store, b.deps, bot.WithLogger(b.logger))
	if err != nil {
		return nil, err
	}
	b.router = router

	sessionOpts := []session.Option{session.WithLogger(b.logger)}
	if b.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(b.locker))
	}
	b.sessions = session.NewManager(sessionOpts...)
	return b, nil
}

// OnTurn processes one turn, holding the conversation's lock for the
// duration.
func (b *Bot) OnTurn(ctx context.Context, turn domain.Turn) (domain.TurnOutput, error) {
	var output domain.TurnOutput
	err := b.sessions.WithLock(ctx, turn.ConversationID, func(ctx context.Context) error {
		var err error
		output, err = b.router.OnTurn(ctx, turn)
		return err
	})
	return output, err
}

// Start opens a conversation: it processes the conversationStarted turn and
// returns the greeting plus the main menu.
func (b *Bot) Start(ctx context.Context, conversationID string) (domain.TurnOutput, error) {
	return b.OnTurn(ctx, domain.Turn{
		ConversationID: conversationID,
		Type:           domain.EventConversationStarted,
	})
}

// Sessions exposes the conversation lock manager for transports that need
// to serialize around the Bot themselves.
func (b *Bot) Sessions() *session.Manager {
	return b.sessions
}

// Router exposes the underlying turn router.
func (b *Bot) Router() *bot.Router {
	return b.router
}

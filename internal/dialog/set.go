package dialog

import (
	"context"
	"fmt"
	"log/slog"

	"flightdesk/internal/logging"
	"flightdesk/internal/state"
	"flightdesk/pkg/domain"
)

// Dialog is a unit of conversational logic: either a prompt-validate leaf
// or a step-sequence composite. Implementations are stateless; all per-run
// state lives on the stack instance.
type Dialog interface {
	ID() string

	// Begin starts a freshly pushed instance.
	Begin(dc *Context, options any) (TurnResult, error)

	// Continue delivers the turn's utterance to the instance.
	Continue(dc *Context) (TurnResult, error)

	// Resume is called on a parent when its child instance ended, carrying
	// the child's result.
	Resume(dc *Context, result any) (TurnResult, error)
}

// Reprompter is implemented by dialogs that can re-send their pending
// question without consuming an answer (used for interruption keywords).
type Reprompter interface {
	Reprompt(dc *Context, inst *Instance) error
}

// Set is the registry of all dialogs reachable in a conversation.
type Set struct {
	dialogs map[string]Dialog
	logger  *slog.Logger
}

// SetOption configures a Set.
type SetOption func(*Set)

// WithLogger attaches a structured logger to the set and the contexts it
// creates.
func WithLogger(logger *slog.Logger) SetOption {
	return func(s *Set) {
		s.logger = logger
	}
}

// NewSet creates an empty dialog registry.
func NewSet(opts ...SetOption) *Set {
	s := &Set{
		dialogs: make(map[string]Dialog),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers a dialog. Registration fails fast on empty or duplicate
// ids; a broken registry must never survive to the first turn.
func (s *Set) Add(d Dialog) error {
	if d == nil {
		return fmt.Errorf("add dialog: nil dialog")
	}
	id := d.ID()
	if id == "" {
		return fmt.Errorf("add dialog: empty id")
	}
	if _, exists := s.dialogs[id]; exists {
		return fmt.Errorf("add dialog: duplicate id %q", id)
	}
	s.dialogs[id] = d
	return nil
}

// Find looks a dialog up by id.
func (s *Set) Find(id string) (Dialog, bool) {
	d, ok := s.dialogs[id]
	return d, ok
}

// CreateContext reconstructs the dialog stack from the conversation's
// persisted state and returns a Context ready to drive this turn.
func (s *Set) CreateContext(ctx context.Context, turn domain.Turn, conv *state.Conversation) (*Context, error) {
	stack, err := state.Get(ctx, conv, StackSlot, func() *Stack { return &Stack{} })
	if err != nil {
		return nil, fmt.Errorf("load dialog stack: %w", err)
	}
	return &Context{
		set:    s,
		tc:     NewTurnContext(ctx, turn, conv),
		stack:  stack,
		logger: s.logger,
	}, nil
}

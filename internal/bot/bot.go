// Package bot is the turn router: the single entry point that drives the
// dialog stack for one conversation turn, handles the interruption
// keywords, and commits conversation state exactly once per turn.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"flightdesk/internal/dialog"
	"flightdesk/internal/flows"
	"flightdesk/internal/logging"
	"flightdesk/internal/state"
	"flightdesk/pkg/domain"
	"flightdesk/pkg/ports"
)

const (
	greetingText = "Hello new Passenger!"
	farewellText = "Goodby Passenger!"
	fallbackText = "I am unable to do anything..."
	apologyText  = "Sorry, something went wrong on my side. Your reservations are untouched, please try again."
)

// Router processes turns against a durable state store. It is safe for
// concurrent use across conversations; turns of the same conversation must
// be serialized by the caller (see pkg/session).
type Router struct {
	store  ports.StateStore
	deps   flows.Deps
	set    *dialog.Set
	logger *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New builds a Router over the given store and flow dependencies. Missing
// collaborators fail here, never on a user's turn.
func New(store ports.StateStore, deps flows.Deps, opts ...Option) (*Router, error) {
	if store == nil {
		return nil, fmt.Errorf("bot: nil state store")
	}
	r := &Router{
		store:  store,
		deps:   deps,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	set := dialog.NewSet(dialog.WithLogger(r.logger))
	if err := flows.Register(set, deps); err != nil {
		return nil, err
	}
	r.set = set
	return r, nil
}

// OnTurn processes exactly one turn. All staged state reaches the store in
// a single flush after the dialog stack settles; a turn that faults inside
// a step is answered with an apology and leaves the persisted state
// untouched. A store failure on load or flush is the turn's error.
func (r *Router) OnTurn(ctx context.Context, turn domain.Turn) (domain.TurnOutput, error) {
	conv := state.NewConversation(turn.ConversationID, r.store)
	dc, err := r.set.CreateContext(ctx, turn, conv)
	if err != nil {
		return domain.TurnOutput{}, err
	}

	ended, procErr := r.process(dc, turn)
	if procErr != nil {
		r.logger.Error("turn failed",
			"conversation", turn.ConversationID,
			"error", procErr)
		return domain.TurnOutput{
			Activities: []domain.Activity{{Text: apologyText}},
		}, nil
	}

	if err := dc.SaveState(); err != nil {
		return domain.TurnOutput{}, err
	}
	if err := conv.Flush(ctx); err != nil {
		return domain.TurnOutput{}, err
	}

	return domain.TurnOutput{
		Activities: dc.Turn().Activities(),
		Ended:      ended,
	}, nil
}

// process runs the interruption keywords and the dialog stack. Panics in
// steps and validators surface as errors so one broken flow cannot take
// the process down.
func (r *Router) process(dc *dialog.Context, turn domain.Turn) (ended bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	tc := dc.Turn()

	if turn.Type == domain.EventConversationStarted {
		tc.Send(greetingText)
		_, err := dc.Begin(flows.MainDialogID, nil)
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(turn.Text)) {
	case "more flight":
		tc.Send(flows.FlightClassInfo)
		return false, dc.Reprompt()
	case "more cars":
		tc.Send(flows.CarClassInfo)
		return false, dc.Reprompt()
	case "help":
		card, err := r.deps.Renderer.Render(domain.TemplateHelp, nil)
		if err != nil {
			return false, err
		}
		tc.SendActivity(domain.Activity{Attachments: []domain.Attachment{card}})
		return false, dc.Reprompt()
	case "cancel":
		dc.CancelAll()
		_, err := dc.Begin(flows.MainDialogID, nil)
		return false, err
	case "exit":
		tc.Send(farewellText)
		dc.CancelAll()
		return true, nil
	}

	tr, err := dc.Continue()
	if err != nil {
		return false, err
	}
	if tr.Status == dialog.StatusEmpty {
		// First message without a conversationStarted event.
		tr, err = dc.Begin(flows.MainDialogID, nil)
		if err != nil {
			return false, err
		}
	}
	if tr.Status == dialog.StatusComplete {
		tc.Send(farewellText)
		return true, nil
	}
	if !tc.Responded() {
		tc.Send(fallbackText)
	}
	return false, nil
}

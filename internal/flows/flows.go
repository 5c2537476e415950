// Package flows defines the conversation flows of the booking assistant:
// the main menu, the flight and car rental intakes, and the reservation
// lookup flows. Each flow is a step sequence over the dialog engine; all
// collected data lives in conversation state slots, never on the flow
// values themselves.
package flows

import (
	"context"
	"fmt"
	"time"

	"flightdesk/internal/dialog"
	"flightdesk/internal/state"
	"flightdesk/pkg/domain"
	"flightdesk/pkg/ports"
)

// Dialog ids reachable from the turn router.
const (
	MainDialogID    = "main"
	FlightDialogID  = "flight"
	RentalDialogID  = "rental"
	ShowOneDialogID = "show-one"
	ShowAllDialogID = "show-all"
)

// Conversation state slots owned by the flows.
const (
	slotFlight       = "flightInfo"
	slotRental       = "rentalInfo"
	slotReservations = "reservations"
)

// Prompt ids, prefixed by their owning flow.
const (
	promptOperation = "main.operation"

	promptPassengerName = "flight.passenger-name"
	promptFromAirport   = "flight.from-airport"
	promptToAirport     = "flight.to-airport"
	promptOneOrTwoWay   = "flight.one-or-two-way"
	promptStartDate     = "flight.start-date"
	promptEndDate       = "flight.end-date"
	promptTripClass     = "flight.class"
	promptFlightConfirm = "flight.confirm"
	promptCarRental     = "flight.car-rental"

	promptRentalLength  = "rental.length"
	promptPassengers    = "rental.passengers"
	promptChildSeats    = "rental.child-seats"
	promptCarClass      = "rental.car-class"
	promptRentalConfirm = "rental.confirm"

	promptReservationID = "show-one.reservation-id"
	promptNextAction    = "show-one.next-action"
)

const (
	retryChoice    = "I don't recognize this option. Try again"
	retryChoiceDot = "I don't recognize this option. Try again."
)

// Deps are the collaborators the flows need. All of them are required.
type Deps struct {
	Renderer ports.Renderer
	Pricer   ports.Pricer
	IDs      ports.ReservationIDs

	// Now supplies the clock used to validate travel dates.
	Now func() time.Time
}

func (d Deps) validate() error {
	if d.Renderer == nil {
		return fmt.Errorf("flows: nil renderer")
	}
	if d.Pricer == nil {
		return fmt.Errorf("flows: nil pricer")
	}
	if d.IDs == nil {
		return fmt.Errorf("flows: nil reservation id source")
	}
	if d.Now == nil {
		return fmt.Errorf("flows: nil clock")
	}
	return nil
}

type flows struct {
	deps Deps
}

// Register wires every flow and prompt into the dialog set. A broken
// dependency set fails here, before the first turn.
func Register(set *dialog.Set, deps Deps) error {
	if err := deps.validate(); err != nil {
		return err
	}
	f := &flows{deps: deps}

	dialogs := []dialog.Dialog{
		f.mainDialog(),
		f.flightDialog(),
		f.rentalDialog(),
		f.showOneDialog(),
		f.showAllDialog(),

		dialog.NewChoicePrompt(promptOperation),

		dialog.NewTextPrompt(promptPassengerName, f.validatePassengerName),
		dialog.NewTextPrompt(promptFromAirport, f.validateFromAirport),
		dialog.NewTextPrompt(promptToAirport, f.validateToAirport),
		dialog.NewChoicePrompt(promptOneOrTwoWay),
		dialog.NewDateTimePrompt(promptStartDate, f.validateStartDate),
		dialog.NewDateTimePrompt(promptEndDate, f.validateEndDate),
		dialog.NewChoicePrompt(promptTripClass),
		dialog.NewChoicePrompt(promptFlightConfirm),
		dialog.NewChoicePrompt(promptCarRental),

		dialog.NewTextPrompt(promptRentalLength, f.validateRentalLength),
		dialog.NewTextPrompt(promptPassengers, f.validatePassengers),
		dialog.NewTextPrompt(promptChildSeats, f.validateChildSeats),
		dialog.NewChoicePrompt(promptCarClass),
		dialog.NewChoicePrompt(promptRentalConfirm),

		dialog.NewTextPrompt(promptReservationID, f.validateReservationID),
		dialog.NewChoicePrompt(promptNextAction),
	}
	for _, d := range dialogs {
		if err := set.Add(d); err != nil {
			return fmt.Errorf("flows: %w", err)
		}
	}
	return nil
}

// Slot accessors. Every step re-reads the slot, mutates, and stages the
// write back; nothing is cached across suspensions.

func flightInfo(ctx context.Context, conv *state.Conversation) (domain.FlightReservation, error) {
	return state.Get(ctx, conv, slotFlight, func() domain.FlightReservation {
		return domain.FlightReservation{}
	})
}

func setFlightInfo(conv *state.Conversation, fi domain.FlightReservation) error {
	return state.Set(conv, slotFlight, fi)
}

func rentalInfo(ctx context.Context, conv *state.Conversation) (domain.RentalReservation, error) {
	return state.Get(ctx, conv, slotRental, func() domain.RentalReservation {
		return domain.RentalReservation{}
	})
}

func setRentalInfo(conv *state.Conversation, ri domain.RentalReservation) error {
	return state.Set(conv, slotRental, ri)
}

func catalog(ctx context.Context, conv *state.Conversation) (domain.ReservationCatalog, error) {
	return state.Get(ctx, conv, slotReservations, func() domain.ReservationCatalog {
		return domain.ReservationCatalog{}
	})
}

func setCatalog(conv *state.Conversation, c domain.ReservationCatalog) error {
	return state.Set(conv, slotReservations, c)
}

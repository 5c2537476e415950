package flows

import (
	"strings"

	"flightdesk/internal/dialog"
)

// Main menu option titles.
const (
	optBuyFlight  = "Buy flight ticket"
	optShowSingle = "Show single reservation"
	optShowAll    = "Show all reservations"
	optCancelRes  = "Cancel the reservation"
	optFinish     = "Finish conversation"
)

// mainDialog is the root menu. It loops forever through a tail transition
// until the passenger picks "Finish conversation".
func (f *flows) mainDialog() *dialog.Waterfall {
	return dialog.NewWaterfall(MainDialogID,
		f.askOperation,
		f.dispatchOperation,
		f.restartMenu,
	)
}

func (f *flows) askOperation(sc *dialog.StepContext) (dialog.Result, error) {
	return sc.Prompt(promptOperation, dialog.PromptOptions{
		Prompt:      "Please choose one of the options:",
		RetryPrompt: retryChoiceDot,
		Choices:     []string{optBuyFlight, optShowSingle, optShowAll, optCancelRes, optFinish},
	})
}

func (f *flows) dispatchOperation(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	switch {
	case strings.EqualFold(choice.Value, optShowSingle):
		return sc.Begin(ShowOneDialogID, nil)
	case strings.EqualFold(choice.Value, optShowAll):
		return sc.Begin(ShowAllDialogID, nil)
	case strings.EqualFold(choice.Value, optCancelRes):
		// Cancellation runs through the single-reservation flow, which
		// offers a cancel action once a reservation is displayed.
		return sc.Begin(ShowOneDialogID, nil)
	case strings.EqualFold(choice.Value, optFinish):
		return sc.End(nil)
	default:
		return sc.Begin(FlightDialogID, nil)
	}
}

func (f *flows) restartMenu(sc *dialog.StepContext) (dialog.Result, error) {
	return sc.Replace(nil)
}

package flows

import (
	"fmt"
	"strconv"
	"strings"

	"flightdesk/internal/dialog"
	"flightdesk/pkg/domain"
)

const (
	optShowOther  = "Dispaly other reservation"
	optBackToMenu = "Return to main menu"
)

// Cross-step value holding the id of the displayed reservation; zero when
// the lookup found nothing.
const valueRequestID = "requestID"

// showOneDialog looks a single reservation up by id, displays it, and
// offers cancellation of exactly that reservation.
func (f *flows) showOneDialog() *dialog.Waterfall {
	return dialog.NewWaterfall(ShowOneDialogID,
		f.askReservationID,
		f.displayReservation,
		f.askNextAction,
		f.finishShowOne,
	)
}

func (f *flows) askReservationID(sc *dialog.StepContext) (dialog.Result, error) {
	cat, err := catalog(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	if cat.Len() == 0 {
		sc.Send("There is no reservation to display.")
		return sc.End(nil)
	}
	return sc.Prompt(promptReservationID, dialog.PromptOptions{
		Prompt: "Please enter reservation ID.",
	})
}

func (f *flows) displayReservation(sc *dialog.StepContext) (dialog.Result, error) {
	text, err := sc.Text()
	if err != nil {
		return dialog.Result{}, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return dialog.Result{}, err
	}
	cat, err := catalog(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}

	reservation, found := cat.Find(id)
	if !found {
		sc.Send("There is not any reservation matching provided ID.")
		sc.SetValue(valueRequestID, 0)
		return sc.Next(nil)
	}

	card, err := f.reservationCard(reservation)
	if err != nil {
		return dialog.Result{}, err
	}
	sc.SendActivity(domain.Activity{Attachments: []domain.Attachment{card}})
	sc.SetValue(valueRequestID, id)
	return sc.Next(nil)
}

func (f *flows) askNextAction(sc *dialog.StepContext) (dialog.Result, error) {
	id := sc.IntValue(valueRequestID)

	var choices []string
	if id == 0 {
		choices = []string{optShowOther, optBackToMenu}
	} else {
		choices = []string{fmt.Sprintf("Cancel reservation %d", id), optShowOther, optBackToMenu}
	}
	return sc.Prompt(promptNextAction, dialog.PromptOptions{
		Prompt:      "What would you like to do next:",
		RetryPrompt: retryChoiceDot,
		Choices:     choices,
	})
}

func (f *flows) finishShowOne(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	switch {
	case strings.EqualFold(choice.Value, optShowOther):
		return sc.Replace(nil)
	case strings.HasPrefix(choice.Value, "Cancel reservation"):
		id := sc.IntValue(valueRequestID)
		cat, err := catalog(sc.Context(), sc.Conversation())
		if err != nil {
			return dialog.Result{}, err
		}
		if !cat.Remove(id) {
			return dialog.Result{}, fmt.Errorf("cancel reservation %d: not in catalog", id)
		}
		if err := setCatalog(sc.Conversation(), cat); err != nil {
			return dialog.Result{}, err
		}
		sc.Send("Your reservaton has been successfully cancelled.")
		return sc.End(nil)
	default:
		return sc.End(nil)
	}
}

// validateReservationID accepts only ids strictly inside the 7-digit range
// reservations are minted from.
func (f *flows) validateReservationID(dc *dialog.Context, value string) (bool, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 1000000 || id >= 9999999 {
		dc.Turn().Send("Please type in correct reservation ID.")
		return false, nil
	}
	return true, nil
}

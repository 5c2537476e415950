package flows

import (
	"fmt"
	"strings"
	"time"

	"flightdesk/internal/dialog"
	"flightdesk/pkg/domain"
)

const (
	optOneWay  = "One way flight"
	optTwoWays = "Two ways flight"

	optConfirm   = "Yes, confirm"
	optStartOver = "No, start over"

	optRentCar  = "Yes, I would like to rent a car."
	optNoRental = "No, thank you."
)

// flightDialog collects a complete flight booking, confirms it against a
// summary card, and optionally hands off to the rental flow before the
// reservation lands in the catalog.
func (f *flows) flightDialog() *dialog.Waterfall {
	return dialog.NewWaterfall(FlightDialogID,
		f.askPassengerName,
		f.askFromAirport,
		f.askToAirport,
		f.askOneOrTwoWay,
		f.askStartDate,
		f.askEndDate,
		f.askTripClass,
		f.showFlightSummary,
		f.confirmFlight,
		f.askForCarRental,
		f.storeReservation,
	)
}

func (f *flows) askPassengerName(sc *dialog.StepContext) (dialog.Result, error) {
	card, err := f.deps.Renderer.Render(domain.TemplateQuickHelp, nil)
	if err != nil {
		return dialog.Result{}, err
	}
	sc.SendActivity(domain.Activity{Attachments: []domain.Attachment{card}})

	return sc.Prompt(promptPassengerName, dialog.PromptOptions{
		Prompt: "Please enter your name.",
	})
}

func (f *flows) askFromAirport(sc *dialog.StepContext) (dialog.Result, error) {
	name, err := sc.Text()
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.PassengerName = name
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptFromAirport, dialog.PromptOptions{
		Prompt: "Please enter departure airport.",
	})
}

func (f *flows) askToAirport(sc *dialog.StepContext) (dialog.Result, error) {
	from, err := sc.Text()
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.FromAirport = from
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptToAirport, dialog.PromptOptions{
		Prompt: "Please enter arrival airport",
	})
}

func (f *flows) askOneOrTwoWay(sc *dialog.StepContext) (dialog.Result, error) {
	to, err := sc.Text()
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.ToAirport = to
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptOneOrTwoWay, dialog.PromptOptions{
		Prompt:      "Please choose one of the options:",
		RetryPrompt: retryChoice,
		Choices:     []string{optOneWay, optTwoWays},
	})
}

func (f *flows) askStartDate(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.OneWay = choice.Value == optOneWay
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptStartDate, dialog.PromptOptions{
		Prompt: "Please enter departure date.",
	})
}

func (f *flows) askEndDate(sc *dialog.StepContext) (dialog.Result, error) {
	dates, err := sc.Dates()
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.StartDate = dates[0].Value
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	// One way trips have no return leg to ask about.
	if fi.OneWay {
		return sc.Next(nil)
	}
	return sc.Prompt(promptEndDate, dialog.PromptOptions{
		Prompt: "Please enter date of return.",
	})
}

func (f *flows) askTripClass(sc *dialog.StepContext) (dialog.Result, error) {
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	if fi.OneWay {
		fi.EndDate = ""
	} else {
		dates, err := sc.Dates()
		if err != nil {
			return dialog.Result{}, err
		}
		fi.EndDate = dates[0].Value
	}
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptTripClass, dialog.PromptOptions{
		Prompt:      "Please choose flight class (to access more details type in 'more flight'):",
		RetryPrompt: retryChoice,
		Choices: []string{
			string(domain.TripStandard),
			string(domain.TripBusiness),
			string(domain.TripPremium),
		},
	})
}

func (f *flows) showFlightSummary(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.TripClass = domain.TripClass(choice.Value)
	fi.Cost = f.deps.Pricer.FlightCost(fi.TripClass)
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}

	sc.Send("Thank you, below you can find your reservation.")
	card, err := f.flightCard(fi, "")
	if err != nil {
		return dialog.Result{}, err
	}
	sc.SendActivity(domain.Activity{Attachments: []domain.Attachment{card}})

	return sc.Prompt(promptFlightConfirm, dialog.PromptOptions{
		Prompt:      "Please verify if flight details are correct and choose option:",
		RetryPrompt: retryChoice,
		Choices:     []string{optConfirm, optStartOver},
	})
}

func (f *flows) confirmFlight(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	if !strings.EqualFold(choice.Value, optConfirm) {
		return sc.Replace(nil)
	}

	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.ReservationID = f.deps.IDs.ReservationID()
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}
	sc.Send(fmt.Sprintf("Thank you, please save your reservation id: %d.", fi.ReservationID))

	return sc.Prompt(promptCarRental, dialog.PromptOptions{
		Prompt:      "Would you like to rent a car on destination aiport?",
		RetryPrompt: retryChoice,
		Choices:     []string{optRentCar, optNoRental},
	})
}

func (f *flows) askForCarRental(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	if strings.EqualFold(choice.Value, optRentCar) {
		return sc.Begin(RentalDialogID, nil)
	}

	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.Rental = nil
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}
	return sc.Next(nil)
}

func (f *flows) storeReservation(sc *dialog.StepContext) (dialog.Result, error) {
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	cat, err := catalog(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	cat.Append(fi)
	if err := setCatalog(sc.Conversation(), cat); err != nil {
		return dialog.Result{}, err
	}
	return sc.End(nil)
}

// Flight validators. Each sends its own failure message; the prompt stays
// waiting until one of them passes.

func (f *flows) validatePassengerName(dc *dialog.Context, value string) (bool, error) {
	words := strings.Fields(value)
	if len(words) < 1 || len(words) > 3 {
		dc.Turn().Send("Please type in correct name.")
		return false, nil
	}
	return true, nil
}

func (f *flows) validateFromAirport(dc *dialog.Context, value string) (bool, error) {
	words := strings.Fields(value)
	if len(words) < 1 || len(words) > 2 {
		dc.Turn().Send("Please type in correct departure airport.")
		return false, nil
	}
	return true, nil
}

func (f *flows) validateToAirport(dc *dialog.Context, value string) (bool, error) {
	fi, err := flightInfo(dc.Turn().Context(), dc.Turn().Conversation())
	if err != nil {
		return false, err
	}
	words := strings.Fields(value)
	if len(words) < 1 || len(words) > 2 || strings.EqualFold(fi.FromAirport, value) {
		dc.Turn().Send("Please type in correct arrival airport.")
		return false, nil
	}
	return true, nil
}

func (f *flows) validateStartDate(dc *dialog.Context, resolutions []dialog.DateTimeResolution) (bool, error) {
	start, ok := parseResolution(resolutions)
	if !ok {
		dc.Turn().Send("Please type in correct departure date.")
		return false, nil
	}
	now := f.deps.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !start.After(today) {
		dc.Turn().Send("Departure date should be greater than today.")
		return false, nil
	}
	return true, nil
}

func (f *flows) validateEndDate(dc *dialog.Context, resolutions []dialog.DateTimeResolution) (bool, error) {
	end, ok := parseResolution(resolutions)
	if !ok {
		dc.Turn().Send("Please type in correct arrival date.")
		return false, nil
	}
	fi, err := flightInfo(dc.Turn().Context(), dc.Turn().Conversation())
	if err != nil {
		return false, err
	}
	start, err2 := time.Parse(dialog.DateValueLayout, fi.StartDate)
	if err2 != nil {
		return false, fmt.Errorf("stored departure date %q: %w", fi.StartDate, err2)
	}
	if end.Before(start) {
		dc.Turn().Send("Return date should be greater or the same as departure date")
		return false, nil
	}
	return true, nil
}

func parseResolution(resolutions []dialog.DateTimeResolution) (time.Time, bool) {
	if len(resolutions) == 0 {
		return time.Time{}, false
	}
	t, err := time.Parse(dialog.DateValueLayout, resolutions[0].Value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

package flows

import (
	"strconv"
	"strings"

	"flightdesk/internal/dialog"
	"flightdesk/pkg/domain"
)

// rentalDialog collects a car rental as a child of the flight flow. On
// confirmation the rental attaches to the in-progress flight reservation;
// a rejected summary wipes the collected data and starts the intake over.
func (f *flows) rentalDialog() *dialog.Waterfall {
	return dialog.NewWaterfall(RentalDialogID,
		f.askRentalLength,
		f.askPassengersNumber,
		f.askChildSeats,
		f.askCarClass,
		f.showRentalSummary,
		f.finishRental,
	)
}

func (f *flows) askRentalLength(sc *dialog.StepContext) (dialog.Result, error) {
	return sc.Prompt(promptRentalLength, dialog.PromptOptions{
		Prompt: "Please enter the number of days you would like to rent a car.",
	})
}

func (f *flows) askPassengersNumber(sc *dialog.StepContext) (dialog.Result, error) {
	text, err := sc.Text()
	if err != nil {
		return dialog.Result{}, err
	}
	days, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return dialog.Result{}, err
	}
	ri, err := rentalInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	ri.Days = days
	if err := setRentalInfo(sc.Conversation(), ri); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptPassengers, dialog.PromptOptions{
		Prompt: "Please enter the number of people which will travel with you.",
	})
}

func (f *flows) askChildSeats(sc *dialog.StepContext) (dialog.Result, error) {
	text, err := sc.Text()
	if err != nil {
		return dialog.Result{}, err
	}
	passengers, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return dialog.Result{}, err
	}
	ri, err := rentalInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	ri.Passengers = passengers
	if err := setRentalInfo(sc.Conversation(), ri); err != nil {
		return dialog.Result{}, err
	}

	// Travelling alone means no child seat question.
	if passengers == 0 {
		return sc.Next(nil)
	}
	return sc.Prompt(promptChildSeats, dialog.PromptOptions{
		Prompt: "In case you are going to travel with child, please enter the number of child seats you will need.",
	})
}

func (f *flows) askCarClass(sc *dialog.StepContext) (dialog.Result, error) {
	ri, err := rentalInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	// The child seat prompt may have been skipped; the step result is then
	// not a number and the count stays zero.
	ri.ChildSeats = 0
	if text, ok := sc.Result().(string); ok {
		if seats, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			ri.ChildSeats = seats
		}
	}
	if err := setRentalInfo(sc.Conversation(), ri); err != nil {
		return dialog.Result{}, err
	}

	return sc.Prompt(promptCarClass, dialog.PromptOptions{
		Prompt:      "Please choose car class (to access more details type in 'more cars'):",
		RetryPrompt: retryChoice,
		Choices: []string{
			string(domain.CarEconomy),
			string(domain.CarStandard),
			string(domain.CarPremium),
		},
	})
}

func (f *flows) showRentalSummary(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	ri, err := rentalInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	ri.CarClass = domain.CarClass(choice.Value)
	ri.Cost = f.deps.Pricer.RentalCost(ri.CarClass, ri.Days)
	if err := setRentalInfo(sc.Conversation(), ri); err != nil {
		return dialog.Result{}, err
	}

	sc.Send("Thank you, below you can find your car rental details.")
	card, err := f.deps.Renderer.Render(domain.TemplateRentalDetails, rentalFields(ri))
	if err != nil {
		return dialog.Result{}, err
	}
	sc.SendActivity(domain.Activity{Attachments: []domain.Attachment{card}})

	return sc.Prompt(promptRentalConfirm, dialog.PromptOptions{
		Prompt:      "Please verify if rental details are correct and choose option:",
		RetryPrompt: retryChoice,
		Choices:     []string{optConfirm, optStartOver},
	})
}

func (f *flows) finishRental(sc *dialog.StepContext) (dialog.Result, error) {
	choice, err := sc.Choice()
	if err != nil {
		return dialog.Result{}, err
	}
	if !strings.EqualFold(choice.Value, optConfirm) {
		if err := setRentalInfo(sc.Conversation(), domain.RentalReservation{}); err != nil {
			return dialog.Result{}, err
		}
		return sc.Replace(nil)
	}

	ri, err := rentalInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi, err := flightInfo(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	fi.Rental = &ri
	if err := setFlightInfo(sc.Conversation(), fi); err != nil {
		return dialog.Result{}, err
	}
	sc.Send("Thank you, your car rental has been associated with you flight reservation. " +
		"Contact with Rental Office at destination airport in order to get the car. " +
		"You can ask airport staff to get directions of Rental Office.")
	return sc.End(nil)
}

// Rental validators.

func (f *flows) validateRentalLength(dc *dialog.Context, value string) (bool, error) {
	days, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		dc.Turn().Send("The value you have provided is not correct, please try again.")
		return false, nil
	}
	if days <= 0 {
		dc.Turn().Send("You cannot rent a car for less ten 1 day.")
		return false, nil
	}
	if days >= 90 {
		dc.Turn().Send("You cannot rent a car for more ten 90 days.")
		return false, nil
	}
	return true, nil
}

func (f *flows) validatePassengers(dc *dialog.Context, value string) (bool, error) {
	passengers, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		dc.Turn().Send("The value you have provided is not correct, please try again.")
		return false, nil
	}
	if passengers < 0 {
		dc.Turn().Send("The value you have provided is not correct, if you are going to travel alone please type in 0.")
		return false, nil
	}
	if passengers > 7 {
		dc.Turn().Send("Sorry, we do not have such a big cars.")
		return false, nil
	}
	return true, nil
}

func (f *flows) validateChildSeats(dc *dialog.Context, value string) (bool, error) {
	seats, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		dc.Turn().Send("The value you have provided is not correct, please try again.")
		return false, nil
	}
	ri, err2 := rentalInfo(dc.Turn().Context(), dc.Turn().Conversation())
	if err2 != nil {
		return false, err2
	}
	if seats > ri.Passengers {
		dc.Turn().Send("The value is grater than value of passengers you have declared before, please type in correct child seats number.")
		return false, nil
	}
	return true, nil
}

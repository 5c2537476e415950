package flows

import (
	"flightdesk/internal/dialog"
	"flightdesk/pkg/domain"
)

// showAllDialog displays every catalog entry as one activity carrying a
// card per reservation, then ends immediately.
func (f *flows) showAllDialog() *dialog.Waterfall {
	return dialog.NewWaterfall(ShowAllDialogID, f.displayAllReservations)
}

func (f *flows) displayAllReservations(sc *dialog.StepContext) (dialog.Result, error) {
	cat, err := catalog(sc.Context(), sc.Conversation())
	if err != nil {
		return dialog.Result{}, err
	}
	if cat.Len() == 0 {
		sc.Send("There is no reservation to display.")
		return sc.End(nil)
	}

	activity := domain.Activity{}
	for _, reservation := range cat.Reservations {
		card, err := f.reservationCard(reservation)
		if err != nil {
			return dialog.Result{}, err
		}
		activity.Attachments = append(activity.Attachments, card)
	}
	sc.SendActivity(activity)
	return sc.End(nil)
}

package flows

import (
	"fmt"
	"strconv"

	"flightdesk/pkg/domain"
)

// flightCard renders the summary card of an in-progress booking. An empty
// header keeps the template's default title.
func (f *flows) flightCard(fi domain.FlightReservation, header string) (domain.Attachment, error) {
	fields := flightFields(fi)
	if header != "" {
		fields[domain.FieldHeader] = header
	}
	return f.deps.Renderer.Render(flightTemplate(fi), fields)
}

// reservationCard renders a confirmed catalog entry, titled by its id.
func (f *flows) reservationCard(r domain.FlightReservation) (domain.Attachment, error) {
	return f.flightCard(r, fmt.Sprintf("Reservation %d", r.ReservationID))
}

func flightTemplate(fi domain.FlightReservation) string {
	switch {
	case fi.OneWay && fi.Rental == nil:
		return domain.TemplateFlightOneWay
	case !fi.OneWay && fi.Rental == nil:
		return domain.TemplateFlightTwoWays
	case fi.OneWay:
		return domain.TemplateFlightOneWayRental
	default:
		return domain.TemplateFlightTwoWaysRental
	}
}

func flightFields(fi domain.FlightReservation) map[string]string {
	fields := map[string]string{
		domain.FieldPassengerName: fi.PassengerName,
		domain.FieldFromAirport:   fi.FromAirport,
		domain.FieldToAirport:     fi.ToAirport,
		domain.FieldStartDate:     fi.StartDate,
		domain.FieldTripClass:     string(fi.TripClass),
		domain.FieldFlightCost:    dollars(fi.Cost),
	}
	if !fi.OneWay {
		fields[domain.FieldEndDate] = fi.EndDate
	}
	if fi.Rental != nil {
		for k, v := range rentalFields(*fi.Rental) {
			fields[k] = v
		}
	}
	return fields
}

func rentalFields(ri domain.RentalReservation) map[string]string {
	return map[string]string{
		domain.FieldRentalLength: rentalDays(ri.Days),
		domain.FieldPassengers:   strconv.Itoa(ri.Passengers),
		domain.FieldChildSeats:   strconv.Itoa(ri.ChildSeats),
		domain.FieldCarClass:     string(ri.CarClass),
		domain.FieldRentalCost:   dollars(ri.Cost),
	}
}

func dollars(amount int) string {
	return strconv.Itoa(amount) + " $"
}

func rentalDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return strconv.Itoa(days) + " days"
}

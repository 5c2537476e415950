package ports

import "flightdesk/pkg/domain"

// Pricer derives costs for bookings. The engine treats it as a black box;
// see pkg/pricing for the documented ranges.
type Pricer interface {
	// FlightCost returns the ticket price for a trip class.
	FlightCost(class domain.TripClass) int

	// RentalCost returns the total price for renting a car of the given
	// class for the given number of days.
	RentalCost(class domain.CarClass, days int) int
}

// ReservationIDs mints reservation identifiers. Ids are 7-digit integers
// generated only when a booking is confirmed.
type ReservationIDs interface {
	ReservationID() int
}

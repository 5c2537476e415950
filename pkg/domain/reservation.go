package domain

// TripClass is the booking class of a flight.
type TripClass string

const (
	TripStandard TripClass = "Standard"
	TripBusiness TripClass = "Business"
	TripPremium  TripClass = "Premium"
)

// CarClass is the booking class of a rental car.
type CarClass string

const (
	CarEconomy  CarClass = "Economy"
	CarStandard CarClass = "Standard"
	CarPremium  CarClass = "Premium"
)

// FlightReservation is a flight booking in progress or confirmed.
// ReservationID is zero until the passenger confirms the booking.
type FlightReservation struct {
	ReservationID int                `json:"reservation_id"`
	PassengerName string             `json:"passenger_name"`
	FromAirport   string             `json:"from_airport"`
	ToAirport     string             `json:"to_airport"`
	OneWay        bool               `json:"one_way"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date,omitempty"`
	TripClass     TripClass          `json:"trip_class"`
	Cost          int                `json:"cost"`
	Rental        *RentalReservation `json:"rental,omitempty"`
}

// RentalReservation is a car rental attached to a flight reservation.
type RentalReservation struct {
	Days       int      `json:"days"`
	Passengers int      `json:"passengers"`
	ChildSeats int      `json:"child_seats"`
	CarClass   CarClass `json:"car_class"`
	Cost       int      `json:"cost"`
}

// ReservationCatalog holds the confirmed reservations of one conversation
// in insertion order.
type ReservationCatalog struct {
	Reservations []FlightReservation `json:"reservations,omitempty"`
}

// Append adds a confirmed reservation to the end of the catalog.
func (c *ReservationCatalog) Append(r FlightReservation) {
	c.Reservations = append(c.Reservations, r)
}

// Find returns the first reservation with the given id. The second return
// value reports whether a match exists; an absent id is a regular outcome,
// not an error.
func (c *ReservationCatalog) Find(id int) (FlightReservation, bool) {
	for _, r := range c.Reservations {
		if r.ReservationID == id {
			return r, true
		}
	}
	return FlightReservation{}, false
}

// Remove deletes the first reservation with the given id, preserving the
// order of the remaining entries. It reports whether anything was removed.
func (c *ReservationCatalog) Remove(id int) bool {
	for i, r := range c.Reservations {
		if r.ReservationID == id {
			c.Reservations = append(c.Reservations[:i], c.Reservations[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored reservations.
func (c *ReservationCatalog) Len() int {
	return len(c.Reservations)
}

package domain

// Template ids understood by the rendering boundary. Each template defines
// which field values it expects; see pkg/render for the default layouts.
const (
	TemplateFlightOneWay        = "flight/one-way"
	TemplateFlightTwoWays       = "flight/two-ways"
	TemplateFlightOneWayRental  = "flight/one-way-rental"
	TemplateFlightTwoWaysRental = "flight/two-ways-rental"
	TemplateRentalDetails       = "rental/details"
	TemplateHelp                = "help"
	TemplateQuickHelp           = "quick-help"
)

// Field keys shared between card producers and the rendering boundary.
const (
	FieldHeader        = "header"
	FieldPassengerName = "passenger_name"
	FieldFromAirport   = "from_airport"
	FieldToAirport     = "to_airport"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldTripClass     = "trip_class"
	FieldFlightCost    = "flight_cost"
	FieldRentalLength  = "rental_length"
	FieldPassengers    = "passengers"
	FieldChildSeats    = "child_seats"
	FieldCarClass      = "car_class"
	FieldRentalCost    = "rental_cost"
)

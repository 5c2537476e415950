// Package render is the default implementation of the rendering boundary.
// Cards are declared as field layouts; the engine supplies values only and
// never touches markup.
package render

import (
	"fmt"

	"flightdesk/pkg/domain"
)

// ContentType marks attachments produced by this renderer.
const ContentType = "application/vnd.flightdesk.card"

type row struct {
	label string
	field string
}

type template struct {
	header   string
	body     string
	rows     []row
	defaults map[string]string
}

var keywordDefaults = map[string]string{
	"keyword_help":   "Information about the flight bot will be displayed.",
	"keyword_cancel": "Current resercation will be aborted and main menu will be displayed.",
	"keyword_exit":   "Conversation will be immediately ended.",
}

var flightRows = []row{
	{"Passenger", domain.FieldPassengerName},
	{"Departure airport", domain.FieldFromAirport},
	{"Arrival airport", domain.FieldToAirport},
	{"Departure date", domain.FieldStartDate},
}

var returnRow = row{"Return date", domain.FieldEndDate}

var flightTailRows = []row{
	{"Flight class", domain.FieldTripClass},
	{"Flight cost", domain.FieldFlightCost},
}

var rentalRows = []row{
	{"Rental length", domain.FieldRentalLength},
	{"Fellow passengers", domain.FieldPassengers},
	{"Child seats", domain.FieldChildSeats},
	{"Car class", domain.FieldCarClass},
	{"Rental cost", domain.FieldRentalCost},
}

var templates = map[string]template{
	domain.TemplateFlightOneWay: {
		header: "New Flight Reservation",
		rows:   concat(flightRows, flightTailRows),
	},
	domain.TemplateFlightTwoWays: {
		header: "New Flight Reservation",
		rows:   concat(flightRows, []row{returnRow}, flightTailRows),
	},
	domain.TemplateFlightOneWayRental: {
		header: "Flight Reservation with Car Rental",
		rows:   concat(flightRows, flightTailRows, rentalRows),
	},
	domain.TemplateFlightTwoWaysRental: {
		header: "Flight Reservation with Car Rental",
		rows:   concat(flightRows, []row{returnRow}, flightTailRows, rentalRows),
	},
	domain.TemplateRentalDetails: {
		header: "New Car Rental",
		rows:   rentalRows,
	},
	domain.TemplateHelp: {
		header: "Help",
		body: "Flight Reservation Bot is an assistant which helps you to book a flight.\n\n" +
			"In order to book a flight ticket please provide following information: Passenger's Name, " +
			"Departure Airport, Arrival Airport, are you going to travel one way or return back to " +
			"destination airport, Departure Date, Return Date (if applicable), Flight Class. " +
			"At the end of reservation process you will be able to book a car rental at destination airport. " +
			"Flight Reservation Bot allows you also to display all reservations you have done during current " +
			"conversation, display specific reservation or even cancel it.\n\n" +
			"In case you:" +
			"\n-would like to abort current reservation process and get back to main menu please type in 'cancel'," +
			"\n-need help please type in 'help'," +
			"\n-would like to immediately end the conversation please typ in 'exit'." +
			"\n\n" +
			"If you want to make a reservation by yourself just use Skyscanner.",
		rows: []row{
			{"Go to Skyscanner", "skyscanner_url"},
		},
		defaults: map[string]string{
			"skyscanner_url": "https://www.skyscanner.pl/",
		},
	},
	domain.TemplateQuickHelp: {
		header: "Let's start reservation process!",
		body:   "In case you get lost just send one of the messages to the bot:",
		rows: []row{
			{"help", "keyword_help"},
			{"cancel", "keyword_cancel"},
			{"exit", "keyword_exit"},
		},
		defaults: keywordDefaults,
	},
}

func concat(groups ...[]row) []row {
	var out []row
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// CardRenderer renders the built-in card layouts.
type CardRenderer struct{}

// New creates the default renderer.
func New() *CardRenderer {
	return &CardRenderer{}
}

// Render builds an attachment from a template id and field values. Rows
// whose field has no value are omitted; an unknown template id is an
// error.
func (r *CardRenderer) Render(templateID string, fields map[string]string) (domain.Attachment, error) {
	tpl, ok := templates[templateID]
	if !ok {
		return domain.Attachment{}, fmt.Errorf("unknown card template %q", templateID)
	}

	title := tpl.header
	if h, ok := fields[domain.FieldHeader]; ok && h != "" {
		title = h
	}

	att := domain.Attachment{
		ContentType: ContentType,
		Title:       title,
		Body:        tpl.body,
	}
	for _, row := range tpl.rows {
		value, ok := fields[row.field]
		if !ok || value == "" {
			value, ok = tpl.defaults[row.field]
			if !ok {
				continue
			}
		}
		att.Facts = append(att.Facts, domain.Fact{Title: row.label, Value: value})
	}
	return att, nil
}

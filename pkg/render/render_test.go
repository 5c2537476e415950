package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk/pkg/domain"
)

func fact(att domain.Attachment, title string) (string, bool) {
	for _, f := range att.Facts {
		if f.Title == title {
			return f.Value, true
		}
	}
	return "", false
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	_, err := New().Render("no-such-card", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-card")
}

func TestRenderFlightTemplates(t *testing.T) {
	fields := map[string]string{
		domain.FieldPassengerName: "Jan Kowalski",
		domain.FieldFromAirport:   "Warsaw",
		domain.FieldToAirport:     "London",
		domain.FieldStartDate:     "2026-09-15",
		domain.FieldEndDate:       "2026-09-25",
		domain.FieldTripClass:     "Business",
		domain.FieldFlightCost:    "1500 $",
	}

	t.Run("two ways carries the return date", func(t *testing.T) {
		att, err := New().Render(domain.TemplateFlightTwoWays, fields)
		require.NoError(t, err)
		assert.Equal(t, ContentType, att.ContentType)
		assert.Equal(t, "New Flight Reservation", att.Title)

		ret, ok := fact(att, "Return date")
		require.True(t, ok)
		assert.Equal(t, "2026-09-25", ret)
	})

	t.Run("one way has no return date row", func(t *testing.T) {
		att, err := New().Render(domain.TemplateFlightOneWay, fields)
		require.NoError(t, err)
		_, ok := fact(att, "Return date")
		assert.False(t, ok)
	})

	t.Run("header field overrides the template title", func(t *testing.T) {
		withHeader := map[string]string{domain.FieldHeader: "Reservation 2345671"}
		for k, v := range fields {
			withHeader[k] = v
		}
		att, err := New().Render(domain.TemplateFlightTwoWays, withHeader)
		require.NoError(t, err)
		assert.Equal(t, "Reservation 2345671", att.Title)
	})

	t.Run("rows without a value are omitted", func(t *testing.T) {
		att, err := New().Render(domain.TemplateFlightTwoWays, map[string]string{
			domain.FieldPassengerName: "Jan Kowalski",
		})
		require.NoError(t, err)
		require.Len(t, att.Facts, 1)
		assert.Equal(t, "Passenger", att.Facts[0].Title)
	})
}

func TestRenderRentalDetails(t *testing.T) {
	att, err := New().Render(domain.TemplateRentalDetails, map[string]string{
		domain.FieldRentalLength: "5 days",
		domain.FieldPassengers:   "2",
		domain.FieldChildSeats:   "1",
		domain.FieldCarClass:     "Economy",
		domain.FieldRentalCost:   "75 $",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Car Rental", att.Title)

	cost, ok := fact(att, "Rental cost")
	require.True(t, ok)
	assert.Equal(t, "75 $", cost)
}

func TestRenderHelpCardsCarryDefaults(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		att, err := New().Render(domain.TemplateHelp, nil)
		require.NoError(t, err)
		assert.Equal(t, "Help", att.Title)
		assert.Contains(t, att.Body, "Flight Reservation Bot is an assistant")

		url, ok := fact(att, "Go to Skyscanner")
		require.True(t, ok)
		assert.Equal(t, "https://www.skyscanner.pl/", url)
	})

	t.Run("quick help", func(t *testing.T) {
		att, err := New().Render(domain.TemplateQuickHelp, nil)
		require.NoError(t, err)
		assert.Equal(t, "Let's start reservation process!", att.Title)

		exit, ok := fact(att, "exit")
		require.True(t, ok)
		assert.Equal(t, "Conversation will be immediately ended.", exit)
	})
}

package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"flightdesk/pkg/domain"
)

func TestFlightCostRanges(t *testing.T) {
	g := NewWithSource(rand.NewSource(1))

	tests := []struct {
		class    domain.TripClass
		min, max int
	}{
		{domain.TripStandard, 500, 899},
		{domain.TripBusiness, 1000, 1999},
		{domain.TripPremium, 2100, 3999},
	}
	for _, tt := range tests {
		for i := 0; i < 1000; i++ {
			cost := g.FlightCost(tt.class)
			assert.GreaterOrEqual(t, cost, tt.min, "class %s", tt.class)
			assert.LessOrEqual(t, cost, tt.max, "class %s", tt.class)
		}
	}
}

func TestRentalCostIsFlatPerDay(t *testing.T) {
	g := NewWithSource(rand.NewSource(1))

	assert.Equal(t, 15, g.RentalCost(domain.CarEconomy, 1))
	assert.Equal(t, 45, g.RentalCost(domain.CarEconomy, 3))
	assert.Equal(t, 40, g.RentalCost(domain.CarStandard, 1))
	assert.Equal(t, 400, g.RentalCost(domain.CarStandard, 10))
	assert.Equal(t, 80, g.RentalCost(domain.CarPremium, 1))
	assert.Equal(t, 7120, g.RentalCost(domain.CarPremium, 89))
}

func TestReservationIDStaysInsideSevenDigitRange(t *testing.T) {
	g := NewWithSource(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		id := g.ReservationID()
		assert.Greater(t, id, 1000000)
		assert.Less(t, id, 9999999)
	}
}

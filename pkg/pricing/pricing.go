// Package pricing implements the cost-derivation boundary: class-dependent
// flight prices, flat per-day rental prices, and reservation id generation.
package pricing

import (
	"math/rand"
	"sync"
	"time"

	"flightdesk/pkg/domain"
)

// Per-day rental rates by car class.
const (
	economyRate  = 15
	standardRate = 40
	premiumRate  = 80
)

// Generator produces costs and reservation ids. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator seeded from the clock.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a Generator with a fixed source, for tests.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// FlightCost returns a ticket price for the trip class:
// Standard 500-899, Business 1000-1999, Premium 2100-3999.
func (g *Generator) FlightCost(class domain.TripClass) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch class {
	case domain.TripStandard:
		return 500 + g.rng.Intn(400)
	case domain.TripBusiness:
		return 1000 + g.rng.Intn(1000)
	default:
		return 2100 + g.rng.Intn(1900)
	}
}

// RentalCost returns the flat per-day rate for the car class multiplied by
// the rental length: Economy 15/day, Standard 40/day, Premium 80/day.
func (g *Generator) RentalCost(class domain.CarClass, days int) int {
	switch class {
	case domain.CarEconomy:
		return economyRate * days
	case domain.CarStandard:
		return standardRate * days
	default:
		return premiumRate * days
	}
}

// ReservationID returns a random 7-digit id in (1000000, 9999999)
// exclusive. Ids are not checked for uniqueness against existing
// reservations; a collision makes lookups match the older entry first.
func (g *Generator) ReservationID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return 1000001 + g.rng.Intn(9999999-1000001)
}

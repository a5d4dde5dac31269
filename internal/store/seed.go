package store

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"

	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/geo"
)

var shiftWindows = []string{"8-16", "9-17", "10-18", "12-20"}

var timeWindows = []string{
	"08:00-11:00", "09:00-12:00", "10:00-13:00", "11:00-14:00",
	"13:00-16:00", "14:00-17:00", "15:00-18:00",
}

var priorities = []domain.Priority{
	domain.PriorityNormal, domain.PriorityHigh, domain.PriorityUrgent,
}

// Generator produces randomized but plausible fleet data. The same seed
// yields the same dataset.
type Generator struct {
	rng  *rand.Rand
	fake faker.Faker
	gaz  *geo.Gazetteer
}

// NewGenerator creates a Generator over the gazetteer's locations.
func NewGenerator(seed int64, gaz *geo.Gazetteer) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		gaz:  gaz,
	}
}

// Driver produces one idle driver stationed at the hub.
func (g *Generator) Driver() domain.Driver {
	return domain.Driver{
		Name:        g.fake.Person().Name(),
		Capacity:    1000 + g.rng.Intn(5000),
		Status:      domain.DriverIdle,
		Location:    g.gaz.Hub(),
		ShiftWindow: shiftWindows[g.rng.Intn(len(shiftWindows))],
	}
}

// Order produces one pending order between two distinct cities.
func (g *Generator) Order() domain.Order {
	cities := g.gaz.Names()[1:] // skip the hub
	pi := g.rng.Intn(len(cities))
	di := g.rng.Intn(len(cities) - 1)
	if di >= pi {
		di++
	}
	return domain.Order{
		Pickup:      g.gaz.Resolve(cities[pi]),
		Destination: g.gaz.Resolve(cities[di]),
		Weight:      200 + g.rng.Intn(800),
		Volume:      5 + g.rng.Intn(20),
		Contact:     fmt.Sprintf("%s, %s", g.fake.Person().Name(), g.fake.Phone().Number()),
		Priority:    priorities[g.rng.Intn(len(priorities))],
		TimeWindow:  timeWindows[g.rng.Intn(len(timeWindows))],
		Status:      domain.OrderPending,
	}
}

// Populate adds drivers and orders to the store and returns the resulting
// snapshot.
func (g *Generator) Populate(s *FleetStore, drivers, orders int) domain.Snapshot {
	for i := 0; i < drivers; i++ {
		s.AddDriver(g.Driver())
	}
	for i := 0; i < orders; i++ {
		s.AddOrder(g.Order())
	}
	return s.Snapshot()
}

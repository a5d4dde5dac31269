// Package geo resolves free-text location names against the fixed New Jersey
// gazetteer the fleet operates in. Resolution never fails: unrecognized text
// falls back to the hub, favoring availability over correctness.
package geo

import (
	"strings"

	"gofo-dispatch/internal/domain"
)

// Hub is the Fieldsboro depot. Every route starts or ends here.
var Hub = domain.Location{
	Address: "1183 Florence Columbus Road, Fieldsboro, NJ 08505",
	Lat:     40.1373,
	Lon:     -74.7287,
}

type entry struct {
	Name     string
	Location domain.Location
}

// entries is ordered: the hub first, then the nine cities. Lookup walks the
// slice so overlapping matches are deterministic.
var entries = []entry{
	{"Fieldsboro Hub", Hub},
	{"Trenton", domain.Location{Address: "Trenton, NJ 08608, USA", Lat: 40.2206, Lon: -74.7597}},
	{"Princeton", domain.Location{Address: "Princeton, NJ 08540, USA", Lat: 40.3487, Lon: -74.6590}},
	{"Newark", domain.Location{Address: "Newark, NJ 07102, USA", Lat: 40.7357, Lon: -74.1724}},
	{"Cherry Hill", domain.Location{Address: "Cherry Hill, NJ 08002, USA", Lat: 39.9348, Lon: -75.0303}},
	{"Moorestown", domain.Location{Address: "Moorestown, NJ 08057, USA", Lat: 39.9687, Lon: -74.9490}},
	{"Hamilton", domain.Location{Address: "Hamilton Township, NJ 08690, USA", Lat: 40.2276, Lon: -74.6532}},
	{"Camden", domain.Location{Address: "Camden, NJ 08102, USA", Lat: 39.9259, Lon: -75.1196}},
	{"Edison", domain.Location{Address: "Edison, NJ 08817, USA", Lat: 40.5187, Lon: -74.4121}},
	{"Jersey City", domain.Location{Address: "Jersey City, NJ 07302, USA", Lat: 40.7178, Lon: -74.0431}},
}

// Gazetteer maps location names and addresses to coordinates.
type Gazetteer struct {
	hub     domain.Location
	entries []entry
}

// New returns a Gazetteer over the built-in NJ locations.
func New() *Gazetteer {
	return &Gazetteer{hub: Hub, entries: entries}
}

// Hub returns the depot location.
func (g *Gazetteer) Hub() domain.Location { return g.hub }

// Resolve maps a location name or address fragment to a known location.
// A match requires the input to contain a known city name, or a known
// canonical address to contain the input. No match resolves to the hub.
func (g *Gazetteer) Resolve(nameOrAddress string) domain.Location {
	q := strings.TrimSpace(nameOrAddress)
	if q == "" {
		return g.hub
	}
	for _, e := range g.entries {
		if strings.Contains(q, e.Name) || strings.Contains(e.Location.Address, q) {
			return e.Location
		}
	}
	return g.hub
}

// Names returns the known location names in gazetteer order.
func (g *Gazetteer) Names() []string {
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.Name
	}
	return out
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_CityName(t *testing.T) {
	t.Parallel()

	g := New()
	loc := g.Resolve("Princeton")
	require.Equal(t, "Princeton, NJ 08540, USA", loc.Address)
	require.InDelta(t, 40.3487, loc.Lat, 1e-9)
	require.InDelta(t, -74.6590, loc.Lon, 1e-9)
}

func TestResolve_NameEmbeddedInText(t *testing.T) {
	t.Parallel()

	g := New()
	loc := g.Resolve("warehouse near Cherry Hill mall")
	require.Equal(t, "Cherry Hill, NJ 08002, USA", loc.Address)
}

func TestResolve_AddressFragment(t *testing.T) {
	t.Parallel()

	g := New()
	// The canonical address contains the query as a substring.
	loc := g.Resolve("Hamilton Township, NJ")
	require.Equal(t, "Hamilton Township, NJ 08690, USA", loc.Address)
}

func TestResolve_UnknownFallsBackToHub(t *testing.T) {
	t.Parallel()

	g := New()
	for _, q := range []string{"Philadelphia", "somewhere else entirely", ""} {
		loc := g.Resolve(q)
		require.Equal(t, Hub, loc, "query %q", q)
	}
}

func TestResolve_HubByName(t *testing.T) {
	t.Parallel()

	g := New()
	require.Equal(t, Hub, g.Resolve("Fieldsboro Hub"))
	require.Equal(t, Hub, g.Hub())
}

func TestNames_CoversAllLocations(t *testing.T) {
	t.Parallel()

	g := New()
	names := g.Names()
	require.Len(t, names, 10)
	require.Equal(t, "Fieldsboro Hub", names[0])
}

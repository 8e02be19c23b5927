package colony_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

// Commodity ids shared by the colony tests. Volumes mirror the usual
// raw/refined tiering: raw inputs are small, refined output is bulky.
const (
	typeRawA    int64 = 101
	typeRawB    int64 = 102
	typeRefined int64 = 201
)

func testCatalog() colony.Catalog {
	return colony.Catalog{
		typeRawA:    0.38,
		typeRawB:    0.38,
		typeRefined: 1.5,
	}
}

func newTestColony(t *testing.T, checkpoint time.Time) *colony.Colony {
	t.Helper()
	col := colony.NewColony(4001, "Test IX", checkpoint)
	col.Catalog = testCatalog()
	return col
}

func addExtractor(t *testing.T, col *colony.Colony, id, productTypeID, baseValue int64, cycleTime time.Duration, install, expiry time.Time) *colony.Facility {
	t.Helper()
	f := colony.NewFacility(id, colony.KindExtractor, 2848)
	f.ProductTypeID = productTypeID
	f.BaseValue = baseValue
	f.CycleTime = cycleTime
	f.InstallTime = install
	f.ExpiryTime = expiry
	f.IsActive = true
	require.NoError(t, col.AddFacility(f))
	return f
}

func addFactory(t *testing.T, col *colony.Colony, id int64, schematic *colony.Schematic) *colony.Facility {
	t.Helper()
	f := colony.NewFacility(id, colony.KindFactory, 2473)
	f.Schematic = schematic
	require.NoError(t, col.AddFacility(f))
	return f
}

func addStorage(t *testing.T, col *colony.Colony, id int64, kind colony.Kind) *colony.Facility {
	t.Helper()
	f := colony.NewFacility(id, kind, 2541)
	require.NoError(t, col.AddFacility(f))
	return f
}

func addRoute(t *testing.T, col *colony.Colony, id, sourceID, destinationID, typeID, quantity int64) {
	t.Helper()
	r, err := colony.NewRoute(id, sourceID, destinationID, typeID, quantity)
	require.NoError(t, err)
	col.AddRoute(*r)
}

func mustSchematic(t *testing.T, id, outputTypeID, outputQty int64, cycleTime time.Duration, inputs map[int64]int64) *colony.Schematic {
	t.Helper()
	s, err := colony.NewSchematic(id, outputTypeID, outputQty, cycleTime, inputs)
	require.NoError(t, err)
	return s
}

// totalOf sums one commodity across every facility of the colony
func totalOf(col *colony.Colony, typeID int64) int64 {
	total := int64(0)
	for _, f := range col.Facilities() {
		total += f.Quantity(typeID)
	}
	return total
}

//go:build test

package central

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/ringlykit/internal/testutils"
)

// TestStartDiscoveryPopulatesPeripheralsFromYAMLFixture builds the fake
// adapter's scan advertisements from a YAML fixture document instead of
// constructing fakeAdvertisement values by hand, grounded on the
// teacher's PeripheralDeviceBuilder.FromJSON pattern.
func TestStartDiscoveryPopulatesPeripheralsFromYAMLFixture(t *testing.T) {
	fixtures, err := testutils.LoadAdvertisementFixtures([]byte(`
- addr: "aa:aa:aa:aa:aa:aa"
  local_name: "RLY-DAYD-ABCD"
  services: ["180a"]
  rssi: -42
- addr: "bb:bb:bb:bb:bb:bb"
  local_name: "RLY-AMTH-1234"
  services: ["180a"]
  rssi: -60
`))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	var ads []fakeAdvertisement
	for _, f := range fixtures {
		ads = append(ads, fakeAdvertisement{addr: f.Addr, localName: f.LocalName, services: f.Services})
	}

	adapter := &fakeAdapter{advertisements: ads}
	c := New(adapter, nil)
	require.NoError(t, c.StartDiscovery(context.Background()))

	d := c.Discovery()
	require.Len(t, d.Peripherals, 2)
	assert.Equal(t, "DAYD", d.Peripherals[0].Identity.ShortName)
	assert.Equal(t, "Daydream", d.Peripherals[0].Appearance.Style)
}

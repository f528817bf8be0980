package uuidreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsDashesAndLowercases(t *testing.T) {
	assert.Equal(t, "df025fbe4bef4f208ac9a2f3df9f18f9", Normalize("DF025FBE-4BEF-4F20-8AC9-A2F3DF9F18F9"))
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("DF025FBE-4BEF-4F20-8AC9-A2F3DF9F18F9")
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeAll(t *testing.T) {
	out := NormalizeAll([]string{"AB-CD", "ef-01"})
	assert.Equal(t, []string{"abcd", "ef01"}, out)
}

func TestRegistryEntriesAreNormalized(t *testing.T) {
	for _, u := range append(append([]string{
		ServiceRingly, ServiceBattery, ServiceDeviceInformation, ServiceActivity, ServiceLogging, ServiceANCS,
		CharCommand, CharMessage, CharMobileAppVersion, CharBond, CharClearBond, CharConfigurationHash,
		CharBatteryCharge, CharBatteryState,
		CharManufacturerName, CharModelNumber, CharApplicationVersion, CharHardwareVersion,
		CharChipVersion, CharBootloaderVersion, CharSoftdeviceVersion, CharMACAddress,
		CharActivityControlPoint, CharActivityTrackingData, CharLoggingFlash, CharLoggingRequest,
		CharANCSNotificationSource, CharANCSControlPoint, CharANCSDataSource,
	}, RecoverySolicitedUUIDs...)) {
		assert.Equal(t, Normalize(u), u, "uuid %q must already be normalized", u)
	}
}

func TestRegistryOrdersServicesAndCharacteristics(t *testing.T) {
	reg := Registry()

	first, ok := reg.Oldest()
	require := assert.New(t)
	require.True(ok)
	require.Equal(ServiceRingly, first.Key)

	ringly, ok := reg.Get(ServiceRingly)
	require.True(ok)
	firstChar, ok := ringly.Oldest()
	require.True(ok)
	require.Equal("command", firstChar.Key)
	require.Equal(CharCommand, firstChar.Value)
}

package peripheral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPeripheralStartsDisconnectedAndDiscovered(t *testing.T) {
	p := New(Identity{UUID: "aa:bb", LocalName: "RLY-DAYD-ABCD"})
	assert.Equal(t, ConnectionDisconnected, p.ConnectionState())
	assert.Equal(t, Discovered, p.ValidationState())
	assert.False(t, p.Paired())
	assert.Equal(t, "DAYD", p.Identity.ShortName)
	assert.Equal(t, "ABCD", p.Identity.LastFourMAC)
	assert.Equal(t, "Daydream", p.Appearance.Style)
}

func TestPeripheralUnknownShortNameLeavesAppearanceZero(t *testing.T) {
	p := New(Identity{UUID: "aa:bb", LocalName: "RLY-ZZZZ-0000"})
	assert.Equal(t, Appearance{}, p.Appearance)
}

func TestPeripheralNonAdvertisedNameLeavesShortNameEmpty(t *testing.T) {
	p := New(Identity{UUID: "aa:bb", LocalName: "not-an-advertised-name"})
	assert.Empty(t, p.Identity.ShortName)
	assert.Empty(t, p.Identity.LastFourMAC)
}

func TestPairedIsDerivedFromPairState(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	assert.False(t, p.Paired())
	p.SetPairState(PairAssumedPaired)
	assert.True(t, p.Paired())
	p.SetPairState(PairPaired)
	assert.True(t, p.Paired())
	p.SetPairState(PairUnpaired)
	assert.False(t, p.Paired())
}

func TestDisconnectResetsValidationAndANCSMode(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	p.SetConnectionState(ConnectionConnected)
	p.ResolveANCSMode(true, false)
	assert.Equal(t, ANCSModeAutonomousOnDevice, p.ANCSMode())

	p.SetConnectionState(ConnectionDisconnected)
	assert.Equal(t, Discovered, p.ValidationState())
	assert.Equal(t, ANCSModeUndetermined, p.ANCSMode())
}

func TestResolveANCSModePrefersV2(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	p.ResolveANCSMode(true, true)
	assert.Equal(t, ANCSModeAutonomousOnDevice, p.ANCSMode())
}

func TestResolveANCSModeFallsBackToV1(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	p.ResolveANCSMode(false, true)
	assert.Equal(t, ANCSModePhoneForwarded, p.ANCSMode())
}

func TestSetDeviceInfoMarksDetermined(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	p.SetDeviceInfo(DeviceInformation{ModelNumber: "RX-1"})
	assert.True(t, p.DeviceInfo().Determined)
	assert.Equal(t, "RX-1", p.DeviceInfo().ModelNumber)
}

func TestBatteryChargeAndStateTrackedIndependently(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	p.SetBatteryCharge(72)
	assert.True(t, p.Battery().ChargeDetermined)
	assert.False(t, p.Battery().StateDetermined)

	p.SetBatteryState(Charging)
	assert.True(t, p.Battery().StateDetermined)
	assert.Equal(t, Charging, p.Battery().State)
	assert.Equal(t, 72, p.Battery().ChargePercent)
}

func TestOptionalServicesResolveFeatureSupport(t *testing.T) {
	p := New(Identity{UUID: "aa:bb"})
	assert.Equal(t, FeatureUndetermined, p.ActivityFeature())
	assert.Equal(t, FeatureUndetermined, p.LoggingFeature())

	p.SetOptionalServices(true, false)
	assert.Equal(t, FeatureSupported, p.ActivityFeature())
	assert.Equal(t, FeatureUnsupported, p.LoggingFeature())
	assert.True(t, p.HasActivityService())
	assert.False(t, p.HasLoggingService())
}

func TestParseLocalName(t *testing.T) {
	shortName, lastFourMAC, ok := ParseLocalName("RLY-DAYD-ABCD")
	assert.True(t, ok)
	assert.Equal(t, "DAYD", shortName)
	assert.Equal(t, "ABCD", lastFourMAC)
}

func TestParseLocalNameWithoutMAC(t *testing.T) {
	shortName, lastFourMAC, ok := ParseLocalName("RLY-DAYD")
	assert.True(t, ok)
	assert.Equal(t, "DAYD", shortName)
	assert.Empty(t, lastFourMAC)
}

func TestParseLocalNameRejectsNonRingly(t *testing.T) {
	_, _, ok := ParseLocalName("some-other-device")
	assert.False(t, ok)
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Resource: "characteristic", UUIDs: []string{"ringly", "command"}}
	assert.Contains(t, err.Error(), "command")
	assert.Contains(t, err.Error(), "ringly")
}

// Package peripheral models a single Ringly peripheral: its identity,
// connection/pair state, validation progress, and the accumulated
// device-information/battery/appearance fields read off it.
package peripheral

import (
	"fmt"
	"strings"
	"sync"
)

// ConnectionState mirrors the peripheral's link-layer connection state.
type ConnectionState string

const (
	ConnectionDisconnected ConnectionState = "disconnected"
	ConnectionConnecting   ConnectionState = "connecting"
	ConnectionConnected    ConnectionState = "connected"
)

// PairState mirrors the peripheral's bonding state. AssumedUnpaired is
// the default state when a peripheral is discovered; AssumedPaired is
// the default state when an already-bonded peripheral is retrieved
// without the bond characteristic having been read yet. Unpaired/Paired
// are only reached once the bond characteristic has actually been read.
type PairState string

const (
	PairAssumedUnpaired PairState = "assumed_unpaired"
	PairUnpaired        PairState = "unpaired"
	PairAssumedPaired   PairState = "assumed_paired"
	PairPaired          PairState = "paired"
)

// ANCSMode describes how the peripheral is configured to deliver
// notifications once validated.
type ANCSMode string

const (
	ANCSModeUndetermined    ANCSMode = "undetermined"
	ANCSModeAutonomousOnDevice ANCSMode = "autonomous_on_device"
	ANCSModePhoneForwarded  ANCSMode = "phone_forwarded"
)

// ShutdownReason records why the peripheral last reported a shutdown
// message.
type ShutdownReason string

const (
	ShutdownNone       ShutdownReason = ""
	ShutdownSleep      ShutdownReason = "sleep"
	ShutdownLowBattery ShutdownReason = "low_battery"
)

// FeatureSupport is a tri-state: a feature's presence is not known until
// the peripheral has been probed for it, e.g. by discovering whether its
// optional Activity/Logging services are present.
type FeatureSupport int

const (
	FeatureUndetermined FeatureSupport = iota
	FeatureUnsupported
	FeatureSupported
)

// DeviceInformation holds the standard Device Information service fields,
// each populated once read and nil/zero until then.
type DeviceInformation struct {
	ManufacturerName   string
	ModelNumber        string
	ApplicationVersion string
	HardwareVersion    string
	ChipVersion        string
	BootloaderVersion  string
	SoftdeviceVersion  string
	MACAddress         string

	Determined bool
}

// ChargeState mirrors the peripheral's battery-state characteristic byte.
type ChargeState int

const (
	NotCharging ChargeState = iota
	Charging
	Charged
	ChargeError
)

// Battery holds the two battery characteristics.
type Battery struct {
	ChargePercent int
	State         ChargeState

	ChargeDetermined bool
	StateDetermined  bool
}

// Appearance is the cosmetic identity derived from the peripheral's
// 4-character advertised short name.
type Appearance struct {
	Style string
	Type  string
	Band  string
	Stone string
}

// NotFoundError reports that a required GATT resource is absent from a
// peripheral, mirroring the shape of the adapter's own not-found errors.
type NotFoundError struct {
	Resource string
	UUIDs    []string
}

func (e *NotFoundError) Error() string {
	if len(e.UUIDs) == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	if len(e.UUIDs) == 1 {
		return fmt.Sprintf("%s %q not found", e.Resource, e.UUIDs[0])
	}
	parent := "service"
	if e.Resource == "characteristic" {
		parent = "service"
	}
	return fmt.Sprintf("%s %q not found in %s %q", e.Resource, e.UUIDs[len(e.UUIDs)-1], parent, e.UUIDs[0])
}

// DisconnectedError describes an I/O operation cut short because the
// peripheral disconnected. Central's I/O operations do not return it: an
// operation in flight at disconnection reports the adapter's own error.
type DisconnectedError struct {
	Op string
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("peripheral: disconnected during %s", e.Op)
}

var (
	// ErrNotSubscribedToActivity is returned by ReadActivityTrackingDataSince
	// when the activity service was never discovered on this peripheral.
	ErrNotSubscribedToActivity = fmt.Errorf("peripheral: not subscribed to activity service")
	// ErrIncorrectDataLength is returned when a characteristic read or
	// notification payload has an unexpected length.
	ErrIncorrectDataLength = fmt.Errorf("peripheral: characteristic data has incorrect length")
)

// Identity is the immutable identity of a discovered peripheral.
// ShortName and LastFourMAC are parsed from LocalName when it follows
// the "RLY-XXXX-YYYY" advertised-name format: XXXX is the four-character
// short name driving Appearance, YYYY the last four hex digits of the
// peripheral's MAC address, present only when the peripheral advertises
// it.
type Identity struct {
	UUID        string
	LocalName   string
	ShortName   string
	LastFourMAC string
}

// ParseLocalName splits an advertised name of the form "RLY-XXXX-YYYY"
// into its short name and last-four-MAC segments. ok is false if name
// does not match that format, in which case shortName and lastFourMAC
// are both empty.
func ParseLocalName(name string) (shortName, lastFourMAC string, ok bool) {
	const prefix = "RLY-"
	if !strings.HasPrefix(name, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(name, prefix)
	parts := strings.SplitN(rest, "-", 2)
	if len(parts) == 0 || len(parts[0]) != 4 {
		return "", "", false
	}
	shortName = parts[0]
	if len(parts) == 2 && len(parts[1]) == 4 {
		lastFourMAC = parts[1]
	}
	return shortName, lastFourMAC, true
}

// Peripheral is the full model of one Ringly peripheral's observed state.
// Every exported method is safe for concurrent use; callers should still
// treat I/O-triggering methods as owning-goroutine operations per the
// module's concurrency model.
type Peripheral struct {
	mu sync.RWMutex

	Identity   Identity
	Appearance Appearance

	connectionState ConnectionState
	pairState       PairState
	ancsMode        ANCSMode
	shutdownReason  ShutdownReason

	validation *Machine

	deviceInfo DeviceInformation
	battery    Battery

	activityFeature FeatureSupport
	loggingFeature  FeatureSupport
}

// New creates a Peripheral in its initial Discovered/Disconnected state.
// If identity.LocalName follows the "RLY-XXXX-YYYY" advertised-name
// format, its short name and last-four-MAC are parsed into Identity and
// the short name drives the initial Appearance.
func New(identity Identity) *Peripheral {
	if shortName, lastFourMAC, ok := ParseLocalName(identity.LocalName); ok {
		identity.ShortName = shortName
		identity.LastFourMAC = lastFourMAC
	}
	p := &Peripheral{
		Identity:        identity,
		connectionState: ConnectionDisconnected,
		pairState:       PairAssumedUnpaired,
		ancsMode:        ANCSModeUndetermined,
		validation:      NewMachine(),
	}
	if appearance, ok := ShortNameAppearance(identity.ShortName); ok {
		p.Appearance = appearance
	}
	return p
}

// Paired reports whether the peripheral is currently considered bonded,
// including the not-yet-verified AssumedPaired state.
func (p *Peripheral) Paired() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pairState == PairPaired || p.pairState == PairAssumedPaired
}

func (p *Peripheral) ConnectionState() ConnectionState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connectionState
}

func (p *Peripheral) SetConnectionState(s ConnectionState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connectionState = s
	if s == ConnectionDisconnected {
		p.validation.Reset()
		p.ancsMode = ANCSModeUndetermined
	}
}

func (p *Peripheral) PairState() PairState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pairState
}

func (p *Peripheral) SetPairState(s PairState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pairState = s
}

func (p *Peripheral) ANCSMode() ANCSMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ancsMode
}

func (p *Peripheral) ShutdownReason() ShutdownReason {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.shutdownReason
}

func (p *Peripheral) SetShutdownReason(r ShutdownReason) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shutdownReason = r
}

// ValidationState reports the peripheral's current position in the
// service/characteristic discovery state machine.
func (p *Peripheral) ValidationState() State {
	return p.validation.State()
}

// Validated reports whether the peripheral has completed validation.
func (p *Peripheral) Validated() bool {
	return p.validation.State() == Validated
}

// DeviceInfo returns a snapshot of the currently known device information.
func (p *Peripheral) DeviceInfo() DeviceInformation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.deviceInfo
}

// SetDeviceInfo replaces the known device information fields and marks them
// determined.
func (p *Peripheral) SetDeviceInfo(info DeviceInformation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	info.Determined = true
	p.deviceInfo = info
}

// Battery returns a snapshot of the currently known battery state.
func (p *Peripheral) Battery() Battery {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.battery
}

func (p *Peripheral) SetBatteryCharge(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.battery.ChargePercent = percent
	p.battery.ChargeDetermined = true
}

func (p *Peripheral) SetBatteryState(state ChargeState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.battery.State = state
	p.battery.StateDetermined = true
}

// ResolveANCSMode sets ANCSMode once, based on which ANCS versions the
// peripheral's GATT table exposed during validation: v2 support implies
// AutonomousOnDevice, else v1 support implies PhoneForwarded.
func (p *Peripheral) ResolveANCSMode(hasV2, hasV1 bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case hasV2:
		p.ancsMode = ANCSModeAutonomousOnDevice
	case hasV1:
		p.ancsMode = ANCSModePhoneForwarded
	default:
		p.ancsMode = ANCSModeUndetermined
	}
}

// SetOptionalServices records which optional services (Activity, Logging)
// this peripheral's GATT table exposed, resolving their feature-support
// tri-states from Undetermined to Supported/Unsupported.
func (p *Peripheral) SetOptionalServices(activity, logging bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activityFeature = resolveFeature(activity)
	p.loggingFeature = resolveFeature(logging)
}

func resolveFeature(present bool) FeatureSupport {
	if present {
		return FeatureSupported
	}
	return FeatureUnsupported
}

// ActivityFeature reports the tri-state support of the optional Activity
// service.
func (p *Peripheral) ActivityFeature() FeatureSupport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.activityFeature
}

// LoggingFeature reports the tri-state support of the optional Logging
// service.
func (p *Peripheral) LoggingFeature() FeatureSupport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loggingFeature
}

// HasActivityService reports whether the Activity service has been
// determined to be present.
func (p *Peripheral) HasActivityService() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.activityFeature == FeatureSupported
}

// HasLoggingService reports whether the Logging service has been
// determined to be present.
func (p *Peripheral) HasLoggingService() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loggingFeature == FeatureSupported
}

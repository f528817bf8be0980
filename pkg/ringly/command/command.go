package command

import "unicode/utf8"

// Type identifies a command's wire type byte.
type Type byte

const (
	TypeLEDVibration           Type = 1
	TypeFirmwareReset          Type = 2
	TypeEnterDFU               Type = 3
	TypeDeepSleep              Type = 4
	TypeClearBonds             Type = 5
	TypeAdvertisingName        Type = 6
	TypeMobileOS               Type = 7
	TypeDateTime               Type = 8
	TypeChargeMode             Type = 9
	TypeSleepMode              Type = 10
	TypeLoggingQuery           Type = 11
	TypeRFScanTestAppSwitch    Type = 12
	TypeDisconnectVibration    Type = 13
	TypeConnectionLED          Type = 14
	TypeHardwareVersion        Type = 15
	TypeTapParameters          Type = 16
	TypeApplicationSettings    Type = 18
	TypeContactSettings        Type = 19
	TypeContactsMode           Type = 20
	TypeConnectionLEDResponse  Type = 22
	TypeANCSTimeoutAlert       Type = 23
	TypeKeyframe               Type = 25
	TypeNotificationPinLED     Type = 26
)

// frameMetadataByte is prepended to every outbound frame. Its concrete value
// is unobserved in the retrieved reference material; it is pinned to a
// single named constant rather than scattered literals (see DESIGN.md).
const frameMetadataByte byte = 0x00

// Command is a tagged union over every outbound command the peripheral
// accepts. Each variant serializes itself to a (type, payload) pair; Frame
// prepends the wire framing (metadata byte, type byte, length byte).
type Command interface {
	commandType() Type
	payload() []byte
}

// Frame encodes c into the exact bytes the peripheral accepts:
// [metadata_byte, type_byte, length_byte, payload...].
func Frame(c Command) []byte {
	p := c.payload()
	out := make([]byte, 0, 3+len(p))
	out = append(out, frameMetadataByte, byte(c.commandType()), byte(len(p)))
	out = append(out, p...)
	return out
}

// LEDVibrationCommand flashes the LED and/or vibrates the peripheral.
type LEDVibrationCommand struct {
	Color     ColorBehavior
	Vibration VibrationBehavior
}

func (LEDVibrationCommand) commandType() Type { return TypeLEDVibration }
func (c LEDVibrationCommand) payload() []byte {
	return append(c.Color.encode(), c.Vibration.encode()...)
}

// FirmwareResetCommand resets the peripheral. Empty payload.
type FirmwareResetCommand struct{}

func (FirmwareResetCommand) commandType() Type { return TypeFirmwareReset }
func (FirmwareResetCommand) payload() []byte   { return nil }

// DFUTimeoutSeconds maps an EnterDFUCommand timeout code to the number of
// seconds it represents.
var DFUTimeoutSeconds = map[byte]int{
	0: 30,
	1: 5,
	2: 10,
	3: 15,
	4: 20,
	5: 25,
	6: 35,
	7: 40,
}

// EnterDFUCommand sends the peripheral into DFU mode after TimeoutCode
// expires, per DFUTimeoutSeconds.
type EnterDFUCommand struct {
	TimeoutCode byte
}

func (EnterDFUCommand) commandType() Type         { return TypeEnterDFU }
func (c EnterDFUCommand) payload() []byte          { return []byte{c.TimeoutCode} }

// DeepSleepCommand puts the peripheral into hibernate mode. Empty payload.
type DeepSleepCommand struct{}

func (DeepSleepCommand) commandType() Type { return TypeDeepSleep }
func (DeepSleepCommand) payload() []byte   { return nil }

// ClearBondsCommand clears the peripheral's bond. Empty payload.
type ClearBondsCommand struct{}

func (ClearBondsCommand) commandType() Type { return TypeClearBonds }
func (ClearBondsCommand) payload() []byte   { return nil }

// AdvertisingNameCommand alters the peripheral's advertising name.
// DiamondClub's downstream effect is unspecified; the bit is encoded without
// ascribing meaning to it (see DESIGN.md).
type AdvertisingNameCommand struct {
	ShortName   [4]byte
	DiamondClub bool
}

func (AdvertisingNameCommand) commandType() Type { return TypeAdvertisingName }
func (c AdvertisingNameCommand) payload() []byte {
	return []byte{c.ShortName[0], c.ShortName[1], c.ShortName[2], c.ShortName[3], boolByte(c.DiamondClub)}
}

// MobileOS identifies the mobile operating system paired with the peripheral.
type MobileOS byte

const (
	MobileOSNone MobileOS = iota
	MobileOSiOS
	MobileOSAndroid
)

// MobileOSCommand informs the peripheral of the connected mobile OS.
type MobileOSCommand struct {
	OS          MobileOS
	FactoryMode bool
}

func (MobileOSCommand) commandType() Type { return TypeMobileOS }
func (c MobileOSCommand) payload() []byte {
	return []byte{byte(c.OS), boolByte(c.FactoryMode)}
}

// DateTimeCommand informs the peripheral of the current date and time.
type DateTimeCommand struct {
	YearOffsetFrom2000 byte
	Month              byte
	Day                byte
	Hour               byte
	Minute             byte
	Second             byte
}

func (DateTimeCommand) commandType() Type { return TypeDateTime }
func (c DateTimeCommand) payload() []byte {
	return []byte{c.YearOffsetFrom2000, c.Month, c.Day, c.Hour, c.Minute, c.Second}
}

// ChargeModeCommand enables or disables charging on the peripheral.
type ChargeModeCommand struct {
	Enabled bool
}

func (ChargeModeCommand) commandType() Type { return TypeChargeMode }
func (c ChargeModeCommand) payload() []byte { return []byte{boolByte(c.Enabled)} }

// SleepModeCommand alters the peripheral's sleep behavior. Minutes of 0xFF
// disables sleep.
type SleepModeCommand struct {
	Minutes byte
}

func (SleepModeCommand) commandType() Type { return TypeSleepMode }
func (c SleepModeCommand) payload() []byte { return []byte{c.Minutes} }

// LoggingQueryCommand performs a logging query.
type LoggingQueryCommand struct {
	Query byte
}

func (LoggingQueryCommand) commandType() Type { return TypeLoggingQuery }
func (c LoggingQueryCommand) payload() []byte { return []byte{c.Query} }

// RFScanTestAppSwitchCommand switches the device into its MFG test
// application.
type RFScanTestAppSwitchCommand struct{}

func (RFScanTestAppSwitchCommand) commandType() Type { return TypeRFScanTestAppSwitch }
func (RFScanTestAppSwitchCommand) payload() []byte   { return nil }

// DisconnectVibrationCommand alters the peripheral's disconnect vibration
// behavior. WaitTimeSec of 0 or >= 240 disables the behavior.
type DisconnectVibrationCommand struct {
	Vibration  VibrationBehavior
	WaitTimeSec byte
	BackoffMin  byte
}

func (DisconnectVibrationCommand) commandType() Type { return TypeDisconnectVibration }
func (c DisconnectVibrationCommand) payload() []byte {
	p := c.Vibration.encode()
	return append(p, c.WaitTimeSec, c.BackoffMin)
}

// ConnectionLEDCommand alters the peripheral's connection LED behavior.
type ConnectionLEDCommand struct {
	Enabled bool
}

func (ConnectionLEDCommand) commandType() Type { return TypeConnectionLED }
func (c ConnectionLEDCommand) payload() []byte { return []byte{boolByte(c.Enabled)} }

// HardwareVersionCommand sets the hardware version, sent as a single byte.
type HardwareVersionCommand struct {
	Version byte
}

func (HardwareVersionCommand) commandType() Type { return TypeHardwareVersion }
func (c HardwareVersionCommand) payload() []byte { return []byte{c.Version} }

// TapParametersCommand sets the click parameters. Fields 5-10 have no
// documented semantics and pass through as opaque bytes (see DESIGN.md).
type TapParametersCommand struct {
	Threshold byte
	TimeLimit byte
	Latency   byte
	Window    byte
	Field5    byte
	Field6    byte
	Field7    byte
	Field8    byte
	Field9    byte
	Field10   byte
}

func (TapParametersCommand) commandType() Type { return TypeTapParameters }
func (c TapParametersCommand) payload() []byte {
	return []byte{
		c.Threshold, c.TimeLimit, c.Latency, c.Window,
		c.Field5, c.Field6, c.Field7, c.Field8, c.Field9, c.Field10,
	}
}

// ApplicationSettingsMode selects whether ApplicationSettingsCommand adds or
// removes a configuration.
type ApplicationSettingsMode byte

const (
	ApplicationSettingsModeAdd ApplicationSettingsMode = iota
	ApplicationSettingsModeDelete
)

// ApplicationSettingsCommand updates an application notification
// configuration. AppID is truncated to the largest UTF-8 prefix that fits
// within the remaining payload bytes.
type ApplicationSettingsCommand struct {
	Mode      ApplicationSettingsMode
	Color     Color
	Vibration Vibration
	AppID     string
}

func (ApplicationSettingsCommand) commandType() Type { return TypeApplicationSettings }
func (c ApplicationSettingsCommand) payload() []byte {
	head := []byte{byte(c.Mode), c.Color.R, c.Color.G, c.Color.B, byte(c.Vibration)}
	appID := truncateUTF8ToFit(c.AppID, 255-len(head))
	return append(head, []byte(appID)...)
}

// ContactSettingsCommand updates a contact notification configuration.
// ContactName is truncated to the largest UTF-8 prefix that fits within the
// remaining payload bytes.
type ContactSettingsCommand struct {
	Mode        ApplicationSettingsMode
	Color       Color
	ContactName string
}

func (ContactSettingsCommand) commandType() Type { return TypeContactSettings }
func (c ContactSettingsCommand) payload() []byte {
	head := []byte{byte(c.Mode), c.Color.R, c.Color.G, c.Color.B}
	name := truncateUTF8ToFit(c.ContactName, 255-len(head))
	return append(head, []byte(name)...)
}

// ContactsMode selects the peripheral's contacts behavior.
type ContactsMode byte

const (
	ContactsModeAdditionalColor ContactsMode = 0
	ContactsModeContactsOnly   ContactsMode = 1
	ContactsModeDisabled       ContactsMode = 0xFF
)

// ContactsModeCommand updates the contacts behavior.
type ContactsModeCommand struct {
	Mode ContactsMode
}

func (ContactsModeCommand) commandType() Type { return TypeContactsMode }
func (c ContactsModeCommand) payload() []byte { return []byte{byte(c.Mode)} }

// ConnectionLEDResponseCommand enables or disables the app responding to a
// connection LED request.
type ConnectionLEDResponseCommand struct {
	Enabled bool
}

func (ConnectionLEDResponseCommand) commandType() Type { return TypeConnectionLEDResponse }
func (c ConnectionLEDResponseCommand) payload() []byte { return []byte{boolByte(c.Enabled)} }

// ANCSTimeoutAlertCommand enables or disables the ANCS timeout alert.
type ANCSTimeoutAlertCommand struct {
	Enabled bool
}

func (ANCSTimeoutAlertCommand) commandType() Type { return TypeANCSTimeoutAlert }
func (c ANCSTimeoutAlertCommand) payload() []byte { return []byte{boolByte(c.Enabled)} }

// KeyframeCommand performs a keyframe-based LED and vibration action.
type KeyframeCommand struct {
	ColorKeyframes     []ColorKeyframe
	VibrationKeyframes []VibrationKeyframe
	RepeatCount        byte
}

func (KeyframeCommand) commandType() Type { return TypeKeyframe }
func (c KeyframeCommand) payload() []byte {
	out := []byte{byte(len(c.ColorKeyframes))}
	for _, k := range c.ColorKeyframes {
		out = append(out, k.encode()...)
	}
	out = append(out, byte(len(c.VibrationKeyframes)))
	for _, k := range c.VibrationKeyframes {
		out = append(out, k.encode()...)
	}
	out = append(out, c.RepeatCount)
	return out
}

// NotificationPinLEDCommand alters the peripheral's notification pin LED
// behavior.
type NotificationPinLEDCommand struct {
	Enabled bool
}

func (NotificationPinLEDCommand) commandType() Type { return TypeNotificationPinLED }
func (c NotificationPinLEDCommand) payload() []byte { return []byte{boolByte(c.Enabled)} }

// truncateUTF8ToFit returns the largest prefix of s, measured in bytes, that
// fits within max bytes without splitting a UTF-8 code point.
func truncateUTF8ToFit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	b := []byte(s)[:max]
	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size != 1 {
			break
		}
		b = b[:len(b)-1]
	}
	// DecodeLastRune may leave a valid-but-incomplete trailing sequence if
	// the cut landed mid-rune; re-validate and trim further if needed.
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Package message parses short inbound control messages arriving on the
// Ringly "message" characteristic: a single leading type byte followed by
// ASCII digits or CSV ASCII numbers.
package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srg/ringlykit/pkg/ringly/command"
)

// Type identifies the leading byte of a short control message.
type Type byte

const (
	TypeTapCount              Type = 48
	TypeSleepShutdown         Type = 49
	TypeLowBatteryShutdown    Type = 50
	TypeBonded                Type = 51
	TypeANCSv2Descriptor      Type = 4
	TypeTimerTrigger          Type = 5
	TypeKeyframeCallback      Type = 11
	TypeAppSettingConfirm     Type = 6
	TypeContactSettingConfirm Type = 7
	TypeClearBondConfirm      Type = 57
	TypeApplicationErrorReset Type = 8
	TypeGPIOPinReport         Type = 9
)

// Message is a closed sum type over every recognized short message.
type Message interface {
	messageType() Type
}

// TapCount reports the number of taps observed by the peripheral.
type TapCount struct{ Count int }

func (TapCount) messageType() Type { return TypeTapCount }

// SleepShutdown reports that the peripheral shut down due to sleep/idle.
type SleepShutdown struct{}

func (SleepShutdown) messageType() Type { return TypeSleepShutdown }

// LowBatteryShutdown reports that the peripheral shut down due to low battery.
type LowBatteryShutdown struct{}

func (LowBatteryShutdown) messageType() Type { return TypeLowBatteryShutdown }

// Bonded reports that bonding completed.
type Bonded struct{}

func (Bonded) messageType() Type { return TypeBonded }

// ANCSv2Descriptor declares the attribute counts for an upcoming ANCS
// version-2 TLV buffer.
type ANCSv2Descriptor struct {
	NotificationAttributeCount int
	ApplicationAttributeCount  int
}

func (ANCSv2Descriptor) messageType() Type { return TypeANCSv2Descriptor }

// TimerTrigger reports that a scheduled timer fired.
type TimerTrigger struct{}

func (TimerTrigger) messageType() Type { return TypeTimerTrigger }

// KeyframeCallback reports that a keyframe command finished executing.
type KeyframeCallback struct{}

func (KeyframeCallback) messageType() Type { return TypeKeyframeCallback }

// SettingConfirmationKind distinguishes the three shapes an
// application/contact setting confirmation can take.
type SettingConfirmationKind int

const (
	SettingConfirmed SettingConfirmationKind = iota
	SettingDeleted
	SettingCleared
)

// AppSettingConfirmation reports the peripheral's handling of an
// application notification setting.
type AppSettingConfirmation struct {
	Kind      SettingConfirmationKind
	Fragment  string
	Color     command.Color
	Vibration command.Vibration
}

func (AppSettingConfirmation) messageType() Type { return TypeAppSettingConfirm }

// ContactSettingConfirmation reports the peripheral's handling of a contact
// notification setting.
type ContactSettingConfirmation struct {
	Kind     SettingConfirmationKind
	Fragment string
	Color    command.Color
}

func (ContactSettingConfirmation) messageType() Type { return TypeContactSettingConfirm }

// ClearBondConfirmation reports that ClearBondsCommand completed.
type ClearBondConfirmation struct{}

func (ClearBondConfirmation) messageType() Type { return TypeClearBondConfirm }

// ApplicationErrorReset reports that the application encountered an error
// and reset.
type ApplicationErrorReset struct{}

func (ApplicationErrorReset) messageType() Type { return TypeApplicationErrorReset }

// GPIOPinReport reports a GPIO pin state change.
type GPIOPinReport struct{ Pin int }

func (GPIOPinReport) messageType() Type { return TypeGPIOPinReport }

// UnsupportedMessage is surfaced for any leading type byte this parser does
// not recognize.
type UnsupportedMessage struct {
	RawType Type
	Data    []byte
}

func (UnsupportedMessage) messageType() Type { return 0 }

// clearedMarker is the distinct marker byte sequence used to recognize a
// "cleared" setting confirmation body, as opposed to an empty ("deleted")
// or populated ("confirmed") body.
var clearedMarker = []byte{0xFF}

// Parse parses a single short control message. Unknown leading types never
// return an error; they are reported as UnsupportedMessage so the caller's
// observer can surface them without interrupting the parse loop.
func Parse(data []byte) (Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("message: empty data")
	}
	typ := Type(data[0])
	rest := data[1:]

	switch typ {
	case TypeTapCount:
		n, err := strconv.Atoi(string(rest))
		if err != nil {
			return nil, fmt.Errorf("message: invalid tap count: %w", err)
		}
		return TapCount{Count: n}, nil

	case TypeSleepShutdown:
		return SleepShutdown{}, nil

	case TypeLowBatteryShutdown:
		return LowBatteryShutdown{}, nil

	case TypeBonded:
		return Bonded{}, nil

	case TypeANCSv2Descriptor:
		parts := strings.SplitN(string(rest), ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("message: malformed ANCS v2 descriptor: %q", rest)
		}
		notifCount, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("message: invalid notification attribute count: %w", err)
		}
		appCount, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("message: invalid application attribute count: %w", err)
		}
		return ANCSv2Descriptor{NotificationAttributeCount: notifCount, ApplicationAttributeCount: appCount}, nil

	case TypeTimerTrigger:
		return TimerTrigger{}, nil

	case TypeKeyframeCallback:
		return KeyframeCallback{}, nil

	case TypeAppSettingConfirm:
		kind, fragment, color, vibration, err := parseAppSettingBody(rest)
		if err != nil {
			return nil, err
		}
		return AppSettingConfirmation{Kind: kind, Fragment: fragment, Color: color, Vibration: vibration}, nil

	case TypeContactSettingConfirm:
		kind, fragment, color, err := parseContactSettingBody(rest)
		if err != nil {
			return nil, err
		}
		return ContactSettingConfirmation{Kind: kind, Fragment: fragment, Color: color}, nil

	case TypeClearBondConfirm:
		return ClearBondConfirmation{}, nil

	case TypeApplicationErrorReset:
		return ApplicationErrorReset{}, nil

	case TypeGPIOPinReport:
		n, err := strconv.Atoi(string(rest))
		if err != nil {
			return nil, fmt.Errorf("message: invalid GPIO pin: %w", err)
		}
		return GPIOPinReport{Pin: n}, nil

	default:
		return UnsupportedMessage{RawType: typ, Data: rest}, nil
	}
}

func isCleared(rest []byte) bool {
	return len(rest) == len(clearedMarker) && rest[0] == clearedMarker[0]
}

func parseAppSettingBody(rest []byte) (SettingConfirmationKind, string, command.Color, command.Vibration, error) {
	switch {
	case len(rest) == 0:
		return SettingDeleted, "", command.Color{}, 0, nil
	case isCleared(rest):
		return SettingCleared, "", command.Color{}, 0, nil
	case len(rest) >= 4:
		fragment := string(rest[:len(rest)-4])
		c := command.Color{R: rest[len(rest)-4], G: rest[len(rest)-3], B: rest[len(rest)-2]}
		v := command.Vibration(rest[len(rest)-1])
		return SettingConfirmed, fragment, c, v, nil
	default:
		return 0, "", command.Color{}, 0, fmt.Errorf("message: malformed app setting confirmation body")
	}
}

func parseContactSettingBody(rest []byte) (SettingConfirmationKind, string, command.Color, error) {
	switch {
	case len(rest) == 0:
		return SettingDeleted, "", command.Color{}, nil
	case isCleared(rest):
		return SettingCleared, "", command.Color{}, nil
	case len(rest) >= 3:
		fragment := string(rest[:len(rest)-3])
		c := command.Color{R: rest[len(rest)-3], G: rest[len(rest)-2], B: rest[len(rest)-1]}
		return SettingConfirmed, fragment, c, nil
	default:
		return 0, "", command.Color{}, fmt.Errorf("message: malformed contact setting confirmation body")
	}
}

package command

import "fmt"

// decodeForTests decodes a framed command back into a Command value. It
// exists only to support round-trip property tests; production code never
// needs to decode its own outbound commands.
func decodeForTests(frame []byte) (Command, error) {
	if len(frame) < 3 {
		return nil, fmt.Errorf("frame too short: %d bytes", len(frame))
	}
	typ := Type(frame[1])
	length := int(frame[2])
	if len(frame) != 3+length {
		return nil, fmt.Errorf("frame length mismatch: header says %d, got %d", length, len(frame)-3)
	}
	p := frame[3:]

	switch typ {
	case TypeLEDVibration:
		if len(p) != 14 {
			return nil, fmt.Errorf("LEDVibration payload must be 14 bytes, got %d", len(p))
		}
		return LEDVibrationCommand{
			Color: ColorBehavior{
				Count:     p[0],
				Primary:   Color{p[1], p[2], p[3]},
				Secondary: Color{p[4], p[5], p[6]},
				Delay:     p[7],
				OnDur:     p[8],
				OffDur:    p[9],
			},
			Vibration: VibrationBehavior{Count: p[10], Power: p[11], OnDur: p[12], OffDur: p[13]},
		}, nil

	case TypeFirmwareReset:
		return FirmwareResetCommand{}, nil

	case TypeEnterDFU:
		if len(p) != 1 {
			return nil, fmt.Errorf("EnterDFU payload must be 1 byte")
		}
		return EnterDFUCommand{TimeoutCode: p[0]}, nil

	case TypeDeepSleep:
		return DeepSleepCommand{}, nil

	case TypeClearBonds:
		return ClearBondsCommand{}, nil

	case TypeAdvertisingName:
		if len(p) != 5 {
			return nil, fmt.Errorf("AdvertisingName payload must be 5 bytes")
		}
		return AdvertisingNameCommand{
			ShortName:   [4]byte{p[0], p[1], p[2], p[3]},
			DiamondClub: p[4] != 0,
		}, nil

	case TypeMobileOS:
		if len(p) != 2 {
			return nil, fmt.Errorf("MobileOS payload must be 2 bytes")
		}
		return MobileOSCommand{OS: MobileOS(p[0]), FactoryMode: p[1] != 0}, nil

	case TypeDateTime:
		if len(p) != 6 {
			return nil, fmt.Errorf("DateTime payload must be 6 bytes")
		}
		return DateTimeCommand{
			YearOffsetFrom2000: p[0], Month: p[1], Day: p[2], Hour: p[3], Minute: p[4], Second: p[5],
		}, nil

	case TypeChargeMode:
		if len(p) != 1 {
			return nil, fmt.Errorf("ChargeMode payload must be 1 byte")
		}
		return ChargeModeCommand{Enabled: p[0] != 0}, nil

	case TypeSleepMode:
		if len(p) != 1 {
			return nil, fmt.Errorf("SleepMode payload must be 1 byte")
		}
		return SleepModeCommand{Minutes: p[0]}, nil

	case TypeLoggingQuery:
		if len(p) != 1 {
			return nil, fmt.Errorf("LoggingQuery payload must be 1 byte")
		}
		return LoggingQueryCommand{Query: p[0]}, nil

	case TypeRFScanTestAppSwitch:
		return RFScanTestAppSwitchCommand{}, nil

	case TypeDisconnectVibration:
		if len(p) != 6 {
			return nil, fmt.Errorf("DisconnectVibration payload must be 6 bytes")
		}
		return DisconnectVibrationCommand{
			Vibration:   VibrationBehavior{Count: p[0], Power: p[1], OnDur: p[2], OffDur: p[3]},
			WaitTimeSec: p[4],
			BackoffMin:  p[5],
		}, nil

	case TypeConnectionLED:
		if len(p) != 1 {
			return nil, fmt.Errorf("ConnectionLED payload must be 1 byte")
		}
		return ConnectionLEDCommand{Enabled: p[0] != 0}, nil

	case TypeHardwareVersion:
		if len(p) != 1 {
			return nil, fmt.Errorf("HardwareVersion payload must be 1 byte")
		}
		return HardwareVersionCommand{Version: p[0]}, nil

	case TypeTapParameters:
		if len(p) != 10 {
			return nil, fmt.Errorf("TapParameters payload must be 10 bytes")
		}
		return TapParametersCommand{
			Threshold: p[0], TimeLimit: p[1], Latency: p[2], Window: p[3],
			Field5: p[4], Field6: p[5], Field7: p[6], Field8: p[7], Field9: p[8], Field10: p[9],
		}, nil

	case TypeApplicationSettings:
		if len(p) < 5 {
			return nil, fmt.Errorf("ApplicationSettings payload must be at least 5 bytes")
		}
		return ApplicationSettingsCommand{
			Mode:      ApplicationSettingsMode(p[0]),
			Color:     Color{p[1], p[2], p[3]},
			Vibration: Vibration(p[4]),
			AppID:     string(p[5:]),
		}, nil

	case TypeContactSettings:
		if len(p) < 4 {
			return nil, fmt.Errorf("ContactSettings payload must be at least 4 bytes")
		}
		return ContactSettingsCommand{
			Mode:        ApplicationSettingsMode(p[0]),
			Color:       Color{p[1], p[2], p[3]},
			ContactName: string(p[4:]),
		}, nil

	case TypeContactsMode:
		if len(p) != 1 {
			return nil, fmt.Errorf("ContactsMode payload must be 1 byte")
		}
		return ContactsModeCommand{Mode: ContactsMode(p[0])}, nil

	case TypeConnectionLEDResponse:
		if len(p) != 1 {
			return nil, fmt.Errorf("ConnectionLEDResponse payload must be 1 byte")
		}
		return ConnectionLEDResponseCommand{Enabled: p[0] != 0}, nil

	case TypeANCSTimeoutAlert:
		if len(p) != 1 {
			return nil, fmt.Errorf("ANCSTimeoutAlert payload must be 1 byte")
		}
		return ANCSTimeoutAlertCommand{Enabled: p[0] != 0}, nil

	case TypeKeyframe:
		if len(p) < 2 {
			return nil, fmt.Errorf("Keyframe payload too short")
		}
		colorCount := int(p[0])
		offset := 1
		colorKfs := make([]ColorKeyframe, 0, colorCount)
		for i := 0; i < colorCount; i++ {
			if offset+5 > len(p) {
				return nil, fmt.Errorf("Keyframe payload truncated in color keyframes")
			}
			colorKfs = append(colorKfs, ColorKeyframe{
				Timestamp:   p[offset],
				Color:       Color{p[offset+1], p[offset+2], p[offset+3]},
				Interpolate: p[offset+4] != 0,
			})
			offset += 5
		}
		if offset >= len(p) {
			return nil, fmt.Errorf("Keyframe payload truncated before vibration count")
		}
		vibCount := int(p[offset])
		offset++
		vibKfs := make([]VibrationKeyframe, 0, vibCount)
		for i := 0; i < vibCount; i++ {
			if offset+3 > len(p) {
				return nil, fmt.Errorf("Keyframe payload truncated in vibration keyframes")
			}
			vibKfs = append(vibKfs, VibrationKeyframe{
				Timestamp:   p[offset],
				Power:       p[offset+1],
				Interpolate: p[offset+2] != 0,
			})
			offset += 3
		}
		if offset >= len(p) {
			return nil, fmt.Errorf("Keyframe payload missing repeat count")
		}
		repeat := p[offset]
		offset++
		if offset != len(p) {
			return nil, fmt.Errorf("Keyframe payload has trailing bytes")
		}
		return KeyframeCommand{ColorKeyframes: colorKfs, VibrationKeyframes: vibKfs, RepeatCount: repeat}, nil

	case TypeNotificationPinLED:
		if len(p) != 1 {
			return nil, fmt.Errorf("NotificationPinLED payload must be 1 byte")
		}
		return NotificationPinLEDCommand{Enabled: p[0] != 0}, nil

	default:
		return nil, fmt.Errorf("unknown command type %d", typ)
	}
}

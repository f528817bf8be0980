package central

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/smallnest/ringbuffer"

	"github.com/srg/ringlykit/internal/groutine"
	"github.com/srg/ringlykit/pkg/ringly/activity"
	"github.com/srg/ringlykit/pkg/ringly/command"
	"github.com/srg/ringlykit/pkg/ringly/message"
	"github.com/srg/ringlykit/pkg/ringly/peripheral"
	"github.com/srg/ringlykit/pkg/ringly/uuidreg"
)

// CommandWritten reports completion of WriteCommand.
type CommandWritten struct {
	UUID string
	Err  error
}

// BatteryRead reports completion of ReadBattery.
type BatteryRead struct {
	UUID    string
	Battery peripheral.Battery
	Err     error
}

// DeviceInfoRead reports completion of ReadDeviceInfo.
type DeviceInfoRead struct {
	UUID string
	Info peripheral.DeviceInformation
	Err  error
}

// ConfigurationHashRead reports completion of ReadConfigurationHash.
type ConfigurationHashRead struct {
	UUID string
	Hash uint64
	Err  error
}

// ConfigurationHashWritten reports completion of WriteConfigurationHash.
type ConfigurationHashWritten struct {
	UUID string
	Err  error
}

// FlashLogRead reports completion of ReadFlashLog.
type FlashLogRead struct {
	UUID string
	Data []byte
	Err  error
}

// ActivityDataRead reports completion of ReadActivityTrackingDataSince.
type ActivityDataRead struct {
	UUID    string
	Samples []activity.Sample
	Err     error
}

// MessageReceived reports one decoded notification on the message
// characteristic, delivered for as long as WatchMessages stays subscribed.
type MessageReceived struct {
	UUID string
	Msg  message.Message
	Err  error
}

func (CommandWritten) centralEvent()           {}
func (BatteryRead) centralEvent()              {}
func (DeviceInfoRead) centralEvent()           {}
func (ConfigurationHashRead) centralEvent()    {}
func (ConfigurationHashWritten) centralEvent() {}
func (FlashLogRead) centralEvent()             {}
func (ActivityDataRead) centralEvent()         {}
func (MessageReceived) centralEvent()          {}

// WatchMessages subscribes to the message characteristic, decoding every
// notified payload with message.Parse and fanning out MessageReceived
// until ctx is cancelled, per spec.md §4's description of the message
// channel as the peripheral's primary event-reporting path.
func (c *Central) WatchMessages(ctx context.Context, uuid string) error {
	if _, ok := c.peripherals.Get(uuid); !ok {
		return fmt.Errorf("central: unknown peripheral %s", uuid)
	}

	err := c.adapter.SetNotifyEnabled(uuid, uuidreg.ServiceRingly, uuidreg.CharMessage, true, func(_ string, data []byte) {
		msg, err := message.Parse(data)
		c.events.Notify(MessageReceived{UUID: uuid, Msg: msg, Err: err})
	})
	if err != nil {
		return fmt.Errorf("central: watch messages: %w", err)
	}

	groutine.Go(ctx, "watch-messages:"+uuid, func(ctx context.Context) {
		<-ctx.Done()
		_ = c.adapter.SetNotifyEnabled(uuid, uuidreg.ServiceRingly, uuidreg.CharMessage, false, nil)
	})
	return nil
}

// WriteCommand enqueues a command frame write to the peripheral's command
// characteristic, per spec.md §5: the call returns immediately, completion
// arrives through the observer fan-out as CommandWritten.
func (c *Central) WriteCommand(uuid string, cmd command.Command) {
	groutine.Go(nil, "write-command:"+uuid, func(context.Context) {
		err := c.writeValue(uuid, uuidreg.ServiceRingly, uuidreg.CharCommand, command.Frame(cmd), true)
		c.events.Notify(CommandWritten{UUID: uuid, Err: err})
	})
}

// ReadBattery reads both battery characteristics and records them on the
// peripheral record, completing asynchronously with BatteryRead.
func (c *Central) ReadBattery(uuid string) {
	groutine.Go(nil, "read-battery:"+uuid, func(context.Context) {
		p, ok := c.peripherals.Get(uuid)
		if !ok {
			c.events.Notify(BatteryRead{UUID: uuid, Err: fmt.Errorf("central: unknown peripheral %s", uuid)})
			return
		}

		charge, err := c.readValue(uuid, uuidreg.ServiceBattery, uuidreg.CharBatteryCharge)
		if err != nil {
			c.events.Notify(BatteryRead{UUID: uuid, Err: err})
			return
		}
		if len(charge) != 1 {
			c.events.Notify(BatteryRead{UUID: uuid, Err: peripheral.ErrIncorrectDataLength})
			return
		}
		p.SetBatteryCharge(int(charge[0]))

		state, err := c.readValue(uuid, uuidreg.ServiceBattery, uuidreg.CharBatteryState)
		if err != nil {
			c.events.Notify(BatteryRead{UUID: uuid, Battery: p.Battery(), Err: err})
			return
		}
		if len(state) != 1 {
			c.events.Notify(BatteryRead{UUID: uuid, Battery: p.Battery(), Err: peripheral.ErrIncorrectDataLength})
			return
		}
		var chargeState peripheral.ChargeState
		switch state[0] {
		case 0:
			chargeState = peripheral.NotCharging
		case 1:
			chargeState = peripheral.Charging
		case 2:
			chargeState = peripheral.Charged
		default:
			chargeState = peripheral.ChargeError
		}
		p.SetBatteryState(chargeState)

		c.events.Notify(BatteryRead{UUID: uuid, Battery: p.Battery()})
	})
}

// ReadDeviceInfo reads every Device Information characteristic and records
// them on the peripheral, completing asynchronously with DeviceInfoRead.
func (c *Central) ReadDeviceInfo(uuid string) {
	groutine.Go(nil, "read-device-info:"+uuid, func(context.Context) {
		p, ok := c.peripherals.Get(uuid)
		if !ok {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: fmt.Errorf("central: unknown peripheral %s", uuid)})
			return
		}

		read := func(char string) (string, error) {
			b, err := c.readValue(uuid, uuidreg.ServiceDeviceInformation, char)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}

		var info peripheral.DeviceInformation
		var err error
		if info.ManufacturerName, err = read(uuidreg.CharManufacturerName); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.ModelNumber, err = read(uuidreg.CharModelNumber); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.ApplicationVersion, err = read(uuidreg.CharApplicationVersion); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.HardwareVersion, err = read(uuidreg.CharHardwareVersion); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.ChipVersion, err = read(uuidreg.CharChipVersion); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.BootloaderVersion, err = read(uuidreg.CharBootloaderVersion); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.SoftdeviceVersion, err = read(uuidreg.CharSoftdeviceVersion); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}
		if info.MACAddress, err = read(uuidreg.CharMACAddress); err != nil {
			c.events.Notify(DeviceInfoRead{UUID: uuid, Err: err})
			return
		}

		p.SetDeviceInfo(info)
		c.events.Notify(DeviceInfoRead{UUID: uuid, Info: p.DeviceInfo()})
	})
}

// ReadConfigurationHash reads the little-endian uint64 configuration-hash
// characteristic, per spec.md §6.
func (c *Central) ReadConfigurationHash(uuid string) {
	groutine.Go(nil, "read-configuration-hash:"+uuid, func(context.Context) {
		b, err := c.readValue(uuid, uuidreg.ServiceRingly, uuidreg.CharConfigurationHash)
		if err != nil {
			c.events.Notify(ConfigurationHashRead{UUID: uuid, Err: err})
			return
		}
		if len(b) != 8 {
			c.events.Notify(ConfigurationHashRead{UUID: uuid, Err: peripheral.ErrIncorrectDataLength})
			return
		}
		c.events.Notify(ConfigurationHashRead{UUID: uuid, Hash: binary.LittleEndian.Uint64(b)})
	})
}

// WriteConfigurationHash writes the little-endian uint64 configuration-hash
// characteristic, per spec.md §6.
func (c *Central) WriteConfigurationHash(uuid string, hash uint64) {
	groutine.Go(nil, "write-configuration-hash:"+uuid, func(context.Context) {
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, hash)
		err := c.writeValue(uuid, uuidreg.ServiceRingly, uuidreg.CharConfigurationHash, buf, true)
		c.events.Notify(ConfigurationHashWritten{UUID: uuid, Err: err})
	})
}

// ReadFlashLog subscribes to the logging-flash characteristic and
// accumulates streamed chunks into a bounded ring buffer until ctx is
// cancelled or the peripheral stops sending chunks (a zero-length chunk
// marks the end of the stream), then completes with FlashLogRead.
//
// Buffering through a ring buffer (rather than an ever-growing slice)
// bounds memory use against a misbehaving peripheral that never sends the
// terminating zero-length chunk.
func (c *Central) ReadFlashLog(ctx context.Context, uuid string) {
	groutine.Go(ctx, "read-flash-log:"+uuid, func(ctx context.Context) {
		p, ok := c.peripherals.Get(uuid)
		if !ok {
			c.events.Notify(FlashLogRead{UUID: uuid, Err: fmt.Errorf("central: unknown peripheral %s", uuid)})
			return
		}
		if !p.HasLoggingService() {
			c.events.Notify(FlashLogRead{UUID: uuid, Err: fmt.Errorf("central: %s has no logging service", uuid)})
			return
		}

		rb := ringbuffer.New(64 * 1024)
		done := make(chan error, 1)

		err := c.adapter.SetNotifyEnabled(uuid, uuidreg.ServiceLogging, uuidreg.CharLoggingFlash, true,
			func(_ string, data []byte) {
				if len(data) == 0 {
					select {
					case done <- nil:
					default:
					}
					return
				}
				_, _ = rb.Write(data)
			})
		if err != nil {
			c.events.Notify(FlashLogRead{UUID: uuid, Err: err})
			return
		}
		defer func() { _ = c.adapter.SetNotifyEnabled(uuid, uuidreg.ServiceLogging, uuidreg.CharLoggingFlash, false, nil) }()

		select {
		case <-ctx.Done():
			err = ctx.Err()
		case err = <-done:
		}

		buf := make([]byte, rb.Length())
		_, _ = rb.Read(buf)
		c.events.Notify(FlashLogRead{UUID: uuid, Data: buf, Err: err})
	})
}

// ReadActivityTrackingDataSince reads the activity-tracking-data
// characteristic and returns only the samples whose timestamp is at or
// after since, requiring the peripheral to have an activity service.
func (c *Central) ReadActivityTrackingDataSince(uuid string, since time.Time) {
	groutine.Go(nil, "read-activity-data:"+uuid, func(context.Context) {
		p, ok := c.peripherals.Get(uuid)
		if !ok {
			c.events.Notify(ActivityDataRead{UUID: uuid, Err: fmt.Errorf("central: unknown peripheral %s", uuid)})
			return
		}
		if !p.HasActivityService() {
			c.events.Notify(ActivityDataRead{UUID: uuid, Err: peripheral.ErrNotSubscribedToActivity})
			return
		}

		raw, err := c.readValue(uuid, uuidreg.ServiceActivity, uuidreg.CharActivityTrackingData)
		if err != nil {
			c.events.Notify(ActivityDataRead{UUID: uuid, Err: err})
			return
		}

		samples, err := activity.Decode(raw)
		if err != nil {
			c.events.Notify(ActivityDataRead{UUID: uuid, Err: err})
			return
		}

		out := samples[:0]
		for _, s := range samples {
			if !s.Minute.Time().Before(since) {
				out = append(out, s)
			}
		}
		c.events.Notify(ActivityDataRead{UUID: uuid, Samples: out})
	})
}

func (c *Central) readValue(uuid, serviceUUID, characteristicUUID string) ([]byte, error) {
	if _, ok := c.peripherals.Get(uuid); !ok {
		return nil, fmt.Errorf("central: unknown peripheral %s", uuid)
	}
	return c.adapter.ReadValue(uuid, serviceUUID, characteristicUUID)
}

func (c *Central) writeValue(uuid, serviceUUID, characteristicUUID string, data []byte, withResponse bool) error {
	if _, ok := c.peripherals.Get(uuid); !ok {
		return fmt.Errorf("central: unknown peripheral %s", uuid)
	}
	return c.adapter.WriteValue(uuid, serviceUUID, characteristicUUID, data, withResponse)
}

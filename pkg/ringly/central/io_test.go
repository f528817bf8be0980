package central

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/ringlykit/pkg/ringly/command"
	"github.com/srg/ringlykit/pkg/ringly/peripheral"
	"github.com/srg/ringlykit/pkg/ringly/uuidreg"
)

func waitForEvent[T any](t *testing.T, ch chan Event) T {
	t.Helper()
	for {
		select {
		case e := <-ch:
			if v, ok := e.(T); ok {
				return v
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event of type %T", *new(T))
		}
	}
}

func connectedCentral(t *testing.T, adapter *fakeAdapter) (*Central, string, chan Event) {
	t.Helper()
	c := New(adapter, nil)
	require.NoError(t, c.StartDiscovery(context.Background()))
	d := c.Discovery()
	require.NotEmpty(t, d.Peripherals)
	uuid := d.Peripherals[0].Identity.UUID

	ch := make(chan Event, 16)
	c.Events().Subscribe(func(e Event) { ch <- e })
	return c, uuid, ch
}

func TestWriteCommandEmitsCommandWritten(t *testing.T) {
	adapter := &fakeAdapter{advertisements: []fakeAdvertisement{{addr: "aa:aa"}}}
	c, uuid, ch := connectedCentral(t, adapter)

	c.WriteCommand(uuid, command.FirmwareResetCommand{})

	ev := waitForEvent[CommandWritten](t, ch)
	assert.NoError(t, ev.Err)
}

func TestReadBatteryPopulatesPeripheralAndEmitsEvent(t *testing.T) {
	adapter := &fakeAdapter{
		advertisements: []fakeAdvertisement{{addr: "aa:aa"}},
		values: map[string][]byte{
			uuidreg.CharBatteryCharge: {72},
			uuidreg.CharBatteryState:  {1},
		},
	}
	c, uuid, ch := connectedCentral(t, adapter)

	c.ReadBattery(uuid)

	ev := waitForEvent[BatteryRead](t, ch)
	require.NoError(t, ev.Err)
	assert.Equal(t, 72, ev.Battery.ChargePercent)
	assert.Equal(t, peripheral.Charging, ev.Battery.State)
}

func TestReadConfigurationHashRoundTrip(t *testing.T) {
	adapter := &fakeAdapter{
		advertisements: []fakeAdvertisement{{addr: "aa:aa"}},
		values: map[string][]byte{
			uuidreg.CharConfigurationHash: {1, 0, 0, 0, 0, 0, 0, 0},
		},
	}
	c, uuid, ch := connectedCentral(t, adapter)

	c.ReadConfigurationHash(uuid)

	ev := waitForEvent[ConfigurationHashRead](t, ch)
	require.NoError(t, ev.Err)
	assert.Equal(t, uint64(1), ev.Hash)
}

func TestReadFlashLogAccumulatesNotifiedChunksUntilTerminator(t *testing.T) {
	adapter := &fakeAdapter{
		advertisements:  []fakeAdvertisement{{addr: "aa:aa"}},
		flashLogChunks:  [][]byte{{0xDE, 0xAD}, {0xBE, 0xEF}, {}},
		hasLoggingChars: true,
	}
	c, uuid, ch := connectedCentral(t, adapter)
	p, ok := c.RetrievePeripheral(uuid, false)
	require.True(t, ok)
	p.SetOptionalServices(false, true)

	c.ReadFlashLog(context.Background(), uuid)

	ev := waitForEvent[FlashLogRead](t, ch)
	require.NoError(t, ev.Err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, ev.Data)
}

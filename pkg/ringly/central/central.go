// Package central implements the fleet manager: owns the BLE adapter,
// the set of known peripherals, a discovery snapshot, and connection
// orchestration, per spec.md §4.4.
package central

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"

	"github.com/srg/ringlykit/internal/bleadapter"
	"github.com/srg/ringlykit/pkg/ringly/observer"
	"github.com/srg/ringlykit/pkg/ringly/peripheral"
	"github.com/srg/ringlykit/pkg/ringly/uuidreg"
)

// RecoveryPeripheral is a peripheral discovered by one of the two
// recovery-mode solicited UUIDs, eligible for the DFU transport (the DFU
// transport itself is out of scope, per spec.md §1).
type RecoveryPeripheral struct {
	UUID          string
	HardwareIndex int // which of the two solicited UUIDs matched
}

// Discovery is an immutable snapshot of one scan's accumulated results.
// Central replaces this pointer atomically on every change so observers
// never see a torn read, grounded on the teacher's
// scanner.Scanner.Scan result-snapshotting.
type Discovery struct {
	Peripherals         []*peripheral.Peripheral
	RecoveryPeripherals []*RecoveryPeripheral
	StartDate           time.Time
}

// Event is the closed sum type delivered through Central's observer hub.
type Event interface{ centralEvent() }

type WillConnect struct{ UUID string }
type DidConnect struct{ UUID string }
type DidFailToConnect struct {
	UUID string
	Err  error
}
type DidDisconnect struct {
	UUID string
	Err  error
}

func (WillConnect) centralEvent()      {}
func (DidConnect) centralEvent()       {}
func (DidFailToConnect) centralEvent() {}
func (DidDisconnect) centralEvent()    {}

// Central is the fleet manager described in spec.md §4.4. All public
// methods are safe for concurrent use.
type Central struct {
	adapter bleadapter.Adapter
	logger  *logrus.Logger

	peripherals *hashmap.Map[string, *peripheral.Peripheral]
	discovery   atomic.Pointer[Discovery]

	events *observer.Hub[Event]

	poweredOn atomic.Bool
}

// New creates a Central bound to the given adapter.
func New(adapter bleadapter.Adapter, logger *logrus.Logger) *Central {
	if logger == nil {
		logger = logrus.New()
	}
	c := &Central{
		adapter:     adapter,
		logger:      logger,
		peripherals: hashmap.New[string, *peripheral.Peripheral](),
		events:      observer.NewHub[Event](),
	}
	c.discovery.Store(&Discovery{StartDate: time.Time{}})

	adapter.OnStateChange(func(poweredOn bool) {
		c.poweredOn.Store(poweredOn)
	})
	adapter.OnRestore(c.handleRestore)

	return c
}

// Events returns the observer hub for connection lifecycle events.
func (c *Central) Events() *observer.Hub[Event] {
	return c.events
}

// Adapter exposes the underlying BLE capability surface for callers that
// need raw GATT discovery (cmd/ringlyctl's inspect command) beyond the
// peripheral-record-aware operations in io.go.
func (c *Central) Adapter() bleadapter.Adapter {
	return c.adapter
}

// PromptToPowerOnBluetooth reports whether the adapter currently reports
// itself powered on, matching spec.md §4.4's naming for this capability
// (the actual OS-level prompt is a UI-layer concern, out of scope).
func (c *Central) PromptToPowerOnBluetooth() bool {
	return c.poweredOn.Load()
}

// StartDiscovery begins scanning for the Ringly service UUIDs and the two
// recovery-mode solicited UUIDs, replacing the Discovery snapshot on every
// new or updated result.
func (c *Central) StartDiscovery(ctx context.Context) error {
	snapshot := &Discovery{StartDate: time.Now()}
	c.discovery.Store(snapshot)

	return c.adapter.Scan(ctx, false, func(adv bleadapter.Advertisement) {
		c.handleAdvertisement(adv)
	})
}

// StopDiscovery ends an in-progress scan.
func (c *Central) StopDiscovery() {
	c.adapter.StopScan()
}

func (c *Central) handleAdvertisement(adv bleadapter.Advertisement) {
	uuid := adv.Addr()

	if idx := recoveryHardwareIndex(adv.Services()); idx >= 0 {
		c.appendRecoveryPeripheral(&RecoveryPeripheral{UUID: uuid, HardwareIndex: idx})
		return
	}

	if _, exists := c.peripherals.Get(uuid); !exists {
		p := peripheral.New(peripheral.Identity{UUID: uuid, LocalName: adv.LocalName()})
		c.peripherals.Set(uuid, p)
		c.appendPeripheral(p)
	}
}

func recoveryHardwareIndex(advertised []string) int {
	for i, solicited := range uuidreg.RecoverySolicitedUUIDs {
		for _, u := range advertised {
			if u == solicited {
				return i
			}
		}
	}
	return -1
}

func (c *Central) appendPeripheral(p *peripheral.Peripheral) {
	for {
		old := c.discovery.Load()
		next := &Discovery{
			Peripherals:         append(append([]*peripheral.Peripheral{}, old.Peripherals...), p),
			RecoveryPeripherals: old.RecoveryPeripherals,
			StartDate:           old.StartDate,
		}
		if c.discovery.CompareAndSwap(old, next) {
			return
		}
	}
}

func (c *Central) appendRecoveryPeripheral(rp *RecoveryPeripheral) {
	for {
		old := c.discovery.Load()
		next := &Discovery{
			Peripherals:         old.Peripherals,
			RecoveryPeripherals: append(append([]*RecoveryPeripheral{}, old.RecoveryPeripherals...), rp),
			StartDate:           old.StartDate,
		}
		if c.discovery.CompareAndSwap(old, next) {
			return
		}
	}
}

// Discovery returns the current immutable discovery snapshot.
func (c *Central) Discovery() *Discovery {
	return c.discovery.Load()
}

// Connect establishes a connection to the peripheral identified by uuid,
// emitting WillConnect/DidConnect/DidFailToConnect through the observer
// hub, grounded on the teacher's pkg/ble/bridge.go connect/disconnect
// event plumbing.
func (c *Central) Connect(ctx context.Context, uuid string, timeout time.Duration) error {
	p, ok := c.peripherals.Get(uuid)
	if !ok {
		return fmt.Errorf("central: unknown peripheral %s", uuid)
	}

	c.events.Notify(WillConnect{UUID: uuid})
	p.SetConnectionState(peripheral.ConnectionConnecting)

	if err := c.adapter.Connect(ctx, uuid, timeout); err != nil {
		p.SetConnectionState(peripheral.ConnectionDisconnected)
		c.events.Notify(DidFailToConnect{UUID: uuid, Err: err})
		return err
	}

	p.SetConnectionState(peripheral.ConnectionConnected)
	c.events.Notify(DidConnect{UUID: uuid})
	return nil
}

// CancelConnection aborts a pending or live connection. A pending connect
// surfaces DidFailToConnect(nil), matching spec.md §5's cancellation
// policy: cancellation is not itself an error.
func (c *Central) CancelConnection(uuid string) error {
	err := c.adapter.CancelConnection(uuid)
	if p, ok := c.peripherals.Get(uuid); ok {
		p.SetConnectionState(peripheral.ConnectionDisconnected)
	}
	c.events.Notify(DidFailToConnect{UUID: uuid, Err: nil})
	return err
}

// RetrieveConnectedPeripherals returns every peripheral this Central
// believes is currently connected.
func (c *Central) RetrieveConnectedPeripherals() []*peripheral.Peripheral {
	var out []*peripheral.Peripheral
	c.peripherals.Range(func(_ string, p *peripheral.Peripheral) bool {
		if p.ConnectionState() == peripheral.ConnectionConnected {
			out = append(out, p)
		}
		return true
	})
	return out
}

// RetrievePeripheral looks up a peripheral by UUID. If not yet known and
// assumePaired is true, a new Peripheral record is created and registered
// (mirroring the original SDK's ability to address a previously bonded
// peripheral that has not yet been (re)discovered by a scan).
func (c *Central) RetrievePeripheral(uuid string, assumePaired bool) (*peripheral.Peripheral, bool) {
	if p, ok := c.peripherals.Get(uuid); ok {
		return p, true
	}
	if !assumePaired {
		return nil, false
	}
	p := peripheral.New(peripheral.Identity{UUID: uuid})
	p.SetPairState(peripheral.PairAssumedPaired)
	c.peripherals.Set(uuid, p)
	return p, true
}

func (c *Central) handleRestore(uuids []string) {
	for _, uuid := range uuids {
		if _, ok := c.peripherals.Get(uuid); !ok {
			p := peripheral.New(peripheral.Identity{UUID: uuid})
			c.peripherals.Set(uuid, p)
		}
	}
}

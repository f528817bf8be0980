package bleadapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-ble/ble"
	"github.com/go-ble/ble/darwin"
	"github.com/sirupsen/logrus"
	"github.com/srg/ringlykit/pkg/ringly/uuidreg"
)

// DeviceFactory creates the platform ble.Device; overridable in tests,
// grounded on the teacher's internal/device/go-ble.DeviceFactory pattern.
var DeviceFactory = func() (ble.Device, error) {
	return darwin.NewDevice()
}

// connState tracks one live ble.Client plus its discovered profile,
// generalized from the teacher's BLEConnection.
type connState struct {
	client  ble.Client
	profile *ble.Profile
}

// GoBLE implements Adapter on top of github.com/go-ble/ble.
type GoBLE struct {
	logger *logrus.Logger

	mu          sync.RWMutex
	connections map[string]*connState

	scanCancel context.CancelFunc

	onStateChange func(bool)
	onRestore     RestoreHandler
}

// NewGoBLE creates an Adapter backed by github.com/go-ble/ble.
func NewGoBLE(logger *logrus.Logger) *GoBLE {
	if logger == nil {
		logger = logrus.New()
	}
	return &GoBLE{
		logger:      logger,
		connections: make(map[string]*connState),
	}
}

func (g *GoBLE) OnStateChange(f func(poweredOn bool)) { g.onStateChange = f }
func (g *GoBLE) OnRestore(f RestoreHandler)            { g.onRestore = f }

// Scan begins BLE discovery, grounded on the teacher's
// scanner.Scanner.Scan/handleAdvertisement pattern.
func (g *GoBLE) Scan(ctx context.Context, allowDuplicates bool, handler func(Advertisement)) error {
	dev, err := DeviceFactory()
	if err != nil {
		return fmt.Errorf("bleadapter: failed to create BLE device: %w", err)
	}
	ble.SetDefaultDevice(dev)

	scanCtx, cancel := context.WithCancel(ctx)
	g.mu.Lock()
	g.scanCancel = cancel
	g.mu.Unlock()
	defer cancel()

	if g.onStateChange != nil {
		g.onStateChange(true)
	}

	err = ble.Scan(scanCtx, allowDuplicates, func(a ble.Advertisement) {
		handler(advertisementAdapter{a})
	}, nil)
	if err != nil && scanCtx.Err() != nil {
		return nil
	}
	return err
}

func (g *GoBLE) StopScan() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.scanCancel != nil {
		g.scanCancel()
	}
}

type advertisementAdapter struct{ a ble.Advertisement }

func (a advertisementAdapter) LocalName() string { return a.a.LocalName() }
func (a advertisementAdapter) ManufacturerData() []byte {
	return a.a.ManufacturerData()
}
func (a advertisementAdapter) Services() []string {
	out := make([]string, 0, len(a.a.Services()))
	for _, u := range a.a.Services() {
		out = append(out, uuidreg.Normalize(u.String()))
	}
	return out
}
func (a advertisementAdapter) SolicitedServices() []string { return nil }
func (a advertisementAdapter) Connectable() bool           { return a.a.Connectable() }
func (a advertisementAdapter) RSSI() int                   { return a.a.RSSI() }
func (a advertisementAdapter) Addr() string                { return a.a.Addr().String() }

// Connect dials a peripheral and discovers its profile, grounded on the
// teacher's BLEConnection.Connect.
func (g *GoBLE) Connect(ctx context.Context, uuid string, timeout time.Duration) error {
	connCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := ble.Dial(connCtx, ble.NewAddr(uuid))
	if err != nil {
		return fmt.Errorf("bleadapter: connect %s: %w", uuid, err)
	}

	profile, err := client.DiscoverProfile(true)
	if err != nil {
		_ = client.CancelConnection()
		return fmt.Errorf("bleadapter: discover profile for %s: %w", uuid, err)
	}

	g.mu.Lock()
	g.connections[uuid] = &connState{client: client, profile: profile}
	g.mu.Unlock()
	return nil
}

func (g *GoBLE) CancelConnection(uuid string) error {
	g.mu.Lock()
	cs, ok := g.connections[uuid]
	delete(g.connections, uuid)
	g.mu.Unlock()
	if !ok {
		return nil
	}
	return cs.client.CancelConnection()
}

func (g *GoBLE) RetrieveConnected() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.connections))
	for uuid := range g.connections {
		out = append(out, uuid)
	}
	return out
}

func (g *GoBLE) RetrieveByIdentifiers(uuids []string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, uuid := range uuids {
		if _, ok := g.connections[uuid]; ok {
			out = append(out, uuid)
		}
	}
	return out
}

func (g *GoBLE) conn(uuid string) (*connState, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cs, ok := g.connections[uuid]
	if !ok {
		return nil, fmt.Errorf("bleadapter: %s not connected", uuid)
	}
	return cs, nil
}

func (g *GoBLE) DiscoverServices(uuid string) ([]string, error) {
	cs, err := g.conn(uuid)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cs.profile.Services))
	for _, svc := range cs.profile.Services {
		out = append(out, uuidreg.Normalize(svc.UUID.String()))
	}
	return out, nil
}

func (g *GoBLE) DiscoverCharacteristics(uuid, serviceUUID string) ([]string, error) {
	cs, err := g.conn(uuid)
	if err != nil {
		return nil, err
	}
	for _, svc := range cs.profile.Services {
		if uuidreg.Normalize(svc.UUID.String()) != serviceUUID {
			continue
		}
		out := make([]string, 0, len(svc.Characteristics))
		for _, c := range svc.Characteristics {
			out = append(out, uuidreg.Normalize(c.UUID.String()))
		}
		return out, nil
	}
	return nil, fmt.Errorf("bleadapter: service %s not found on %s", serviceUUID, uuid)
}

func (g *GoBLE) findCharacteristic(uuid, serviceUUID, characteristicUUID string) (*connState, *ble.Characteristic, error) {
	cs, err := g.conn(uuid)
	if err != nil {
		return nil, nil, err
	}
	for _, svc := range cs.profile.Services {
		if uuidreg.Normalize(svc.UUID.String()) != serviceUUID {
			continue
		}
		for _, c := range svc.Characteristics {
			if uuidreg.Normalize(c.UUID.String()) == characteristicUUID {
				return cs, c, nil
			}
		}
		return nil, nil, fmt.Errorf("bleadapter: characteristic %s not found in service %s", characteristicUUID, serviceUUID)
	}
	return nil, nil, fmt.Errorf("bleadapter: service %s not found on %s", serviceUUID, uuid)
}

func (g *GoBLE) ReadValue(uuid, serviceUUID, characteristicUUID string) ([]byte, error) {
	cs, char, err := g.findCharacteristic(uuid, serviceUUID, characteristicUUID)
	if err != nil {
		return nil, err
	}
	return cs.client.ReadCharacteristic(char)
}

func (g *GoBLE) WriteValue(uuid, serviceUUID, characteristicUUID string, data []byte, withResponse bool) error {
	cs, char, err := g.findCharacteristic(uuid, serviceUUID, characteristicUUID)
	if err != nil {
		return err
	}
	return cs.client.WriteCharacteristic(char, data, !withResponse)
}

func (g *GoBLE) SetNotifyEnabled(uuid, serviceUUID, characteristicUUID string, enabled bool, handler NotifyHandler) error {
	cs, char, err := g.findCharacteristic(uuid, serviceUUID, characteristicUUID)
	if err != nil {
		return err
	}
	if !enabled {
		return cs.client.Unsubscribe(char, false)
	}
	return cs.client.Subscribe(char, false, func(data []byte) {
		handler(characteristicUUID, data)
	})
}

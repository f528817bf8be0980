// Package bleadapter is the narrow BLE capability surface the rest of
// ringlykit depends on. central and peripheral never import
// github.com/go-ble/ble directly; they depend only on the Adapter
// interface defined here, so the BLE stack is an injected capability
// rather than a hard dependency.
package bleadapter

import (
	"context"
	"time"
)

// Advertisement is one observed advertising packet.
type Advertisement interface {
	LocalName() string
	ManufacturerData() []byte
	Services() []string
	SolicitedServices() []string
	Connectable() bool
	RSSI() int
	Addr() string
}

// NotifyHandler receives notification/indication payloads for one
// characteristic, identified by its normalized UUID.
type NotifyHandler func(characteristicUUID string, data []byte)

// RestoreHandler is invoked when the underlying platform BLE stack hands
// back peripherals it restored from a prior session (state restoration),
// mirroring didRestorePeripherals in spec.md §4.4.
type RestoreHandler func(peripheralUUIDs []string)

// Adapter is the capability surface central and peripheral are built
// against; adapted from the teacher's internal/device/go-ble wrapping of
// github.com/go-ble/ble, narrowed to the operations spec.md §6 names.
type Adapter interface {
	// Scan begins discovery, invoking handler for every observed
	// advertisement until ctx is cancelled or StopScan is called.
	Scan(ctx context.Context, allowDuplicates bool, handler func(Advertisement)) error
	StopScan()

	// Connect establishes a link to the peripheral at uuid.
	Connect(ctx context.Context, uuid string, timeout time.Duration) error
	CancelConnection(uuid string) error

	RetrieveConnected() []string
	RetrieveByIdentifiers(uuids []string) []string

	DiscoverServices(uuid string) ([]string, error)
	DiscoverCharacteristics(uuid, serviceUUID string) ([]string, error)

	ReadValue(uuid, serviceUUID, characteristicUUID string) ([]byte, error)
	WriteValue(uuid, serviceUUID, characteristicUUID string, data []byte, withResponse bool) error
	SetNotifyEnabled(uuid, serviceUUID, characteristicUUID string, enabled bool, handler NotifyHandler) error

	// OnStateChange registers a callback for adapter power-state
	// transitions (PromptToPowerOnBluetooth in spec.md §4.4).
	OnStateChange(func(poweredOn bool))
	// OnRestore registers a callback for platform-restored peripherals.
	OnRestore(RestoreHandler)
}

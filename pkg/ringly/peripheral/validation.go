package peripheral

import (
	"fmt"
	"sync"
)

// State is a position in the peripheral validation pipeline.
type State string

const (
	Discovered                           State = "discovered"
	WaitingForServices                   State = "waiting_for_services"
	WaitingForCharacteristics            State = "waiting_for_characteristics"
	WaitingForNotificationStateConfirmation State = "waiting_for_notification_state_confirmation"
	Validated                           State = "validated"
	HasValidationErrors                 State = "has_validation_errors"
)

// ErrorCode classifies why validation failed. One code exists per
// required GATT service/characteristic, mirroring
// original_source/RinglyKit/RinglyKit/RLYPeripheralError.h's
// RLYPeripheralErrorCode enum one-for-one (minus the codes that aren't
// validation-pipeline failures: PeripheralDisconnected, IncorrectLength,
// and NotSubscribedToActivityNotifications live elsewhere).
type ErrorCode string

const (
	RinglyServiceNotFound                       ErrorCode = "ringly_service_not_found"
	CommandCharacteristicNotFound                ErrorCode = "command_characteristic_not_found"
	MessageCharacteristicNotFound                ErrorCode = "message_characteristic_not_found"
	ANCSNotificationCharacteristicNotFound       ErrorCode = "ancs_notification_characteristic_not_found"
	TooManyANCSNotificationCharacteristicsFound  ErrorCode = "too_many_ancs_notification_characteristics_found"
	BondCharacteristicNotFound                   ErrorCode = "bond_characteristic_not_found"
	ClearBondCharacteristicNotFound               ErrorCode = "clear_bond_characteristic_not_found"
	ConfigurationHashCharacteristicNotFound       ErrorCode = "configuration_hash_characteristic_not_found"
	DeviceInformationServiceNotFound              ErrorCode = "device_information_service_not_found"
	DeviceApplicationCharacteristicNotFound        ErrorCode = "device_application_characteristic_not_found"
	DeviceHardwareCharacteristicNotFound          ErrorCode = "device_hardware_characteristic_not_found"
	DeviceManufacturerCharacteristicNotFound      ErrorCode = "device_manufacturer_characteristic_not_found"
	BatteryServiceNotFound                       ErrorCode = "battery_service_not_found"
	BatteryStateCharacteristicNotFound            ErrorCode = "battery_state_characteristic_not_found"
	BatteryChargeCharacteristicNotFound            ErrorCode = "battery_charge_characteristic_not_found"
	ActivityControlPointCharacteristicNotFound    ErrorCode = "activity_control_point_characteristic_not_found"
	ActivityTrackingDataCharacteristicNotFound    ErrorCode = "activity_tracking_data_characteristic_not_found"
	LoggingServiceNotFound                       ErrorCode = "logging_service_not_found"
	LoggingFlashCharacteristicNotFound             ErrorCode = "logging_flash_characteristic_not_found"
	LoggingRequestCharacteristicNotFound          ErrorCode = "logging_request_characteristic_not_found"
	NoServicesFound                               ErrorCode = "no_services_found"

	// ErrorNotificationTimeout is not one of RLYPeripheralErrorCode's
	// per-item codes; it reports the separate notification-state
	// confirmation step timing out, per spec.md §7.
	ErrorNotificationTimeout ErrorCode = "notification_timeout"
)

// Error reports one cause of a peripheral entering HasValidationErrors:
// exactly one per missing required service/characteristic, per spec.md
// §7 and §8.
type Error struct {
	Code ErrorCode
	UUID string
}

func (e *Error) Error() string {
	if e.UUID == "" {
		return fmt.Sprintf("validation: %s", e.Code)
	}
	return fmt.Sprintf("validation: %s: %s", e.Code, e.UUID)
}

// Machine drives one peripheral through the service/characteristic/
// notification-confirmation pipeline. A Machine is reset to Discovered,
// with its errors cleared, whenever the peripheral disconnects: generalized
// from the teacher's ConnectionState/ConnectionError pattern
// (internal/device/device.go) into a five-state validation machine.
type Machine struct {
	mu     sync.Mutex
	state  State
	errors []*Error
}

// NewMachine creates a Machine in the Discovered state.
func NewMachine() *Machine {
	return &Machine{state: Discovered}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Errors returns a snapshot of every validation error accumulated since
// the last Reset.
func (m *Machine) Errors() []*Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Error, len(m.errors))
	copy(out, m.errors)
	return out
}

// Reset returns the machine to Discovered and clears accumulated errors,
// matching the disconnection behavior of the validation pipeline.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Discovered
	m.errors = nil
}

// Advance moves the machine to the next state in the pipeline. It is a
// programmer error to call Advance out of order; callers are expected to
// drive the machine strictly forward (Discovered → ... → Validated).
func (m *Machine) Advance(next State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = next
}

// Fail records a validation error and moves the machine to
// HasValidationErrors. HasValidationErrors is reachable from any state.
func (m *Machine) Fail(err *Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, err)
	m.state = HasValidationErrors
}

// RequiredServicePresence is the boolean result of checking one GATT
// service's presence against a peripheral's discovered service table.
// Code identifies which RLYPeripheralErrorCode-derived ErrorCode to
// report if the service is absent (e.g. RinglyServiceNotFound,
// BatteryServiceNotFound).
type RequiredServicePresence struct {
	ServiceUUID string
	Code        ErrorCode
	Present     bool
}

// CheckRequiredServices advances the machine to WaitingForCharacteristics
// if every required service in presence is Present, or fails it with
// each absent service's own Code otherwise.
func (m *Machine) CheckRequiredServices(presence []RequiredServicePresence) {
	var missing []RequiredServicePresence
	for _, p := range presence {
		if !p.Present {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		for _, p := range missing {
			m.Fail(&Error{Code: p.Code, UUID: p.ServiceUUID})
		}
		return
	}
	m.Advance(WaitingForCharacteristics)
}

// RequiredCharacteristicPresence is the boolean result of checking one
// GATT characteristic's presence within a service, against a
// peripheral's discovered characteristic table. Code identifies which
// RLYPeripheralErrorCode-derived ErrorCode to report if the
// characteristic is absent (e.g. CommandCharacteristicNotFound).
type RequiredCharacteristicPresence struct {
	CharacteristicUUID string
	Code               ErrorCode
	Present            bool
}

// CheckRequiredCharacteristics advances the machine to
// WaitingForNotificationStateConfirmation if every required characteristic
// is present, or fails it with each missing characteristic's own Code
// otherwise. A present-but-partial optional service (e.g. Activity
// exposing only one of its two characteristics) is itself reported via
// FailPartialActivityService by the caller before invoking this check.
func (m *Machine) CheckRequiredCharacteristics(presence []RequiredCharacteristicPresence) {
	var missing []RequiredCharacteristicPresence
	for _, p := range presence {
		if !p.Present {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		for _, p := range missing {
			m.Fail(&Error{Code: p.Code, UUID: p.CharacteristicUUID})
		}
		return
	}
	m.Advance(WaitingForNotificationStateConfirmation)
}

// FailPartialActivityService records that the Activity service was
// discovered but does not expose both of its required characteristics,
// one ActivityControlPointCharacteristicNotFound/
// ActivityTrackingDataCharacteristicNotFound error per characteristic
// still missing.
func (m *Machine) FailPartialActivityService(controlPointPresent, trackingDataPresent bool, controlPointUUID, trackingDataUUID string) {
	if !controlPointPresent {
		m.Fail(&Error{Code: ActivityControlPointCharacteristicNotFound, UUID: controlPointUUID})
	}
	if !trackingDataPresent {
		m.Fail(&Error{Code: ActivityTrackingDataCharacteristicNotFound, UUID: trackingDataUUID})
	}
}

// ConfirmNotificationState advances the machine to Validated once every
// subscribed characteristic's notification state has been confirmed by the
// adapter.
func (m *Machine) ConfirmNotificationState() {
	m.Advance(Validated)
}

// FailNotificationTimeout fails the machine when notification state
// confirmation does not complete in time.
func (m *Machine) FailNotificationTimeout(uuid string) {
	m.Fail(&Error{Code: ErrorNotificationTimeout, UUID: uuid})
}

// Package recovery names the DFU/firmware-recovery error boundary: the
// core exposes solicited-UUID discovery for recovery-mode peripherals and
// this fixed vocabulary of failure reasons, but the Nordic DFU transport
// itself is out of scope and implemented elsewhere.
package recovery

import "fmt"

// Code classifies a recovery/DFU failure. Values other than
// CodeActuallyError26 are assigned in the order the original
// implementation declared them; CodeActuallyError26 keeps its
// non-sequential numeric identity (26) as observed on the wire, rather
// than taking the sequential value its declaration position would imply.
type Code int

const (
	CodeNoZipFile Code = iota
	CodeFailedToCreateDirectory
	CodeMissingDataFile

	CodeNoApplication
	CodeNoUpdate
	CodeNoManager
	CodeOnlyPrepareOnce
	CodeOnlyWriteOnce
	CodeNordic
	CodeDisconnected
	CodeNoRecoveryPeripheral
	CodeNoWriteService
	CodeNoWriteCharacteristic

	CodeActuallyError26 Code = 26

	// The remaining codes resume sequential numbering immediately after
	// CodeActuallyError26's out-of-sequence value, each given an explicit
	// value here since Go's const-repetition rule would otherwise copy
	// CodeActuallyError26's literal 26 onto every one of them.
	CodeCentralManagerPoweredOff   Code = 27
	CodeCentralManagerUnsupported  Code = 28
	CodeCentralManagerUnauthorized Code = 29
	CodeNotValidFileType           Code = 30
	CodeCancelledByInterface       Code = 31

	CodeFailedToFindPeripheral    Code = 32
	CodeUnknownApplicationVersion Code = 33
	CodeUnknownBootloaderVersion  Code = 34
	CodeUnknownHardwareVersion    Code = 35
	CodeRepeatingWriteTimeout     Code = 36
	CodeScanningTimeout           Code = 37
)

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

var codeNames = map[Code]string{
	CodeNoZipFile:                  "no_zip_file",
	CodeFailedToCreateDirectory:    "failed_to_create_directory",
	CodeMissingDataFile:            "missing_data_file",
	CodeNoApplication:              "no_application",
	CodeNoUpdate:                   "no_update",
	CodeNoManager:                  "no_manager",
	CodeOnlyPrepareOnce:            "only_prepare_once",
	CodeOnlyWriteOnce:              "only_write_once",
	CodeNordic:                     "nordic",
	CodeDisconnected:               "disconnected",
	CodeNoRecoveryPeripheral:       "no_recovery_peripheral",
	CodeNoWriteService:             "no_write_service",
	CodeNoWriteCharacteristic:      "no_write_characteristic",
	CodeActuallyError26:            "actually_error_26",
	CodeCentralManagerPoweredOff:   "central_manager_powered_off",
	CodeCentralManagerUnsupported:  "central_manager_unsupported",
	CodeCentralManagerUnauthorized: "central_manager_unauthorized",
	CodeNotValidFileType:           "not_valid_file_type",
	CodeCancelledByInterface:       "cancelled_by_interface",
	CodeFailedToFindPeripheral:     "failed_to_find_peripheral",
	CodeUnknownApplicationVersion:  "unknown_application_version",
	CodeUnknownBootloaderVersion:   "unknown_bootloader_version",
	CodeUnknownHardwareVersion:     "unknown_hardware_version",
	CodeRepeatingWriteTimeout:      "repeating_write_timeout",
	CodeScanningTimeout:            "scanning_timeout",
}

// Error is the boundary error type returned across the DFU/recovery
// surface. Reason is an optional human-readable detail, mirroring
// DFUMakeErrorWithReason from the original implementation.
type Error struct {
	Code   Code
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("recovery: %s", e.Code)
	}
	return fmt.Sprintf("recovery: %s: %s", e.Code, e.Reason)
}

// New constructs a recovery Error with no additional reason, mirroring
// DFUMakeError.
func New(code Code) *Error {
	return &Error{Code: code}
}

// NewWithReason constructs a recovery Error carrying a human-readable
// detail, mirroring DFUMakeErrorWithReason.
func NewWithReason(code Code, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

// Is allows errors.Is to compare recovery errors by Code alone, ignoring
// Reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

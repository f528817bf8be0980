// Package uuidreg is a static registry of the GATT service and
// characteristic UUIDs a Ringly peripheral exposes.
package uuidreg

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Normalize converts a UUID string to the internal comparison format:
// lowercase, no dashes. Accepts both dashed and already-normalized input.
func Normalize(uuid string) string {
	return strings.ToLower(strings.ReplaceAll(uuid, "-", ""))
}

// NormalizeAll normalizes a slice of UUID strings.
func NormalizeAll(uuids []string) []string {
	out := make([]string, len(uuids))
	for i, u := range uuids {
		out[i] = Normalize(u)
	}
	return out
}

// Service UUIDs, normalized (lowercase, no dashes).
var (
	ServiceRingly            = Normalize("DF025FBE-4BEF-4F20-8AC9-A2F3DF9F18F9")
	ServiceBattery           = Normalize("0000180F-0000-1000-8000-00805F9B34FB")
	ServiceDeviceInformation = Normalize("0000180A-0000-1000-8000-00805F9B34FB")
	ServiceActivity          = Normalize("854C5991-ECC0-4BE1-8267-E180034E0BBC")
	ServiceLogging           = Normalize("FF10FF00-0000-1000-8000-00805F9B34FB")
	ServiceANCS              = Normalize("7905F431-B5CE-4E99-A40F-4B1E122D00D0")
)

// Ringly service characteristic UUIDs.
var (
	CharCommand           = Normalize("DF025FBF-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharMessage           = Normalize("DF025FC0-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharMobileAppVersion  = Normalize("DF025FC1-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharBond              = Normalize("DF025FC2-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharClearBond         = Normalize("DF025FC3-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharConfigurationHash = Normalize("DF025FC4-4BEF-4F20-8AC9-A2F3DF9F18F9")
)

// Battery service characteristic UUIDs.
var (
	CharBatteryCharge = Normalize("00002A19-0000-1000-8000-00805F9B34FB")
	CharBatteryState  = Normalize("DF025FD0-4BEF-4F20-8AC9-A2F3DF9F18F9")
)

// Device Information service characteristic UUIDs.
var (
	CharManufacturerName     = Normalize("00002A29-0000-1000-8000-00805F9B34FB")
	CharModelNumber          = Normalize("00002A24-0000-1000-8000-00805F9B34FB")
	CharApplicationVersion   = Normalize("00002A26-0000-1000-8000-00805F9B34FB")
	CharHardwareVersion      = Normalize("00002A27-0000-1000-8000-00805F9B34FB")
	CharChipVersion          = Normalize("DF025FE0-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharBootloaderVersion    = Normalize("DF025FE1-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharSoftdeviceVersion    = Normalize("DF025FE2-4BEF-4F20-8AC9-A2F3DF9F18F9")
	CharMACAddress           = Normalize("DF025FE3-4BEF-4F20-8AC9-A2F3DF9F18F9")
)

// Activity service characteristic UUIDs.
var (
	CharActivityControlPoint = Normalize("854C5993-ECC0-4BE1-8267-E180034E0BBC")
	CharActivityTrackingData = Normalize("854C5992-ECC0-4BE1-8267-E180034E0BBC")
)

// Logging service characteristic UUIDs.
var (
	CharLoggingFlash   = Normalize("FF10FF01-0000-1000-8000-00805F9B34FB")
	CharLoggingRequest = Normalize("FF10FF02-0000-1000-8000-00805F9B34FB")
)

// ANCS characteristic UUIDs (Apple-assigned, standard across all ANCS peripherals).
var (
	CharANCSNotificationSource = Normalize("9FBF120D-6301-42D9-8C58-25E699A21DBD")
	CharANCSControlPoint       = Normalize("69D1D8F3-45E1-49A8-9821-9BBDFDAAD9D9")
	CharANCSDataSource         = Normalize("22EAC6E9-24D6-4BB5-BE44-B36ACE7C7BFB")
)

// RecoverySolicitedUUIDs are advertised by a Ringly peripheral in DFU/recovery
// mode, in place of its normal service UUIDs, so the central can find it
// before Connect to restore a firmware update.
var RecoverySolicitedUUIDs = []string{
	Normalize("00001530-1212-EFDE-1523-785FEABCD123"),
	Normalize("00001531-1212-EFDE-1523-785FEABCD123"),
}

// RequiredServices is every service a fully validated Ringly peripheral must
// expose.
var RequiredServices = []string{
	ServiceRingly,
	ServiceBattery,
	ServiceDeviceInformation,
}

// RequiredRinglyCharacteristics is every characteristic the Ringly service
// must expose.
var RequiredRinglyCharacteristics = []string{
	CharCommand,
	CharMessage,
}

// RequiredActivityCharacteristics is every characteristic the optional
// Activity service must expose, if present at all: a service that exposes
// only one of the two is itself a validation error.
var RequiredActivityCharacteristics = []string{
	CharActivityControlPoint,
	CharActivityTrackingData,
}

// RequiredDeviceInformationCharacteristics is every characteristic the
// Device Information service must expose.
var RequiredDeviceInformationCharacteristics = []string{
	CharManufacturerName,
	CharModelNumber,
	CharApplicationVersion,
	CharHardwareVersion,
}

// Registry returns the full service -> (characteristic name -> UUID)
// table in declaration order, for tools that print the known GATT
// surface, grounded on the teacher's
// internal/lua/lua_api_suite.go use of an ordered map to track
// serviceUUID -> charUUID data in insertion order.
func Registry() *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, string]] {
	reg := orderedmap.New[string, *orderedmap.OrderedMap[string, string]]()

	ringly := orderedmap.New[string, string]()
	ringly.Set("command", CharCommand)
	ringly.Set("message", CharMessage)
	ringly.Set("mobile_app_version", CharMobileAppVersion)
	ringly.Set("bond", CharBond)
	ringly.Set("clear_bond", CharClearBond)
	ringly.Set("configuration_hash", CharConfigurationHash)
	reg.Set(ServiceRingly, ringly)

	battery := orderedmap.New[string, string]()
	battery.Set("charge", CharBatteryCharge)
	battery.Set("state", CharBatteryState)
	reg.Set(ServiceBattery, battery)

	deviceInfo := orderedmap.New[string, string]()
	deviceInfo.Set("manufacturer_name", CharManufacturerName)
	deviceInfo.Set("model_number", CharModelNumber)
	deviceInfo.Set("application_version", CharApplicationVersion)
	deviceInfo.Set("hardware_version", CharHardwareVersion)
	deviceInfo.Set("chip_version", CharChipVersion)
	deviceInfo.Set("bootloader_version", CharBootloaderVersion)
	deviceInfo.Set("softdevice_version", CharSoftdeviceVersion)
	deviceInfo.Set("mac_address", CharMACAddress)
	reg.Set(ServiceDeviceInformation, deviceInfo)

	activity := orderedmap.New[string, string]()
	activity.Set("control_point", CharActivityControlPoint)
	activity.Set("tracking_data", CharActivityTrackingData)
	reg.Set(ServiceActivity, activity)

	logging := orderedmap.New[string, string]()
	logging.Set("flash", CharLoggingFlash)
	logging.Set("request", CharLoggingRequest)
	reg.Set(ServiceLogging, logging)

	ancs := orderedmap.New[string, string]()
	ancs.Set("notification_source", CharANCSNotificationSource)
	ancs.Set("control_point", CharANCSControlPoint)
	ancs.Set("data_source", CharANCSDataSource)
	reg.Set(ServiceANCS, ancs)

	return reg
}

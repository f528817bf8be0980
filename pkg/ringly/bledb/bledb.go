// Package bledb is a small static database of standard Bluetooth SIG
// service/characteristic/descriptor names, GAP appearance values, and
// company identifiers, used to render human-readable diagnostics for
// whatever a Ringly peripheral or its advertisement reports.
package bledb

import "strings"

// sigBaseSuffix is the part after the short code of the common 128-bit base
// every 16-bit Bluetooth SIG UUID is expanded into:
// 0000XXXX-0000-1000-8000-00805F9B34FB, lowercased with dashes removed.
const sigBaseSuffix = "00001000800000805f9b34fb"

// NormalizeUUID reduces uuid to its shortest canonical form: a bare 4-hex
// short code when it sits on the Bluetooth SIG base UUID, or the full
// 32-hex string (lowercase, no dashes/braces/0x prefix) otherwise.
func NormalizeUUID(uuid string) string {
	u := strings.ToLower(uuid)
	u = strings.TrimPrefix(u, "0x")
	u = strings.Trim(u, "{}")
	u = strings.ReplaceAll(u, "-", "")

	switch len(u) {
	case 4:
		return u
	case 32:
		if strings.HasPrefix(u, "0000") && strings.HasSuffix(u, sigBaseSuffix) {
			return u[4:8]
		}
		return u
	default:
		return u
	}
}

// LookupService returns the assigned name for a Bluetooth SIG service UUID,
// or "" if uuid is not in the table.
func LookupService(uuid string) string {
	return services[NormalizeUUID(uuid)]
}

// LookupCharacteristic returns the assigned name for a Bluetooth SIG
// characteristic UUID, or "" if uuid is not in the table.
func LookupCharacteristic(uuid string) string {
	return characteristics[NormalizeUUID(uuid)]
}

// LookupDescriptor returns the assigned name for a Bluetooth SIG descriptor
// UUID, or "" if uuid is not in the table.
func LookupDescriptor(uuid string) string {
	return descriptors[NormalizeUUID(uuid)]
}

// CompanyName returns the Bluetooth SIG assigned company name for a
// manufacturer-data company identifier, or "" if id is not in the table.
func CompanyName(id uint16) string {
	return companies[id]
}

// Appearance returns the GAP appearance category name for value, or "" if
// it is not in the table.
func Appearance(value uint16) string {
	return appearances[value]
}

var services = map[string]string{
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"180a": "Device Information",
	"180d": "Heart Rate",
	"180f": "Battery Service",
	"1812": "Human Interface Device",
	"fe59": "Nordic DFU Service",
}

var characteristics = map[string]string{
	"2a00": "Device Name",
	"2a01": "Appearance",
	"2a19": "Battery Level",
	"2a24": "Model Number String",
	"2a25": "Serial Number String",
	"2a26": "Firmware Revision String",
	"2a27": "Hardware Revision String",
	"2a28": "Software Revision String",
	"2a29": "Manufacturer Name String",
	"2a37": "Heart Rate Measurement",
}

var descriptors = map[string]string{
	"2900": "Characteristic Extended Properties",
	"2901": "Characteristic User Descriptor",
	"2902": "Client Characteristic Configuration",
	"2903": "Server Characteristic Configuration",
	"2904": "Characteristic Presentation Format",
}

// companies is a small sample of Bluetooth SIG assigned company
// identifiers, seeded with the ones this module's own advertising and
// test fixtures reference.
var companies = map[uint16]string{
	0x004C: "Apple, Inc.",
	0x0006: "Microsoft",
	0x000F: "Broadcom Corporation",
	0xFFFE: "BLIMCo (test/internal use)",
}

// appearances is a small sample of GAP appearance category values.
var appearances = map[uint16]string{
	0x0000: "Unknown",
	0x00C0: "Generic Watch",
	0x00C1: "Sports Watch",
	0x0040: "Generic Phone",
}

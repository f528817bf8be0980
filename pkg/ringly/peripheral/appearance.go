package peripheral

import "strings"

// shortNameAppearances maps a peripheral's 4-character advertised short
// name to its cosmetic identity. The table is necessarily partial: only
// the short codes documented or exercised in this module are present,
// alongside the one exact example known from the wire protocol.
var shortNameAppearances = map[string]Appearance{
	"DAYD": {Style: "Daydream", Type: "Ring", Band: "Adjustable", Stone: "Stardust"},
	"AMTH": {Style: "Amethyst", Type: "Ring", Band: "Adjustable", Stone: "Stardust"},
	"BLKO": {Style: "Black Onyx", Type: "Ring", Band: "Adjustable", Stone: "Stardust"},
	"CRYQ": {Style: "Crystal Quartz", Type: "Ring", Band: "Adjustable", Stone: "Stardust"},
	"ROSQ": {Style: "Rose Quartz", Type: "Ring", Band: "Adjustable", Stone: "Stardust"},
}

// ShortNameAppearance derives an Appearance from a peripheral's advertised
// short name. The lookup is case-insensitive; ok is false when shortName
// is not in the table.
func ShortNameAppearance(shortName string) (Appearance, bool) {
	a, ok := shortNameAppearances[strings.ToUpper(shortName)]
	return a, ok
}

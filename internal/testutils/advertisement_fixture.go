//go:build test

package testutils

import "gopkg.in/yaml.v3"

// AdvertisementFixture is a YAML-describable BLE scan advertisement,
// grounded on the teacher's PeripheralDeviceBuilder.FromJSON pattern
// (peripheral_device_builder.go) but covering the advertisement side of a
// scan rather than a connected device's GATT profile.
type AdvertisementFixture struct {
	Addr      string   `yaml:"addr"`
	LocalName string   `yaml:"local_name"`
	Services  []string `yaml:"services"`
	RSSI      int      `yaml:"rssi"`
}

// LoadAdvertisementFixtures parses a YAML document listing advertisement
// fixtures, one entry per peripheral a test wants a fake scan to surface.
func LoadAdvertisementFixtures(doc []byte) ([]AdvertisementFixture, error) {
	var fixtures []AdvertisementFixture
	if err := yaml.Unmarshal(doc, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

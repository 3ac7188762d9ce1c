// Package inventory loads the device inventory consumed by the operation
// executor. The inventory is a YAML file:
//
//	devices:
//	  - name: R1
//	    ip: 192.168.50.10
//	    username: admin
//	    device_type: cisco_ios
//
// Records are immutable once loaded; the secret for a session is supplied
// separately at connect time and never lives in the inventory.
package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netauto-tools/netauto/pkg/util"
)

// Platform identifies the device's operating system family.
type Platform string

// PlatformCiscoIOS is the only platform currently supported.
const PlatformCiscoIOS Platform = "cisco_ios"

// Device is one inventory record.
type Device struct {
	Name     string   `yaml:"name"`
	IP       string   `yaml:"ip"`
	Platform Platform `yaml:"device_type"`
	Username string   `yaml:"username"`
}

type inventoryFile struct {
	Devices []Device `yaml:"devices"`
}

// Load reads and normalizes the inventory at path. Entries missing any of
// the required keys (name, ip, username) are skipped with a warning rather
// than failing the whole load; device_type defaults to cisco_ios.
func Load(path string) ([]Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) ([]Device, error) {
	var file inventoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	devices := make([]Device, 0, len(file.Devices))
	for _, d := range file.Devices {
		if d.Name == "" || d.IP == "" || d.Username == "" {
			util.Warnf("skipping inventory entry %q: name, ip and username are required", d.Name)
			continue
		}
		if d.Platform == "" {
			d.Platform = PlatformCiscoIOS
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// Find returns the device with the given name.
func Find(devices []Device, name string) (Device, error) {
	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("device %q not found in inventory", name)
}

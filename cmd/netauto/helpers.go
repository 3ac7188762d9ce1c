package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/netauto-tools/netauto/pkg/cli"
	"github.com/netauto-tools/netauto/pkg/inventory"
	"github.com/netauto-tools/netauto/pkg/ops"
	"github.com/netauto-tools/netauto/pkg/transport"
)

// requireDevice resolves the -d flag against the inventory. When the flag is
// omitted and the inventory holds exactly one device, that device is used.
func requireDevice() (inventory.Device, error) {
	if deviceName == "" {
		if len(devices) == 1 {
			return devices[0], nil
		}
		return inventory.Device{}, fmt.Errorf("device required: use -d <name> (run 'netauto list' to see the inventory)")
	}
	return inventory.Find(devices, deviceName)
}

// promptCredential collects the session credential for a device. The secret
// is read without echo and held only for the duration of the operation.
func promptCredential(device inventory.Device) (transport.Credential, error) {
	username := device.Username
	if username == "" {
		var err error
		username, err = promptLine(fmt.Sprintf("Username for %s", device.Name))
		if err != nil {
			return transport.Credential{}, err
		}
		if username == "" {
			return transport.Credential{}, fmt.Errorf("username required for %s", device.Name)
		}
	}

	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", username, device.Name)
	var secret string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return transport.Credential{}, fmt.Errorf("reading password: %w", err)
		}
		secret = string(raw)
	} else {
		line, err := stdin.ReadString('\n')
		if err != nil {
			return transport.Credential{}, fmt.Errorf("reading password: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	return transport.Credential{Username: username, Secret: secret}, nil
}

// stdin is shared so buffered input is not lost between prompts.
var stdin = bufio.NewReader(os.Stdin)

func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptValidated re-prompts until check accepts the input, returning the
// normalized value.
func promptValidated(label string, check func(string) (string, error)) (string, error) {
	for {
		raw, err := promptLine(label)
		if err != nil {
			return "", err
		}
		value, err := check(raw)
		if err != nil {
			fmt.Fprintln(os.Stderr, cli.Red(err.Error()))
			continue
		}
		return value, nil
	}
}

// renderResult prints an operation result and converts a non-success status
// into an error so the command exits non-zero.
func renderResult(res ops.Result) error {
	if res.RawOutput != "" {
		fmt.Println(strings.TrimRight(res.RawOutput, "\n"))
	}
	if res.Status == ops.StatusSuccess {
		if res.Detail != "" {
			fmt.Println(cli.Green(res.Detail))
		}
		return nil
	}
	return fmt.Errorf("%s: %s", res.Status, res.Detail)
}

// chooseDevice is the interactive flavor of requireDevice: when no device is
// selected and several exist, it presents a numbered menu.
func chooseDevice() (inventory.Device, error) {
	if deviceName != "" {
		return inventory.Find(devices, deviceName)
	}
	if len(devices) == 1 {
		fmt.Printf("Using device %s (%s)\n", cli.Bold(devices[0].Name), devices[0].IP)
		return devices[0], nil
	}

	fmt.Println(cli.Bold("Available devices:"))
	for i, d := range devices {
		fmt.Printf("  %d) %s (%s)\n", i+1, d.Name, d.IP)
	}
	for {
		raw, err := promptLine("Select device")
		if err != nil {
			return inventory.Device{}, err
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(devices) {
			fmt.Fprintln(os.Stderr, cli.Red(fmt.Sprintf("enter a number between 1 and %d", len(devices))))
			continue
		}
		return devices[n-1], nil
	}
}

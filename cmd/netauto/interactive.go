package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netauto-tools/netauto/pkg/cli"
	"github.com/netauto-tools/netauto/pkg/inventory"
	"github.com/netauto-tools/netauto/pkg/ops"
	"github.com/netauto-tools/netauto/pkg/validate"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Enter interactive mode",
	Long: `Enter interactive menu mode against one device.

Use -d (device) to pick the device up front; otherwise a device menu is shown.

In interactive mode you can:
  - Configure an interface address
  - Show interface status
  - Ping a target from the device
  - Back up the running configuration
  - Configure OSPF

Examples:
  netauto interactive
  netauto -d R1 interactive`,
	Aliases: []string{"i"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := chooseDevice()
		if err != nil {
			return err
		}
		runInteractiveMode(device)
		return nil
	},
}

func runInteractiveMode(device inventory.Device) {
	for {
		fmt.Println()
		fmt.Println(cli.Bold("=== Netauto Interactive Mode ==="))
		fmt.Printf("Device: %s (%s)\n", device.Name, device.IP)
		fmt.Println()
		fmt.Println("Main Menu:")
		fmt.Println("  1. Configure interface")
		fmt.Println("  2. Show interface status")
		fmt.Println("  3. Ping from device")
		fmt.Println("  4. Backup running configuration")
		fmt.Println("  5. Configure OSPF")
		fmt.Println("  0. Exit")
		fmt.Println()
		fmt.Print("Select option: ")

		input, err := stdin.ReadString('\n')
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			menuConfigureInterface(device)
		case "2":
			menuShowStatus(device)
		case "3":
			menuPing(device)
		case "4":
			menuBackup(device)
		case "5":
			menuOSPF(device)
		case "0", "q", "quit", "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println(cli.Red("Invalid option"))
		}
	}
}

func menuShowStatus(device inventory.Device) {
	cred, err := promptCredential(device)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Red(err.Error()))
		return
	}
	printResult(executor.ShowStatus(device, cred))
}

func menuConfigureInterface(device inventory.Device) {
	name, err := promptValidated("Interface name", func(s string) (string, error) {
		return validate.InterfaceName("interface", s)
	})
	if err != nil {
		return
	}
	addr, err := promptValidated("IPv4 address", func(s string) (string, error) {
		return validate.IPv4("address", s)
	})
	if err != nil {
		return
	}
	mask, err := promptValidated("Subnet mask", func(s string) (string, error) {
		return validate.SubnetMask("mask", s)
	})
	if err != nil {
		return
	}

	cred, err := promptCredential(device)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Red(err.Error()))
		return
	}
	printResult(executor.ConfigureInterface(device, cred, name, addr, mask))
}

func menuPing(device inventory.Device) {
	target, err := promptValidated("Target IPv4 address", func(s string) (string, error) {
		return validate.IPv4("target", s)
	})
	if err != nil {
		return
	}
	count := 0
	raw, err := promptLine("Echo count (blank for default)")
	if err != nil {
		return
	}
	if raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			count = n
		} else {
			fmt.Println(cli.Yellow("Ignoring invalid count, using default"))
		}
	}

	cred, err := promptCredential(device)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Red(err.Error()))
		return
	}
	printResult(executor.Ping(device, cred, target, count))
}

func menuBackup(device inventory.Device) {
	cred, err := promptCredential(device)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Red(err.Error()))
		return
	}
	res, artifact := executor.Backup(device, cred)
	printResult(res)
	if res.Status == ops.StatusSuccess {
		fmt.Println(cli.Green(fmt.Sprintf("Backup saved: %s", artifact.Path)))
	}
}

func menuOSPF(device inventory.Device) {
	var params ops.OSPFParams
	var err error

	params.ProcessID, err = promptValidated("Process ID", func(s string) (string, error) {
		if _, vErr := validate.ProcessID("process-id", s); vErr != nil {
			return "", vErr
		}
		return s, nil
	})
	if err != nil {
		return
	}
	params.RouterID, err = promptValidated("Router ID", func(s string) (string, error) {
		return validate.RouterID("router-id", s)
	})
	if err != nil {
		return
	}
	params.Network, err = promptValidated("Network address", func(s string) (string, error) {
		return validate.IPv4("network", s)
	})
	if err != nil {
		return
	}
	params.Wildcard, err = promptValidated("Wildcard mask", func(s string) (string, error) {
		return validate.WildcardMask("wildcard", s)
	})
	if err != nil {
		return
	}
	params.Area, err = promptValidated("Area", func(s string) (string, error) {
		if _, vErr := validate.Area("area", s); vErr != nil {
			return "", vErr
		}
		return s, nil
	})
	if err != nil {
		return
	}

	cred, err := promptCredential(device)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Red(err.Error()))
		return
	}
	printResult(executor.ConfigureOSPF(device, cred, params))
}

// printResult is the menu-mode renderer: it never exits, it just colors the
// outcome.
func printResult(res ops.Result) {
	if res.RawOutput != "" {
		fmt.Println(strings.TrimRight(res.RawOutput, "\n"))
	}
	switch res.Status {
	case ops.StatusSuccess:
		if res.Detail != "" {
			fmt.Println(cli.Green(res.Detail))
		} else {
			fmt.Println(cli.Green("OK"))
		}
	default:
		fmt.Println(cli.Red(fmt.Sprintf("%s: %s", res.Status, res.Detail)))
	}
}

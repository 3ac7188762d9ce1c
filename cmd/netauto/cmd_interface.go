package main

import (
	"github.com/spf13/cobra"
)

var interfaceCmd = &cobra.Command{
	Use:   "interface <name> <ipv4> <mask>",
	Short: "Configure an interface address and enable it",
	Long: `Assign an IPv4 address to an interface and bring it up.

The mask may be dotted-quad or prefix form ("/24" or "24").

Examples:
  netauto -d R1 interface GigabitEthernet0/0 192.168.1.1 255.255.255.0
  netauto -d R1 interface Loopback0 10.0.0.1 /32`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := requireDevice()
		if err != nil {
			return err
		}
		cred, err := promptCredential(device)
		if err != nil {
			return err
		}
		return renderResult(executor.ConfigureInterface(device, cred, args[0], args[1], args[2]))
	},
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/netauto-tools/netauto/pkg/ops"
)

var ospfCmd = &cobra.Command{
	Use:   "ospf <process-id> <router-id> <network> <wildcard> <area>",
	Short: "Configure an OSPF process",
	Long: `Create an OSPF process with a router ID and advertise one network.

The wildcard mask is taken as given; discontiguous wildcards are legal.

Example:
  netauto -d R1 ospf 1 1.1.1.1 10.0.0.0 0.0.0.255 0`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := requireDevice()
		if err != nil {
			return err
		}
		cred, err := promptCredential(device)
		if err != nil {
			return err
		}
		params := ops.OSPFParams{
			ProcessID: args[0],
			RouterID:  args[1],
			Network:   args[2],
			Wildcard:  args[3],
			Area:      args[4],
		}
		return renderResult(executor.ConfigureOSPF(device, cred, params))
	},
}

package main

import (
	"github.com/spf13/cobra"
)

var pingCount int

var pingCmd = &cobra.Command{
	Use:   "ping <target>",
	Short: "Ping a target from the device",
	Long: `Run a ping from the device toward an IPv4 target and report
reachability. An unreachable target is not a failure; the result notes the
success rate.

Examples:
  netauto -d R1 ping 8.8.8.8
  netauto -d R1 ping 10.0.0.2 --count 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := requireDevice()
		if err != nil {
			return err
		}
		cred, err := promptCredential(device)
		if err != nil {
			return err
		}
		return renderResult(executor.Ping(device, cred, args[0], pingCount))
	},
}

func init() {
	pingCmd.Flags().IntVar(&pingCount, "count", 0, "Number of echo requests (default from config)")
}

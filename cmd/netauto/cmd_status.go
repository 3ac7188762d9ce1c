package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show interface status",
	Long: `Run 'show ip interface brief' on the device and print the output.

Example:
  netauto -d R1 status`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := requireDevice()
		if err != nil {
			return err
		}
		cred, err := promptCredential(device)
		if err != nil {
			return err
		}
		return renderResult(executor.ShowStatus(device, cred))
	},
}

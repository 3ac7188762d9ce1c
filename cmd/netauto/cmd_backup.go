package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netauto-tools/netauto/pkg/cli"
	"github.com/netauto-tools/netauto/pkg/ops"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save the device running configuration",
	Long: `Fetch the running configuration and store it under the backups
directory as <device>_running_<timestamp>.txt.

Example:
  netauto -d R1 backup`,
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
		res, artifact := executor.Backup(device, cred)
		if res.Status != ops.StatusSuccess {
			return fmt.Errorf("%s: %s", res.Status, res.Detail)
		}
		fmt.Println(cli.Green(fmt.Sprintf("Backup saved: %s", artifact.Path)))
		return nil
	},
}

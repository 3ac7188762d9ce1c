package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/netauto-tools/netauto/pkg/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices in the inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := cli.NewTable(os.Stdout, "NAME", "IP", "PLATFORM", "USERNAME")
		for _, d := range devices {
			t.Row(d.Name, d.IP, string(d.Platform), d.Username)
		}
		t.Flush()
		return nil
	},
}

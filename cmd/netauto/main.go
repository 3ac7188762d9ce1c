// Netauto - Network Device Automation Tool
//
// A CLI for running a fixed set of operational tasks against cisco_ios
// devices over SSH:
//   - Interface configuration (address assignment + no shutdown)
//   - Interface status inspection
//   - Connectivity testing (ping from the device)
//   - Running-config backup to timestamped artifacts
//   - Basic OSPF setup
//
// Devices come from a YAML inventory; the session secret is prompted per
// operation and never stored. Every operation attempt is logged and recorded
// as a structured event.
//
// Examples:
//
//	netauto list
//	netauto -d R1 status
//	netauto -d R1 interface GigabitEthernet0/0 192.168.1.1 255.255.255.0
//	netauto -d R1 ping 8.8.8.8 --count 10
//	netauto -d R1 backup
//	netauto -d R1 ospf 1 1.1.1.1 10.0.0.0 0.0.0.255 0
//	netauto -d R1 interactive
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/netauto-tools/netauto/pkg/audit"
	"github.com/netauto-tools/netauto/pkg/backup"
	"github.com/netauto-tools/netauto/pkg/config"
	"github.com/netauto-tools/netauto/pkg/inventory"
	"github.com/netauto-tools/netauto/pkg/ops"
	"github.com/netauto-tools/netauto/pkg/transport"
	"github.com/netauto-tools/netauto/pkg/util"
	"github.com/netauto-tools/netauto/pkg/version"
)

var (
	// Context flag (selects the device the operation runs against)
	deviceName string // -d, --device

	// Option flags
	configPath     string
	inventoryPath  string
	backupsDir     string
	logLevel       string
	transportName  string
	connectTimeout time.Duration

	// Global state
	settings *config.Settings
	devices  []inventory.Device
	executor *ops.Executor
	eventLog audit.Logger = audit.NopLogger{}
	logFile  *os.File
)

func main() {
	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cleanup() {
	if eventLog != nil {
		eventLog.Close()
	}
	if logFile != nil {
		logFile.Close()
	}
}

var rootCmd = &cobra.Command{
	Use:               "netauto",
	Short:             "Network Device Automation Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	Version:           version.Info(),
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Netauto runs a fixed set of operational tasks against network devices
reachable over SSH. The -d flag selects a device from the inventory:

  netauto -d <device> <operation> [args]

Secrets are prompted per operation and never written to disk or logs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// Flags override settings.
		if inventoryPath != "" {
			settings.Inventory = inventoryPath
		}
		if backupsDir != "" {
			settings.BackupsDir = backupsDir
		}
		if logLevel != "" {
			settings.LogLevel = logLevel
		}
		if transportName != "" {
			settings.Transport = transportName
		}
		if connectTimeout > 0 {
			settings.ConnectTimeout = connectTimeout
		}

		if err := util.SetLogLevel(settings.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
		}
		logFile, err = util.InitLogFile(settings.LogsDir)
		if err != nil {
			util.Warnf("could not open log file: %v", err)
		}

		devices, err = inventory.Load(settings.Inventory)
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			return fmt.Errorf("no devices found in %s", settings.Inventory)
		}

		dialer, err := transport.NewDialer(settings.Transport)
		if err != nil {
			return err
		}

		fileLog, err := audit.NewFileLogger(settings.LogsDir + "/operations.jsonl")
		if err != nil {
			util.Warnf("could not open operation event log: %v", err)
		} else {
			eventLog = fileLog
		}

		executor = ops.NewExecutor(
			dialer,
			backup.NewStore(settings.BackupsDir),
			util.Logger,
			ops.WithTimeout(settings.ConnectTimeout),
			ops.WithPingCount(settings.DefaultPingCount),
			ops.WithEventLogger(eventLog),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device name from the inventory")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: built-in defaults + NETAUTO_* env)")
	rootCmd.PersistentFlags().StringVar(&inventoryPath, "inventory", "", "Device inventory file (default devices.yaml)")
	rootCmd.PersistentFlags().StringVar(&backupsDir, "backups-dir", "", "Directory for configuration backups (default backups)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().StringVar(&transportName, "transport", "", "Transport driver: scrapli or ssh (default scrapli)")
	rootCmd.PersistentFlags().DurationVar(&connectTimeout, "timeout", 0, "Connect and per-command timeout (default 30s)")

	rootCmd.AddCommand(
		listCmd,
		interfaceCmd,
		statusCmd,
		pingCmd,
		backupCmd,
		ospfCmd,
		interactiveCmd,
	)
}

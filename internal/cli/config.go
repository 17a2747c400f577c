package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage fslease configuration",
	Long: `Manage fslease configuration.

The config file lives under the user config directory (or at the path given
by FSLEASE_CONFIG). When their flags are not set, acquire takes its lease
duration and refresh setting from lease.duration and lease.refresh, and
extend takes its --by default from lease.duration. The other keys are stored
and shown by config show/get, but no command reads them.

Configuration options:
  lease.duration   - Default lease duration (Go duration, e.g. 5m)
  lease.timeout    - Default wait timeout for timed acquisition
  lease.retry      - Default polling interval while waiting
  lease.refresh    - Keep extending held locks by default (true, false)
  logging.level    - Log level (debug, info, warn, error)
  logging.format   - Log output format (text, json)

Available commands:
  show              - Show current configuration
  set <key> <value> - Set a configuration value
  get <key>         - Get a configuration value`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(cfg)
			return
		}

		path, _ := config.Path()
		fmt.Println("# fslease configuration")
		fmt.Printf("# Location: %s\n\n", path)
		fmt.Printf("lease.duration: %s\n", cfg.Lease.Duration)
		fmt.Printf("lease.timeout:  %s\n", cfg.Lease.Timeout)
		fmt.Printf("lease.retry:    %s\n", cfg.Lease.Retry)
		fmt.Printf("lease.refresh:  %v\n", cfg.Lease.Refresh)
		fmt.Printf("logging.level:  %s\n", cfg.Logging.Level)
		fmt.Printf("logging.format: %s\n", cfg.Logging.Format)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Examples:
  fslease config set lease.duration 10m
  fslease config set lease.refresh true
  fslease config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		key, value := args[0], args[1]
		if err := cfg.Set(key, value); err != nil {
			fmtErr("set config: %v", err)
			os.Exit(1)
		}
		if err := config.Save(cfg); err != nil {
			fmtErr("save config: %v", err)
			os.Exit(1)
		}
		fmt.Printf("Set %s = %s\n", key, value)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		value, err := cfg.Get(args[0])
		if err != nil {
			fmtErr("get config: %v", err)
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/pkg/color"
	"github.com/fslease-project/fslease/pkg/jsonutil"
	"github.com/fslease-project/fslease/pkg/logging"
)

var (
	jsonOutput bool
	noColor    bool
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "fslease",
		Short: "fslease - advisory file lease locks",
		Long: `fslease manages advisory cross-process locks stored in sidecar files.
A lock file lives next to its target (extension replaced by .lock) and holds
the release instant of the current claim. Locks bind only cooperating
participants; there is no kernel enforcement.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
			if logLevel != "" {
				logging.SetGlobal(logging.NewLogger(logging.ParseLevel(logLevel)))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// outputJSON prints v as stable JSON (sorted keys) if --json flag is set,
// otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	out, err := jsonutil.MarshalStable(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

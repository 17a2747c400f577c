package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/internal/doctor"
	"github.com/fslease-project/fslease/pkg/color"
	"github.com/fslease-project/fslease/pkg/metrics"
	"github.com/fslease-project/fslease/pkg/model"
)

var statusCmd = &cobra.Command{
	Use:   "status <target>",
	Short: "Show the lock state of a target file",
	Long: `Status reads the target's sidecar lock file and reports whether the
target is free, held, or covered by an expired lock that the next acquirer
will overwrite.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		info := doctor.Inspect(args[0])

		if jsonOutput {
			outputJSON(map[string]any{
				"lock":    info,
				"metrics": metrics.Default().Snapshot(),
			})
			return
		}

		fmt.Printf("Target:    %s\n", info.Target)
		fmt.Printf("Lock file: %s\n", info.LockPath)
		fmt.Printf("State:     %s\n", colorState(info.State))
		if !info.Release.IsZero() {
			fmt.Printf("Release:   %s", info.Release.Format(time.RFC3339))
			if info.State == model.LockStateHeld {
				fmt.Printf(" (%s from now)", time.Until(info.Release).Round(time.Second))
			}
			fmt.Println()
		}
	},
}

func colorState(s model.LockState) string {
	switch s {
	case model.LockStateFree:
		return color.Success(string(s))
	case model.LockStateHeld:
		return color.Warning(string(s))
	case model.LockStateExpired:
		return color.Dim(string(s))
	default:
		return string(s)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/internal/doctor"
	"github.com/fslease-project/fslease/pkg/model"
	"github.com/fslease-project/fslease/pkg/pathutil"
)

var releaseIfExpired bool

var releaseCmd = &cobra.Command{
	Use:   "release <target>",
	Short: "Release a lock by deleting its sidecar file",
	Long: `Release deletes the target's sidecar lock file. Releasing a target that
is not locked is not an error.

Locks are advisory, so any cooperating process may release one, including a
lock it did not acquire. Use --if-expired to only remove locks whose release
instant has already passed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		if err := pathutil.ValidateTarget(target); err != nil {
			fmtErr("release: %v", err)
			os.Exit(1)
		}

		info := doctor.Inspect(target)
		if info.State == model.LockStateFree {
			if jsonOutput {
				outputJSON(map[string]any{"target": target, "released": false, "state": info.State})
			} else {
				fmt.Printf("No lock file for %s\n", target)
			}
			return
		}

		if releaseIfExpired && info.State == model.LockStateHeld {
			fmtErr("lock still held until %s: %s", info.Release.Format(time.RFC3339), target)
			os.Exit(2)
		}

		if err := os.Remove(info.LockPath); err != nil && !os.IsNotExist(err) {
			fmtErr("release: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(map[string]any{"target": target, "released": true, "state": info.State})
			return
		}
		fmt.Printf("Lock released on %s\n", target)
	},
}

func init() {
	releaseCmd.Flags().BoolVar(&releaseIfExpired, "if-expired", false, "only remove the lock if its release instant has passed")
	rootCmd.AddCommand(releaseCmd)
}

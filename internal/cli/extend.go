package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/pkg/fslease"
)

var extendBy time.Duration

var extendCmd = &cobra.Command{
	Use:   "extend <target>",
	Short: "Extend an existing lock's release instant",
	Long: `Extend pushes the release instant of the target's lock file further out
by the given duration. The lock file must already exist; extend never creates
one. Any cooperating process may extend a lock, not just the one that wrote
it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		if !cmd.Flags().Changed("by") {
			extendBy = loadPolicy().LeaseDuration
		}

		lease, err := fslease.New(target)
		if err != nil {
			fmtErr("extend: %v", err)
			os.Exit(1)
		}

		before := lease.ReleaseDate()
		if before.Equal(fslease.FarFuture) {
			fmtErr("no lock file for %s", target)
			os.Exit(2)
		}

		lease.AddTime(extendBy)
		release := lease.ReleaseDate()

		if jsonOutput {
			outputJSON(map[string]any{
				"target":    target,
				"lock_path": lease.LockPath(),
				"release":   release,
			})
			return
		}
		fmt.Printf("Lock on %s extended\n", target)
		fmt.Printf("  Release: %s\n", release.Format(time.RFC3339))
	},
}

func init() {
	extendCmd.Flags().DurationVar(&extendBy, "by", 0, "how far to push the release instant (default from config)")
	rootCmd.AddCommand(extendCmd)
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/pkg/fslease"
	"github.com/fslease-project/fslease/pkg/progress"
)

var (
	acquireFor     time.Duration
	acquireWait    time.Duration
	acquireRetry   time.Duration
	acquireRefresh bool
	acquireHold    bool
)

var acquireCmd = &cobra.Command{
	Use:   "acquire <target>",
	Short: "Acquire an advisory lease lock on a target file",
	Long: `Acquire writes a release instant to the target's sidecar lock file.
Without --wait the attempt is immediate; with --wait the command keeps trying
until the conflicting lock is released or expires, up to the given timeout.

With --hold the command keeps the lock until interrupted, releasing it on
SIGINT/SIGTERM. Without --hold the lock file simply stays behind with its
release instant; cooperating processes honor it until that instant passes.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		policy := loadPolicy()
		if !cmd.Flags().Changed("for") {
			acquireFor = policy.LeaseDuration
		}
		if !cmd.Flags().Changed("refresh") {
			acquireRefresh = policy.Refresh
		}

		lease, err := fslease.New(target)
		if err != nil {
			fmtErr("acquire: %v", err)
			os.Exit(1)
		}

		var acquired bool
		switch {
		case acquireWait > 0 && acquireRetry > 0:
			wait := progress.NewWait("waiting for lock", acquireWait, !jsonOutput)
			wait.Start()
			acquired, err = lease.TryAcquireOrTimeoutRetry(acquireFor, acquireWait, acquireRetry)
			wait.Stop()
		case acquireWait > 0:
			wait := progress.NewWait("waiting for lock", acquireWait, !jsonOutput)
			wait.Start()
			acquired, err = lease.TryAcquireOrTimeout(acquireFor, acquireWait)
			wait.Stop()
		default:
			acquired = lease.TryAcquireFor(acquireFor, acquireRefresh && acquireHold)
		}
		if err != nil {
			fmtErr("acquire: %v", err)
			os.Exit(1)
		}
		if !acquired {
			fmtErr("target is locked: %s", target)
			os.Exit(2)
		}

		release := lease.ReleaseDate()
		if jsonOutput {
			outputJSON(map[string]any{
				"target":    target,
				"lock_path": lease.LockPath(),
				"release":   release,
			})
		} else {
			fmt.Printf("Lock acquired on %s\n", target)
			fmt.Printf("  Lock file: %s\n", lease.LockPath())
			fmt.Printf("  Release:   %s\n", release.Format(time.RFC3339))
		}

		if acquireHold {
			holdUntilSignal(lease)
			return
		}
		// Leave the lock file behind; the claim stands until its release
		// instant. Close would delete it.
	},
}

// holdUntilSignal keeps the process (and any refresh task) alive until
// SIGINT/SIGTERM, then releases the lock.
func holdUntilSignal(lease *fslease.Lease) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	lease.Close()
	if !jsonOutput {
		fmt.Println("Lock released")
	}
}

func init() {
	acquireCmd.Flags().DurationVar(&acquireFor, "for", 0, "lease duration (default from config)")
	acquireCmd.Flags().DurationVar(&acquireWait, "wait", 0, "wait up to this long for a conflicting lock")
	acquireCmd.Flags().DurationVar(&acquireRetry, "retry", 0, "polling interval while waiting (default: the wait timeout)")
	acquireCmd.Flags().BoolVar(&acquireRefresh, "refresh", false, "keep extending the lease while holding (requires --hold; not applied with --wait)")
	acquireCmd.Flags().BoolVar(&acquireHold, "hold", false, "hold the lock until interrupted, then release it")
	rootCmd.AddCommand(acquireCmd)
}

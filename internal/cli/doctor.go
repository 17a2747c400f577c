package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fslease-project/fslease/internal/doctor"
	"github.com/fslease-project/fslease/pkg/color"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor <target>",
	Short: "Check the health of a target's lock file",
	Long: `Check the health of a target's lock file.

Runs diagnostic checks on the target, its sidecar lock file, and the
containing directory, and reports any issues: corrupt tick counts, expired
leftovers, implausible release instants, or a directory the current user
cannot write lock files into.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc := doctor.NewDoctor(args[0])
		result, err := doc.Check()
		if err != nil {
			fmtErr("doctor: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(result)
			if !result.Healthy {
				os.Exit(1)
			}
			return
		}

		if len(result.Findings) == 0 {
			fmt.Println("Target is healthy.")
			fmt.Printf("  State: %s\n", colorState(result.Info.State))
			return
		}

		fmt.Printf("Findings (%d):\n", len(result.Findings))
		for _, f := range result.Findings {
			fmt.Printf("  [%s] %s: %s\n", colorSeverity(f.Severity), f.Category, f.Description)
		}

		if !result.Healthy {
			os.Exit(1)
		}
	},
}

func colorSeverity(s string) string {
	switch s {
	case "critical", "error":
		return color.Error(s)
	case "warning":
		return color.Warning(s)
	default:
		return s
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

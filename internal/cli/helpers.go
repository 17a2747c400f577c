package cli

import (
	"fmt"
	"os"

	"github.com/fslease-project/fslease/pkg/color"
	"github.com/fslease-project/fslease/pkg/config"
	"github.com/fslease-project/fslease/pkg/model"
)

// loadPolicy merges config-file defaults into the timing parameters used by
// lock commands. Flag values override it per command.
func loadPolicy() model.Policy {
	cfg, err := config.Load()
	if err != nil {
		fmtErr("config unreadable, using defaults: %v", err)
		cfg = config.Default()
	}
	return cfg.Policy()
}

func fmtErr(format string, args ...any) {
	prefix := "fslease: "
	if color.Enabled() {
		prefix = color.Error("fslease:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}

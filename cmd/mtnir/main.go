// Command mtnir predicts photophysical properties for molecules via a
// trained chemprop ensemble.
package main

import (
	"os"

	"github.com/jdsanc/mt-nir/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

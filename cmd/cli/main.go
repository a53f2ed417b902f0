// Command cli is the repair estimator command-line interface.
package main

import (
	"os"

	"github.com/varshaad-neenopal/automotive-damage-processing/cmd/cli/cmd"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/logging"
)

func main() {
	defer logging.Sync()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

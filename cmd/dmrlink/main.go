// Command dmrlink links Motorola IP Site Connect networks.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/op/go-logging"
	"github.com/pd0mz/dmrlink"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("dmr/dmrlink")

var rootCmd = &cobra.Command{
	Use:           "dmrlink",
	Short:         "Motorola IP Site Connect peer and master",
	Version:       dmrlink.PackageID,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dmrlink: %v\n", err)
		os.Exit(1)
	}
}

var logFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`,
)

// setupLogging installs a stderr backend logging at level and above.
func setupLogging(level string) error {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), logFormat)
	logging.SetBackend(backend).SetLevel(lvl, "")
	return nil
}

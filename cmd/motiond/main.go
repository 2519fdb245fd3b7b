// Command motiond drives a jerk-limited multi-axis trajectory generator
// from a G-code program, either simulating the resulting motion or
// streaming it out to a connected controller over serial.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "motiond",
		Short:         "Jerk-limited multi-axis trajectory generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newMonitorCommand())
	return root
}

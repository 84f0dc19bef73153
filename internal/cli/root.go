// Package cli implements the apphelp command line tool, a thin cobra front
// end over the stateless helper packages.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// ExitCode is the process exit status returned by Run.
type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

// Run executes the root command against os.Args and maps errors to an ExitCode.
func Run() ExitCode {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "apphelp",
		Short:        "Uptime, duration, URL and climate helpers.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}
	rootCmd.SetOut(out)

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set debug logging level")

	rootCmd.AddCommand(
		newClockCmd(),
		newPeriodCmd(),
		newDateCmd(),
		newUptimeCmd(),
		newURLEncodeCmd(),
		newURLDecodeCmd(),
		newBuildDateCmd(),
		newC2FCmd(),
		newF2CCmd(),
		newDewpointCmd(),
		newAltitudeCmd(),
		newSeaLevelCmd(),
		newSortCmd(),
		newDigitsCmd(),
	)

	return rootCmd
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, err := cmd.Root().PersistentFlags().GetBool("verbose"); err == nil && verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

package main

import (
	"fmt"
	"os"

	"github.com/awtools/fixum/internal/common/logger"
	"github.com/awtools/fixum/internal/common/output"
	"github.com/awtools/fixum/internal/common/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "fixum",
	Short: "Fix workflows bundling broken copies of Alfred-Workflow",
	Long: `Fixum scans your installed Alfred workflows for bundled copies of the
Alfred-Workflow helper library, and replaces outdated, buggy copies with a
patched version. The old copy is kept next to the new one as a backup.`,
	Version: version.Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
		// Keep a persistent log for post-mortems; stderr still gets
		// everything
		if err := logger.Default().EnableFileLogging(); err != nil {
			logger.Debug("file logging disabled: %v", err)
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate(version.Info() + "\n")
}

func main() {
	err := rootCmd.Execute()
	logger.Default().Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

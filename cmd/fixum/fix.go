package main

import (
	"os"

	"github.com/awtools/fixum/internal/common/config"
	"github.com/awtools/fixum/internal/common/logger"
	"github.com/awtools/fixum/internal/common/output"
	"github.com/awtools/fixum/internal/workflow"
	"github.com/spf13/cobra"
)

// FixFlags holds command-line flags for the fix operation
type FixFlags struct {
	DryRun      bool   // -n, --dry-run: report without changing anything
	WorkflowDir string // --workflow-dir: override directory discovery
}

var fixFlags FixFlags

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Replace outdated library copies in your workflows",
	Long: `Scan the Alfred workflow directory for workflows bundling an outdated
copy of the Alfred-Workflow library and replace each one with the patched
payload.

The outdated copy is renamed to <dir>.old (never overwriting an earlier
backup) so it can be restored by hand. Blacklisted workflows and workflows
already carrying a current copy are left alone.

Examples:
  # Replace outdated copies
  fixum fix

  # Show what would change without touching anything
  fixum fix --dry-run

  # Scan a specific directory
  fixum fix --workflow-dir ~/Dropbox/Alfred/Alfred.alfredpreferences/workflows`,
	Run: runFix,
}

func init() {
	fixCmd.Flags().BoolVarP(&fixFlags.DryRun, "dry-run", "n", false, "Report intended changes without performing them")
	fixCmd.Flags().StringVar(&fixFlags.WorkflowDir, "workflow-dir", "", "Workflow directory to scan (skips discovery)")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	opts := &workflow.Options{
		DryRun:      fixFlags.DryRun,
		WorkflowDir: fixFlags.WorkflowDir,
	}

	report, err := workflow.Fix(cfg, opts)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	logger.Info("%s", workflow.FormatReport(report, opts.DryRun))

	if failed := report.Failed(); failed > 0 {
		output.PrintError("failed to update %d/%d workflow(s)", failed, failed+report.Updated())
		os.Exit(1)
	}
}

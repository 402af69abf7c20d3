package main

import (
	"os"

	"github.com/awtools/fixum/internal/common/config"
	"github.com/awtools/fixum/internal/common/logger"
	"github.com/awtools/fixum/internal/common/output"
	"github.com/awtools/fixum/internal/ui"
	"github.com/awtools/fixum/internal/workflow"
	"github.com/spf13/cobra"
)

var scanWorkflowDir string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List workflows bundling the library and their versions",
	Long: `Scan the Alfred workflow directory and report every workflow bundling
the Alfred-Workflow library, the bundled version, and what a fix run would
do with it. Nothing is modified.`,
	Run: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanWorkflowDir, "workflow-dir", "", "Workflow directory to scan (skips discovery)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	// Scanning is a dry run by definition
	report, err := workflow.Fix(cfg, &workflow.Options{
		DryRun:      true,
		WorkflowDir: scanWorkflowDir,
	})
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if len(report.Entries) == 0 {
		output.PrintInfo("no workflows bundling %s found in %s", report.Payload.Name, report.Root)
		return
	}

	table := ui.NewTable(os.Stdout, "NAME", "BUNDLE ID", "VERSION", "STATUS")
	for _, e := range report.Entries {
		table.Row(e.Workflow.Name, e.Workflow.BundleID,
			e.Workflow.Library.Version, output.FormatStatus(string(e.Status)))
	}
	if err := table.Flush(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	output.PrintInfo("%d workflow(s) would be updated to %s (payload %s)",
		report.Updated(), report.Payload.Version, report.Payload.Dir)
}

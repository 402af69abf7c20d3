package main

import (
	"fmt"
	"os"

	"github.com/awtools/fixum/internal/common/config"
	"github.com/awtools/fixum/internal/common/output"
	"github.com/awtools/fixum/internal/payload"
	"github.com/awtools/fixum/internal/workflow"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment for common issues",
	Long: `Doctor checks that fixum can do its job: the config loads, a workflow
directory can be found, the payload is present and versioned, and the
blacklist is readable.`,
	Run: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	ok := true

	fmt.Print("Checking config... ")
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("ERROR")
		output.PrintError("  %v", err)
		os.Exit(1)
	}
	if path, err := config.FindConfigPath(); err == nil {
		fmt.Println(path)
	} else {
		fmt.Println("OK (defaults)")
	}

	fmt.Print("Checking workflow directory... ")
	if root, err := workflow.FindWorkflowDir(cfg.Workflows.Dir); err != nil {
		fmt.Println("NOT FOUND")
		fmt.Println("  Set workflows.dir in the config or pass --workflow-dir to fix/scan.")
		ok = false
	} else {
		fmt.Println(root)
	}

	fmt.Print("Checking payload... ")
	if payloadDir, err := cfg.GetPayloadPath(); err != nil {
		fmt.Println("NOT CONFIGURED")
		fmt.Printf("  %v\n", err)
		ok = false
	} else if pl, err := payload.Load(payloadDir); err != nil {
		fmt.Println("INVALID")
		fmt.Printf("  %v\n", err)
		ok = false
	} else {
		fmt.Printf("%s %s at %s\n", pl.Name, pl.Version, pl.Dir)
	}

	fmt.Print("Checking blacklist... ")
	if blacklistPath, err := cfg.GetBlacklistPath(); err != nil {
		fmt.Println("ERROR")
		fmt.Printf("  %v\n", err)
		ok = false
	} else if bl, err := workflow.LoadBlacklist(blacklistPath); err != nil {
		fmt.Println("UNREADABLE")
		fmt.Printf("  %v\n", err)
		ok = false
	} else {
		fmt.Printf("%d pattern(s) in %s\n", len(bl.Patterns), blacklistPath)
	}

	fmt.Println()
	if !ok {
		output.PrintWarning("Some checks failed. See above for details.")
		os.Exit(1)
	}
	output.PrintSuccess("All checks passed.")
}

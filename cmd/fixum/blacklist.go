package main

import (
	"fmt"
	"os"

	"github.com/awtools/fixum/internal/common/config"
	"github.com/awtools/fixum/internal/common/logger"
	"github.com/awtools/fixum/internal/common/output"
	"github.com/awtools/fixum/internal/workflow"
	"github.com/spf13/cobra"
)

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage the list of workflows that are never modified",
	Long: `Show or edit the blacklist. Each line of the blacklist file is a glob
pattern matched against workflow bundle IDs; matching workflows are never
modified, even by a non-dry fix run.`,
	Run: runBlacklistShow,
}

var blacklistPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the blacklist file path",
	Run: func(cmd *cobra.Command, args []string) {
		bl := mustLoadBlacklist()
		fmt.Println(bl.Path)
	},
}

var blacklistAddCmd = &cobra.Command{
	Use:   "add <pattern>",
	Short: "Add a bundle ID pattern to the blacklist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bl := mustLoadBlacklist()
		if err := bl.Add(args[0]); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		output.PrintSuccess("blacklisted %q", args[0])
	},
}

var blacklistRemoveCmd = &cobra.Command{
	Use:   "remove <pattern>",
	Short: "Remove a bundle ID pattern from the blacklist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bl := mustLoadBlacklist()
		if err := bl.Remove(args[0]); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		output.PrintSuccess("removed %q from the blacklist", args[0])
	},
}

func init() {
	blacklistCmd.AddCommand(blacklistPathCmd)
	blacklistCmd.AddCommand(blacklistAddCmd)
	blacklistCmd.AddCommand(blacklistRemoveCmd)
	rootCmd.AddCommand(blacklistCmd)
}

func runBlacklistShow(cmd *cobra.Command, args []string) {
	bl := mustLoadBlacklist()

	if len(bl.Patterns) == 0 {
		output.PrintInfo("blacklist is empty (%s)", bl.Path)
		return
	}

	for _, pattern := range bl.Patterns {
		fmt.Println(pattern)
	}
}

func mustLoadBlacklist() *workflow.Blacklist {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	path, err := cfg.GetBlacklistPath()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	bl, err := workflow.LoadBlacklist(path)
	if err != nil {
		logger.Error("loading blacklist: %v", err)
		os.Exit(1)
	}
	return bl
}

package main

import (
	"os"

	"github.com/awtools/fixum/internal/alfred"
	"github.com/awtools/fixum/internal/common/logger"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Emit available actions as Alfred Script Filter JSON",
	Long: `Emit the tool's actions as Script Filter feedback so they can be
browsed and launched from inside Alfred. An optional query filters the
list.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	items := []alfred.Item{
		{
			Title:    "Dry Run",
			Subtitle: "Show what the workflow would update",
			Arg:      "dryrun",
			UID:      "dryrun",
			Valid:    true,
		},
		{
			Title:    "View Log File",
			Subtitle: "Open the log file in Console.app",
			Arg:      "log",
			UID:      "log",
			Valid:    true,
		},
		{
			Title:    "Edit Blacklist",
			Subtitle: "List of workflows to *not* update",
			Arg:      "blacklist",
			UID:      "blacklist",
			Valid:    true,
		},
		{
			Title:    "Fix Workflows",
			Subtitle: "Replace broken versions of Alfred-Workflow within your workflows",
			Arg:      "fix",
			UID:      "fix",
			Valid:    true,
		},
	}

	matched := alfred.Filter(query, items)

	fb := &alfred.Feedback{}
	if len(matched) == 0 {
		fb.Add(alfred.Item{
			Title:    "No matching actions",
			Subtitle: "Try a different query",
			Valid:    false,
			Icon:     &alfred.Icon{Path: "icon-warning.png"},
		})
	} else {
		fb.Add(matched...)
	}

	if err := fb.Send(os.Stdout); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

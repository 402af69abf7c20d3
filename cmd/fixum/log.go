package main

import (
	"fmt"
	"os"

	"github.com/awtools/fixum/internal/common/logger"
	"github.com/awtools/fixum/internal/common/output"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the path of the log file",
	Run:   runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) {
	path, err := logger.LogFile()
	if err != nil {
		output.PrintError("Failed to determine log file: %v", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

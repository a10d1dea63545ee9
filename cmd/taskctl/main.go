package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskmaster-app/taskmaster-api/cmd/taskctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "taskctl",
		Short: "Offline extraction tool for TaskMaster",
		Long:  "CLI tool that runs the deterministic extraction paths against local text, without a database or model",
	}

	rootCmd.AddCommand(commands.NewChecklistCmd())
	rootCmd.AddCommand(commands.NewRestructureCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/lite/cmd/api/commands"
)

// @title TaskMaster Lite API
// @version 1.0
// @description Task list, accounts and a word-guessing game over a single-file store

// @license.name MIT

// @host localhost:8080
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:           "taskmaster-lite",
		Short:         "TaskMaster Lite API Server",
		Long:          `TaskMaster Lite serves tasks, user accounts and word-guessing games from a store persisted to a single JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.BindPersistentFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewSnapshotCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

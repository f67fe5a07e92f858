// Package main is the entry point for the price-movement-cli application.
// It initializes the root command and registers sub-commands for dataset
// generation, artifact inspection, corpus lookups and movement
// classification, then executes the command-line interface.
package main

import (
	"fmt"
	"log"

	commands "github.com/zeeliu7/nlp-stock-price-movement-prediction/cmd/price-movement-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "price-movement-cli",
		Short: "Price movement dataset CLI tool",
		Long: `price-movement-cli is a command-line tool for working with synthetic
price-movement news datasets. It generates balanced labeled corpora from the
built-in headline vocabulary, inspects existing dataset artifacts, lists the
movement category ladder and classifies volatility-normalized price moves.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitGenerateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize generate commands: %w", err)
	}

	if err := commands.InitInspectCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize inspect commands: %w", err)
	}

	if err := commands.InitCorpusCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize corpus commands: %w", err)
	}

	if err := commands.InitClassifyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize classify commands: %w", err)
	}

	return nil
}

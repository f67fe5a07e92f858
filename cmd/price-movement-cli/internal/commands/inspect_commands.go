package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// InspectCommandHandler encapsulates logic for auditing dataset artifacts via CLI.
type InspectCommandHandler struct {
	logger logger.Logger
}

// NewInspectCommandHandler initializes and returns an InspectCommandHandler instance
// with configured logger.
func NewInspectCommandHandler() (*InspectCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &InspectCommandHandler{
		logger: loggerInstance,
	}, nil
}

// InspectDatasetCmd audits an existing dataset artifact and prints its summary
func (commandHandler *InspectCommandHandler) InspectDatasetCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		commandHandler.logger.Error("invalid format flag ", err)
		return
	}

	file, err := os.Open(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			commandHandler.logger.Error(err)
		}
	}()

	report, err := generation.Inspect(file, format)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	fmt.Printf("Rows: %d\n", report.Rows)
	fmt.Printf("Unknown labels: %d\n", report.Unknown)
	fmt.Println("Category counts (alignment rate):")
	for _, category := range movement.Ladder() {
		count, ok := report.CategoryCounts[category]
		if !ok {
			continue
		}
		fmt.Printf("  %-22s %d (%.2f)\n", category, count, report.AlignmentRates[category])
	}
}

// InitInspectCommands registers artifact inspection commands
func InitInspectCommands(rootCmd *cobra.Command) error {
	handler, err := NewInspectCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create inspect command handler %w", err)
	}

	var inspectDatasetCmd = &cobra.Command{
		Use:   "inspect-dataset",
		Short: "Audit a dataset artifact and print its label summary",
		Run:   handler.InspectDatasetCmd,
	}
	inspectDatasetCmd.Flags().StringP("input-file", "", "", "Path to the dataset artifact to inspect")
	inspectDatasetCmd.Flags().StringP("format", "", "csv", "Artifact format (csv or jsonl)")
	rootCmd.AddCommand(inspectDatasetCmd)

	return nil
}

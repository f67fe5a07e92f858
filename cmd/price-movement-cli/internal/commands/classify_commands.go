package commands

import (
	"fmt"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// ClassifyCommandHandler encapsulates logic for classifying price moves via CLI.
type ClassifyCommandHandler struct {
	logger logger.Logger
}

// NewClassifyCommandHandler initializes and returns a ClassifyCommandHandler instance
// with configured logger.
func NewClassifyCommandHandler() (*ClassifyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &ClassifyCommandHandler{
		logger: loggerInstance,
	}, nil
}

// ClassifyMovementCmd normalizes a return by volatility and prints its movement category
func (commandHandler *ClassifyCommandHandler) ClassifyMovementCmd(cmd *cobra.Command, _ []string) {
	returnFlag, err := cmd.Flags().GetString("return")
	if err != nil {
		commandHandler.logger.Error("invalid return flag ", err)
		return
	}
	impliedVolFlag, err := cmd.Flags().GetString("implied-vol")
	if err != nil {
		commandHandler.logger.Error("invalid implied-vol flag ", err)
		return
	}
	horizonDays, err := cmd.Flags().GetInt("horizon-days")
	if err != nil {
		commandHandler.logger.Error("invalid horizon-days flag ", err)
		return
	}

	ret, err := decimal.NewFromString(returnFlag)
	if err != nil {
		commandHandler.logger.Error("invalid return value ", err)
		return
	}
	impliedVol, err := decimal.NewFromString(impliedVolFlag)
	if err != nil {
		commandHandler.logger.Error("invalid implied-vol value ", err)
		return
	}

	z, err := movement.Normalize(ret, impliedVol, horizonDays)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	category := movement.Classify(z)
	fmt.Printf("z=%s category=%s\n", z.String(), category)
}

// InitClassifyCommands registers movement classification commands
func InitClassifyCommands(rootCmd *cobra.Command) error {
	handler, err := NewClassifyCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create classify command handler %w", err)
	}

	var classifyMovementCmd = &cobra.Command{
		Use:   "classify-movement",
		Short: "Classify a volatility-normalized price move",
		Run:   handler.ClassifyMovementCmd,
	}
	classifyMovementCmd.Flags().StringP("return", "", "", "Realized return over the horizon, e.g. 0.05")
	classifyMovementCmd.Flags().StringP("implied-vol", "", "", "Annualized implied volatility, e.g. 0.20")
	classifyMovementCmd.Flags().IntP("horizon-days", "", 1, "Horizon in trading days")
	rootCmd.AddCommand(classifyMovementCmd)

	return nil
}

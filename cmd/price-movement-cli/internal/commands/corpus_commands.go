package commands

import (
	"fmt"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CorpusCommandHandler encapsulates logic for inspecting the headline vocabulary via CLI.
type CorpusCommandHandler struct {
	catalog *corpus.Catalog
	logger  logger.Logger
}

// NewCorpusCommandHandler initializes and returns a CorpusCommandHandler instance with
// configured logger and the built-in catalog.
func NewCorpusCommandHandler() (*CorpusCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &CorpusCommandHandler{
		catalog: corpus.DefaultCatalog(),
		logger:  loggerInstance,
	}, nil
}

// ListCategoriesCmd prints the movement category ladder with band bounds
func (commandHandler *CorpusCommandHandler) ListCategoriesCmd(_ *cobra.Command, _ []string) {
	for _, category := range movement.Ladder() {
		lo, hi, unbounded := movement.Bounds(category)
		upper := hi.String()
		if unbounded {
			upper = "inf"
		}
		fmt.Printf("%-22s direction=%-7s keyword=%-10s z=[%s, %s) alignment=%.2f templates=%d\n",
			category,
			category.Direction(),
			category.Keyword(),
			lo.String(),
			upper,
			commandHandler.catalog.AlignmentRate(category),
			len(commandHandler.catalog.Templates[category]),
		)
	}
}

// ListTickersCmd prints the catalog ticker universe
func (commandHandler *CorpusCommandHandler) ListTickersCmd(_ *cobra.Command, _ []string) {
	for _, ticker := range commandHandler.catalog.Tickers {
		fmt.Println(ticker)
	}
}

// ListTemplatesCmd prints the headline templates of one category or of all categories
func (commandHandler *CorpusCommandHandler) ListTemplatesCmd(cmd *cobra.Command, _ []string) {
	categoryFlag, err := cmd.Flags().GetString("category")
	if err != nil {
		commandHandler.logger.Error("invalid category flag ", err)
		return
	}

	if categoryFlag != "" {
		category := movement.Category(categoryFlag)
		if !category.Valid() {
			commandHandler.logger.Error("unknown movement category ", categoryFlag)
			return
		}
		for _, template := range commandHandler.catalog.Templates[category] {
			fmt.Println(template)
		}
		return
	}

	for _, category := range movement.Ladder() {
		fmt.Printf("%s:\n", category)
		for _, template := range commandHandler.catalog.Templates[category] {
			fmt.Printf("  %s\n", template)
		}
	}
}

// InitCorpusCommands registers corpus lookup commands
func InitCorpusCommands(rootCmd *cobra.Command) error {
	handler, err := NewCorpusCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create corpus command handler %w", err)
	}

	var listCategoriesCmd = &cobra.Command{
		Use:   "list-categories",
		Short: "List the movement category ladder",
		Run:   handler.ListCategoriesCmd,
	}
	rootCmd.AddCommand(listCategoriesCmd)

	var listTickersCmd = &cobra.Command{
		Use:   "list-tickers",
		Short: "List the catalog ticker universe",
		Run:   handler.ListTickersCmd,
	}
	rootCmd.AddCommand(listTickersCmd)

	var listTemplatesCmd = &cobra.Command{
		Use:   "list-templates",
		Short: "List headline templates",
		Run:   handler.ListTemplatesCmd,
	}
	listTemplatesCmd.Flags().StringP("category", "", "", "Restrict output to one movement category")
	rootCmd.AddCommand(listTemplatesCmd)

	return nil
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// GenerateCommandHandler encapsulates logic for generating dataset artifacts via CLI.
type GenerateCommandHandler struct {
	engine *generation.Engine
	logger logger.Logger
}

// NewGenerateCommandHandler initializes and returns a GenerateCommandHandler instance
// with configured logger and generation engine.
func NewGenerateCommandHandler() (*GenerateCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	engine, err := generation.NewEngine(corpus.DefaultCatalog(), loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation engine: %w", err)
	}

	return &GenerateCommandHandler{
		engine: engine,
		logger: loggerInstance,
	}, nil
}

// GenerateDatasetCmd generates a labeled corpus and writes the artifact(s) to a selected directory
func (commandHandler *GenerateCommandHandler) GenerateDatasetCmd(cmd *cobra.Command, _ []string) {
	samples, err := cmd.Flags().GetInt("samples")
	if err != nil {
		commandHandler.logger.Error("invalid samples flag ", err)
		return
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		commandHandler.logger.Error("invalid seed flag ", err)
		return
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		commandHandler.logger.Error("invalid format flag ", err)
		return
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		commandHandler.logger.Error("invalid name flag ", err)
		return
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		commandHandler.logger.Error("invalid output-dir flag ", err)
		return
	}
	trainRatio, err := cmd.Flags().GetFloat64("train-ratio")
	if err != nil {
		commandHandler.logger.Error("invalid train-ratio flag ", err)
		return
	}
	validationRatio, err := cmd.Flags().GetFloat64("validation-ratio")
	if err != nil {
		commandHandler.logger.Error("invalid validation-ratio flag ", err)
		return
	}
	testRatio, err := cmd.Flags().GetFloat64("test-ratio")
	if err != nil {
		commandHandler.logger.Error("invalid test-ratio flag ", err)
		return
	}

	if name == "" {
		name = fmt.Sprintf("dataset-%d", seed)
	}

	spec := &datasets.GenerationSpec{
		Samples: samples,
		Seed:    seed,
		Format:  format,
		Name:    name,
	}
	if trainRatio != 0 || validationRatio != 0 || testRatio != 0 {
		spec.SplitRatios = &datasets.SplitRatios{
			Train:      trainRatio,
			Validation: validationRatio,
			Test:       testRatio,
		}
	}

	build, err := commandHandler.engine.Build(spec)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	encoder, err := generation.EncoderFor(spec.Format)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err = os.MkdirAll(outputDir, 0750); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	artifactPath := filepath.Join(outputDir, fmt.Sprintf("%s.%s", name, encoder.Ext()))
	if err = writeArtifact(artifactPath, encoder, build.Samples); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Dataset with ", len(build.Samples), " samples saved to ", artifactPath)

	for _, shard := range build.Shards {
		shardPath := filepath.Join(outputDir, fmt.Sprintf("%s-%s.%s", name, shard.Split, encoder.Ext()))
		if err = writeArtifact(shardPath, encoder, shard.Samples); err != nil {
			commandHandler.logger.Error(err)
			return
		}
		commandHandler.logger.Info(shard.Split, " shard with ", len(shard.Samples), " samples saved to ", shardPath)
	}

	printDistribution(generation.CategoryCounts(build.Samples))
	printExamples(build.Samples, 3)
}

func writeArtifact(path string, encoder generation.Encoder, samples []corpus.Sample) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}

	if err = encoder.Encode(file, samples); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close artifact file: %w", err)
	}
	return nil
}

// printDistribution prints category counts in ladder order.
func printDistribution(counts map[movement.Category]int) {
	fmt.Println("Label distribution:")
	for _, category := range movement.Ladder() {
		fmt.Printf("  %-22s %d\n", category, counts[category])
	}
}

// printExamples prints the first n samples for a quick eyeball check.
func printExamples(samples []corpus.Sample, n int) {
	if n > len(samples) {
		n = len(samples)
	}
	fmt.Println("Examples:")
	for _, sample := range samples[:n] {
		fmt.Printf("  %s | %s | %s\n", sample.Ticker, sample.Headline, sample.Change)
	}
}

// InitGenerateCommands registers dataset generation commands
func InitGenerateCommands(rootCmd *cobra.Command) error {
	handler, err := NewGenerateCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create generate command handler %w", err)
	}

	var generateDatasetCmd = &cobra.Command{
		Use:   "generate-dataset",
		Short: "Generate a balanced labeled price-movement dataset",
		Run:   handler.GenerateDatasetCmd,
	}
	generateDatasetCmd.Flags().IntP("samples", "", 1200, "Total number of samples to generate (divided evenly across the 12 categories)")
	generateDatasetCmd.Flags().Int64P("seed", "", 42, "Random seed for deterministic generation")
	generateDatasetCmd.Flags().StringP("format", "", "csv", "Artifact format (csv or jsonl)")
	generateDatasetCmd.Flags().StringP("name", "", "", "Dataset name (defaults to dataset-<seed>)")
	generateDatasetCmd.Flags().StringP("output-dir", "", ".", "Directory to store the dataset artifact(s)")
	generateDatasetCmd.Flags().Float64P("train-ratio", "", 0, "Train split fraction (set all three ratios to enable splitting)")
	generateDatasetCmd.Flags().Float64P("validation-ratio", "", 0, "Validation split fraction")
	generateDatasetCmd.Flags().Float64P("test-ratio", "", 0, "Test split fraction")
	rootCmd.AddCommand(generateDatasetCmd)

	return nil
}

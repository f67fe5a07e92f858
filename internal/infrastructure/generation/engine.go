package generation

import (
	"fmt"
	"math/rand"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// Shard is a contiguous slice of the shuffled corpus assigned to one split.
type Shard struct {
	Split   string
	Samples []corpus.Sample
}

// Build is the output of one engine run: the full shuffled corpus and, when
// split ratios were requested, its shards. Concatenating the shards in order
// reproduces Samples exactly.
type Build struct {
	Samples []corpus.Sample
	Shards  []Shard
}

// Engine generates balanced labeled corpora from a catalog. All randomness
// is drawn from a single seeded source so equal specs produce identical
// output.
type Engine struct {
	catalog *corpus.Catalog
	logger  logger.Logger
}

// NewEngine creates an Engine after validating the catalog.
func NewEngine(catalog *corpus.Catalog, logger logger.Logger) (*Engine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &Engine{
		catalog: catalog,
		logger:  logger,
	}, nil
}

// Build generates the corpus described by spec. Samples per category is
// spec.Samples divided by the ladder size; the integer remainder is dropped
// so category counts stay balanced.
func (e *Engine) Build(spec *datasets.GenerationSpec) (*Build, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation spec: %w", err)
	}

	rng := rand.New(rand.NewSource(spec.Seed))

	ladder := movement.Ladder()
	samplesPerCategory := spec.Samples / len(ladder)

	samples := make([]corpus.Sample, 0, samplesPerCategory*len(ladder))
	for _, category := range ladder {
		templates := e.catalog.Templates[category]

		for i := 0; i < samplesPerCategory; i++ {
			ticker := e.catalog.Tickers[rng.Intn(len(e.catalog.Tickers))]
			template := templates[rng.Intn(len(templates))]

			samples = append(samples, corpus.Sample{
				Ticker:   ticker,
				Headline: corpus.RenderHeadline(template, ticker),
				Change:   category.Sentence(),
			})
		}
	}

	// One shuffle over the whole corpus mixes the categories.
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})

	build := &Build{Samples: samples}
	if spec.SplitRatios != nil {
		build.Shards = partition(samples, spec.SplitRatios)
	}

	e.logger.Info("generated corpus with ", len(samples), " samples from seed ", spec.Seed)
	return build, nil
}

// partition slices the shuffled corpus into contiguous train/validation/test
// shards. Shard sizes are the floor of ratio*n; the remainder goes to train.
func partition(samples []corpus.Sample, ratios *datasets.SplitRatios) []Shard {
	trainN, validationN, _ := ratios.ShardSizes(len(samples))

	return []Shard{
		{Split: datasets.SplitTrain, Samples: samples[:trainN]},
		{Split: datasets.SplitValidation, Samples: samples[trainN : trainN+validationN]},
		{Split: datasets.SplitTest, Samples: samples[trainN+validationN:]},
	}
}

// CategoryCounts tallies samples per movement category. Unknown labels are
// skipped.
func CategoryCounts(samples []corpus.Sample) map[movement.Category]int {
	counts := make(map[movement.Category]int, 12)
	for _, sample := range samples {
		category, err := movement.ParseCategory(sample.Change)
		if err != nil {
			continue
		}
		counts[category]++
	}
	return counts
}

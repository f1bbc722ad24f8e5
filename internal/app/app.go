// Package app wires configuration, adapters and the pipeline together.
package app

import (
	"context"
	"fmt"
	"os"

	"NewsClassifier/internal/config"
	"NewsClassifier/internal/infrastructure/ingest"
	"NewsClassifier/internal/infrastructure/render"
	"NewsClassifier/internal/logging"
	"NewsClassifier/internal/textproc"
	"NewsClassifier/internal/usecase"
)

// Run loads configuration, builds the object graph and executes one full
// analysis batch. Logs go to stderr; report tables go to stdout.
func Run(ctx context.Context) error {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.Logging.Level)

	source, err := ingest.NewCSVSource(cfg.Dataset.Path, cfg.Dataset.Delimiter,
		log.With("component", "ingest"))
	if err != nil {
		return fmt.Errorf("app: dataset source: %w", err)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Normalizer: textproc.NewNormalizer(cfg.Dataset.StripMarkup),
		Tokenizer:  textproc.NewTokenizer(cfg.Text.StopWords, cfg.Text.Stemmer),
		Reporter:   render.NewTableReporter(os.Stdout, log.With("component", "report")),
		Renderer:   render.NewComparisonPlot(cfg.Output.Dir, log.With("component", "plot")),
		Params: usecase.Params{
			CuratedTokens: cfg.PCA.Tokens,
			Components:    cfg.PCA.Components,

			SplitFraction: cfg.Split.Fraction,
			SplitSeed:     cfg.Split.Seed,

			ForestTrees:   cfg.Forest.Trees,
			ForestMinLeaf: cfg.Forest.MinLeaf,
			ForestSeed:    cfg.Forest.Seed,

			SVMLinearCost:      cfg.SVM.LinearCost,
			SVMCosts:           cfg.SVM.Costs,
			SVMGammas:          cfg.SVM.Gammas,
			SVMHoldoutFraction: cfg.SVM.HoldoutFraction,
			SVMMaxPasses:       cfg.SVM.MaxPasses,
		},
		Logger: log.With("component", "pipeline"),
	})

	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	log.Info("analysis complete",
		"documents", len(result.TrainIDs)+len(result.TestIDs),
		"vocabulary", len(result.Vocabulary),
		"models", len(result.Evaluations))
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsClassifier/internal/corpus"
	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/eval"
	"NewsClassifier/internal/features"
	"NewsClassifier/internal/model"
	"NewsClassifier/internal/ports"
	"NewsClassifier/internal/split"
	"NewsClassifier/internal/textproc"
)

// Model names in their fixed training order.
const (
	ModelForestTokens = "rf-tokens"
	ModelForestPCA    = "rf-pca"
	ModelSVMLinear    = "svm-linear"
	ModelSVMRadial    = "svm-radial"
)

// Params carries the modeling knobs the pipeline needs beyond its adapters.
type Params struct {
	// CuratedTokens is the fixed offline-selected stem list; together with
	// the scalar features it feeds PCA and the token-based models.
	CuratedTokens []string
	Components    int

	SplitFraction float64
	SplitSeed     int64

	ForestTrees   int
	ForestMinLeaf int
	ForestSeed    int64

	SVMLinearCost      float64
	SVMCosts           []float64
	SVMGammas          []float64
	SVMHoldoutFraction float64
	SVMMaxPasses       int
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.DocumentSource
	Normalizer *textproc.Normalizer
	Tokenizer  *textproc.Tokenizer
	Reporter   ports.Reporter
	Renderer   ports.PlotRenderer
	Params     Params
	Logger     *slog.Logger
}

// Pipeline implements the full analysis run: ingest, normalize, tokenize,
// filter, pivot, reduce, split, train, evaluate, report. Stages execute in
// strict dependency order; every derived artifact is recomputed per run.
type Pipeline struct {
	source     ports.DocumentSource
	normalizer *textproc.Normalizer
	tokenizer  *textproc.Tokenizer
	reporter   ports.Reporter
	renderer   ports.PlotRenderer
	params     Params
	logger     *slog.Logger
}

// Result exposes the run's derived artifacts for reporting and tests.
type Result struct {
	Vocabulary  []string
	TrainIDs    []string
	TestIDs     []string
	Projection  *features.Projection
	RadialBest  model.GridResult
	Evaluations []eval.Evaluation
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Pipeline{
		source:     deps.Source,
		normalizer: deps.Normalizer,
		tokenizer:  deps.Tokenizer,
		reporter:   deps.Reporter,
		renderer:   deps.Renderer,
		params:     deps.Params,
		logger:     deps.Logger,
	}
}

// Run executes the whole batch once.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	docs, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	p.debug("documents loaded", "count", len(docs))

	counts, err := p.tokenize(docs)
	if err != nil {
		return nil, err
	}
	p.debug("tokens counted", "occurrences", len(counts))

	filtered, err := corpus.Filter(counts)
	if err != nil {
		return nil, fmt.Errorf("vocabulary filter: %w", err)
	}
	p.debug("vocabulary filtered", "tokens", len(filtered.Vocabulary), "mean_threshold", filtered.Mean)

	matrix, err := features.Build(filtered)
	if err != nil {
		return nil, fmt.Errorf("feature matrix: %w", err)
	}
	if dropped := len(docs) - matrix.Rows(); dropped > 0 {
		// Documents whose tokens were all filtered away have no feature
		// row and leave the analysis here.
		p.logger.Warn("documents dropped after filtering", "count", dropped)
	}

	pcaColumns := append([]string{
		features.ColLength, features.ColVocabSize, features.ColRichness,
	}, p.params.CuratedTokens...)

	reducer := features.NewReducer(pcaColumns, p.params.Components)
	reduced, projection, err := reducer.Transform(matrix)
	if err != nil {
		return nil, fmt.Errorf("pca: %w", err)
	}
	p.debug("pca scores appended", "components", p.params.Components,
		"explained_first", projection.Explained[0])

	splitter, err := split.New(p.params.SplitFraction, p.params.SplitSeed)
	if err != nil {
		return nil, err
	}
	train, test, err := splitter.Split(reduced)
	if err != nil {
		return nil, err
	}
	p.debug("dataset split", "train", train.Rows(), "test", test.Rows())

	registry, radial := p.buildTrainers(pcaColumns, reducer.ComponentColumns())

	result := &Result{
		Vocabulary: filtered.Vocabulary,
		TrainIDs:   train.DocIDs,
		TestIDs:    test.DocIDs,
		Projection: projection,
	}

	for _, name := range registry.Names() {
		trainer, err := registry.Resolve(name)
		if err != nil {
			return nil, err
		}

		fitted, err := trainer.Train(train)
		if err != nil {
			return nil, fmt.Errorf("train %s: %w", name, err)
		}

		evaluation, err := eval.Evaluate(fitted, test)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", name, err)
		}
		result.Evaluations = append(result.Evaluations, evaluation)

		p.logger.Info("model evaluated",
			"model", name,
			"accuracy", evaluation.Accuracy,
			"kappa", evaluation.Kappa)
	}
	result.RadialBest = radial.Best

	if p.reporter != nil {
		if err := p.reporter.Report(ctx, result.Evaluations); err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
	}
	if p.renderer != nil {
		if _, err := p.renderer.RenderComparison(ctx, result.Evaluations); err != nil {
			return nil, fmt.Errorf("render comparison: %w", err)
		}
	}

	return result, nil
}

func (p *Pipeline) tokenize(docs []domain.Document) ([]domain.TokenCount, error) {
	var counts []domain.TokenCount
	for _, doc := range docs {
		normalized, err := p.normalizer.Normalize(doc.Text)
		if err != nil {
			return nil, fmt.Errorf("normalize document %s: %w", doc.ID, err)
		}

		docCounts, err := p.tokenizer.Counts(doc, normalized)
		if err != nil {
			return nil, fmt.Errorf("tokenize document %s: %w", doc.ID, err)
		}
		counts = append(counts, docCounts...)
	}
	return counts, nil
}

func (p *Pipeline) buildTrainers(tokenColumns, componentColumns []string) (*model.Registry, *model.RadialSearchTrainer) {
	scalarAndPCA := append([]string{
		features.ColLength, features.ColVocabSize, features.ColRichness,
	}, componentColumns...)

	registry := model.NewRegistry()

	registry.Register(model.NewForestTrainer(ModelForestTokens, model.ForestConfig{
		Columns: tokenColumns,
		Trees:   p.params.ForestTrees,
		MinLeaf: p.params.ForestMinLeaf,
		Seed:    p.params.ForestSeed,
	}))

	registry.Register(model.NewForestTrainer(ModelForestPCA, model.ForestConfig{
		Columns: scalarAndPCA,
		Trees:   p.params.ForestTrees,
		MinLeaf: p.params.ForestMinLeaf,
		Seed:    p.params.ForestSeed,
	}))

	registry.Register(model.NewSVMTrainer(ModelSVMLinear, model.SVMConfig{
		Columns:   tokenColumns,
		C:         p.params.SVMLinearCost,
		MaxPasses: p.params.SVMMaxPasses,
		Seed:      p.params.SplitSeed,
	}))

	radial := model.NewRadialSearchTrainer(ModelSVMRadial, model.GridConfig{
		Columns:         scalarAndPCA,
		Costs:           p.params.SVMCosts,
		Gammas:          p.params.SVMGammas,
		HoldoutFraction: p.params.SVMHoldoutFraction,
		MaxPasses:       p.params.SVMMaxPasses,
		Seed:            p.params.SplitSeed,
	}, p.logger)
	registry.Register(radial)

	return registry, radial
}

func (p *Pipeline) debug(msg string, args ...any) {
	p.logger.Debug(msg, args...)
}

package ports

import (
	"context"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/eval"
)

// DocumentSource loads the full labeled dataset into memory. Documents are
// read once and never mutated afterwards.
type DocumentSource interface {
	Load(ctx context.Context) ([]domain.Document, error)
}

// Reporter emits the per-model evaluation summaries.
type Reporter interface {
	Report(ctx context.Context, evaluations []eval.Evaluation) error
}

// PlotRenderer draws the model-comparison chart and returns its path.
type PlotRenderer interface {
	RenderComparison(ctx context.Context, evaluations []eval.Evaluation) (string, error)
}

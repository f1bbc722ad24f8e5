package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"NewsClassifier/internal/eval"
	"NewsClassifier/internal/ports"
)

// ComparisonPlot draws accuracy and Kappa bars per model into a PNG.
type ComparisonPlot struct {
	dir    string
	logger *slog.Logger
}

var _ ports.PlotRenderer = (*ComparisonPlot)(nil)

// NewComparisonPlot writes charts into dir, creating it if needed.
func NewComparisonPlot(dir string, logger *slog.Logger) *ComparisonPlot {
	return &ComparisonPlot{dir: dir, logger: logger}
}

// RenderComparison saves model_comparison.png and returns its path.
func (c *ComparisonPlot) RenderComparison(ctx context.Context, evaluations []eval.Evaluation) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(evaluations) == 0 {
		return "", fmt.Errorf("render: nothing to plot")
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("render: create output dir: %w", err)
	}

	names := make([]string, len(evaluations))
	accuracy := make(plotter.Values, len(evaluations))
	kappa := make(plotter.Values, len(evaluations))
	for i, ev := range evaluations {
		names[i] = ev.Model
		accuracy[i] = ev.Accuracy
		kappa[i] = ev.Kappa
	}

	p := plot.New()
	p.Title.Text = "Classifier comparison on held-out documents"
	p.Y.Label.Text = "score"
	p.Y.Min = 0
	p.Y.Max = 1

	width := vg.Points(18)

	accBars, err := plotter.NewBarChart(accuracy, width)
	if err != nil {
		return "", fmt.Errorf("render: accuracy bars: %w", err)
	}
	accBars.Offset = -width / 2
	accBars.Color = plotutil.Color(0)

	kappaBars, err := plotter.NewBarChart(kappa, width)
	if err != nil {
		return "", fmt.Errorf("render: kappa bars: %w", err)
	}
	kappaBars.Offset = width / 2
	kappaBars.Color = plotutil.Color(1)

	p.Add(accBars, kappaBars)
	p.Legend.Add("accuracy", accBars)
	p.Legend.Add("kappa", kappaBars)
	p.Legend.Top = true
	p.NominalX(names...)

	path := filepath.Join(c.dir, "model_comparison.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("render: save chart: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("comparison chart rendered", "path", path)
	}
	return path, nil
}

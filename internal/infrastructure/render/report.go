// Package render presents evaluation results: text tables on a writer and a
// comparison chart on disk.
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/olekukonko/tablewriter"

	"NewsClassifier/internal/eval"
	"NewsClassifier/internal/ports"
)

const importanceTopN = 10

// TableReporter renders per-model metric and confusion tables.
type TableReporter struct {
	out    io.Writer
	logger *slog.Logger
}

var _ ports.Reporter = (*TableReporter)(nil)

// NewTableReporter writes tables to out.
func NewTableReporter(out io.Writer, logger *slog.Logger) *TableReporter {
	return &TableReporter{out: out, logger: logger}
}

// Report prints a comparison table, then one confusion matrix per model and
// variable-importance rankings where available.
func (r *TableReporter) Report(ctx context.Context, evaluations []eval.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(evaluations) == 0 {
		return fmt.Errorf("render: nothing to report")
	}

	fmt.Fprintln(r.out, "Model comparison on shared held-out documents")
	summary := tablewriter.NewWriter(r.out)
	summary.SetHeader([]string{"Model", "Accuracy", "Sensitivity", "Specificity", "Balanced", "Kappa"})
	for _, ev := range evaluations {
		summary.Append([]string{
			ev.Model,
			fmt.Sprintf("%.4f", ev.Accuracy),
			fmt.Sprintf("%.4f", ev.Sensitivity),
			fmt.Sprintf("%.4f", ev.Specificity),
			fmt.Sprintf("%.4f", ev.BalancedAccuracy),
			fmt.Sprintf("%.4f", ev.Kappa),
		})
	}
	summary.Render()

	for _, ev := range evaluations {
		fmt.Fprintf(r.out, "\n%s confusion matrix (rows = predicted, columns = actual)\n", ev.Model)
		confusion := tablewriter.NewWriter(r.out)
		confusion.SetHeader([]string{"", "fake", "real"})
		confusion.Append([]string{"fake",
			fmt.Sprintf("%d", ev.Confusion.TP),
			fmt.Sprintf("%d", ev.Confusion.FP)})
		confusion.Append([]string{"real",
			fmt.Sprintf("%d", ev.Confusion.FN),
			fmt.Sprintf("%d", ev.Confusion.TN)})
		confusion.Render()

		if len(ev.Importance) == 0 {
			continue
		}

		fmt.Fprintf(r.out, "\n%s variable importance (mean Gini decrease)\n", ev.Model)
		importance := tablewriter.NewWriter(r.out)
		importance.SetHeader([]string{"Rank", "Column", "Score"})
		for i, imp := range ev.Importance {
			if i >= importanceTopN {
				break
			}
			importance.Append([]string{
				fmt.Sprintf("%d", i+1),
				imp.Column,
				fmt.Sprintf("%.6f", imp.Score),
			})
		}
		importance.Render()
	}

	if r.logger != nil {
		r.logger.Info("report rendered", "models", len(evaluations))
	}
	return nil
}

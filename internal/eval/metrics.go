// Package eval computes the held-out classification report: confusion
// matrix, accuracy, sensitivity, specificity, balanced accuracy and Cohen's
// Kappa. Everything here is a pure function of predictions and truth.
package eval

import (
	"fmt"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/features"
	"NewsClassifier/internal/model"
)

// ConfusionMatrix cross-tabulates predicted against true labels. The fake
// class is the positive class throughout.
type ConfusionMatrix struct {
	TP int // predicted fake, truly fake
	FN int // predicted real, truly fake
	FP int // predicted fake, truly real
	TN int // predicted real, truly real
}

// Confusion tallies the 2x2 table from parallel label slices.
func Confusion(predicted, actual []domain.Label) (ConfusionMatrix, error) {
	if len(predicted) != len(actual) {
		return ConfusionMatrix{}, fmt.Errorf("eval: %d predictions for %d labels",
			len(predicted), len(actual))
	}
	if len(predicted) == 0 {
		return ConfusionMatrix{}, fmt.Errorf("eval: empty prediction set")
	}

	var c ConfusionMatrix
	for i := range predicted {
		switch {
		case predicted[i] == domain.LabelFake && actual[i] == domain.LabelFake:
			c.TP++
		case predicted[i] == domain.LabelReal && actual[i] == domain.LabelFake:
			c.FN++
		case predicted[i] == domain.LabelFake && actual[i] == domain.LabelReal:
			c.FP++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Total is the number of scored documents.
func (c ConfusionMatrix) Total() int {
	return c.TP + c.FN + c.FP + c.TN
}

// Accuracy is the share of correct predictions.
func (c ConfusionMatrix) Accuracy() float64 {
	return float64(c.TP+c.TN) / float64(c.Total())
}

// Sensitivity is the true-positive rate for the fake class.
func (c ConfusionMatrix) Sensitivity() float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// Specificity is the true-positive rate for the real class.
func (c ConfusionMatrix) Specificity() float64 {
	if c.TN+c.FP == 0 {
		return 0
	}
	return float64(c.TN) / float64(c.TN+c.FP)
}

// BalancedAccuracy averages sensitivity and specificity.
func (c ConfusionMatrix) BalancedAccuracy() float64 {
	return (c.Sensitivity() + c.Specificity()) / 2
}

// Kappa is Cohen's chance-corrected agreement between predictions and truth.
func (c ConfusionMatrix) Kappa() float64 {
	total := float64(c.Total())
	observed := c.Accuracy()
	expected := (float64(c.TP+c.FN)*float64(c.TP+c.FP) +
		float64(c.TN+c.FP)*float64(c.TN+c.FN)) / (total * total)
	if expected == 1 {
		return 0
	}
	return (observed - expected) / (1 - expected)
}

// Evaluation is the full per-model report card.
type Evaluation struct {
	Model            string
	Confusion        ConfusionMatrix
	Accuracy         float64
	Sensitivity      float64
	Specificity      float64
	BalancedAccuracy float64
	Kappa            float64
	// Importance is populated for tree ensembles only.
	Importance []model.Importance
}

// Evaluate scores a fitted model against held-out rows. Inputs are not
// mutated; the test rows must never have been used for training.
func Evaluate(m model.Model, test *features.Matrix) (Evaluation, error) {
	predicted, err := model.Predictions(m, test)
	if err != nil {
		return Evaluation{}, err
	}

	confusion, err := Confusion(predicted, test.Labels)
	if err != nil {
		return Evaluation{}, fmt.Errorf("model %s: %w", m.Name(), err)
	}

	ev := Evaluation{
		Model:            m.Name(),
		Confusion:        confusion,
		Accuracy:         confusion.Accuracy(),
		Sensitivity:      confusion.Sensitivity(),
		Specificity:      confusion.Specificity(),
		BalancedAccuracy: confusion.BalancedAccuracy(),
		Kappa:            confusion.Kappa(),
	}

	if ranked, ok := m.(interface{ Importance() []model.Importance }); ok {
		ev.Importance = ranked.Importance()
	}
	return ev, nil
}

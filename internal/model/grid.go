package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"NewsClassifier/internal/features"
	"NewsClassifier/internal/split"
)

// GridConfig describes the radial-kernel hyperparameter search space.
type GridConfig struct {
	Columns []string
	// Costs and Gammas are the exponentially spaced candidate values.
	Costs  []float64
	Gammas []float64
	// HoldoutFraction of the training rows scores candidates.
	HoldoutFraction float64
	MaxPasses       int
	Seed            int64
}

// GridResult records the winning candidate.
type GridResult struct {
	Cost     float64
	Gamma    float64
	Accuracy float64
}

// RadialSearchTrainer picks (cost, gamma) for the radial SVM by grid search
// over an internal holdout, then refits the winner on the full training
// rows. Candidate evaluations are independent, so they run in parallel.
type RadialSearchTrainer struct {
	name   string
	cfg    GridConfig
	logger *slog.Logger

	// Best is populated by Train for reporting.
	Best GridResult
}

var _ Trainer = (*RadialSearchTrainer)(nil)

// NewRadialSearchTrainer wires the search space; fractions default to 0.2.
func NewRadialSearchTrainer(name string, cfg GridConfig, logger *slog.Logger) *RadialSearchTrainer {
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction >= 1 {
		cfg.HoldoutFraction = 0.2
	}
	return &RadialSearchTrainer{name: name, cfg: cfg, logger: logger}
}

// Name identifies the trainer inside the registry.
func (t *RadialSearchTrainer) Name() string {
	return t.name
}

// Train runs the grid search. If no candidate converges the whole training
// fails; there is no silent fallback to default hyperparameters.
func (t *RadialSearchTrainer) Train(train *features.Matrix) (Model, error) {
	if len(t.cfg.Costs) == 0 || len(t.cfg.Gammas) == 0 {
		return nil, fmt.Errorf("model %s: empty hyperparameter grid", t.name)
	}

	splitter, err := split.New(1-t.cfg.HoldoutFraction, t.cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", t.name, err)
	}
	fit, holdout, err := splitter.Split(train)
	if err != nil {
		return nil, fmt.Errorf("model %s: holdout split: %w", t.name, err)
	}

	type candidate struct {
		cost, gamma float64
	}
	grid := make([]candidate, 0, len(t.cfg.Costs)*len(t.cfg.Gammas))
	for _, cost := range t.cfg.Costs {
		for _, gamma := range t.cfg.Gammas {
			grid = append(grid, candidate{cost: cost, gamma: gamma})
		}
	}

	scores := make([]float64, len(grid))
	fails := make([]error, len(grid))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for idx, cand := range grid {
		g.Go(func() error {
			trainer := NewSVMTrainer(t.name, SVMConfig{
				Columns:   t.cfg.Columns,
				C:         cand.cost,
				Gamma:     cand.gamma,
				MaxPasses: t.cfg.MaxPasses,
				Seed:      t.cfg.Seed,
			})

			m, err := trainer.Train(fit)
			if err != nil {
				// A diverging candidate is recorded, not fatal; the search
				// fails only when every candidate fails.
				fails[idx] = err
				return nil
			}

			predicted, err := Predictions(m, holdout)
			if err != nil {
				fails[idx] = err
				return nil
			}

			correct := 0
			for i, p := range predicted {
				if p == holdout.Labels[i] {
					correct++
				}
			}
			scores[idx] = float64(correct) / float64(len(predicted))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("model %s: grid search: %w", t.name, err)
	}

	best, found := -1, false
	for idx := range grid {
		if fails[idx] != nil {
			continue
		}
		if !found || scores[idx] > scores[best] {
			best, found = idx, true
		}
	}
	if !found {
		return nil, fmt.Errorf("model %s: no hyperparameter candidate converged: %w",
			t.name, errors.Join(fails...))
	}

	t.Best = GridResult{Cost: grid[best].cost, Gamma: grid[best].gamma, Accuracy: scores[best]}
	if t.logger != nil {
		t.logger.Info("grid search selected candidate",
			"model", t.name,
			"cost", t.Best.Cost,
			"gamma", t.Best.Gamma,
			"holdout_accuracy", t.Best.Accuracy)
	}

	winner := NewSVMTrainer(t.name, SVMConfig{
		Columns:   t.cfg.Columns,
		C:         t.Best.Cost,
		Gamma:     t.Best.Gamma,
		MaxPasses: t.cfg.MaxPasses,
		Seed:      t.cfg.Seed,
	})
	m, err := winner.Train(train)
	if err != nil {
		return nil, fmt.Errorf("model %s: refit best candidate: %w", t.name, err)
	}
	return m, nil
}

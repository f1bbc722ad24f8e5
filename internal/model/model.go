// Package model holds the classifier trainers. The forest and SVM cores are
// implemented here directly; each fitted model stays bound to the exact
// ordered column list it was trained on and refuses to score rows that do
// not carry that schema.
package model

import (
	"fmt"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/features"
)

// Model is a fitted classifier bound to its training column schema.
type Model interface {
	Name() string
	Columns() []string
	Predict(row []float64) domain.Label
}

// Trainer fits one named model against the shared training rows.
type Trainer interface {
	Name() string
	Train(train *features.Matrix) (Model, error)
}

// Registry keeps a mapping from trainer names to their implementations.
type Registry struct {
	order    []string
	trainers map[string]Trainer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{trainers: map[string]Trainer{}}
}

// Register adds a trainer; registration order is the training order.
func (r *Registry) Register(t Trainer) {
	if r.trainers == nil {
		r.trainers = map[string]Trainer{}
	}
	if _, ok := r.trainers[t.Name()]; !ok {
		r.order = append(r.order, t.Name())
	}
	r.trainers[t.Name()] = t
}

// Names lists registered trainers in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns a trainer by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Trainer, error) {
	if t, ok := r.trainers[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("trainer %s is not registered", name)
}

// Predictions validates the schema of set against the model's training
// columns and scores every row. A missing column or undefined value is
// fatal, caught before any prediction is made.
func Predictions(m Model, set *features.Matrix) ([]domain.Label, error) {
	sel, err := set.Select(m.Columns())
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name(), err)
	}

	predicted := make([]domain.Label, sel.Rows())
	for i, row := range sel.Data {
		predicted[i] = m.Predict(row)
	}
	return predicted, nil
}

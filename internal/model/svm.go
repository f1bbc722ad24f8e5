package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/features"
)

// ErrNotConverged reports an SMO run that exhausted its iteration budget.
var ErrNotConverged = errors.New("svm: optimizer did not converge")

// SVMConfig configures one support-vector trainer. Gamma > 0 selects the
// radial basis kernel; Gamma == 0 keeps the plain linear kernel.
type SVMConfig struct {
	Columns   []string
	C         float64
	Gamma     float64
	Tol       float64
	MaxPasses int
	Seed      int64
}

// SVMTrainer fits a maximum-margin separator via sequential minimal
// optimization. Features are centered and scaled internally before
// training, matching the reference implementation's default.
type SVMTrainer struct {
	name string
	cfg  SVMConfig
}

var _ Trainer = (*SVMTrainer)(nil)

// NewSVMTrainer builds a trainer; Tol defaults to 1e-3, MaxPasses to 20.
func NewSVMTrainer(name string, cfg SVMConfig) *SVMTrainer {
	if cfg.Tol <= 0 {
		cfg.Tol = 1e-3
	}
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = 20
	}
	return &SVMTrainer{name: name, cfg: cfg}
}

// Name identifies the trainer inside the registry.
func (t *SVMTrainer) Name() string {
	return t.name
}

// Train runs SMO over the training rows. It fails fast on schema violations
// and returns ErrNotConverged when the iteration budget runs out.
func (t *SVMTrainer) Train(train *features.Matrix) (Model, error) {
	sel, err := train.Select(t.cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", t.name, err)
	}
	n := sel.Rows()
	if n < 2 {
		return nil, fmt.Errorf("model %s: need at least 2 training rows, have %d", t.name, n)
	}
	if t.cfg.C <= 0 {
		return nil, fmt.Errorf("model %s: cost %v must be positive", t.name, t.cfg.C)
	}
	if t.cfg.Gamma < 0 {
		return nil, fmt.Errorf("model %s: gamma %v must not be negative", t.name, t.cfg.Gamma)
	}

	means, scales := columnStats(sel.Data)
	x := make([][]float64, n)
	for i, row := range sel.Data {
		x[i] = scaleRow(row, means, scales)
	}

	// Positive class is fake, matching the fixed label ordering.
	y := make([]float64, n)
	for i, label := range train.Labels {
		if label == domain.LabelFake {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}

	kernel := t.kernel()
	gram := make([][]float64, n)
	for i := 0; i < n; i++ {
		gram[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			k := kernel(x[i], x[j])
			gram[i][j] = k
			gram[j][i] = k
		}
	}

	alpha := make([]float64, n)
	b := 0.0
	rng := rand.New(rand.NewSource(t.cfg.Seed))

	f := func(i int) float64 {
		sum := b
		for j := 0; j < n; j++ {
			if alpha[j] != 0 {
				sum += alpha[j] * y[j] * gram[j][i]
			}
		}
		return sum
	}

	const budgetPerPass = 200
	maxIter := budgetPerPass * t.cfg.MaxPasses

	passes, iter := 0, 0
	for passes < t.cfg.MaxPasses {
		if iter >= maxIter {
			return nil, fmt.Errorf("model %s: %w after %d iterations", t.name, ErrNotConverged, iter)
		}
		iter++

		changed := 0
		for i := 0; i < n; i++ {
			ei := f(i) - y[i]
			if !((y[i]*ei < -t.cfg.Tol && alpha[i] < t.cfg.C) ||
				(y[i]*ei > t.cfg.Tol && alpha[i] > 0)) {
				continue
			}

			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			ej := f(j) - y[j]

			alphaIOld, alphaJOld := alpha[i], alpha[j]

			var low, high float64
			if y[i] != y[j] {
				low = math.Max(0, alpha[j]-alpha[i])
				high = math.Min(t.cfg.C, t.cfg.C+alpha[j]-alpha[i])
			} else {
				low = math.Max(0, alpha[i]+alpha[j]-t.cfg.C)
				high = math.Min(t.cfg.C, alpha[i]+alpha[j])
			}
			if low == high {
				continue
			}

			eta := 2*gram[i][j] - gram[i][i] - gram[j][j]
			if eta >= 0 {
				continue
			}

			alpha[j] -= y[j] * (ei - ej) / eta
			alpha[j] = math.Min(high, math.Max(low, alpha[j]))
			if math.Abs(alpha[j]-alphaJOld) < 1e-5 {
				continue
			}

			alpha[i] += y[i] * y[j] * (alphaJOld - alpha[j])

			b1 := b - ei - y[i]*(alpha[i]-alphaIOld)*gram[i][i] - y[j]*(alpha[j]-alphaJOld)*gram[i][j]
			b2 := b - ej - y[i]*(alpha[i]-alphaIOld)*gram[i][j] - y[j]*(alpha[j]-alphaJOld)*gram[j][j]
			switch {
			case alpha[i] > 0 && alpha[i] < t.cfg.C:
				b = b1
			case alpha[j] > 0 && alpha[j] < t.cfg.C:
				b = b2
			default:
				b = (b1 + b2) / 2
			}

			changed++
		}

		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}

	svm := &SVM{
		name:    t.name,
		columns: append([]string(nil), t.cfg.Columns...),
		gamma:   t.cfg.Gamma,
		bias:    b,
		means:   means,
		scales:  scales,
	}
	for i := 0; i < n; i++ {
		if alpha[i] > 0 {
			svm.vectors = append(svm.vectors, x[i])
			svm.weights = append(svm.weights, alpha[i]*y[i])
		}
	}
	if len(svm.vectors) == 0 {
		return nil, fmt.Errorf("model %s: no support vectors retained", t.name)
	}

	return svm, nil
}

func (t *SVMTrainer) kernel() func(a, b []float64) float64 {
	if t.cfg.Gamma > 0 {
		return rbfKernel(t.cfg.Gamma)
	}
	return dot
}

// SVM is a fitted support-vector classifier.
type SVM struct {
	name    string
	columns []string
	gamma   float64
	vectors [][]float64
	weights []float64 // alpha_i * y_i
	bias    float64
	means   []float64
	scales  []float64
}

var _ Model = (*SVM)(nil)

// Name returns the model name.
func (s *SVM) Name() string { return s.name }

// Columns returns the exact ordered training schema.
func (s *SVM) Columns() []string { return append([]string(nil), s.columns...) }

// Predict evaluates the decision function; non-negative margins land on the
// fake side (the positive class).
func (s *SVM) Predict(row []float64) domain.Label {
	scaled := scaleRow(row, s.means, s.scales)

	kernel := dot
	if s.gamma > 0 {
		kernel = rbfKernel(s.gamma)
	}

	sum := s.bias
	for i, v := range s.vectors {
		sum += s.weights[i] * kernel(v, scaled)
	}
	if sum >= 0 {
		return domain.LabelFake
	}
	return domain.LabelReal
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func rbfKernel(gamma float64) func(a, b []float64) float64 {
	return func(a, b []float64) float64 {
		var sq float64
		for i := range a {
			d := a[i] - b[i]
			sq += d * d
		}
		return math.Exp(-gamma * sq)
	}
}

func columnStats(data [][]float64) (means, scales []float64) {
	if len(data) == 0 {
		return nil, nil
	}
	p := len(data[0])
	means = make([]float64, p)
	scales = make([]float64, p)

	for j := 0; j < p; j++ {
		var sum float64
		for _, row := range data {
			sum += row[j]
		}
		means[j] = sum / float64(len(data))

		var sq float64
		for _, row := range data {
			d := row[j] - means[j]
			sq += d * d
		}
		scales[j] = math.Sqrt(sq / float64(len(data)))
		if scales[j] == 0 {
			scales[j] = 1
		}
	}
	return means, scales
}

func scaleRow(row, means, scales []float64) []float64 {
	out := make([]float64, len(row))
	for j := range row {
		out[j] = (row[j] - means[j]) / scales[j]
	}
	return out
}

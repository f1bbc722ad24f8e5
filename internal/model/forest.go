package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/features"
)

// ForestConfig configures one bagged ensemble of Gini decision trees.
type ForestConfig struct {
	Columns []string
	Trees   int
	MinLeaf int
	Seed    int64
}

// ForestTrainer fits a random forest over a named column subset.
type ForestTrainer struct {
	name string
	cfg  ForestConfig
}

var _ Trainer = (*ForestTrainer)(nil)

// NewForestTrainer builds a trainer; Trees defaults to 200, MinLeaf to 1.
func NewForestTrainer(name string, cfg ForestConfig) *ForestTrainer {
	if cfg.Trees <= 0 {
		cfg.Trees = 200
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 1
	}
	return &ForestTrainer{name: name, cfg: cfg}
}

// Name identifies the trainer inside the registry.
func (t *ForestTrainer) Name() string {
	return t.name
}

// Train fits the ensemble on bootstrap samples of the training rows.
func (t *ForestTrainer) Train(train *features.Matrix) (Model, error) {
	sel, err := train.Select(t.cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", t.name, err)
	}
	n, p := sel.Rows(), len(sel.Columns)
	if n == 0 {
		return nil, fmt.Errorf("model %s: no training rows", t.name)
	}

	mtry := int(math.Ceil(math.Sqrt(float64(p))))
	rng := rand.New(rand.NewSource(t.cfg.Seed))

	forest := &Forest{
		name:       t.name,
		columns:    append([]string(nil), t.cfg.Columns...),
		importance: make([]float64, p),
	}

	sample := make([]int, n)
	for i := 0; i < t.cfg.Trees; i++ {
		for j := range sample {
			sample[j] = rng.Intn(n)
		}
		b := treeBuilder{
			data:       sel.Data,
			labels:     train.Labels,
			mtry:       mtry,
			minLeaf:    t.cfg.MinLeaf,
			total:      len(sample),
			rng:        rng,
			importance: forest.importance,
		}
		forest.trees = append(forest.trees, b.build(sample))
	}

	// Average the accumulated impurity decrease over trees.
	for j := range forest.importance {
		forest.importance[j] /= float64(t.cfg.Trees)
	}

	return forest, nil
}

// Forest is a fitted random forest predicting by majority vote.
type Forest struct {
	name       string
	columns    []string
	trees      []*treeNode
	importance []float64
}

var _ Model = (*Forest)(nil)

// Name returns the model name.
func (f *Forest) Name() string { return f.name }

// Columns returns the exact ordered training schema.
func (f *Forest) Columns() []string { return append([]string(nil), f.columns...) }

// Predict votes all trees; ties go to the fake class (label order 0,1).
func (f *Forest) Predict(row []float64) domain.Label {
	votes := 0
	for _, tree := range f.trees {
		if tree.predict(row) == domain.LabelReal {
			votes++
		}
	}
	if votes*2 > len(f.trees) {
		return domain.LabelReal
	}
	return domain.LabelFake
}

// Importance holds the mean impurity decrease attributed to one column.
type Importance struct {
	Column string
	Score  float64
}

// Importance ranks columns by mean Gini impurity decrease, descending.
func (f *Forest) Importance() []Importance {
	ranked := make([]Importance, len(f.columns))
	for i, col := range f.columns {
		ranked[i] = Importance{Column: col, Score: f.importance[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

type treeNode struct {
	leaf      bool
	label     domain.Label
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(row []float64) domain.Label {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.label
}

type treeBuilder struct {
	data       [][]float64
	labels     []domain.Label
	mtry       int
	minLeaf    int
	total      int
	rng        *rand.Rand
	importance []float64
}

func (b *treeBuilder) build(indices []int) *treeNode {
	reals := b.countReal(indices)
	if reals == 0 || reals == len(indices) || len(indices) < 2*b.minLeaf {
		return b.makeLeaf(indices, reals)
	}

	feature, threshold, gain := b.bestSplit(indices, reals)
	if gain <= 0 {
		return b.makeLeaf(indices, reals)
	}

	var left, right []int
	for _, idx := range indices {
		if b.data[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.makeLeaf(indices, reals)
	}

	b.importance[feature] += float64(len(indices)) / float64(b.total) * gain

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left),
		right:     b.build(right),
	}
}

func (b *treeBuilder) countReal(indices []int) int {
	reals := 0
	for _, idx := range indices {
		if b.labels[idx] == domain.LabelReal {
			reals++
		}
	}
	return reals
}

func (b *treeBuilder) makeLeaf(indices []int, reals int) *treeNode {
	label := domain.LabelFake
	if reals*2 > len(indices) {
		label = domain.LabelReal
	}
	return &treeNode{leaf: true, label: label}
}

func gini(reals, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(reals) / float64(total)
	return 2 * p * (1 - p)
}

// bestSplit searches a random mtry-sized feature subset for the threshold
// with the largest Gini impurity decrease.
func (b *treeBuilder) bestSplit(indices []int, reals int) (int, float64, float64) {
	p := len(b.data[0])
	candidates := b.rng.Perm(p)[:b.mtry]

	parent := gini(reals, len(indices))
	total := float64(len(indices))

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0

	type pair struct {
		value float64
		real  bool
	}
	pairs := make([]pair, len(indices))

	for _, feature := range candidates {
		for i, idx := range indices {
			pairs[i] = pair{value: b.data[idx][feature], real: b.labels[idx] == domain.LabelReal}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

		leftN, leftReal := 0, 0
		for i := 0; i < len(pairs)-1; i++ {
			leftN++
			if pairs[i].real {
				leftReal++
			}
			if pairs[i].value == pairs[i+1].value {
				continue
			}

			rightN := len(pairs) - leftN
			rightReal := reals - leftReal
			weighted := (float64(leftN)*gini(leftReal, leftN) +
				float64(rightN)*gini(rightReal, rightN)) / total
			gain := parent - weighted

			if gain > bestGain {
				bestFeature = feature
				bestThreshold = (pairs[i].value + pairs[i+1].value) / 2
				bestGain = gain
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

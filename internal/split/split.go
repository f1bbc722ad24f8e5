// Package split partitions the feature rows into train and test subsets by
// seeded random sampling without replacement. One split is generated per run
// and reused by every model so comparisons share the same held-out rows.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"NewsClassifier/internal/features"
)

// Splitter samples a train fraction of document ids without replacement.
type Splitter struct {
	fraction float64
	seed     int64
}

// New validates the fraction and builds a splitter.
func New(fraction float64, seed int64) (*Splitter, error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, fmt.Errorf("split: fraction %v outside (0,1)", fraction)
	}
	return &Splitter{fraction: fraction, seed: seed}, nil
}

// Split partitions m into disjoint train and test matrices. Given the same
// seed and the same row order the partition is exactly reproducible.
func (s *Splitter) Split(m *features.Matrix) (train, test *features.Matrix, err error) {
	n := m.Rows()
	if n < 2 {
		return nil, nil, fmt.Errorf("split: need at least 2 rows, have %d", n)
	}

	k := int(math.Round(s.fraction * float64(n)))
	if k == 0 || k == n {
		return nil, nil, fmt.Errorf("split: fraction %v leaves an empty partition for %d rows", s.fraction, n)
	}

	perm := rand.New(rand.NewSource(s.seed)).Perm(n)

	trainIdx := append([]int(nil), perm[:k]...)
	testIdx := append([]int(nil), perm[k:]...)
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	return m.Subset(trainIdx), m.Subset(testIdx), nil
}

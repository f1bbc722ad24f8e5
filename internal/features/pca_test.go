package features

import (
	"math"
	"strings"
	"testing"

	"NewsClassifier/internal/domain"
)

func pcaFixture() *Matrix {
	cols := []string{"length", "vocab_size", "richness", "alpha"}
	data := [][]float64{
		{10, 4, 0.40, 2},
		{12, 6, 0.50, 1},
		{20, 9, 0.45, 5},
		{8, 3, 0.375, 0},
		{15, 10, 0.666, 3},
		{30, 12, 0.40, 9},
	}
	docIDs := []string{"d1", "d2", "d3", "d4", "d5", "d6"}
	labels := make([]domain.Label, len(docIDs))
	return &Matrix{Columns: cols, DocIDs: docIDs, Labels: labels, Data: data}
}

func TestTransformAppendsScoreColumns(t *testing.T) {
	t.Parallel()

	m := pcaFixture()
	r := NewReducer(m.Columns, 2)

	reduced, proj, err := r.Transform(m)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	if got := len(reduced.Columns); got != len(m.Columns)+2 {
		t.Fatalf("expected %d columns, got %d", len(m.Columns)+2, got)
	}
	if reduced.Columns[len(reduced.Columns)-2] != "pc1" ||
		reduced.Columns[len(reduced.Columns)-1] != "pc2" {
		t.Fatalf("unexpected score columns: %v", reduced.Columns)
	}

	if len(proj.Explained) != 2 {
		t.Fatalf("expected 2 explained-variance entries, got %d", len(proj.Explained))
	}
	if proj.Explained[0] < proj.Explained[1] {
		t.Fatalf("explained variance not descending: %v", proj.Explained)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	t.Parallel()

	m := pcaFixture()
	d := len(m.Columns)

	// Retaining every component, scores x loadings' must reconstruct the
	// standardized input exactly (up to floating point).
	r := NewReducer(m.Columns, d)
	reduced, proj, err := r.Transform(m)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	base := len(m.Columns)
	for i := range reduced.Data {
		for j := 0; j < d; j++ {
			var rec float64
			for k := 0; k < d; k++ {
				rec += reduced.Data[i][base+k] * proj.Loadings.At(j, k)
			}
			want := (m.Data[i][j] - proj.Means[j]) / proj.Scales[j]
			if math.Abs(rec-want) > 1e-8 {
				t.Fatalf("reconstruction mismatch at row %d col %d: %v vs %v", i, j, rec, want)
			}
		}
	}
}

func TestTransformDeterministic(t *testing.T) {
	t.Parallel()

	m := pcaFixture()
	r := NewReducer(m.Columns, 2)

	first, _, err := r.Transform(m)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	second, _, err := r.Transform(m)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	for i := range first.Data {
		for j := range first.Data[i] {
			if first.Data[i][j] != second.Data[i][j] {
				t.Fatalf("non-deterministic score at [%d][%d]", i, j)
			}
		}
	}
}

func TestTransformRejectsZeroVariance(t *testing.T) {
	t.Parallel()

	m := pcaFixture()
	for i := range m.Data {
		m.Data[i][3] = 7 // constant column
	}

	r := NewReducer(m.Columns, 2)
	if _, _, err := r.Transform(m); err == nil {
		t.Fatal("expected zero-variance error")
	}
}

func TestTransformRejectsTooManyComponents(t *testing.T) {
	t.Parallel()

	m := pcaFixture()
	r := NewReducer(m.Columns, len(m.Columns)+1)
	if _, _, err := r.Transform(m); err == nil {
		t.Fatal("expected component-count error")
	}
}

func TestTransformRejectsFewerRowsThanComponents(t *testing.T) {
	t.Parallel()

	m := pcaFixture()
	m.DocIDs = m.DocIDs[:3]
	m.Labels = m.Labels[:3]
	m.Data = m.Data[:3]

	// 3 documents cannot support 4 components even with 4 columns.
	r := NewReducer(m.Columns, len(m.Columns))
	_, _, err := r.Transform(m)
	if err == nil {
		t.Fatal("expected component-count error for a small document set")
	}
	if !strings.Contains(err.Error(), "3 documents") {
		t.Fatalf("error does not name the row count: %v", err)
	}
}

package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection captures the fitted standardization and loadings so scores can
// be reproduced and reconstruction can be checked.
type Projection struct {
	Columns  []string
	Means    []float64
	Scales   []float64
	Loadings *mat.Dense // d x k, columns ordered by descending variance
	// Explained holds the proportion of total variance captured by each
	// retained component.
	Explained []float64
}

// Reducer standardizes a fixed curated column subset and appends the leading
// principal-component scores as new feature columns.
//
// Standardization statistics are computed over the full dataset being
// reduced, not per split. That reproduces the source analysis and is a
// documented train/test leakage, kept deliberately for fidelity.
type Reducer struct {
	columns    []string
	components int
}

// NewReducer builds a reducer over the given columns (the three scalar
// features plus the curated token list) retaining the given component count.
func NewReducer(columns []string, components int) *Reducer {
	return &Reducer{columns: columns, components: components}
}

// Transform fits the projection on m and returns a new matrix with pc1..pcN
// columns appended to every row.
func (r *Reducer) Transform(m *Matrix) (*Matrix, *Projection, error) {
	if r.components < 1 {
		return nil, nil, fmt.Errorf("features: component count %d must be positive", r.components)
	}

	sel, err := m.Select(r.columns)
	if err != nil {
		return nil, nil, fmt.Errorf("features: pca input: %w", err)
	}

	n, d := sel.Rows(), len(sel.Columns)
	if r.components > d {
		return nil, nil, fmt.Errorf("features: cannot retain %d components from %d columns", r.components, d)
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("features: pca needs at least 2 documents, have %d", n)
	}
	// The decomposition yields at most min(n, d) components.
	if r.components > n {
		return nil, nil, fmt.Errorf("features: cannot retain %d components from %d documents", r.components, n)
	}

	means := make([]float64, d)
	scales := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		for i := 0; i < n; i++ {
			col[i] = sel.Data[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			return nil, nil, fmt.Errorf("features: column %q has zero variance, cannot scale", sel.Columns[j])
		}
		means[j] = mean
		scales[j] = std
	}

	standardized := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			standardized.Set(i, j, (sel.Data[i][j]-means[j])/scales[j])
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(standardized, nil); !ok {
		return nil, nil, fmt.Errorf("features: principal component decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	loadings := mat.NewDense(d, r.components, nil)
	for j := 0; j < r.components; j++ {
		for i := 0; i < d; i++ {
			loadings.Set(i, j, vecs.At(i, j))
		}
	}

	var total float64
	for _, v := range vars {
		total += v
	}
	explained := make([]float64, r.components)
	for j := 0; j < r.components; j++ {
		explained[j] = vars[j] / total
	}

	var scores mat.Dense
	scores.Mul(standardized, loadings)

	columns := append([]string(nil), m.Columns...)
	for j := 0; j < r.components; j++ {
		columns = append(columns, fmt.Sprintf("pc%d", j+1))
	}

	data := make([][]float64, m.Rows())
	for i, row := range m.Data {
		out := make([]float64, 0, len(columns))
		out = append(out, row...)
		for j := 0; j < r.components; j++ {
			out = append(out, scores.At(i, j))
		}
		data[i] = out
	}

	projection := &Projection{
		Columns:   append([]string(nil), sel.Columns...),
		Means:     means,
		Scales:    scales,
		Loadings:  loadings,
		Explained: explained,
	}

	reduced := &Matrix{Columns: columns, DocIDs: m.DocIDs, Labels: m.Labels, Data: data}
	return reduced, projection, nil
}

// ComponentColumns lists the score column names a reducer appends.
func (r *Reducer) ComponentColumns() []string {
	names := make([]string, r.components)
	for j := range names {
		names[j] = fmt.Sprintf("pc%d", j+1)
	}
	return names
}

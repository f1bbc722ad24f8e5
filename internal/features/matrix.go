// Package features turns the filtered token relation into the wide
// document-feature matrix and derives the PCA score columns.
package features

import (
	"fmt"
	"math"

	"NewsClassifier/internal/corpus"
	"NewsClassifier/internal/domain"
)

// Names of the hand-built scalar feature columns.
const (
	ColLength    = "length"
	ColVocabSize = "vocab_size"
	ColRichness  = "richness"
)

// Matrix is the document-feature table. The column set and order are
// identical across all rows; token cells for absent tokens hold 0, never a
// missing value.
type Matrix struct {
	Columns []string
	DocIDs  []string
	Labels  []domain.Label
	Data    [][]float64
}

// Rows reports the number of document rows.
func (m *Matrix) Rows() int {
	return len(m.Data)
}

// ColumnIndex locates a column by name.
func (m *Matrix) ColumnIndex(name string) (int, bool) {
	for i, c := range m.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Select restricts the matrix to the named columns in the given order. A
// missing column or a NaN cell is a schema violation and fails fast.
func (m *Matrix) Select(columns []string) (*Matrix, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := m.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("features: column %q absent from matrix", name)
		}
		indices[i] = idx
	}

	data := make([][]float64, len(m.Data))
	for r, row := range m.Data {
		out := make([]float64, len(indices))
		for i, idx := range indices {
			v := row[idx]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("features: document %s has undefined value in column %q",
					m.DocIDs[r], columns[i])
			}
			out[i] = v
		}
		data[r] = out
	}

	return &Matrix{
		Columns: append([]string(nil), columns...),
		DocIDs:  m.DocIDs,
		Labels:  m.Labels,
		Data:    data,
	}, nil
}

// Subset returns the rows at the given indices, preserving index order.
func (m *Matrix) Subset(indices []int) *Matrix {
	docIDs := make([]string, len(indices))
	labels := make([]domain.Label, len(indices))
	data := make([][]float64, len(indices))
	for i, idx := range indices {
		docIDs[i] = m.DocIDs[idx]
		labels[i] = m.Labels[idx]
		data[i] = m.Data[idx]
	}
	return &Matrix{Columns: m.Columns, DocIDs: docIDs, Labels: labels, Data: data}
}

// Build pivots the filtered relation into the wide matrix with the three
// scalar features prepended. The join is anchored on documents that carry at
// least one surviving token: a document whose tokens were all filtered out
// has no row here and is dropped from modeling, which is deliberate.
func Build(filtered corpus.FilterResult) (*Matrix, error) {
	type docAgg struct {
		label  domain.Label
		length int
		counts map[string]int
	}

	var order []string
	aggs := map[string]*docAgg{}

	for _, c := range filtered.Counts {
		if c.Count <= 0 {
			return nil, fmt.Errorf("features: document %s has non-positive count for token %q",
				c.DocID, c.Token)
		}
		agg, ok := aggs[c.DocID]
		if !ok {
			agg = &docAgg{label: c.Label, counts: map[string]int{}}
			aggs[c.DocID] = agg
			order = append(order, c.DocID)
		}
		agg.length += c.Count
		agg.counts[c.Token] += c.Count
	}

	if len(order) == 0 {
		return nil, corpus.ErrEmptyCorpus
	}

	columns := make([]string, 0, 3+len(filtered.Vocabulary))
	columns = append(columns, ColLength, ColVocabSize, ColRichness)
	columns = append(columns, filtered.Vocabulary...)

	m := &Matrix{
		Columns: columns,
		DocIDs:  make([]string, 0, len(order)),
		Labels:  make([]domain.Label, 0, len(order)),
		Data:    make([][]float64, 0, len(order)),
	}

	for _, docID := range order {
		agg := aggs[docID]
		if agg.length == 0 {
			return nil, fmt.Errorf("features: document %s has zero length, richness undefined", docID)
		}

		row := make([]float64, len(columns))
		row[0] = float64(agg.length)
		row[1] = float64(len(agg.counts))
		row[2] = float64(len(agg.counts)) / float64(agg.length)
		for i, token := range filtered.Vocabulary {
			row[3+i] = float64(agg.counts[token])
		}

		m.DocIDs = append(m.DocIDs, docID)
		m.Labels = append(m.Labels, agg.label)
		m.Data = append(m.Data, row)
	}

	return m, nil
}

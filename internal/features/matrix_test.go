package features

import (
	"strings"
	"testing"

	"NewsClassifier/internal/corpus"
	"NewsClassifier/internal/domain"
)

func fixtureFiltered() corpus.FilterResult {
	return corpus.FilterResult{
		Counts: []domain.TokenCount{
			{DocID: "d1", Label: domain.LabelFake, Token: "alpha", Count: 3},
			{DocID: "d1", Label: domain.LabelFake, Token: "beta", Count: 1},
			{DocID: "d2", Label: domain.LabelReal, Token: "beta", Count: 2},
		},
		Vocabulary: []string{"alpha", "beta"},
	}
}

func TestBuildScalarAndTokenColumns(t *testing.T) {
	t.Parallel()

	m, err := Build(fixtureFiltered())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	wantCols := []string{"length", "vocab_size", "richness", "alpha", "beta"}
	if strings.Join(m.Columns, ",") != strings.Join(wantCols, ",") {
		t.Fatalf("unexpected columns: %v", m.Columns)
	}

	if m.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", m.Rows())
	}

	// d1: length 4, vocab 2, richness 0.5, alpha 3, beta 1.
	row := m.Data[0]
	if row[0] != 4 || row[1] != 2 || row[2] != 0.5 || row[3] != 3 || row[4] != 1 {
		t.Fatalf("unexpected d1 row: %v", row)
	}

	// d2 never saw alpha: the cell is 0, not missing.
	row = m.Data[1]
	if row[3] != 0 || row[4] != 2 {
		t.Fatalf("unexpected d2 token cells: %v", row)
	}
}

func TestBuildInvariants(t *testing.T) {
	t.Parallel()

	m, err := Build(fixtureFiltered())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for r, row := range m.Data {
		length, vocabSize, richness := row[0], row[1], row[2]

		if richness <= 0 || richness > 1 {
			t.Fatalf("row %d richness %v outside (0,1]", r, richness)
		}
		if vocabSize > length {
			t.Fatalf("row %d vocab_size %v exceeds length %v", r, vocabSize, length)
		}

		// Every row's token cells sum to exactly that document's length.
		var sum float64
		for i := 3; i < len(row); i++ {
			sum += row[i]
		}
		if sum != length {
			t.Fatalf("row %d token cells sum to %v, length is %v", r, sum, length)
		}
	}
}

func TestSelectMissingColumnFails(t *testing.T) {
	t.Parallel()

	m, err := Build(fixtureFiltered())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if _, err := m.Select([]string{"length", "no_such_token"}); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestSelectPreservesRequestedOrder(t *testing.T) {
	t.Parallel()

	m, err := Build(fixtureFiltered())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	sub, err := m.Select([]string{"beta", "length"})
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	if sub.Columns[0] != "beta" || sub.Columns[1] != "length" {
		t.Fatalf("unexpected column order: %v", sub.Columns)
	}
	if sub.Data[0][0] != 1 || sub.Data[0][1] != 4 {
		t.Fatalf("unexpected values: %v", sub.Data[0])
	}
}

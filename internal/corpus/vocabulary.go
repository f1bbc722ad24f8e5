// Package corpus aggregates per-document token counts and applies the
// mean-frequency vocabulary filter. The threshold (corpus mean of per-token
// totals) is a heuristic carried over from the source analysis; it is a
// policy knob, not a statistically justified cutoff.
package corpus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"NewsClassifier/internal/domain"
)

// ErrEmptyCorpus signals that the filter ran over zero token occurrences,
// which leaves the mean undefined. This is a fatal precondition violation.
var ErrEmptyCorpus = errors.New("corpus: no token occurrences, mean frequency undefined")

// FilterResult carries the filtered relation and the surviving vocabulary.
type FilterResult struct {
	// Counts is the filtered (doc, label, token, count) relation in the
	// original order, minus occurrences of discarded tokens.
	Counts []domain.TokenCount
	// Vocabulary is the sorted set of surviving tokens.
	Vocabulary []string
	// Mean is the threshold that was applied.
	Mean float64
}

// TokenTotals sums counts per token across the whole corpus.
func TokenTotals(counts []domain.TokenCount) map[string]int {
	totals := make(map[string]int)
	for _, c := range counts {
		totals[c.Token] += c.Count
	}
	return totals
}

// Filter retains a token iff its corpus-wide total count is at least the
// arithmetic mean of all distinct tokens' totals. Ties with the mean are
// retained (>=, the fixed policy of the source analysis).
func Filter(counts []domain.TokenCount) (FilterResult, error) {
	if len(counts) == 0 {
		return FilterResult{}, ErrEmptyCorpus
	}

	totals := TokenTotals(counts)

	values := make([]float64, 0, len(totals))
	for _, total := range totals {
		values = append(values, float64(total))
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return FilterResult{}, fmt.Errorf("corpus: mean total frequency: %w", err)
	}

	keep := make(map[string]struct{}, len(totals))
	for token, total := range totals {
		if float64(total) >= mean {
			keep[token] = struct{}{}
		}
	}

	if len(keep) == 0 {
		return FilterResult{}, fmt.Errorf("corpus: no token survived the mean threshold %.4f", mean)
	}

	filtered := make([]domain.TokenCount, 0, len(counts))
	for _, c := range counts {
		if _, ok := keep[c.Token]; ok {
			filtered = append(filtered, c)
		}
	}

	vocabulary := make([]string, 0, len(keep))
	for token := range keep {
		vocabulary = append(vocabulary, token)
	}
	sort.Strings(vocabulary)

	return FilterResult{Counts: filtered, Vocabulary: vocabulary, Mean: mean}, nil
}

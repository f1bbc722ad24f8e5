package textproc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kljensen/snowball"

	"NewsClassifier/internal/domain"
)

// Tokenizer splits normalized text into whitespace-delimited words, drops
// stop-words and reduces survivors to their stem. Stemming is a pure
// function of the token string, so repeated runs are reproducible.
type Tokenizer struct {
	stop     map[string]struct{}
	language string
}

// NewTokenizer builds a tokenizer from a stop-word list and a snowball
// language name ("english" in the source analysis).
func NewTokenizer(stopWords []string, language string) *Tokenizer {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[w] = struct{}{}
	}
	return &Tokenizer{stop: stop, language: language}
}

// Counts tokenizes one document and aggregates stem frequencies. The result
// is sorted by token so downstream output is deterministic.
func (t *Tokenizer) Counts(doc domain.Document, normalized string) ([]domain.TokenCount, error) {
	freq := map[string]int{}

	for _, word := range strings.Fields(normalized) {
		if _, skip := t.stop[word]; skip {
			continue
		}

		stem, err := snowball.Stem(word, t.language, false)
		if err != nil {
			return nil, fmt.Errorf("stem %q: %w", word, err)
		}
		if stem == "" {
			continue
		}
		freq[stem]++
	}

	tokens := make([]string, 0, len(freq))
	for token := range freq {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	counts := make([]domain.TokenCount, 0, len(tokens))
	for _, token := range tokens {
		counts = append(counts, domain.TokenCount{
			DocID: doc.ID,
			Label: doc.Label,
			Token: token,
			Count: freq[token],
		})
	}
	return counts, nil
}

package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Normalizer lower-cases document text and strips punctuation characters.
// Punctuation is replaced with nothing, not whitespace, so tokens adjacent
// to punctuation merge only when no surrounding whitespace existed.
type Normalizer struct {
	stripMarkup bool
}

// NewNormalizer builds a normalizer; stripMarkup removes HTML tags first.
func NewNormalizer(stripMarkup bool) *Normalizer {
	return &Normalizer{stripMarkup: stripMarkup}
}

// Normalize returns the cleaned text. Empty input yields empty output.
func (n *Normalizer) Normalize(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	if n.stripMarkup && strings.ContainsRune(text, '<') {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
		if err != nil {
			return "", fmt.Errorf("strip markup: %w", err)
		}
		text = doc.Text()
	}

	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return unicode.ToLower(r)
		case unicode.IsDigit(r) || unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text), nil
}

package domain

import "fmt"

// Label is the two-valued class of a document. The level ordering is fixed
// for the whole pipeline: 0 = fake, 1 = real.
type Label int

const (
	LabelFake Label = 0
	LabelReal Label = 1
)

// String renders the label the way reports print it.
func (l Label) String() string {
	if l == LabelFake {
		return "fake"
	}
	return "real"
}

// ParseLabel converts the raw dataset column value into a Label.
func ParseLabel(value string) (Label, error) {
	switch value {
	case "0":
		return LabelFake, nil
	case "1":
		return LabelReal, nil
	}
	return 0, fmt.Errorf("label %q is not one of {0,1}", value)
}

// Document is a single ingested article. Immutable after ingestion.
type Document struct {
	ID    string
	Title string
	Text  string
	Label Label
}

// TokenCount records how often one stemmed token occurs in one document.
type TokenCount struct {
	DocID string
	Label Label
	Token string
	Count int
}

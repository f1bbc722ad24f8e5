package textproc

import "testing"

func TestNormalizeStripsPunctuation(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(false)

	out, err := n.Normalize("Breaking: Senate votes 52-48, 'historic'!")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	want := "breaking senate votes 5248 historic"
	if out != want {
		t.Fatalf("unexpected output: %q, want %q", out, want)
	}
}

func TestNormalizeConcatenatesAcrossPunctuation(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(false)

	// Punctuation becomes empty, not whitespace, so glued words stay glued.
	out, err := n.Normalize("co-operate U.S.A.")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	if out != "cooperate usa" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(false)

	out, err := n.Normalize("")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestNormalizeStripsMarkup(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(true)

	out, err := n.Normalize("<p>Hello <b>World</b>!</p>")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	if out != "hello world" {
		t.Fatalf("unexpected output: %q", out)
	}
}

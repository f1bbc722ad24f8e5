// Package ingest reads the delimited news dataset from disk.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/ports"
)

var expectedHeader = []string{"id", "title", "text", "label"}

// CSVSource loads (id, title, text, label) records from a delimited file.
// The delimiter is configurable because the source dataset convention is
// semicolon, not comma.
type CSVSource struct {
	path      string
	delimiter rune
	logger    *slog.Logger
}

var _ ports.DocumentSource = (*CSVSource)(nil)

// NewCSVSource validates the delimiter and builds a source.
func NewCSVSource(path, delimiter string, logger *slog.Logger) (*CSVSource, error) {
	if utf8.RuneCountInString(delimiter) != 1 {
		return nil, fmt.Errorf("ingest: delimiter %q must be exactly one character", delimiter)
	}
	r, _ := utf8.DecodeRuneInString(delimiter)
	return &CSVSource{path: path, delimiter: r, logger: logger}, nil
}

// Load reads and validates the whole dataset. Any shape problem (missing
// header, wrong column count, unknown label, duplicate id) aborts before
// any processing happens downstream.
func (s *CSVSource) Load(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = s.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = len(expectedHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}
	for i, want := range expectedHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != want {
			return nil, fmt.Errorf("ingest: header column %d is %q, want %q", i, header[i], want)
		}
	}

	var docs []domain.Document
	seen := map[string]struct{}{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read record %d: %w", len(docs)+1, err)
		}

		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("ingest: record %d has empty id", len(docs)+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("ingest: duplicate document id %q", id)
		}
		seen[id] = struct{}{}

		label, err := domain.ParseLabel(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("ingest: document %s: %w", id, err)
		}

		docs = append(docs, domain.Document{
			ID:    id,
			Title: record[1],
			Text:  record[2],
			Label: label,
		})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("ingest: dataset %s contains no documents", s.path)
	}

	if s.logger != nil {
		s.logger.Info("dataset loaded", "path", s.path, "documents", len(docs))
	}
	return docs, nil
}

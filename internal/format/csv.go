package format

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

// CSVFormatter renders snippets as text,start,duration rows. Fields
// containing the delimiter, quotes or line breaks are quoted per RFC 4180.
type CSVFormatter struct {
	header bool
}

// CSVOption configures a CSVFormatter.
type CSVOption func(*CSVFormatter)

// WithHeader toggles the header row. On by default.
func WithHeader(enabled bool) CSVOption {
	return func(f *CSVFormatter) {
		f.header = enabled
	}
}

// NewCSVFormatter creates a CSV formatter.
func NewCSVFormatter(opts ...CSVOption) *CSVFormatter {
	f := &CSVFormatter{header: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *CSVFormatter) Format(t *youtube.Transcript) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if f.header {
		if err := w.Write([]string{"text", "start", "duration"}); err != nil {
			return "", fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	for _, s := range t.Snippets {
		record := []string{
			s.Text,
			strconv.FormatFloat(s.Start, 'f', -1, 64),
			strconv.FormatFloat(s.Duration, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.String(), nil
}

func (f *CSVFormatter) Extension() string { return "csv" }

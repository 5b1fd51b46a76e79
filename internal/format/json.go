package format

import (
	"encoding/json"
	"fmt"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

// JSONFormatter renders the snippet array, or the whole transcript record
// when metadata is requested.
type JSONFormatter struct {
	indent   bool
	metadata bool
}

// JSONOption configures a JSONFormatter.
type JSONOption func(*JSONFormatter)

// WithIndent switches to indented output.
func WithIndent(enabled bool) JSONOption {
	return func(f *JSONFormatter) {
		f.indent = enabled
	}
}

// WithMetadata includes video id, language and origin flags alongside the
// snippets.
func WithMetadata(enabled bool) JSONOption {
	return func(f *JSONFormatter) {
		f.metadata = enabled
	}
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *JSONFormatter) Format(t *youtube.Transcript) (string, error) {
	var value interface{} = t.Snippets
	if f.metadata {
		value = t
	}

	var (
		data []byte
		err  error
	)
	if f.indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return string(data), nil
}

func (f *JSONFormatter) Extension() string { return "json" }

package format

import (
	"fmt"
	"strings"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

// TextFormatter renders snippet texts as newline-joined plain text,
// optionally prefixed with second offsets.
type TextFormatter struct {
	timestamps bool
}

// TextOption configures a TextFormatter.
type TextOption func(*TextFormatter)

// WithTimestamps prefixes every line with its start offset in seconds.
func WithTimestamps(enabled bool) TextOption {
	return func(f *TextFormatter) {
		f.timestamps = enabled
	}
}

// NewTextFormatter creates a plain-text formatter.
func NewTextFormatter(opts ...TextOption) *TextFormatter {
	f := &TextFormatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *TextFormatter) Format(t *youtube.Transcript) (string, error) {
	lines := make([]string, len(t.Snippets))
	for i, s := range t.Snippets {
		if f.timestamps {
			lines[i] = fmt.Sprintf("[%g] %s", s.Start, s.Text)
		} else {
			lines[i] = s.Text
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (f *TextFormatter) Extension() string { return "txt" }

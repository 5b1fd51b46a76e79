// Package format renders fetched transcripts into the supported output
// documents. Formatters are pure functions over the transcript model and
// know nothing about how it was resolved.
package format

import (
	"fmt"
	"math"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

// Formatter renders one transcript into a string document.
type Formatter interface {
	Format(t *youtube.Transcript) (string, error)
	// Extension is the conventional file extension, without the dot.
	Extension() string
}

// Names returns the formatter names accepted by New.
func Names() []string {
	return []string{"text", "pretty", "json", "json-pretty", "json-meta", "webvtt", "srt", "csv"}
}

// New creates a formatter by name.
func New(name string) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(), nil
	case "pretty":
		return NewTextFormatter(WithTimestamps(true)), nil
	case "json":
		return NewJSONFormatter(), nil
	case "json-pretty":
		return NewJSONFormatter(WithIndent(true)), nil
	case "json-meta":
		return NewJSONFormatter(WithMetadata(true), WithIndent(true)), nil
	case "webvtt":
		return NewWebVTTFormatter(), nil
	case "srt":
		return NewSRTFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown formatter %q (supported: %v)", name, Names())
	}
}

// Compile-time interface checks.
var (
	_ Formatter = (*TextFormatter)(nil)
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*WebVTTFormatter)(nil)
	_ Formatter = (*SRTFormatter)(nil)
	_ Formatter = (*CSVFormatter)(nil)
)

// cueEnd computes the end time of cue i: start+duration, capped at the next
// cue's start when tracks overlap. Generated tracks overlap routinely.
func cueEnd(snippets []youtube.Snippet, i int) float64 {
	end := snippets[i].Start + snippets[i].Duration
	if i+1 < len(snippets) {
		end = math.Min(end, snippets[i+1].Start)
	}
	return end
}

// splitTimestamp breaks a second offset into clock components.
func splitTimestamp(seconds float64) (h, m, s, ms int) {
	total := int(math.Round(seconds * 1000))
	if total < 0 {
		total = 0
	}
	ms = total % 1000
	total /= 1000
	s = total % 60
	total /= 60
	m = total % 60
	h = total / 60
	return h, m, s, ms
}

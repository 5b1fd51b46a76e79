package format

import (
	"fmt"
	"strings"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

// WebVTTFormatter renders a WebVTT document. The hour field is always
// emitted, even when zero.
type WebVTTFormatter struct{}

// NewWebVTTFormatter creates a WebVTT formatter.
func NewWebVTTFormatter() *WebVTTFormatter {
	return &WebVTTFormatter{}
}

func (f *WebVTTFormatter) Format(t *youtube.Transcript) (string, error) {
	var b strings.Builder
	b.WriteString("WEBVTT\n")
	for i, s := range t.Snippets {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s --> %s\n", vttTimestamp(s.Start), vttTimestamp(cueEnd(t.Snippets, i)))
		b.WriteString(s.Text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (f *WebVTTFormatter) Extension() string { return "vtt" }

func vttTimestamp(seconds float64) string {
	h, m, s, ms := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

package format

import (
	"fmt"
	"strings"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

// SRTFormatter renders a SubRip document: 1-based cue indices and
// comma-decimal timings.
type SRTFormatter struct{}

// NewSRTFormatter creates a SubRip formatter.
func NewSRTFormatter() *SRTFormatter {
	return &SRTFormatter{}
}

func (f *SRTFormatter) Format(t *youtube.Transcript) (string, error) {
	var b strings.Builder
	for i, s := range t.Snippets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTimestamp(s.Start), srtTimestamp(cueEnd(t.Snippets, i)))
		b.WriteString(s.Text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (f *SRTFormatter) Extension() string { return "srt" }

func srtTimestamp(seconds float64) string {
	h, m, s, ms := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

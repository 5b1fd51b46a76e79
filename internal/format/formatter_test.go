package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

func sampleTranscript() *youtube.Transcript {
	return &youtube.Transcript{
		VideoID:      "vid01",
		Language:     "English",
		LanguageCode: "en",
		Snippets: []youtube.Snippet{
			{Text: "hello there", Start: 0, Duration: 1.5},
			{Text: "general speaking", Start: 1.5, Duration: 2},
		},
	}
}

func TestNewKnowsEveryName(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, f.Extension(), name)
	}
}

func TestNewUnknownName(t *testing.T) {
	_, err := New("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"yaml"`)
}

func TestCueEndCapsAtNextStart(t *testing.T) {
	snippets := []youtube.Snippet{
		{Start: 0, Duration: 5},
		{Start: 2, Duration: 1},
	}
	// First cue overlaps the second and gets clipped.
	assert.Equal(t, 2.0, cueEnd(snippets, 0))
	// Last cue keeps its full duration.
	assert.Equal(t, 3.0, cueEnd(snippets, 1))
}

func TestSplitTimestamp(t *testing.T) {
	tests := []struct {
		seconds     float64
		h, m, s, ms int
	}{
		{0, 0, 0, 0, 0},
		{1.5, 0, 0, 1, 500},
		{61.25, 0, 1, 1, 250},
		{3723.042, 1, 2, 3, 42},
		{0.0005, 0, 0, 0, 1},
		{-1, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		h, m, s, ms := splitTimestamp(tt.seconds)
		assert.Equal(t, []int{tt.h, tt.m, tt.s, tt.ms}, []int{h, m, s, ms}, "%v", tt.seconds)
	}
}

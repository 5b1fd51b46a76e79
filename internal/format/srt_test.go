package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

func TestSRTFormatter(t *testing.T) {
	out, err := NewSRTFormatter().Format(sampleTranscript())
	require.NoError(t, err)

	want := "1\n" +
		"00:00:00,000 --> 00:00:01,500\n" +
		"hello there\n" +
		"\n" +
		"2\n" +
		"00:00:01,500 --> 00:00:03,500\n" +
		"general speaking\n"
	assert.Equal(t, want, out)
}

func TestSRTFormatterHourRollover(t *testing.T) {
	transcript := &youtube.Transcript{
		Snippets: []youtube.Snippet{
			{Text: "late cue", Start: 3723.042, Duration: 1},
		},
	}

	out, err := NewSRTFormatter().Format(transcript)
	require.NoError(t, err)
	assert.Contains(t, out, "01:02:03,042 --> 01:02:04,042")
}

func TestSRTFormatterEmpty(t *testing.T) {
	out, err := NewSRTFormatter().Format(&youtube.Transcript{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

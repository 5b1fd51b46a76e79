package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/youtube-transcript/internal/youtube"
)

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSONFormatter().Format(sampleTranscript())
	require.NoError(t, err)

	assert.Equal(t, `[{"text":"hello there","start":0,"duration":1.5},{"text":"general speaking","start":1.5,"duration":2}]`, out)
}

func TestJSONFormatterIndented(t *testing.T) {
	out, err := NewJSONFormatter(WithIndent(true)).Format(sampleTranscript())
	require.NoError(t, err)

	assert.Contains(t, out, "\n  {")

	var snippets []youtube.Snippet
	require.NoError(t, json.Unmarshal([]byte(out), &snippets))
	assert.Equal(t, sampleTranscript().Snippets, snippets)
}

func TestJSONFormatterWithMetadata(t *testing.T) {
	out, err := NewJSONFormatter(WithMetadata(true)).Format(sampleTranscript())
	require.NoError(t, err)

	var decoded youtube.Transcript
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "vid01", decoded.VideoID)
	assert.Equal(t, "en", decoded.LanguageCode)
	assert.Len(t, decoded.Snippets, 2)
}

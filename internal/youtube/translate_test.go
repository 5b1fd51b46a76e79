package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translatableTrack() *CaptionTrack {
	return &CaptionTrack{
		VideoID:        "abc",
		Language:       "English",
		LanguageCode:   "en",
		IsTranslatable: true,
		TranslationLanguages: []TranslationLanguage{
			{Language: "German", LanguageCode: "de"},
			{Language: "French", LanguageCode: "fr"},
		},
		baseURL: "https://www.youtube.com/api/timedtext?v=abc&lang=en",
	}
}

func TestTranslate(t *testing.T) {
	translated, err := translatableTrack().Translate("de")
	require.NoError(t, err)

	assert.Equal(t, "German", translated.Language)
	// The language code stays the base track's code; upstream behaves this
	// way and consumers depend on it.
	assert.Equal(t, "en", translated.LanguageCode)
	assert.Equal(t, "de", translated.TranslatedTo)
	assert.True(t, translated.IsTranslated())
	assert.Contains(t, translated.baseURL, "tlang=de")
}

func TestTranslateReplacesExistingParam(t *testing.T) {
	track := translatableTrack()
	track.baseURL = "https://www.youtube.com/api/timedtext?v=abc&lang=en&tlang=fr"

	translated, err := track.Translate("de")
	require.NoError(t, err)
	assert.Contains(t, translated.baseURL, "tlang=de")
	assert.NotContains(t, translated.baseURL, "tlang=fr")
}

func TestTranslateResultIsNotTranslatable(t *testing.T) {
	translated, err := translatableTrack().Translate("de")
	require.NoError(t, err)

	// No chained translations.
	assert.False(t, translated.IsTranslatable)
	assert.Empty(t, translated.TranslationLanguages)

	_, err = translated.Translate("fr")
	var unavailable *TranslationUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestTranslateUnknownTarget(t *testing.T) {
	_, err := translatableTrack().Translate("ja")

	var unavailable *TranslationUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "ja", unavailable.Target)
	assert.Contains(t, unavailable.Error(), "abc")
}

func TestTranslateNotTranslatable(t *testing.T) {
	track := &CaptionTrack{VideoID: "abc", LanguageCode: "en"}
	_, err := track.Translate("de")

	var unavailable *TranslationUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestSetQueryParam(t *testing.T) {
	assert.Contains(t, setQueryParam("https://x.test/tt?a=1", "tlang", "de"), "tlang=de")
	assert.Contains(t, setQueryParam("https://x.test/tt?tlang=fr", "tlang", "de"), "tlang=de")
}

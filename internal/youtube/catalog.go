package youtube

import (
	"encoding/json"
	"net/url"
	"strings"
)

// generatedTrackKind tags auto-generated (speech recognition) tracks in the
// upstream catalog. Undocumented; pinned by tests.
const generatedTrackKind = "asr"

// textRuns covers the two equivalent shapes upstream uses for display
// strings: a runs array or a bare simpleText field.
type textRuns struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t textRuns) text() string {
	if len(t.Runs) > 0 {
		return t.Runs[0].Text
	}
	return t.SimpleText
}

// tracklistRenderer is the caption catalog object. Track and translation
// entries are kept raw so one malformed entry cannot sink the whole list.
type tracklistRenderer struct {
	CaptionTracks        []json.RawMessage `json:"captionTracks"`
	TranslationLanguages []json.RawMessage `json:"translationLanguages"`
}

type captionTrackJSON struct {
	BaseURL        string   `json:"baseUrl"`
	Name           textRuns `json:"name"`
	LanguageCode   string   `json:"languageCode"`
	Kind           string   `json:"kind"`
	IsTranslatable bool     `json:"isTranslatable"`
}

type translationLanguageJSON struct {
	LanguageName textRuns `json:"languageName"`
	LanguageCode string   `json:"languageCode"`
}

// rendererStrategies enumerates the equivalent shapes the captions blob has
// been observed in, most common first. The first shape that yields a
// renderer with tracks wins.
var rendererStrategies = []func(json.RawMessage) *tracklistRenderer{
	// {"playerCaptionsTracklistRenderer": {...}}
	wrappedRenderer("playerCaptionsTracklistRenderer"),
	// Older responses used a different wrapper key.
	wrappedRenderer("playerCaptionsRenderer"),
	// The renderer object itself, already unwrapped.
	directRenderer,
}

func wrappedRenderer(key string) func(json.RawMessage) *tracklistRenderer {
	return func(raw json.RawMessage) *tracklistRenderer {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil
		}
		inner, ok := wrapper[key]
		if !ok {
			return nil
		}
		return directRenderer(inner)
	}
}

func directRenderer(raw json.RawMessage) *tracklistRenderer {
	var renderer tracklistRenderer
	if err := json.Unmarshal(raw, &renderer); err != nil {
		return nil
	}
	if len(renderer.CaptionTracks) == 0 {
		return nil
	}
	return &renderer
}

// parseTranscriptList converts the captions blob of a player response into
// an ordered TranscriptList. Malformed entries are dropped silently; an
// absent or empty catalog means captions are disabled for the video.
func parseTranscriptList(videoID string, captions json.RawMessage) (*TranscriptList, error) {
	if len(captions) == 0 {
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	var renderer *tracklistRenderer
	for _, strategy := range rendererStrategies {
		if renderer = strategy(captions); renderer != nil {
			break
		}
	}
	if renderer == nil {
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	// The translation-target list is shared by every translatable track.
	targets := parseTranslationLanguages(renderer.TranslationLanguages)

	tracks := make([]*CaptionTrack, 0, len(renderer.CaptionTracks))
	for _, raw := range renderer.CaptionTracks {
		var entry captionTrackJSON
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.BaseURL == "" || entry.LanguageCode == "" {
			continue
		}

		name := entry.Name.text()
		if name == "" {
			name = entry.LanguageCode
		}

		track := &CaptionTrack{
			VideoID:      videoID,
			Language:     name,
			LanguageCode: entry.LanguageCode,
			IsGenerated:  entry.Kind == generatedTrackKind,
			baseURL:      stripCacheFormat(entry.BaseURL),
		}
		// The upstream flag alone is not enough: a track only counts as
		// translatable when targets were actually recovered.
		if entry.IsTranslatable && len(targets) > 0 {
			track.IsTranslatable = true
			track.TranslationLanguages = targets
		}
		tracks = append(tracks, track)
	}

	if len(tracks) == 0 {
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	return &TranscriptList{VideoID: videoID, Tracks: tracks}, nil
}

func parseTranslationLanguages(raw []json.RawMessage) []TranslationLanguage {
	targets := make([]TranslationLanguage, 0, len(raw))
	for _, entry := range raw {
		var lang translationLanguageJSON
		if err := json.Unmarshal(entry, &lang); err != nil {
			continue
		}
		if lang.LanguageCode == "" {
			continue
		}
		name := lang.LanguageName.text()
		if name == "" {
			name = lang.LanguageCode
		}
		targets = append(targets, TranslationLanguage{
			Language:     name,
			LanguageCode: lang.LanguageCode,
		})
	}
	return targets
}

// stripCacheFormat removes the fmt=srv3 query parameter from a fetch URL.
// srv3 switches the payload to a response shape this parser does not speak.
func stripCacheFormat(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Unparseable URLs get the literal treatment.
		return strings.ReplaceAll(rawURL, "&fmt=srv3", "")
	}
	q := u.Query()
	if q.Get("fmt") == "srv3" {
		q.Del("fmt")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

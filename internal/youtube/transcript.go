// Package youtube resolves caption metadata and timed-text payloads for a
// video through YouTube's internal watch-page and player endpoints.
package youtube

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// TranslationLanguage is one language a translatable track can be rendered
// into by the upstream translator.
type TranslationLanguage struct {
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
}

// CaptionTrack describes one fetchable caption stream. Instances are
// created by the catalog parser or derived by Translate and never mutated
// afterwards.
type CaptionTrack struct {
	VideoID        string
	Language       string
	LanguageCode   string
	IsGenerated    bool
	IsTranslatable bool
	// TranslationLanguages is non-empty exactly when IsTranslatable is set.
	TranslationLanguages []TranslationLanguage
	// TranslatedTo holds the target language code on a derived translation
	// and is empty on catalog tracks. Note that LanguageCode keeps the base
	// track's code on translations; that mirrors upstream behavior and
	// downstream consumers rely on it.
	TranslatedTo string

	baseURL string
}

// IsTranslated reports whether this track was derived by Translate.
func (t *CaptionTrack) IsTranslated() bool {
	return t.TranslatedTo != ""
}

func (t *CaptionTrack) String() string {
	origin := "manual"
	if t.IsGenerated {
		origin = "generated"
	}
	suffix := ""
	if t.IsTranslatable {
		suffix = " [translatable]"
	}
	if t.IsTranslated() {
		suffix = fmt.Sprintf(" [translated to %s]", t.TranslatedTo)
	}
	return fmt.Sprintf("%s (%q, %s)%s", t.LanguageCode, t.Language, origin, suffix)
}

// TranscriptList is the ordered catalog of caption tracks for one video.
// Order reflects upstream enumeration and is preserved for selection
// tie-breaking. A list is never empty; an empty catalog surfaces as
// TranscriptsDisabledError instead.
type TranscriptList struct {
	VideoID string
	Tracks  []*CaptionTrack
}

func (l *TranscriptList) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transcripts for video %s:\n", l.VideoID)
	for _, track := range l.Tracks {
		fmt.Fprintf(&b, "  - %s\n", track)
	}
	return b.String()
}

// Snippet is one timed caption cue. Text is never empty; cues that decode
// to nothing are dropped during parsing.
type Snippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the fetched artifact: track metadata plus the ordered cue
// sequence. It is immutable and safe for concurrent reads.
type Transcript struct {
	VideoID      string    `json:"video_id"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"language_code"`
	IsGenerated  bool      `json:"is_generated"`
	IsTranslated bool      `json:"is_translated"`
	Snippets     []Snippet `json:"snippets"`
}

// Text joins all snippet texts with newlines.
func (t *Transcript) Text() string {
	lines := make([]string, len(t.Snippets))
	for i, s := range t.Snippets {
		lines[i] = s.Text
	}
	return strings.Join(lines, "\n")
}

// DetectLanguage guesses the dominant language of the snippet texts. Useful
// as a sanity check against LanguageCode, which reflects the declared track
// language, not necessarily the spoken one.
func (t *Transcript) DetectLanguage() language.Tag {
	if len(t.Snippets) == 0 {
		return language.Und
	}

	langMap := make(map[string]int)
	for _, s := range t.Snippets {
		lang := whatlanggo.DetectLang(s.Text).Iso6391()
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	return language.All.Make(topLang)
}

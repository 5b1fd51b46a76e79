package youtube

import "strings"

// FindTranscript picks the best track for an ordered language preference
// list. Manually created tracks always win over generated ones: the whole
// preference list is scanned for manual tracks first, so a manual track for
// a lower-priority language still beats a generated track for a higher one.
func (l *TranscriptList) FindTranscript(languageCodes ...string) (*CaptionTrack, error) {
	if track := l.scan(languageCodes, false); track != nil {
		return track, nil
	}
	if track := l.scan(languageCodes, true); track != nil {
		return track, nil
	}
	return nil, &NoTranscriptFoundError{
		VideoID:   l.VideoID,
		Requested: languageCodes,
		Available: l.availableLanguages(nil),
	}
}

// FindManuallyCreatedTranscript restricts the search to manually created
// tracks.
func (l *TranscriptList) FindManuallyCreatedTranscript(languageCodes ...string) (*CaptionTrack, error) {
	if track := l.scan(languageCodes, false); track != nil {
		return track, nil
	}
	manual := false
	return nil, &NoManualTranscriptError{
		VideoID:   l.VideoID,
		Requested: languageCodes,
		Available: l.availableLanguages(&manual),
	}
}

// FindGeneratedTranscript restricts the search to auto-generated tracks.
func (l *TranscriptList) FindGeneratedTranscript(languageCodes ...string) (*CaptionTrack, error) {
	if track := l.scan(languageCodes, true); track != nil {
		return track, nil
	}
	generated := true
	return nil, &NoGeneratedTranscriptError{
		VideoID:   l.VideoID,
		Requested: languageCodes,
		Available: l.availableLanguages(&generated),
	}
}

// scan walks the preference list (outer) against the catalog (inner) for
// tracks of one origin, preserving catalog order within each language.
func (l *TranscriptList) scan(languageCodes []string, generated bool) *CaptionTrack {
	for _, code := range languageCodes {
		for _, track := range l.Tracks {
			if track.IsGenerated != generated {
				continue
			}
			if strings.EqualFold(track.LanguageCode, code) {
				return track
			}
		}
	}
	return nil
}

// availableLanguages lists the catalog's language codes in order, deduped,
// optionally restricted to one origin.
func (l *TranscriptList) availableLanguages(generated *bool) []string {
	seen := make(map[string]bool)
	codes := make([]string, 0, len(l.Tracks))
	for _, track := range l.Tracks {
		if generated != nil && track.IsGenerated != *generated {
			continue
		}
		if seen[track.LanguageCode] {
			continue
		}
		seen[track.LanguageCode] = true
		codes = append(codes, track.LanguageCode)
	}
	return codes
}

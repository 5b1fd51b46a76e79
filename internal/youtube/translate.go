package youtube

import "net/url"

// Translate derives a track that fetches this track's captions translated
// into languageCode. The derived track keeps the base track's LanguageCode
// (upstream semantics, see CaptionTrack) and cannot itself be translated
// again.
func (t *CaptionTrack) Translate(languageCode string) (*CaptionTrack, error) {
	if !t.IsTranslatable {
		return nil, &TranslationUnavailableError{
			VideoID: t.VideoID,
			Target:  languageCode,
			Reason:  "track is not translatable",
		}
	}

	var target *TranslationLanguage
	for i := range t.TranslationLanguages {
		if t.TranslationLanguages[i].LanguageCode == languageCode {
			target = &t.TranslationLanguages[i]
			break
		}
	}
	if target == nil {
		return nil, &TranslationUnavailableError{
			VideoID: t.VideoID,
			Target:  languageCode,
			Reason:  "language is not in the track's translation list",
		}
	}

	return &CaptionTrack{
		VideoID:      t.VideoID,
		Language:     target.Language,
		LanguageCode: t.LanguageCode,
		IsGenerated:  t.IsGenerated,
		TranslatedTo: languageCode,
		baseURL:      setQueryParam(t.baseURL, "tlang", languageCode),
	}, nil
}

// setQueryParam sets (or replaces) one query parameter on rawURL.
func setQueryParam(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL + "&" + key + "=" + url.QueryEscape(value)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

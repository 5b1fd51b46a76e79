package youtube

import (
	"regexp"
	"strings"
)

// The watch page embeds the innertube API key as a plain JSON assignment
// inside an inline script. Fixed-pattern match; no DOM parsing needed.
var apiKeyPattern = regexp.MustCompile(`"INNERTUBE_API_KEY"\s*:\s*"([A-Za-z0-9_-]+)"`)

// botChallengeMarker appears on the interstitial page YouTube serves
// instead of the video when it suspects automation.
const botChallengeMarker = `class="g-recaptcha"`

// extractInnertubeAPIKey pulls the short-lived API key out of watch-page
// HTML. Pure parse over an already-retrieved document; never retried.
func extractInnertubeAPIKey(html, videoID string) (string, error) {
	if m := apiKeyPattern.FindStringSubmatch(html); m != nil {
		return m[1], nil
	}
	if strings.Contains(html, botChallengeMarker) {
		return "", &IPBlockedError{VideoID: videoID}
	}
	return "", &FetchError{VideoID: videoID, Detail: "watch page did not contain an innertube API key"}
}

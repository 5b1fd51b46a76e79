package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// playerResponse is the subset of the player API answer the pipeline needs.
type playerResponse struct {
	PlayabilityStatus playabilityStatus `json:"playabilityStatus"`
	Captions          json.RawMessage   `json:"captions"`
}

type playabilityStatus struct {
	Status      string       `json:"status"`
	Reason      string       `json:"reason"`
	ErrorScreen *errorScreen `json:"errorScreen"`
}

type errorScreen struct {
	PlayerErrorMessageRenderer struct {
		Subreason textRuns `json:"subreason"`
	} `json:"playerErrorMessageRenderer"`
}

// The reason predicates below match free-text strings on an undocumented
// API. They are brittle by nature and will need updating when YouTube
// rewords its error screens; the literal samples are pinned in tests.

func isBotDetectedReason(reason string) bool {
	return strings.Contains(strings.ToLower(reason), "not a bot")
}

func isAgeRestrictedReason(reason string) bool {
	return strings.Contains(strings.ToLower(reason), "inappropriate")
}

func isUnavailableReason(reason string) bool {
	return strings.Contains(strings.ToLower(reason), "unavailable")
}

// looksLikeURL reports whether a supposed video id is actually a full URL,
// the most common caller mistake behind "Video unavailable".
func looksLikeURL(videoID string) bool {
	return strings.HasPrefix(videoID, "http://") || strings.HasPrefix(videoID, "https://")
}

// assertPlayable maps the playability block onto a domain error, or nil
// when the video is playable. Runs after JSON decoding succeeds; HTTP
// status classification is separate and runs before body parsing.
func assertPlayable(videoID string, ps playabilityStatus) error {
	switch ps.Status {
	case "", "OK":
		return nil
	case "LOGIN_REQUIRED":
		if isBotDetectedReason(ps.Reason) {
			return &RequestBlockedError{VideoID: videoID}
		}
		if isAgeRestrictedReason(ps.Reason) {
			return &VideoUnavailableError{VideoID: videoID, Reason: ps.Reason}
		}
	case "ERROR":
		if isUnavailableReason(ps.Reason) {
			if looksLikeURL(videoID) {
				return &InvalidVideoIDError{VideoID: videoID}
			}
			return &VideoUnavailableError{VideoID: videoID, Reason: ps.Reason}
		}
	}
	return &FetchError{VideoID: videoID, Detail: playabilityDetail(ps)}
}

// playabilityDetail folds status, reason and any error-screen subreason
// into one diagnostic string for the fallback case.
func playabilityDetail(ps playabilityStatus) string {
	parts := []string{"playability status " + ps.Status}
	if ps.Reason != "" {
		parts = append(parts, ps.Reason)
	}
	if ps.ErrorScreen != nil {
		if sub := ps.ErrorScreen.PlayerErrorMessageRenderer.Subreason.text(); sub != "" {
			parts = append(parts, sub)
		}
	}
	return strings.Join(parts, ": ")
}

// classifyStatusCode maps an upstream HTTP status onto a domain error, or
// nil for success. Applied to every upstream call before its body is read.
func classifyStatusCode(videoID string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return &RateLimitedError{VideoID: videoID}
	case status == http.StatusForbidden:
		return &IPBlockedError{VideoID: videoID, StatusCode: status}
	case status == http.StatusNotFound:
		return &VideoUnavailableError{VideoID: videoID}
	case status >= 400 && status < 500:
		return &RequestBlockedError{VideoID: videoID, StatusCode: status}
	default:
		return &FetchError{VideoID: videoID, Detail: fmt.Sprintf("unexpected status %d (%s) from upstream", status, http.StatusText(status))}
	}
}

package youtube

import (
	"fmt"
	"strings"
)

// proxyHint is appended to errors that usually clear up on a different
// network path.
const proxyHint = "YouTube is blocking requests from this IP; routing traffic through a different network path (e.g. a proxy) usually resolves this"

// InvalidVideoIDError reports an identifier that looks like a URL rather
// than a bare video id.
type InvalidVideoIDError struct {
	VideoID string
}

func (e *InvalidVideoIDError) Error() string {
	return fmt.Sprintf("%q looks like a URL, not a video id; pass the bare id instead", e.VideoID)
}

// VideoUnavailableError reports a video that does not exist or cannot be
// played (removed, private, region locked, age restricted).
type VideoUnavailableError struct {
	VideoID string
	Reason  string
}

func (e *VideoUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("video %s is unavailable: %s", e.VideoID, e.Reason)
	}
	return fmt.Sprintf("video %s is unavailable", e.VideoID)
}

// TranscriptsDisabledError reports a video whose owner turned captions off.
type TranscriptsDisabledError struct {
	VideoID string
}

func (e *TranscriptsDisabledError) Error() string {
	return fmt.Sprintf("subtitles are disabled for video %s", e.VideoID)
}

// NoTranscriptFoundError reports that none of the requested languages had a
// caption track of any origin.
type NoTranscriptFoundError struct {
	VideoID   string
	Requested []string
	Available []string
}

func (e *NoTranscriptFoundError) Error() string {
	return noMatchMessage("no transcript", e.VideoID, e.Requested, e.Available)
}

// NoManualTranscriptError is the manual-only variant of
// NoTranscriptFoundError; Available lists manually created tracks only.
type NoManualTranscriptError struct {
	VideoID   string
	Requested []string
	Available []string
}

func (e *NoManualTranscriptError) Error() string {
	return noMatchMessage("no manually created transcript", e.VideoID, e.Requested, e.Available)
}

// NoGeneratedTranscriptError is the generated-only variant of
// NoTranscriptFoundError; Available lists auto-generated tracks only.
type NoGeneratedTranscriptError struct {
	VideoID   string
	Requested []string
	Available []string
}

func (e *NoGeneratedTranscriptError) Error() string {
	return noMatchMessage("no auto-generated transcript", e.VideoID, e.Requested, e.Available)
}

func noMatchMessage(what, videoID string, requested, available []string) string {
	avail := "none"
	if len(available) > 0 {
		avail = strings.Join(available, ", ")
	}
	return fmt.Sprintf("%s found for video %s in requested languages [%s]; available: %s",
		what, videoID, strings.Join(requested, ", "), avail)
}

// TranslationUnavailableError reports a translation request that the base
// track cannot satisfy.
type TranslationUnavailableError struct {
	VideoID string
	Target  string
	Reason  string
}

func (e *TranslationUnavailableError) Error() string {
	return fmt.Sprintf("translation to %q is not available for video %s: %s", e.Target, e.VideoID, e.Reason)
}

// RateLimitedError reports an upstream 429.
type RateLimitedError struct {
	VideoID string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests while resolving video %s: %s", e.VideoID, proxyHint)
}

// RequestBlockedError reports an upstream refusal that is not tied to the
// IP itself (bot challenge on the player API, unexplained 4xx).
type RequestBlockedError struct {
	VideoID    string
	StatusCode int
}

func (e *RequestBlockedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request blocked for video %s (status %d): %s", e.VideoID, e.StatusCode, proxyHint)
	}
	return fmt.Sprintf("request blocked for video %s: %s", e.VideoID, proxyHint)
}

// IPBlockedError reports that the current IP is banned (403 or an embedded
// captcha challenge).
type IPBlockedError struct {
	VideoID    string
	StatusCode int
}

func (e *IPBlockedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("IP blocked while resolving video %s (status %d): %s", e.VideoID, e.StatusCode, proxyHint)
	}
	return fmt.Sprintf("IP blocked while resolving video %s: %s", e.VideoID, proxyHint)
}

// PoTokenRequiredError reports a caption URL that cannot be fetched without
// an attestation token this client does not produce.
type PoTokenRequiredError struct {
	VideoID string
}

func (e *PoTokenRequiredError) Error() string {
	return fmt.Sprintf("fetching captions for video %s requires a proof-of-origin token", e.VideoID)
}

// FetchError wraps transport failures and unclassifiable upstream answers.
type FetchError struct {
	VideoID string
	Detail  string
	Cause   error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("failed to retrieve data for video %s", e.VideoID)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Cause }

// ParseError wraps malformed upstream payloads.
type ParseError struct {
	VideoID string
	Detail  string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse data for video %s", e.VideoID)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

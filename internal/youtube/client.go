package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/MimeLyc/youtube-transcript/internal/fetch"
	"github.com/MimeLyc/youtube-transcript/pkg/log"
)

// Endpoint templates are variables so tests can point the pipeline at a
// local server.
var (
	watchPageURL    = "https://www.youtube.com/watch?v=%s"
	innertubeAPIURL = "https://www.youtube.com/youtubei/v1/player?key=%s"
)

// The player API wants a client descriptor; the android client gets
// caption URLs that work without extra attestation most of the time.
const (
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
)

// Client runs the transcript resolution pipeline. It holds no per-request
// state; one instance can serve concurrent resolutions.
type Client struct {
	http *fetch.Client
}

// NewClient creates a pipeline client on top of the given transport.
func NewClient(httpClient *fetch.Client) *Client {
	return &Client{http: httpClient}
}

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName    string `json:"clientName"`
			ClientVersion string `json:"clientVersion"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

// ListTranscripts resolves the caption catalog for a video: watch page →
// API key → player response → parsed track list.
func (c *Client) ListTranscripts(ctx context.Context, videoID string) (*TranscriptList, error) {
	html, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	apiKey, err := extractInnertubeAPIKey(html, videoID)
	if err != nil {
		return nil, err
	}

	player, err := c.fetchPlayerResponse(ctx, videoID, apiKey)
	if err != nil {
		return nil, err
	}

	list, err := parseTranscriptList(videoID, player.Captions)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved %d caption tracks for video %s", len(list.Tracks), videoID)
	return list, nil
}

// FetchTranscript resolves the catalog, selects the best track for the
// preference list and fetches it.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, languageCodes []string, preserveFormatting bool) (*Transcript, error) {
	list, err := c.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := list.FindTranscript(languageCodes...)
	if err != nil {
		return nil, err
	}

	return c.FetchTrack(ctx, track, preserveFormatting)
}

// FetchTrack downloads and parses the timed-text payload of one track.
func (c *Client) FetchTrack(ctx context.Context, track *CaptionTrack, preserveFormatting bool) (*Transcript, error) {
	if track.baseURL == "" {
		return nil, &FetchError{VideoID: track.VideoID, Detail: "caption track carries no fetch URL"}
	}
	// Checked before the network call on purpose: a token-gated URL will
	// never resolve, so failing early saves the round trip.
	if requiresAuthToken(track.baseURL) {
		return nil, &PoTokenRequiredError{VideoID: track.VideoID}
	}

	resp, err := c.http.Get(ctx, track.baseURL)
	if err != nil {
		return nil, &FetchError{VideoID: track.VideoID, Cause: err}
	}
	if err := classifyStatusCode(track.VideoID, resp.StatusCode); err != nil {
		return nil, err
	}

	snippets, err := parseTimedText(track.VideoID, resp.Body, preserveFormatting)
	if err != nil {
		return nil, err
	}

	return &Transcript{
		VideoID:      track.VideoID,
		Language:     track.Language,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.IsGenerated,
		IsTranslated: track.IsTranslated(),
		Snippets:     snippets,
	}, nil
}

// BatchResult pairs one video id with its transcript or error.
type BatchResult struct {
	VideoID    string
	Transcript *Transcript
	Err        error
}

// FetchBatch resolves several videos concurrently. Each video runs its own
// full pipeline; failures are collected per video and never abort the
// batch. Results keep the input order.
func (c *Client) FetchBatch(ctx context.Context, videoIDs []string, languageCodes []string, concurrency int, preserveFormatting bool) []BatchResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]BatchResult, len(videoIDs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, videoID := range videoIDs {
		g.Go(func() error {
			transcript, err := c.FetchTranscript(ctx, videoID, languageCodes, preserveFormatting)
			if err != nil {
				log.Warn("fetch failed for video %s: %v", videoID, err)
			}
			results[i] = BatchResult{VideoID: videoID, Transcript: transcript, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	resp, err := c.http.Get(ctx, fmt.Sprintf(watchPageURL, url.QueryEscape(videoID)))
	if err != nil {
		return "", &FetchError{VideoID: videoID, Cause: err}
	}
	if err := classifyStatusCode(videoID, resp.StatusCode); err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

func (c *Client) fetchPlayerResponse(ctx context.Context, videoID, apiKey string) (*playerResponse, error) {
	var req playerRequest
	req.Context.Client.ClientName = innertubeClientName
	req.Context.Client.ClientVersion = innertubeClientVersion
	req.VideoID = videoID

	resp, err := c.http.PostJSON(ctx, fmt.Sprintf(innertubeAPIURL, url.QueryEscape(apiKey)), req)
	if err != nil {
		return nil, &FetchError{VideoID: videoID, Cause: err}
	}
	if err := classifyStatusCode(videoID, resp.StatusCode); err != nil {
		return nil, err
	}

	var player playerResponse
	if err := json.Unmarshal(resp.Body, &player); err != nil {
		return nil, &ParseError{VideoID: videoID, Cause: err}
	}

	if err := assertPlayable(videoID, player.PlayabilityStatus); err != nil {
		return nil, err
	}

	return &player, nil
}

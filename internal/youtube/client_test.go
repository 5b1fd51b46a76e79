package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/youtube-transcript/internal/config"
	"github.com/MimeLyc/youtube-transcript/internal/fetch"
)

const testWatchPage = `<html><script>ytcfg.set({"INNERTUBE_API_KEY":"test-api-key"});</script></html>`

const testTimedText = `<transcript>
	<text start="0.0" dur="1.5">hello there</text>
	<text start="1.5" dur="2.0">general &amp; specific</text>
</transcript>`

// newTestPipeline wires a pipeline client against a local server that
// mimics the watch page, the player API and the timed-text endpoint.
func newTestPipeline(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	origWatch, origAPI := watchPageURL, innertubeAPIURL
	watchPageURL = server.URL + "/watch?v=%s"
	innertubeAPIURL = server.URL + "/youtubei/v1/player?key=%s"
	t.Cleanup(func() {
		watchPageURL, innertubeAPIURL = origWatch, origAPI
	})

	httpClient, err := fetch.New(config.HTTPConfig{Timeout: 5, UserAgent: "test-agent", AcceptLanguage: "en-US"})
	require.NoError(t, err)

	return NewClient(httpClient), server
}

// defaultHandler serves a healthy three-step resolution for any video id.
func defaultHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	var serverURL atomic.Value

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		serverURL.Store("http://" + r.Host)
		fmt.Fprint(w, testWatchPage)
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		var req playerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ANDROID", req.Context.Client.ClientName)
		require.NotEmpty(t, req.VideoID)

		base, _ := serverURL.Load().(string)
		fmt.Fprintf(w, `{
			"playabilityStatus": {"status": "OK"},
			"captions": {
				"playerCaptionsTracklistRenderer": {
					"captionTracks": [
						{
							"baseUrl": "%s/api/timedtext?v=%s&lang=en&fmt=srv3",
							"name": {"simpleText": "English"},
							"languageCode": "en",
							"isTranslatable": true
						}
					],
					"translationLanguages": [
						{"languageName": {"simpleText": "German"}, "languageCode": "de"}
					]
				}
			}
		}`, base, req.VideoID)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		// The catalog parser must have removed the cached-format parameter.
		assert.Empty(t, r.URL.Query().Get("fmt"))
		fmt.Fprint(w, testTimedText)
	})

	return mux
}

func TestListTranscripts(t *testing.T) {
	client, _ := newTestPipeline(t, defaultHandler(t))

	list, err := client.ListTranscripts(context.Background(), "vid01")
	require.NoError(t, err)

	require.Len(t, list.Tracks, 1)
	assert.Equal(t, "vid01", list.VideoID)
	assert.Equal(t, "en", list.Tracks[0].LanguageCode)
	assert.True(t, list.Tracks[0].IsTranslatable)
}

func TestFetchTranscriptEndToEnd(t *testing.T) {
	client, _ := newTestPipeline(t, defaultHandler(t))

	transcript, err := client.FetchTranscript(context.Background(), "vid01", []string{"en"}, false)
	require.NoError(t, err)

	assert.Equal(t, "vid01", transcript.VideoID)
	assert.Equal(t, "en", transcript.LanguageCode)
	assert.False(t, transcript.IsGenerated)
	require.Len(t, transcript.Snippets, 2)
	assert.Equal(t, "general & specific", transcript.Snippets[1].Text)
}

func TestFetchTranscriptTranslated(t *testing.T) {
	client, _ := newTestPipeline(t, defaultHandler(t))

	list, err := client.ListTranscripts(context.Background(), "vid01")
	require.NoError(t, err)

	translated, err := list.Tracks[0].Translate("de")
	require.NoError(t, err)

	transcript, err := client.FetchTrack(context.Background(), translated, false)
	require.NoError(t, err)
	assert.True(t, transcript.IsTranslated)
	assert.Equal(t, "German", transcript.Language)
}

func TestFetchTranscriptNoMatch(t *testing.T) {
	client, _ := newTestPipeline(t, defaultHandler(t))

	_, err := client.FetchTranscript(context.Background(), "vid01", []string{"ja"}, false)

	var notFound *NoTranscriptFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"en"}, notFound.Available)
}

func TestListTranscriptsRateLimited(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	client, _ := newTestPipeline(t, handler)

	_, err := client.ListTranscripts(context.Background(), "vid01")

	var rateLimited *RateLimitedError
	require.ErrorAs(t, err, &rateLimited)
}

func TestListTranscriptsUnplayable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testWatchPage)
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus": {"status": "ERROR", "reason": "Video unavailable"}}`)
	})
	client, _ := newTestPipeline(t, mux)

	_, err := client.ListTranscripts(context.Background(), "vid01")

	var unavailable *VideoUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestListTranscriptsMalformedPlayerResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testWatchPage)
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<!doctype html><html>not json</html>`)
	})
	client, _ := newTestPipeline(t, mux)

	_, err := client.ListTranscripts(context.Background(), "vid01")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFetchTrackTokenRequired(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	client, server := newTestPipeline(t, handler)

	track := &CaptionTrack{
		VideoID: "vid01",
		baseURL: server.URL + "/api/timedtext?v=vid01&exp=xpe",
	}
	_, err := client.FetchTrack(context.Background(), track, false)

	var tokenErr *PoTokenRequiredError
	require.ErrorAs(t, err, &tokenErr)
	// Detected from the URL alone; no request goes out.
	assert.Zero(t, calls.Load())
}

func TestFetchTrackMissingURL(t *testing.T) {
	client, _ := newTestPipeline(t, http.NotFoundHandler())

	_, err := client.FetchTrack(context.Background(), &CaptionTrack{VideoID: "vid01"}, false)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetchBatch(t *testing.T) {
	client, _ := newTestPipeline(t, defaultHandler(t))

	results := client.FetchBatch(context.Background(), []string{"vid01", "vid02"}, []string{"en"}, 2, false)

	require.Len(t, results, 2)
	assert.Equal(t, "vid01", results[0].VideoID)
	assert.Equal(t, "vid02", results[1].VideoID)
	for _, res := range results {
		require.NoError(t, res.Err)
		assert.NotNil(t, res.Transcript)
	}
}

func TestFetchBatchCollectsErrors(t *testing.T) {
	healthy := defaultHandler(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/watch" && r.URL.Query().Get("v") == "broken" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		healthy.ServeHTTP(w, r)
	})
	client, _ := newTestPipeline(t, handler)

	results := client.FetchBatch(context.Background(), []string{"broken", "vid02"}, []string{"en"}, 1, false)

	require.Len(t, results, 2)

	var unavailable *VideoUnavailableError
	require.ErrorAs(t, results[0].Err, &unavailable)
	assert.Nil(t, results[0].Transcript)

	require.NoError(t, results[1].Err)
	require.NotNil(t, results[1].Transcript)
}

func TestFetchBatchZeroConcurrency(t *testing.T) {
	client, _ := newTestPipeline(t, defaultHandler(t))

	// Clamped to one worker instead of panicking.
	results := client.FetchBatch(context.Background(), []string{"vid01"}, []string{"en"}, 0, false)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
}

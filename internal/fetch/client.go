// Package fetch is the HTTP transport used by the resolution pipeline.
// It owns timeouts, default request headers and proxy routing; it performs
// no retries and attaches no meaning to response status codes.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MimeLyc/youtube-transcript/internal/config"
)

// Response is the raw result of one upstream round trip.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Client wraps http.Client with the default headers every upstream
// request must carry.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
}

// New creates a transport client from the HTTP configuration.
func New(cfg config.HTTPConfig) (*Client, error) {
	transport := &http.Transport{}

	if cfg.HTTPProxy != "" || cfg.HTTPSProxy != "" {
		proxies := map[string]string{
			"http":  cfg.HTTPProxy,
			"https": cfg.HTTPSProxy,
		}
		for scheme, raw := range proxies {
			if raw == "" {
				continue
			}
			if _, err := url.Parse(raw); err != nil {
				return nil, fmt.Errorf("invalid %s proxy %q: %w", scheme, raw, err)
			}
		}
		transport.Proxy = func(req *http.Request) (*url.URL, error) {
			raw := proxies[req.URL.Scheme]
			if raw == "" {
				return nil, nil
			}
			return url.Parse(raw)
		}
	}

	headers := map[string]string{
		"User-Agent":      cfg.UserAgent,
		"Accept-Language": cfg.AcceptLanguage,
	}
	for key, value := range cfg.ProxyHeaders {
		headers[key] = value
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Timeout) * time.Second,
		},
		headers: headers,
	}, nil
}

// Get performs a GET request against rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, "")
}

// PostJSON marshals payload and POSTs it to rawURL.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload interface{}) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, data, "application/json")
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, contentType string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Header:     resp.Header,
	}, nil
}

package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrQuotaExhausted signals that the transcript provider refused the call
// because the account is out of credits. Callers should abort the batch
// instead of burning through every remaining video.
var ErrQuotaExhausted = errors.New("transcript: api credits exhausted")

// RateLimitError carries the provider's retry-after hint. Advisory only.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("transcript: rate limited, retry after %s", e.RetryAfter)
}

// Client fetches plain-text video transcripts from the TranscriptAPI v2
// endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a transcript client with a bounded per-call timeout.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch returns the transcript text for a video, or ("", nil) when no
// transcript exists for it. Quota exhaustion and rate limiting are
// reported as typed errors.
func (c *Client) Fetch(ctx context.Context, videoID string) (string, error) {
	params := url.Values{}
	params.Set("video_url", videoID)
	params.Set("format", "text")
	params.Set("include_timestamp", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("transcript: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript: fetch %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return "", nil
	case http.StatusPaymentRequired:
		return "", ErrQuotaExhausted
	case http.StatusTooManyRequests:
		retryAfter := 60 * time.Second
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return "", &RateLimitError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("transcript: %s for %s: %s", resp.Status, videoID, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("transcript: decode response for %s: %w", videoID, err)
	}

	return parsed.Transcript, nil
}

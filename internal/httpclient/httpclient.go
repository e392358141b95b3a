// Package httpclient provides a shared retrying HTTP client for discordipc's
// outbound network calls (currently just the release-manifest version
// check), so retry/backoff/logging policy lives in one place instead of
// being reimplemented per caller.
package httpclient

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// New returns an *http.Client backed by a [retryablehttp.Client] configured
// with a short timeout and a small retry budget, suited to best-effort
// background calls that must never block startup for long.
func New(logger *slog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 1 * time.Second
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil // silence retryablehttp's default logger; callers log via logger
	if logger != nil {
		rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				logger.Debug("retrying http request", "url", req.URL.String(), "attempt", attempt)
			}
		}
	}
	return rc.StandardClient()
}

// Get performs a GET request through a retrying client, returning the body
// capped at maxBytes to bound memory use for untrusted remote responses.
func Get(client *http.Client, url string, maxBytes int64) ([]byte, int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

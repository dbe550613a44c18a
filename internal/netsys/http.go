package netsys

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

// StdHTTPClient issues GET requests via net/http.
type StdHTTPClient struct {
	// InsecureSkipVerify disables certificate verification.  Only for
	// tests against self-signed local servers.
	InsecureSkipVerify bool
}

// Get implements HTTPClient.  The response body is drained (bounded)
// so the connection can be reused, then discarded — the probes only
// care about status and latency.
func (c *StdHTTPClient) Get(ctx context.Context, url string, timeout time.Duration) (HTTPResult, error) {
	client := &http.Client{Timeout: timeout}
	if c.InsecureSkipVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return HTTPResult{}, err
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return HTTPResult{}, err
	}
	latency := time.Since(start)

	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
	resp.Body.Close()

	return HTTPResult{StatusCode: resp.StatusCode, Latency: latency}, nil
}

// Package probe performs timeout-bounded HTTP liveness checks.
package probe

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds each probe.
const DefaultTimeout = 5 * time.Second

// Prober issues GET requests and reports the status code.
type Prober struct {
	Client *http.Client
}

// New returns a Prober whose requests time out after timeout.
// A non-positive timeout uses DefaultTimeout.
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{Client: &http.Client{Timeout: timeout}}
}

// Status GETs url once and returns the response status. A transport failure
// or timeout returns an error and no status.
func (p *Prober) Status(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return resp.StatusCode, nil
}

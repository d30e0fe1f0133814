// Package geocode names positions: which settlement a landing field belongs
// to, which peak a launch sits on. Both lookups ride free OpenStreetMap
// services, so they're polite (identified, throttled between retries) and
// callers must treat every answer as best-effort.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	fb "github.com/kampelmuehler/flightbook-generator"
)

const(
	// Nominatim's usage policy wants an agent that names the application,
	// not a generic library string.
	DefaultUserAgent = "igc_flightbook"

	retryDelay = 1 * time.Second
)

type Client struct {
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration // Per attempt
	Retries   int           // Extra attempts after the first
}

// NewClient builds a lookup client honoring the batch config's geocoding
// knobs.
func NewClient(cfg fb.Config) Client {
	return Client{
		Client:    &http.Client{},
		UserAgent: DefaultUserAgent,
		Timeout:   cfg.GeocodeTimeout,
		Retries:   cfg.GeocodeRetries,
	}
}

// {{{ c.getJSON

// getJSON fetches a URL and decodes the response, retrying transient
// failures with a polite pause. Every attempt gets its own timeout; the
// caller's ctx cancels the whole affair.
func (c Client)getJSON(ctx context.Context, url string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}
		if lastErr = c.attempt(ctx, url, out); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c Client)attempt(ctx context.Context, url string, out interface{}) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx,cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req,err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil { return err }
	ua := c.UserAgent
	if ua == "" { ua = DefaultUserAgent }
	req.Header.Set("User-Agent", ua)

	httpClient := c.Client
	if httpClient == nil { httpClient = http.DefaultClient }

	resp,err := httpClient.Do(req)
	if err != nil { return err }
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode fetch: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}

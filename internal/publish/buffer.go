package publish

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const bufferCreatePath = "/1/updates/create.json"

// Buffer delivers through a social-scheduling aggregator API. The update is a
// form-encoded create call carrying the text and optional media url; the
// aggregator handles the actual network-by-network fan-out.
type Buffer struct {
	Token   string
	BaseURL string
	HTTP    *http.Client

	// Limiter throttles outbound create calls so a large tick does not trip
	// the aggregator's API limits. Nil disables throttling.
	Limiter *rate.Limiter
}

func (b *Buffer) Publish(ctx context.Context, p Payload) error {
	if b.Token == "" {
		return &Error{Platform: "buffer", Err: errors.New("BUFFER_API_KEY missing")}
	}

	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx); err != nil {
			return &Error{Platform: "buffer", Err: err}
		}
	}

	form := url.Values{}
	form.Set("text", p.Text)
	if p.MediaURL != "" {
		form.Set("media", p.MediaURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(b.BaseURL, "/")+bufferCreatePath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Platform: "buffer", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.HTTP.Do(req)
	if err != nil {
		return &Error{Platform: "buffer", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Platform: "buffer", Status: resp.StatusCode}
	}
	return nil
}

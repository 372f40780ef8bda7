package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Webhook POSTs the full normalized payload as JSON to an operator-configured
// URL. Platform string is included so one endpoint can route several targets.
type Webhook struct {
	URL  string
	HTTP *http.Client
}

func (w *Webhook) Publish(ctx context.Context, p Payload) error {
	if w.URL == "" {
		return &Error{Platform: p.Platform, Err: errors.New("WEBHOOK_URL missing")}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return &Error{Platform: p.Platform, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return &Error{Platform: p.Platform, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.HTTP.Do(req)
	if err != nil {
		return &Error{Platform: p.Platform, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Platform: p.Platform, Status: resp.StatusCode}
	}
	return nil
}

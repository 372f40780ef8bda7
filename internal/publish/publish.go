// Package publish contains the destination-specific delivery mechanisms a
// schedule row fans out to, behind a single Backend interface keyed by the
// row's platform field.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Payload is the normalized publish request every backend accepts.
type Payload struct {
	Text     string          `json:"text"`
	MediaURL string          `json:"media,omitempty"`
	Platform string          `json:"platform"`
	BrandID  uint64          `json:"brand_id"`
	Meta     json.RawMessage `json:"meta,omitempty"`
}

type Backend interface {
	Publish(ctx context.Context, p Payload) error
}

// Error is a failed delivery attempt. The underlying cause (network, auth,
// rate limit) is not distinguished further; every variant lands a schedule
// row on the same FAILED path.
type Error struct {
	Platform string
	Status   int // HTTP status when the backend answered, 0 otherwise
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("publish via %s: status %d", e.Platform, e.Status)
	}
	return fmt.Sprintf("publish via %s: %v", e.Platform, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Registry maps platform identifiers to backends. Lookups of unregistered
// platforms fail loudly instead of falling through to a default backend, so
// a typo in a platform value surfaces at creation time rather than as a
// misdirected post.
type Registry struct {
	backends map[string]Backend
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

func (r *Registry) Register(platform string, b Backend) {
	r.backends[platform] = b
}

func (r *Registry) Lookup(platform string) (Backend, error) {
	b, ok := r.backends[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	return b, nil
}

func (r *Registry) Has(platform string) bool {
	_, ok := r.backends[platform]
	return ok
}

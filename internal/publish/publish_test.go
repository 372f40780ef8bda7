package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopBackend struct{}

func (nopBackend) Publish(ctx context.Context, p Payload) error { return nil }

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register("webhook", nopBackend{})

	b, err := reg.Lookup("webhook")
	require.NoError(t, err)
	assert.NotNil(t, b)

	_, err = reg.Lookup("buffer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPlatform))
	assert.Contains(t, err.Error(), `"buffer"`)

	assert.True(t, reg.Has("webhook"))
	assert.False(t, reg.Has("buffer"))
}

func TestErrorMessage(t *testing.T) {
	withStatus := &Error{Platform: "buffer", Status: 429}
	assert.Equal(t, "publish via buffer: status 429", withStatus.Error())

	cause := errors.New("connection refused")
	withCause := &Error{Platform: "webhook", Err: cause}
	assert.Equal(t, "publish via webhook: connection refused", withCause.Error())
	assert.True(t, errors.Is(withCause, cause))
}

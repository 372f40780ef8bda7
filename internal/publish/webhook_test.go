package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookPublish(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	wh := &Webhook{URL: srv.URL, HTTP: srv.Client()}
	err := wh.Publish(context.Background(), Payload{
		Text:     "launch post",
		MediaURL: "https://cdn.example/v.mp4",
		Platform: "webhook",
		BrandID:  42,
		Meta:     []byte(`{"campaign":"q3"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "launch post", got.Text)
	assert.Equal(t, "https://cdn.example/v.mp4", got.MediaURL)
	assert.Equal(t, "webhook", got.Platform)
	assert.Equal(t, uint64(42), got.BrandID)
	assert.JSONEq(t, `{"campaign":"q3"}`, string(got.Meta))
}

func TestWebhookPublishNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := &Webhook{URL: srv.URL, HTTP: srv.Client()}
	err := wh.Publish(context.Background(), Payload{Text: "x", Platform: "webhook"})
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadGateway, perr.Status)
}

func TestWebhookPublishMissingURL(t *testing.T) {
	wh := &Webhook{URL: "", HTTP: http.DefaultClient}
	err := wh.Publish(context.Background(), Payload{Text: "x", Platform: "webhook"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBHOOK_URL")
}

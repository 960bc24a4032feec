package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointAt(t *testing.T, c *EmailClient, rawURL string) {
	t.Helper()
	u, err := url.Parse(rawURL + "/")
	require.NoError(t, err)
	c.sdk.BaseURL = u
}

func testClient(t *testing.T, h http.HandlerFunc) *EmailClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewEmailClient("re_test")
	pointAt(t, c, srv.URL)
	return c
}

func TestEmailClientSend(t *testing.T) {
	var got resend.SendEmailRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_123"}`))
	})

	id, err := c.Send(context.Background(), Email{
		From: "salon@example.com", To: []string{"ana@example.com"}, Subject: "Hi", HTML: "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
	assert.Equal(t, []string{"ana@example.com"}, got.To)
	assert.Equal(t, "<p>hi</p>", got.Html)
}

func TestEmailClientProviderError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	})

	_, err := c.Send(context.Background(), Email{})
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Invalid from field", pe.Message)
}

func TestEmailClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewEmailClient("re_test")
	pointAt(t, c, srv.URL)

	_, err := c.Send(context.Background(), Email{})
	require.Error(t, err)
	var pe *ProviderError
	assert.False(t, errors.As(err, &pe))
}

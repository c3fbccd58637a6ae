package utils

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientFillsDefaults(t *testing.T) {
	c := NewHTTPClient(HTTPClientConfig{})

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok, "expected *http.Transport, got %T", c.Transport)
	assert.Equal(t, 60*time.Second, c.Timeout)
	assert.Equal(t, 100, tr.MaxIdleConns)
	assert.Equal(t, 10, tr.MaxIdleConnsPerHost)
	assert.NotNil(t, c.Jar)
}

func TestNewHTTPClientHonoursConfig(t *testing.T) {
	c := NewHTTPClient(HTTPClientConfig{Timeout: 5 * time.Second, MaxIdleConnsPerHost: 3})

	tr := c.Transport.(*http.Transport)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 3, tr.MaxIdleConnsPerHost)
}

func TestGetHTTPClientIsShared(t *testing.T) {
	assert.Same(t, GetHTTPClient(), GetHTTPClient())
}

func TestNewRequestSetsHeaders(t *testing.T) {
	req, err := NewRequest(context.Background(), "https://crt.sh/?q=example.com")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, UserAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))

	_, err = NewRequest(context.Background(), "://bad")
	assert.Error(t, err)
}

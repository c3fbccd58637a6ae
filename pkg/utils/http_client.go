package utils

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// UserAgent identifies outbound requests to upstream providers.
const UserAgent = "lookup_api/1.0 (+https://github.com/vit0-9/lookup_api)"

// HTTPClientConfig tunes the transport used for provider calls.
// Zero fields fall back to defaults.
type HTTPClientConfig struct {
	Timeout             time.Duration
	DialTimeout         time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

func (c HTTPClientConfig) withDefaults() HTTPClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 15 * time.Second
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = 10
	}
	return c
}

var (
	sharedClient     *http.Client
	sharedClientOnce sync.Once
)

// NewHTTPClient builds a client with pooled connections and a cookie jar
// scoped by the public suffix list.
func NewHTTPClient(cfg HTTPClientConfig) *http.Client {
	cfg = cfg.withDefaults()

	// cookiejar.New never returns a non-nil error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Jar:       jar,
		Transport: transport,
	}
}

// GetHTTPClient returns a process-wide client built with default settings.
func GetHTTPClient() *http.Client {
	sharedClientOnce.Do(func() {
		sharedClient = NewHTTPClient(HTTPClientConfig{})
	})
	return sharedClient
}

// NewRequest creates a GET request bound to ctx with the headers providers expect.
func NewRequest(ctx context.Context, targetURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", targetURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/vit0-9/lookup_api/pkg/utils"
)

// DefaultCTBaseURL is the crt.sh search endpoint.
const DefaultCTBaseURL = "https://crt.sh"

// CertificateRecord is one certificate-transparency log entry as reported by crt.sh.
// Timestamps are kept in the provider's format.
type CertificateRecord struct {
	ID             int64  `json:"id"`
	IssuerCAID     int64  `json:"issuer_ca_id"`
	IssuerName     string `json:"issuer_name"`
	CommonName     string `json:"common_name"`
	NameValue      string `json:"name_value"`
	SerialNumber   string `json:"serial_number"`
	EntryTimestamp string `json:"entry_timestamp"`
	NotBefore      string `json:"not_before"`
	NotAfter       string `json:"not_after"`
}

// Names splits the newline separated identities in NameValue.
func (r CertificateRecord) Names() []string {
	var names []string
	for _, name := range strings.Split(r.NameValue, "\n") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

type CTError struct {
	Domain     string
	StatusCode int
	Err        error
}

func (e *CTError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("certificate lookup failed for %s: upstream status %d", e.Domain, e.StatusCode)
	}
	return fmt.Sprintf("certificate lookup failed for %s: %v", e.Domain, e.Err)
}

func (e *CTError) Unwrap() error {
	return e.Err
}

// CertClient searches a crt.sh compatible endpoint for certificates issued to a name.
type CertClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type CertOption func(*CertClient)

// WithCTBaseURL points the client at another crt.sh deployment.
func WithCTBaseURL(baseURL string) CertOption {
	return func(c *CertClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

func WithCTHTTPClient(client *http.Client) CertOption {
	return func(c *CertClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCTRateLimit caps outbound requests per second. Zero disables the limit.
func WithCTRateLimit(rps float64) CertOption {
	return func(c *CertClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func NewCertClient(opts ...CertOption) *CertClient {
	c := &CertClient{
		baseURL:    DefaultCTBaseURL,
		httpClient: utils.GetHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the log entries for name in the order the provider lists them.
// The name is sent as given. An empty result is an empty, non-nil slice.
func (c *CertClient) Lookup(ctx context.Context, name string) ([]CertificateRecord, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &CTError{Domain: name, Err: err}
		}
	}

	query := url.Values{}
	query.Set("q", name)
	query.Set("output", "json")

	req, err := utils.NewRequest(ctx, c.baseURL+"/?"+query.Encode())
	if err != nil {
		return nil, &CTError{Domain: name, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &CTError{Domain: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &CTError{Domain: name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CTError{Domain: name, Err: fmt.Errorf("read body: %w", err)}
	}

	records := []CertificateRecord{}
	if len(bytes.TrimSpace(body)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &CTError{Domain: name, Err: fmt.Errorf("decode body: %w", err)}
	}
	if records == nil {
		records = []CertificateRecord{}
	}
	return records, nil
}

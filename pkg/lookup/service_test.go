package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vit0-9/lookup_api/pkg/metrics"
	"github.com/vit0-9/lookup_api/pkg/utils/domain"
)

type stubWhois struct {
	mu       sync.Mutex
	sections []domain.WhoisSection
	err      error
	calls    []string
}

func (s *stubWhois) Lookup(_ context.Context, name string) ([]domain.WhoisSection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	return s.sections, s.err
}

type stubCerts struct {
	mu      sync.Mutex
	records []domain.CertificateRecord
	err     error
	calls   []string
}

func (s *stubCerts) Lookup(_ context.Context, name string) ([]domain.CertificateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	return s.records, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var twoSections = []domain.WhoisSection{
	{Label: "whois.verisign-grs.com", Text: "Domain Name: EXAMPLE.COM\nRegistrar: Example Registrar\n"},
	{Label: "whois.registrar.test", Text: "Domain Name: example.com\n"},
}

func TestWhoisForceSelection(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		domain     string
		force      bool
		wantTarget string
		wantToggle bool
	}{
		{"Subdomain uses base", "a.example.com", false, "example.com", true},
		{"Subdomain forced", "a.example.com", true, "a.example.com", true},
		{"Compound suffix uses base", "www.example.co.uk", false, "example.co.uk", true},
		{"Base domain", "example.com", false, "example.com", false},
		{"Base domain forced is the same lookup", "example.com", true, "example.com", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			whois := &stubWhois{sections: twoSections}
			svc := NewService(whois, &stubCerts{}, WithLogger(quietLogger()))

			outcome, err := svc.Whois(context.Background(), tc.domain, tc.force)
			require.NoError(t, err)

			assert.Equal(t, []string{tc.wantTarget}, whois.calls)
			assert.Equal(t, tc.wantTarget, outcome.Target)
			assert.Equal(t, tc.domain, outcome.Domain)
			assert.Equal(t, tc.force, outcome.Forced)
			assert.Equal(t, tc.wantToggle, outcome.CanToggle)
		})
	}
}

func TestWhoisPreservesSectionOrder(t *testing.T) {
	t.Parallel()

	sections := []domain.WhoisSection{
		{Label: "z.server", Text: "first"},
		{Label: "a.server", Text: "second"},
		{Label: "z.server", Text: "third, repeated label"},
	}
	svc := NewService(&stubWhois{sections: sections}, &stubCerts{}, WithLogger(quietLogger()))

	outcome, err := svc.Whois(context.Background(), "example.com", false)
	require.NoError(t, err)
	assert.Equal(t, sections, outcome.Sections)
}

func TestWhoisSummaryIsFilled(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubWhois{sections: twoSections}, &stubCerts{}, WithLogger(quietLogger()))

	outcome, err := svc.Whois(context.Background(), "www.example.com", false)
	require.NoError(t, err)
	assert.Equal(t, "Example Registrar", outcome.Summary.Registrar)
}

func TestWhoisEmptyResultIsNotFound(t *testing.T) {
	t.Parallel()

	for _, sections := range [][]domain.WhoisSection{nil, {}} {
		svc := NewService(&stubWhois{sections: sections}, &stubCerts{}, WithLogger(quietLogger()))

		outcome, err := svc.Whois(context.Background(), "example.com", false)
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrProviderUnavailable)
	}
}

func TestWhoisProviderFailure(t *testing.T) {
	t.Parallel()

	upstream := errors.New("connection refused")
	svc := NewService(&stubWhois{err: upstream}, &stubCerts{}, WithLogger(quietLogger()))

	_, err := svc.Whois(context.Background(), "example.com", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.ErrorIs(t, err, upstream)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestWhoisInvalidDomain(t *testing.T) {
	t.Parallel()

	whois := &stubWhois{sections: twoSections}
	svc := NewService(whois, &stubCerts{}, WithLogger(quietLogger()))

	for _, name := range []string{"", "co.uk", "10.0.0.1", "evil.example.com\r\nhelp", "www.example.com\nx"} {
		for _, force := range []bool{false, true} {
			_, err := svc.Whois(context.Background(), name, force)
			assert.ErrorIs(t, err, ErrInvalidDomain, "name %q force %v", name, force)
		}
	}
	assert.Empty(t, whois.calls)
}

func TestCertsPassesDomainVerbatim(t *testing.T) {
	t.Parallel()

	certs := &stubCerts{records: []domain.CertificateRecord{{ID: 1}}}
	svc := NewService(&stubWhois{}, certs, WithLogger(quietLogger()))

	for _, name := range []string{"www.Example.co.uk", "a.b.example.com", " spaced.example.com."} {
		outcome, err := svc.Certs(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, name, outcome.Domain)
	}
	assert.Equal(t, []string{"www.Example.co.uk", "a.b.example.com", " spaced.example.com."}, certs.calls)
}

func TestCertsEmptyIsValid(t *testing.T) {
	t.Parallel()

	for _, records := range [][]domain.CertificateRecord{nil, {}} {
		svc := NewService(&stubWhois{}, &stubCerts{records: records}, WithLogger(quietLogger()))

		outcome, err := svc.Certs(context.Background(), "example.com")
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.NotNil(t, outcome.Certificates)
		assert.Empty(t, outcome.Certificates)
		assert.Equal(t, 0, outcome.Count())
	}
}

func TestCertsPreservesOrder(t *testing.T) {
	t.Parallel()

	records := []domain.CertificateRecord{{ID: 30}, {ID: 10}, {ID: 20}}
	svc := NewService(&stubWhois{}, &stubCerts{records: records}, WithLogger(quietLogger()))

	outcome, err := svc.Certs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, records, outcome.Certificates)
	assert.Equal(t, 3, outcome.Count())
}

func TestCertsProviderFailure(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubWhois{}, &stubCerts{err: errors.New("502")}, WithLogger(quietLogger()))

	_, err := svc.Certs(context.Background(), "example.com")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestServiceRecordsMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	svc := NewService(&stubWhois{}, &stubCerts{}, WithLogger(quietLogger()), WithMetrics(m))

	_, _ = svc.Whois(context.Background(), "example.com", false)
	_, _ = svc.Certs(context.Background(), "example.com")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues(metrics.KindWhois, metrics.ResultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues(metrics.KindCerts, metrics.ResultOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ProviderRequestsTotal))
}

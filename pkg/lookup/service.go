// Package lookup decides what to query for WHOIS and certificate lookups and
// turns provider answers into display-ready results.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vit0-9/lookup_api/pkg/metrics"
	"github.com/vit0-9/lookup_api/pkg/utils/domain"
)

var (
	// ErrNotFound means the WHOIS provider returned no sections.
	ErrNotFound = errors.New("no results found")
	// ErrProviderUnavailable wraps any failure calling an upstream provider.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidDomain is returned when a name has no registrable base domain.
	ErrInvalidDomain = domain.ErrInvalidDomain
)

// WhoisProvider returns the WHOIS sections for a name, in the provider's order.
type WhoisProvider interface {
	Lookup(ctx context.Context, name string) ([]domain.WhoisSection, error)
}

// CertProvider returns the certificate-transparency entries for a name, in the provider's order.
type CertProvider interface {
	Lookup(ctx context.Context, name string) ([]domain.CertificateRecord, error)
}

// WhoisOutcome is a WHOIS result plus what a client needs to offer the
// base/forced toggle.
type WhoisOutcome struct {
	Domain     string
	BaseDomain string
	Target     string
	Forced     bool
	CanToggle  bool
	Sections   []domain.WhoisSection
	Summary    domain.WhoisSummary
}

// CertsOutcome is the certificate list for a name. An empty list is a valid outcome.
type CertsOutcome struct {
	Domain       string
	Certificates []domain.CertificateRecord
}

func (o *CertsOutcome) Count() int {
	return len(o.Certificates)
}

// Service holds no per-request state and is safe for concurrent use.
type Service struct {
	whois   WhoisProvider
	certs   CertProvider
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(whois WhoisProvider, certs CertProvider, opts ...Option) *Service {
	s := &Service{
		whois:  whois,
		certs:  certs,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Whois looks up the base domain of name, or name itself when force is set.
// Forcing on a name that already is its base domain performs the same lookup.
func (s *Service) Whois(ctx context.Context, name string, force bool) (*WhoisOutcome, error) {
	start := time.Now()

	base, err := domain.BaseDomain(name)
	if err != nil {
		s.metrics.ObserveLookup(metrics.KindWhois, metrics.ResultInvalid, time.Since(start))
		return nil, err
	}

	target := base
	if force {
		target = name
	}

	sections, err := s.whois.Lookup(ctx, target)
	s.metrics.ObserveProvider(metrics.KindWhois, len(sections), err)
	if err != nil {
		s.metrics.ObserveLookup(metrics.KindWhois, metrics.ResultUnavailable, time.Since(start))
		s.logger.ErrorContext(ctx, "whois provider failed",
			slog.String("domain", name),
			slog.String("target", target),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if len(sections) == 0 {
		s.metrics.ObserveLookup(metrics.KindWhois, metrics.ResultNotFound, time.Since(start))
		return nil, fmt.Errorf("%w for %s", ErrNotFound, target)
	}

	s.metrics.ObserveLookup(metrics.KindWhois, metrics.ResultOK, time.Since(start))
	s.logger.DebugContext(ctx, "whois lookup complete",
		slog.String("target", target),
		slog.Bool("forced", force),
		slog.Int("sections", len(sections)))

	return &WhoisOutcome{
		Domain:     name,
		BaseDomain: base,
		Target:     target,
		Forced:     force,
		CanToggle:  domain.Normalize(name) != base,
		Sections:   sections,
		Summary:    domain.SummarizeWhois(sections),
	}, nil
}

// Certs looks up certificates issued for name exactly as given.
func (s *Service) Certs(ctx context.Context, name string) (*CertsOutcome, error) {
	start := time.Now()

	records, err := s.certs.Lookup(ctx, name)
	s.metrics.ObserveProvider(metrics.KindCerts, len(records), err)
	if err != nil {
		s.metrics.ObserveLookup(metrics.KindCerts, metrics.ResultUnavailable, time.Since(start))
		s.logger.ErrorContext(ctx, "certificate provider failed",
			slog.String("domain", name),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if records == nil {
		records = []domain.CertificateRecord{}
	}

	s.metrics.ObserveLookup(metrics.KindCerts, metrics.ResultOK, time.Since(start))
	return &CertsOutcome{Domain: name, Certificates: records}, nil
}

// Breakdown describes how name splits into subdomain, base domain and public suffix.
func (s *Service) Breakdown(name string) (*domain.DomainBreakdown, error) {
	return domain.Breakdown(name)
}

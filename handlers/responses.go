package handlers

import (
	"fmt"
	"time"

	"github.com/vit0-9/lookup_api/models"
	"github.com/vit0-9/lookup_api/pkg/lookup"
)

// NewWhoisLookupResponse renders a WHOIS outcome, including the toggle
// between the base domain and the exact name when they differ.
func NewWhoisLookupResponse(outcome *lookup.WhoisOutcome, queriedAt time.Time) models.WhoisLookupResponse {
	resp := models.WhoisLookupResponse{
		Domain:      outcome.Domain,
		BaseDomain:  outcome.BaseDomain,
		QueryDomain: outcome.Target,
		Forced:      outcome.Forced,
		Sections:    outcome.Sections,
		Summary:     outcome.Summary,
		QueryTime:   queriedAt.UTC(),
	}
	if !outcome.CanToggle {
		return resp
	}

	if outcome.Forced {
		resp.Toggle = &models.WhoisToggle{
			Notice: fmt.Sprintf("Forcing lookup for %s", outcome.Domain),
			Label:  fmt.Sprintf("Lookup %s instead", outcome.BaseDomain),
			Link:   models.WhoisLink(outcome.Domain, false),
		}
	} else {
		resp.Toggle = &models.WhoisToggle{
			Notice: fmt.Sprintf("Showing results for %s", outcome.BaseDomain),
			Label:  fmt.Sprintf("Force lookup for %s instead", outcome.Domain),
			Link:   models.WhoisLink(outcome.Domain, true),
		}
	}
	return resp
}

// NewCertsLookupResponse renders a certificate outcome in provider order.
func NewCertsLookupResponse(outcome *lookup.CertsOutcome, queriedAt time.Time) models.CertsLookupResponse {
	certs := make([]models.Certificate, 0, outcome.Count())
	for _, rec := range outcome.Certificates {
		certs = append(certs, models.Certificate{
			ID:             rec.ID,
			IssuerCAID:     rec.IssuerCAID,
			IssuerName:     rec.IssuerName,
			CommonName:     rec.CommonName,
			Names:          rec.Names(),
			SerialNumber:   rec.SerialNumber,
			EntryTimestamp: rec.EntryTimestamp,
			NotBefore:      rec.NotBefore,
			NotAfter:       rec.NotAfter,
		})
	}

	message := "No issued certificates found!"
	if len(certs) > 0 {
		message = fmt.Sprintf("Found %d certificates.", len(certs))
	}

	return models.CertsLookupResponse{
		Domain:       outcome.Domain,
		Count:        len(certs),
		Message:      message,
		Certificates: certs,
		QueryTime:    queriedAt.UTC(),
	}
}

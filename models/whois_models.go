// File: models/whois_models.go
package models

import (
	"time"

	"github.com/vit0-9/lookup_api/pkg/utils/domain"
)

// WhoisToggle offers the alternative lookup: the exact name when the base
// domain was shown, or the base domain when the lookup was forced.
type WhoisToggle struct {
	Notice string   `json:"notice" example:"Showing results for example.com"`
	Label  string   `json:"label" example:"Force lookup for www.example.com instead"`
	Link   LinkPath `json:"link" example:"/lookup/www.example.com/whois?force"`
}

// WhoisLookupResponse represents the response from a WHOIS lookup
type WhoisLookupResponse struct {
	Domain      string                `json:"domain" example:"www.example.com"`
	BaseDomain  string                `json:"base_domain" example:"example.com"`
	QueryDomain string                `json:"query_domain" example:"example.com"`
	Forced      bool                  `json:"forced"`
	Toggle      *WhoisToggle          `json:"toggle,omitempty"`
	Sections    []domain.WhoisSection `json:"sections"`
	Summary     domain.WhoisSummary   `json:"summary"`
	QueryTime   time.Time             `json:"query_time"`
}

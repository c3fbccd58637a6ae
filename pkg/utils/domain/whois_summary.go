package domain

import (
	"regexp"
	"strings"
	"time"
)

// WhoisSummary holds the handful of registration fields most registries expose.
// Fields are best effort; a zero value means the field was not recognised.
type WhoisSummary struct {
	Registrar      string     `json:"registrar,omitempty"`
	CreationDate   *time.Time `json:"creation_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UpdatedDate    *time.Time `json:"updated_date,omitempty"`
	NameServers    []string   `json:"name_servers,omitempty"`
	Status         []string   `json:"status,omitempty"`
}

var summaryPatterns = struct {
	registrar, created, expires, updated, nameServer, status *regexp.Regexp
}{
	registrar:  regexp.MustCompile(`(?i)^(?:sponsoring )?registrar(?: name)?:\s*(.+)$`),
	created:    regexp.MustCompile(`(?i)^(?:creation date|created(?: on)?|registered(?: on)?|registration time):\s*(.+)$`),
	expires:    regexp.MustCompile(`(?i)^(?:registry expiry date|registrar registration expiration date|expiry date|expiration date|expires(?: on)?|paid-till):\s*(.+)$`),
	updated:    regexp.MustCompile(`(?i)^(?:updated date|last updated(?: on)?|last modified|modified|changed):\s*(.+)$`),
	nameServer: regexp.MustCompile(`(?i)^(?:name server|nserver|nameserver)s?:\s*(\S+)`),
	status:     regexp.MustCompile(`(?i)^(?:domain )?status:\s*(\S+)`),
}

// SummarizeWhois extracts registration fields from the sections of a lookup.
// Later sections win for single-valued fields, since the registrar answer
// is usually more detailed than the registry's.
func SummarizeWhois(sections []WhoisSection) WhoisSummary {
	var summary WhoisSummary
	for _, section := range sections {
		for _, line := range strings.Split(section.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">>>") {
				continue
			}

			if m := summaryPatterns.registrar.FindStringSubmatch(line); m != nil {
				summary.Registrar = strings.TrimSpace(m[1])
			}
			if m := summaryPatterns.created.FindStringSubmatch(line); m != nil {
				if date := parseDate(m[1]); !date.IsZero() {
					summary.CreationDate = &date
				}
			}
			if m := summaryPatterns.expires.FindStringSubmatch(line); m != nil {
				if date := parseDate(m[1]); !date.IsZero() {
					summary.ExpirationDate = &date
				}
			}
			if m := summaryPatterns.updated.FindStringSubmatch(line); m != nil {
				if date := parseDate(m[1]); !date.IsZero() {
					summary.UpdatedDate = &date
				}
			}
			if m := summaryPatterns.nameServer.FindStringSubmatch(line); m != nil {
				summary.NameServers = append(summary.NameServers, strings.TrimSuffix(strings.ToLower(m[1]), "."))
			}
			if m := summaryPatterns.status.FindStringSubmatch(line); m != nil {
				summary.Status = append(summary.Status, m[1])
			}
		}
	}

	summary.NameServers = removeDuplicates(summary.NameServers)
	summary.Status = removeDuplicates(summary.Status)
	return summary
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2-Jan-2006",
	"January 02 2006",
	"2006/01/02",
	"2006.01.02",
}

func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, format := range dateFormats {
		if date, err := time.Parse(format, value); err == nil {
			return date.UTC()
		}
	}
	return time.Time{}
}

func removeDuplicates(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

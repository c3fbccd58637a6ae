package models

import "time"

// Certificate is a single certificate-transparency log entry.
type Certificate struct {
	ID             int64    `json:"id" example:"12345678"`
	IssuerCAID     int64    `json:"issuer_ca_id"`
	IssuerName     string   `json:"issuer_name"`
	CommonName     string   `json:"common_name" example:"www.example.com"`
	Names          []string `json:"names"`
	SerialNumber   string   `json:"serial_number"`
	EntryTimestamp string   `json:"entry_timestamp"`
	NotBefore      string   `json:"not_before"`
	NotAfter       string   `json:"not_after"`
}

// CertsLookupResponse lists the certificates issued for a domain.
// An empty list is a successful lookup.
type CertsLookupResponse struct {
	Domain       string        `json:"domain" example:"www.example.com"`
	Count        int           `json:"count"`
	Message      string        `json:"message" example:"Found 3 certificates."`
	Certificates []Certificate `json:"certificates"`
	QueryTime    time.Time     `json:"query_time"`
}

package models

// BaseDomainResponse splits a name into its registrable parts.
type BaseDomainResponse struct {
	Domain       string `json:"domain" example:"www.example.co.uk"`
	BaseDomain   string `json:"base_domain" example:"example.co.uk"`
	PublicSuffix string `json:"public_suffix" example:"co.uk"`
	Subdomain    string `json:"subdomain,omitempty" example:"www"`
	ICANN        bool   `json:"icann"`
}

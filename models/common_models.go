// models/common_models.go
package models

// APIErrorResponse represents a standard error response format.
type APIErrorResponse struct {
	StatusCode int    `json:"status_code"`       // HTTP status code
	ErrorCode  string `json:"error_code"`        // Application-specific error code
	Message    string `json:"message"`           // User-friendly error message
	Details    string `json:"details,omitempty"` // Upstream failure detail, if any
}

// Error codes carried in APIErrorResponse.ErrorCode.
const (
	ErrorCodeInvalidDomain       = "invalid_domain"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeProviderUnavailable = "provider_unavailable"
	ErrorCodeInternal            = "internal_error"
)

// HealthResponse reports liveness of the API process.
type HealthResponse struct {
	Status string `json:"status" example:"UP"`
	Uptime string `json:"uptime" example:"1h2m3s"`
}

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vit0-9/lookup_api/models"
	"github.com/vit0-9/lookup_api/pkg/lookup"
)

// LookupHandlers serves the per-domain WHOIS, certificate and base-domain routes.
type LookupHandlers struct {
	service *lookup.Service
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewLookupHandlers wires the handlers to a lookup service. A zero timeout
// leaves request cancellation to the client connection.
func NewLookupHandlers(service *lookup.Service, logger *slog.Logger, timeout time.Duration) *LookupHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &LookupHandlers{
		service: service,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// WhoisHandler godoc
// @Summary      WHOIS lookup for a domain
// @Description  Looks up the registrable base domain of the given name. The presence of the 'force' query parameter, with any value, looks up the exact name instead.
// @Tags         Domain Lookup
// @Produce      json
// @Param        domain path string true "Domain name" example(www.example.com)
// @Param        force query string false "Look up the exact name instead of its base domain"
// @Success      200 {object} models.WhoisLookupResponse "WHOIS sections in server order"
// @Failure      400 {object} models.APIErrorResponse "Invalid domain"
// @Failure      404 {object} models.APIErrorResponse "No results found"
// @Failure      502 {object} models.APIErrorResponse "WHOIS server unavailable"
// @Router       /lookup/{domain}/whois [get]
func (h *LookupHandlers) WhoisHandler(c *gin.Context) {
	name := c.Param("domain")
	_, force := c.GetQuery("force")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	outcome, err := h.service.Whois(ctx, name, force)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWhoisLookupResponse(outcome, h.now()))
}

// CertsHandler godoc
// @Summary      Certificates issued for a domain
// @Description  Searches certificate-transparency logs for the exact name given. An empty list is a successful result.
// @Tags         Domain Lookup
// @Produce      json
// @Param        domain path string true "Domain name" example(www.example.com)
// @Success      200 {object} models.CertsLookupResponse "Certificates in provider order"
// @Failure      502 {object} models.APIErrorResponse "Certificate search unavailable"
// @Router       /lookup/{domain}/certs [get]
func (h *LookupHandlers) CertsHandler(c *gin.Context) {
	name := c.Param("domain")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	outcome, err := h.service.Certs(ctx, name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCertsLookupResponse(outcome, h.now()))
}

// BaseDomainHandler godoc
// @Summary      Base domain of a name
// @Description  Splits a name into subdomain, registrable base domain and public suffix using the Public Suffix List.
// @Tags         Domain Lookup
// @Produce      json
// @Param        domain path string true "Domain name" example(www.example.co.uk)
// @Success      200 {object} models.BaseDomainResponse
// @Failure      400 {object} models.APIErrorResponse "Invalid domain"
// @Router       /lookup/{domain}/base [get]
func (h *LookupHandlers) BaseDomainHandler(c *gin.Context) {
	breakdown, err := h.service.Breakdown(c.Param("domain"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BaseDomainResponse{
		Domain:       breakdown.Domain,
		BaseDomain:   breakdown.BaseDomain,
		PublicSuffix: breakdown.PublicSuffix,
		Subdomain:    breakdown.Subdomain,
		ICANN:        breakdown.ICANN,
	})
}

func (h *LookupHandlers) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *LookupHandlers) respondError(c *gin.Context, err error) {
	resp := ErrorResponse(err)
	if resp.StatusCode == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "lookup failed",
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err))
	}
	c.AbortWithStatusJSON(resp.StatusCode, resp)
}

// ErrorResponse maps a lookup error to the status code and body returned to clients.
func ErrorResponse(err error) models.APIErrorResponse {
	switch {
	case errors.Is(err, lookup.ErrInvalidDomain):
		return models.APIErrorResponse{
			StatusCode: http.StatusBadRequest,
			ErrorCode:  models.ErrorCodeInvalidDomain,
			Message:    "Invalid domain",
			Details:    err.Error(),
		}
	case errors.Is(err, lookup.ErrNotFound):
		return models.APIErrorResponse{
			StatusCode: http.StatusNotFound,
			ErrorCode:  models.ErrorCodeNotFound,
			Message:    "No results found",
		}
	case errors.Is(err, lookup.ErrProviderUnavailable):
		return models.APIErrorResponse{
			StatusCode: http.StatusBadGateway,
			ErrorCode:  models.ErrorCodeProviderUnavailable,
			Message:    "Upstream lookup failed",
			Details:    err.Error(),
		}
	default:
		return models.APIErrorResponse{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  models.ErrorCodeInternal,
			Message:    "Internal server error",
		}
	}
}

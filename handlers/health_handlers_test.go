package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vit0-9/lookup_api/models"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/api/v1/health", NewHealthHandler().HealthCheckHandler)

	rec := serve(t, router, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.HealthResponse](t, rec)
	assert.Equal(t, "UP", resp.Status)
	assert.NotEmpty(t, resp.Uptime)
}

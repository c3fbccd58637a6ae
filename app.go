// @title           Domain Lookup API
// @version         1.0
// @description     WHOIS and certificate-transparency lookups for domain names.

// @contact.name   API Support
// @contact.email  info@bentech.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vit0-9/lookup_api/docs"
	"github.com/vit0-9/lookup_api/handlers"
	"github.com/vit0-9/lookup_api/pkg/config"
	"github.com/vit0-9/lookup_api/pkg/lookup"
	"github.com/vit0-9/lookup_api/pkg/metrics"
	"github.com/vit0-9/lookup_api/pkg/utils"
	"github.com/vit0-9/lookup_api/pkg/utils/domain"
)

// App encapsulates all the components of the application
type App struct {
	Router         *gin.Engine
	Config         config.Config
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	LookupHandlers *handlers.LookupHandlers
	HealthHandler  *handlers.HealthHandler
}

// NewApp creates and initializes a new application instance
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	service := newLookupService(cfg, logger, m)

	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger))
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	app := &App{
		Router:         router,
		Config:         cfg,
		Logger:         logger,
		Metrics:        m,
		LookupHandlers: handlers.NewLookupHandlers(service, logger, cfg.Server.LookupTimeout),
		HealthHandler:  handlers.NewHealthHandler(),
	}

	app.setupRoutes()
	return app, nil
}

// newLookupService builds the WHOIS and certificate providers from config.
// The CLI shares it with the HTTP server.
func newLookupService(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *lookup.Service {
	whoisClient := domain.NewWhoisClient(
		domain.WithWhoisServer(cfg.Whois.Server),
		domain.WithReferrals(cfg.Whois.FollowReferral, cfg.Whois.MaxReferrals),
		domain.WithWhoisTimeouts(cfg.Whois.DialTimeout, cfg.Whois.ReadTimeout),
		domain.WithWhoisLogger(logger),
	)
	certClient := domain.NewCertClient(
		domain.WithCTBaseURL(cfg.CT.BaseURL),
		domain.WithCTHTTPClient(utils.NewHTTPClient(utils.HTTPClientConfig{Timeout: cfg.HTTP.RequestTimeout})),
		domain.WithCTRateLimit(cfg.CT.RateLimit),
	)
	return lookup.NewService(whoisClient, certClient,
		lookup.WithLogger(logger),
		lookup.WithMetrics(m),
	)
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	app.Router.GET("/api/v1/health", app.HealthHandler.HealthCheckHandler)

	lookupGroup := app.Router.Group("/lookup/:domain")
	{
		lookupGroup.GET("/whois", app.LookupHandlers.WhoisHandler)
		lookupGroup.GET("/certs", app.LookupHandlers.CertsHandler)
		lookupGroup.GET("/base", app.LookupHandlers.BaseDomainHandler)
	}

	if app.Metrics != nil {
		app.Router.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}

// Start serves HTTP until ctx is cancelled, then drains in-flight requests.
func (app *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         app.Config.Addr(),
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("API server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

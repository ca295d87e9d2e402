package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blogem/webtemplate/authenticator"
	"github.com/blogem/webtemplate/config"
	"github.com/blogem/webtemplate/controllers"
	"github.com/blogem/webtemplate/database"
	"github.com/blogem/webtemplate/logger"
	appmiddleware "github.com/blogem/webtemplate/middleware"
	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/repositories"
	"github.com/blogem/webtemplate/services"
	"github.com/blogem/webtemplate/sqlmap"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize database beside the executable
	dbPath, err := database.DataSourceFor("", cfg.DatabasePath)
	if err != nil {
		return err
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseDB()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := sqlmap.NewClient(database.GetDB(),
		sqlmap.WithQueryTimeout(cfg.QueryTimeout),
		sqlmap.WithStatementCapture(cfg.CaptureSQL),
		sqlmap.WithLogger(log),
		sqlmap.WithMetrics(sqlmap.NewMetrics(registry)),
	)
	if status := client.ConnectionTest(context.Background()); status != "OK" {
		return fmt.Errorf("database connection test failed: %s", status)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(client)

	// Initialize services
	srvs := services.NewServices(repos, services.Settings{
		LogRetentionMonths: cfg.LogRetentionMonths,
		LogonPasswordHash:  cfg.LogonPasswordHash,
	})
	srvs.Session.OnSessionDataChanged(func(s models.Session) {
		log.Debug("session changed", "ip", s.IPAddress, "authenticated", s.IsAuthenticated)
	})

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Single sign-on is optional
	var auth authenticator.Provider
	if cfg.OIDCEnabled() {
		auth, err = authenticator.NewOpenIDProvider(context.Background(), authenticator.OpenIDConfig{
			Domain:       cfg.OIDC.Domain,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			CallbackURL:  cfg.OIDC.CallbackURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize OpenID provider: %w", err)
		}
	}

	r, err := setupRouter(ctrl, srvs, auth, registry, appmiddleware.SessionOptions{
		CookieName: "webtemplate_session",
		Secure:     cfg.UseHTTPS,
		Lifetime:   cfg.SessionLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("web template starting", "addr", server.Addr, "database", dbPath, "sso", auth != nil)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, auth authenticator.Provider, registry *prometheus.Registry, sessionOpts appmiddleware.SessionOptions) (*chi.Mux, error) {
	r := chi.NewRouter()

	httpMetrics := appmiddleware.NewHTTPMetrics(registry)

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))
	r.Use(httpMetrics.Handler)

	// PUBLIC ROUTES (no session required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "webtemplate"}`)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	sessionHandler, err := appmiddleware.Sessioner(sessionOpts)
	if err != nil {
		return nil, err
	}

	r.Group(func(r chi.Router) {
		r.Use(sessionHandler)
		r.Use(appmiddleware.RequireSession(srvs.Session))
		r.Use(appmiddleware.ErrorLogger(srvs.Log))

		r.Get("/", ctrl.Home.Index)
		r.Post("/dialog/{id}", ctrl.Home.Answer)
		r.Get("/logout", ctrl.Auth.Logout)
		r.Get("/session", ctrl.Session.Index)

		if auth != nil {
			r.Get("/login", ctrl.Auth.Login(auth))
			r.Get("/callback", ctrl.Auth.Callback(auth))
		}

		// PROTECTED ROUTES (logon required)
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireAuth(srvs.Session))

			r.Route("/log", func(r chi.Router) {
				r.Get("/", ctrl.Log.Index)
				r.Post("/delete", ctrl.Log.Delete)
			})
		})
	})

	return r, nil
}

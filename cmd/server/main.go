// AdmitGuard - Candidate Intake Validation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitguard

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/admitguard/internal/api"
	"github.com/tomtom215/admitguard/internal/audit"
	"github.com/tomtom215/admitguard/internal/auth"
	"github.com/tomtom215/admitguard/internal/authz"
	"github.com/tomtom215/admitguard/internal/candidate"
	"github.com/tomtom215/admitguard/internal/config"
	"github.com/tomtom215/admitguard/internal/database"
	"github.com/tomtom215/admitguard/internal/intake"
	"github.com/tomtom215/admitguard/internal/logging"
	"github.com/tomtom215/admitguard/internal/metrics"
	"github.com/tomtom215/admitguard/internal/supervisor"
	"github.com/tomtom215/admitguard/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const janitorInterval = 5 * time.Minute

//nolint:gocyclo // sequential setup
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("session_store", cfg.Security.SessionStore).
		Str("rules_version", cfg.Rules.Version).
		Msg("Starting AdmitGuard")

	if cfg.UsesDefaultAdminPassword() {
		logging.Warn().Msg("Default admin password in use; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH before exposing this server")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Strs("origins", cfg.Security.CORSOrigins).Msg("CORS allows any origin")
	}

	// === STORAGE ===

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	engine := intake.NewEngine(cfg.Rules)
	store := candidate.NewBreakerStore(candidate.NewSQLStore(db), candidate.BreakerConfig{
		Name:        "candidates",
		MaxFailures: cfg.Database.BreakerMaxFailures,
		Timeout:     cfg.Database.BreakerTimeout,
	})
	service := candidate.NewService(engine, store)

	// === SECURITY ===

	sessionStore, sessionCloser, err := auth.OpenSessionStore(auth.SessionStoreType(cfg.Security.SessionStore), cfg.Security.SessionStorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer func() {
		if err := sessionCloser.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	sessionCfg := auth.DefaultSessionMiddlewareConfig()
	sessionCfg.SessionTTL = cfg.Security.SessionTimeout
	sessionCfg.CookieSecure = cfg.Security.CookieSecure
	sessions := auth.NewSessionMiddleware(sessionStore, sessionCfg)

	credentials, err := adminCredentials(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure admin credentials")
	}
	limiter := auth.NewLoginLimiter(cfg.Security.LoginMaxAttempts, cfg.Security.LoginWindow)

	events := audit.NewLogger(audit.NewMemoryStore(0), audit.DefaultConfig())
	defer func() {
		if err := events.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing security event logger")
		}
	}()

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization")
	}
	authzMW := authz.NewMiddleware(enforcer, func(r *http.Request, s *auth.Subject, object, action string) {
		events.LogAuthzDenied(r.Context(), audit.AdminActor(s.Username, s.Roles, logging.SanitizeSessionID(s.SessionID)),
			audit.SourceFromRequest(r), object, action)
	})

	// === HTTP ===

	handler := api.NewHandler(api.HandlerDeps{
		Service:     service,
		Sessions:    sessions,
		Credentials: credentials,
		Limiter:     limiter,
		Events:      events,
		Version:     version,
	})
	router := api.NewRouter(handler, authzMW, api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	metrics.SetAppInfo(version, cfg.Rules.Version)

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewJanitorService(janitorInterval,
		services.CleanupTask{Name: "sessions", Run: sessions.Cleanup},
		services.CleanupTask{Name: "login-limiter", Run: func(context.Context) (int, error) {
			return limiter.Cleanup(), nil
		}},
	))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("AdmitGuard stopped")
}

// adminCredentials prefers the bcrypt hash when one is configured.
func adminCredentials(sec *config.SecurityConfig) (*auth.AdminCredentials, error) {
	if sec.AdminPasswordHash != "" {
		return auth.NewAdminCredentialsFromHash(sec.AdminUsername, sec.AdminPasswordHash, auth.RoleAdmin)
	}
	return auth.NewAdminCredentials(sec.AdminUsername, sec.AdminPassword, auth.RoleAdmin)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementportal/internal/bootstrap"
	"github.com/yigit/placementportal/internal/config"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/filestorage"
	"github.com/yigit/placementportal/internal/seed"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
	http     *http.Server
	stop     context.CancelFunc
}

// revocationCleanupInterval is how often expired token revocations are purged
const revocationCleanupInterval = time.Hour

// NewServer connects the database, applies migrations, seeds demo data when
// enabled and wires the router.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := bootstrap.RunMigrations(context.Background(), cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	if cfg.Seed.DemoData {
		if err := seed.CreateDemoData(context.Background(), seed.Services{
			Students:    deps.StudentService,
			Employers:   deps.EmployerService,
			EmployerOps: deps.EmployerOpsService,
			Portal:      deps.PortalService,
		}, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	setupStaticFileServing(router, deps.FileStorage, lgr)

	return &Server{
		config:   cfg,
		router:   router,
		database: database,
		deps:     deps,
		logger:   lgr,
	}, nil
}

// setupStaticFileServing serves stored blobs under the public files path
func setupStaticFileServing(router *gin.Engine, storage *filestorage.LocalStorage, lgr zerolog.Logger) {
	router.Static(bootstrap.FilesPath, storage.BasePath())
	lgr.Info().Str("path", storage.BasePath()).Str("url", bootstrap.FilesPath).Msg("Static file serving configured")
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Redis expires its own revocations
	if s.deps.Redis == nil {
		janitorCtx, stop := context.WithCancel(context.Background())
		s.stop = stop
		go s.purgeExpiredRevocations(janitorCtx)
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// purgeExpiredRevocations deletes revoked_tokens rows whose tokens have
// expired, until ctx is cancelled
func (s *Server) purgeExpiredRevocations(ctx context.Context) {
	ticker := time.NewTicker(revocationCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.deps.Repos.TokenRepository.CleanupExpiredTokens(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("Failed to purge expired token revocations")
				continue
			}
			if deleted > 0 {
				s.logger.Info().Int64("deleted", deleted).Msg("Purged expired token revocations")
			}
		}
	}
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shutdownErr error

	if s.stop != nil {
		s.stop()
	}

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = fmt.Errorf("http shutdown: %w", err)
		}
	}

	if s.deps != nil {
		s.deps.Close()
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

// Package server wires handlers, middleware, and routes into an HTTP
// server. It is the composition root: every dependency chain — database,
// services, handlers — is assembled in New, so the rest of the codebase
// receives its collaborators instead of constructing them.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/SwSsinha/NEXUS/internal/auth"
	"github.com/SwSsinha/NEXUS/internal/config"
	"github.com/SwSsinha/NEXUS/internal/handler"
	"github.com/SwSsinha/NEXUS/internal/middleware"
	sqliteRepo "github.com/SwSsinha/NEXUS/internal/repository/sqlite"
	"github.com/SwSsinha/NEXUS/internal/scraper"
	"github.com/SwSsinha/NEXUS/internal/service"
)

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// repositories → services → handlers → routes. Each layer receives only
// what it needs; handlers never touch the database directly.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the /api/v1 route tree.
//
// Middleware order matters: RequestID first so the logger can include it,
// Recoverer last so a panicking handler still produces a logged 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	metadata := scraper.New(s.config.ScrapeTimeout, s.logger)

	userService := service.NewUserService(s.db.Users(), passwords, tokens, s.logger)
	contentService := service.NewContentService(s.db.Contents(), metadata, s.logger)
	brainService := service.NewBrainService(s.db.ShareLinks(), s.db.Users(), s.db.Contents(), s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	contentHandler := handler.NewContentHandler(contentService, s.logger)
	brainHandler := handler.NewBrainHandler(brainService, s.logger)

	s.router.Get("/healthz", handler.HandleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Public: account creation, signin, and shared collections. The
		// share hash itself is the capability — no token required.
		r.Post("/signup", userHandler.HandleSignup)
		r.Post("/signin", userHandler.HandleSignin)
		r.Get("/brain/{shareLink}", brainHandler.HandleSharedView)

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/user/profile", userHandler.HandleGetProfile)
			r.Put("/user/profile", userHandler.HandleUpdateProfile)
			r.Put("/user/password", userHandler.HandleChangePassword)

			r.Post("/content", contentHandler.HandleAdd)
			r.Get("/content", contentHandler.HandleList)
			r.Delete("/content", contentHandler.HandleDelete)

			r.Post("/brain/share", brainHandler.HandleShare)
		})
	})

	return nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, give in-flight requests 30 seconds, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DatabasePath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

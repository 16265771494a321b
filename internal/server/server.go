// Package server is the composition root: it opens the store, builds the
// services and handlers, mounts middleware and routes, and runs the HTTP
// server until its context is cancelled.
//
// Dependency flow:
//
//	sqlstore.DB → service.CatalogService / service.FavoriteService
//	            → handler.CatalogHandler / handler.FavoriteHandler → chi routes
//
// Each layer only sees the layer below through an interface, so tests can
// swap any of them.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/handler"
	"github.com/sakif/starwars-api/internal/middleware"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port int

	// DatabaseURL is handed to sqlstore.Open: postgres://, mysql://,
	// sqlite:// or a bare SQLite file path.
	DatabaseURL string

	// CurrentUserID is the fixed user every favorites request acts as.
	// Zero means auth.DefaultUserID.
	CurrentUserID int64

	// RateLimit is requests per second per client IP; 0 disables it.
	RateLimit float64
	RateBurst int

	// CORSOrigins defaults to "*" when empty.
	CORSOrigins []string

	// ShutdownTimeout bounds how long in-flight requests get to finish.
	// Zero means 30 seconds.
	ShutdownTimeout time.Duration
}

// Server owns the router and the database connection.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqlstore.DB
}

// New opens the database named by cfg.DatabaseURL, migrates it and wires
// every route. The returned server owns the connection: Start closes it.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlstore.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewWithStore(cfg, db, logger), nil
}

// NewWithStore wires the routes around an already opened store.
func NewWithStore(cfg Config, db *sqlstore.DB, logger *slog.Logger) *Server {
	if cfg.CurrentUserID == 0 {
		cfg.CurrentUserID = auth.DefaultUserID
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s
}

// ServeHTTP makes the server usable directly with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupRoutes mounts middleware and routes.
//
// Route table:
//
//	GET    /                        sitemap
//	GET    /people                  list people
//	GET    /people/{id}             get person
//	GET    /planets                 list planets
//	GET    /planets/{id}            get planet
//	GET    /users                   list users
//	GET    /users/favorites         current user's favorites
//	POST   /favorite/planet/{id}    add planet favorite
//	DELETE /favorite/planet/{id}    remove planet favorite
//	POST   /favorite/people/{id}    add person favorite
//	DELETE /favorite/people/{id}    remove person favorite
//
// Trailing slashes are ignored ("/planets/" routes like "/planets") and every
// GET route also answers HEAD.
//
// Middleware order matters: RequestID and RealIP must run before the
// logger and the rate limiter read them, and Recoverer sits inside Logger so
// a panic is still logged as a 500.
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.GetHead)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", chimiddleware.RequestIDHeader},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if s.config.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(s.config.RateLimit, s.config.RateBurst).Handler)
	}
	r.Use(auth.CurrentUser(s.config.CurrentUserID))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	catalog := handler.NewCatalogHandler(service.NewCatalogService(s.db, s.logger), s.logger)
	favorites := handler.NewFavoriteHandler(service.NewFavoriteService(s.db, s.logger), s.logger)

	r.Get("/", handler.Sitemap(r))

	r.Get("/people", catalog.HandleListPeople)
	r.Get("/people/{id:[0-9]+}", catalog.HandleGetPerson)
	r.Get("/planets", catalog.HandleListPlanets)
	r.Get("/planets/{id:[0-9]+}", catalog.HandleGetPlanet)

	r.Get("/users", catalog.HandleListUsers)
	r.Get("/users/favorites", favorites.HandleList)

	r.Post("/favorite/planet/{id:[0-9]+}", favorites.HandleAddPlanet)
	r.Delete("/favorite/planet/{id:[0-9]+}", favorites.HandleRemovePlanet)
	r.Post("/favorite/people/{id:[0-9]+}", favorites.HandleAddPerson)
	r.Delete("/favorite/people/{id:[0-9]+}", favorites.HandleRemovePerson)
}

// Start serves HTTP until ctx is cancelled (main cancels it on SIGINT or
// SIGTERM), then drains in-flight requests and closes the database.
func (s *Server) Start(ctx context.Context) error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.db.Dialect().Name()),
			slog.Int64("current_user_id", s.config.CurrentUserID),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

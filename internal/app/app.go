// Package app assembles the backend: it opens the store, brings its schema
// up to date, and builds the command surface on top of it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vincowealth/internal/config"
	"vincowealth/internal/database"
	"vincowealth/internal/database/migrations"
	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/logger"
	"vincowealth/internal/middleware"
	"vincowealth/internal/migrate"
	"vincowealth/internal/shell"
)

const shutdownTimeout = 5 * time.Second

// App is an open, migrated store plus the router that serves it.
type App struct {
	cfg    *config.Config
	store  *database.Manager
	runner *migrate.Runner
	router *gin.Engine
	token  string
}

// Option configures New.
type Option func(*options)

type options struct {
	storeConfig *database.Config
	registry    *migrate.Registry
	window      shell.Window
	out         io.Writer
}

// WithStoreConfig overrides the store configuration derived from config.
func WithStoreConfig(c *database.Config) Option {
	return func(o *options) { o.storeConfig = c }
}

// WithRegistry replaces the shipped migrations.
func WithRegistry(r *migrate.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithWindow sets the window handed to shell setup.
func WithWindow(w shell.Window) Option {
	return func(o *options) { o.window = w }
}

// WithOutput redirects the startup diagnostics.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// New opens the store, runs every pending migration and builds the router.
// Store and migration failures are returned as STORE_UNAVAILABLE and
// MIGRATION_FAILED respectively; the caller should treat both as fatal.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.storeConfig == nil {
		o.storeConfig = database.NewConfig(cfg)
	}
	if o.registry == nil {
		reg, err := migrations.Registry()
		if err != nil {
			return nil, apperrors.Migration(0, "load shipped migrations", err)
		}
		o.registry = reg
	}

	store, err := database.Open(o.storeConfig)
	if err != nil {
		return nil, err
	}

	runner := migrate.NewRunner(store, o.registry, migrate.WithObserver(func(tr migrate.Transition) {
		logger.Get().Debugw("migration state", "from", tr.From.String(), "to", tr.To.String(), "version", tr.Version)
	}))
	if _, err := runner.Run(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	if err := shell.Setup(o.window, shell.Options{
		Title:      cfg.WindowTitle,
		Production: cfg.IsProduction(),
		DBPath:     store.Path(),
		Out:        o.out,
	}); err != nil {
		_ = store.Close()
		return nil, err
	}

	token, err := middleware.GenerateSessionToken(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &App{
		cfg:    cfg,
		store:  store,
		runner: runner,
		router: NewRouter(cfg, store, runner),
		token:  token,
	}, nil
}

// Handler returns the command surface.
func (a *App) Handler() http.Handler { return a.router }

// Store returns the open store.
func (a *App) Store() *database.Manager { return a.store }

// Runner returns the migration runner that prepared the store.
func (a *App) Runner() *migrate.Runner { return a.runner }

// SessionToken returns the bearer token the shell must present this launch.
func (a *App) SessionToken() string { return a.token }

// Serve listens on the configured address until ctx is cancelled, then
// drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Get().Infow("command surface listening", "addr", a.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", a.cfg.ListenAddr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

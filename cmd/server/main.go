// Command server runs the CV website.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvasylkiv/vitae/internal/config"
	"github.com/mvasylkiv/vitae/internal/content"
	"github.com/mvasylkiv/vitae/internal/handlers"
	"github.com/mvasylkiv/vitae/internal/middleware"
	"github.com/mvasylkiv/vitae/internal/views"
	"github.com/mvasylkiv/vitae/pkg/i18n"
	"github.com/mvasylkiv/vitae/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(
		logger.SentryConfig{DSN: cfg.SentryDSN, Environment: cfg.Environment},
		middleware.RequestIDExtractor(),
	).With("app", "vitae")

	if err := run(cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	resume, err := content.Load(cfg.ContentFile)
	if err != nil {
		return err
	}

	store := i18n.NewStore(
		i18n.NewFSLoader(os.DirFS(cfg.LocalesDir)),
		i18n.WithStoreLogger(log),
	)
	ctrl := i18n.NewController(store,
		i18n.WithLanguages(cfg.Languages...),
		i18n.WithFallbackLanguage("en"),
		i18n.WithInitialLanguage(cfg.DefaultLanguage),
		i18n.WithControllerLogger(log),
	)
	// Templates fall back to the package-level accessor when no
	// request-scoped translator is available.
	i18n.SetDefault(ctrl)

	ctrl.Subscribe(func(n i18n.Notification) {
		log.Info("i18n event",
			slog.String("event", string(n.Event)),
			slog.String("language", n.Language),
		)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the default language so the first render sees live content.
	ctrl.Preload(ctx, cfg.DefaultLanguage)

	renderer, err := views.New()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.Router(cfg, log, ctrl, store, resume, renderer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		ctrl.Wait()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

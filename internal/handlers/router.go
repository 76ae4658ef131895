package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvasylkiv/vitae/internal/config"
	"github.com/mvasylkiv/vitae/internal/content"
	"github.com/mvasylkiv/vitae/internal/middleware"
	"github.com/mvasylkiv/vitae/internal/views"
	"github.com/mvasylkiv/vitae/pkg/cookie"
	"github.com/mvasylkiv/vitae/pkg/health"
	"github.com/mvasylkiv/vitae/pkg/i18n"
)

// Router assembles the full HTTP surface.
func Router(
	cfg *config.Config,
	log *slog.Logger,
	ctrl *i18n.Controller,
	store *i18n.Store,
	resume *content.Resume,
	renderer *views.Renderer,
) http.Handler {
	cookies := cookie.New(cookie.WithSecure(cfg.Environment == "production"))

	pages := NewPages(renderer, resume, cookies, log, cfg.BaseURL, cfg.Languages)
	prefs := NewPreferences(ctrl, cookies, log)
	locales := NewLocales(store, cfg.Languages)
	pdf := NewPDF(resume, log)
	seo := NewSEO(cfg.BaseURL, cfg.Languages)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics)

	// Language-aware routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Language(ctrl, cookies))
		r.Get("/", pages.Home)
		r.Get("/resume.pdf", pdf.Download)
	})

	r.Get("/language", prefs.SwitchLanguage)
	r.Get("/theme", prefs.SwitchTheme)
	r.Get("/locales/{lang}/translation.json", locales.Get)

	r.Get("/sitemap.xml", seo.Sitemap)
	r.Get("/robots.txt", seo.Robots)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
		"translations": func(ctx context.Context) error {
			if !store.Loaded(cfg.DefaultLanguage) {
				return fmt.Errorf("default language %q not loaded", cfg.DefaultLanguage)
			}
			return nil
		},
	}))
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(cfg.StaticDir)),
	))

	return r
}

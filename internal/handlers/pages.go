package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/mvasylkiv/vitae/internal/content"
	"github.com/mvasylkiv/vitae/internal/middleware"
	"github.com/mvasylkiv/vitae/internal/views"
	"github.com/mvasylkiv/vitae/pkg/cookie"
)

// ThemeCookie is the durable client-side key for the theme preference.
const ThemeCookie = "theme"

// metaDescriptionLimit keeps the description within what search engines show.
const metaDescriptionLimit = 160

// Pages renders the CV page.
type Pages struct {
	renderer  *views.Renderer
	resume    *content.Resume
	cookies   *cookie.Manager
	log       *slog.Logger
	baseURL   string
	languages []string
}

// NewPages creates the page handler.
func NewPages(renderer *views.Renderer, resume *content.Resume, cookies *cookie.Manager, log *slog.Logger, baseURL string, languages []string) *Pages {
	return &Pages{
		renderer:  renderer,
		resume:    resume,
		cookies:   cookies,
		log:       log,
		baseURL:   baseURL,
		languages: languages,
	}
}

// Home renders the CV in the request language and theme.
func (h *Pages) Home(w http.ResponseWriter, r *http.Request) {
	tr := middleware.GetTranslator(r.Context())

	theme := "light"
	if v, err := h.cookies.Get(r, ThemeCookie); err == nil && (v == "light" || v == "dark") {
		theme = v
	}

	jsonld, err := personJSONLD(h.resume, h.baseURL)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := views.PageData{
		Lang:        middleware.GetLanguage(r.Context()),
		Theme:       theme,
		BaseURL:     h.baseURL,
		Path:        "/",
		Description: truncate(h.resume.PlainSummary(), metaDescriptionLimit),
		Languages:   h.languages,
		Resume:      h.resume,
		JSONLD:      jsonld,
	}

	// Render into a buffer first so a template failure can still become a
	// clean 500 instead of a half-written page.
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, "index", data, tr); err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "page render failed", slog.String("error", err.Error()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/mvasylkiv/vitae/internal/middleware"
	"github.com/mvasylkiv/vitae/pkg/cookie"
	"github.com/mvasylkiv/vitae/pkg/i18n"
)

// Preferences handles language and theme switching. Both preferences live in
// cookies. The cookie write happens before the redirect, so the follow-up
// request already sees the persisted state.
type Preferences struct {
	ctrl      *i18n.Controller
	cookies   *cookie.Manager
	log       *slog.Logger
	languages []string
}

// NewPreferences creates the preference handlers.
func NewPreferences(ctrl *i18n.Controller, cookies *cookie.Manager, log *slog.Logger) *Preferences {
	return &Preferences{
		ctrl:      ctrl,
		cookies:   cookies,
		log:       log,
		languages: ctrl.Languages(),
	}
}

// SwitchLanguage persists the language choice and sends the visitor back.
// An unknown code redirects without a cookie write; the session keeps its
// previous language.
func (h *Preferences) SwitchLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if slices.Contains(h.languages, lang) {
		h.cookies.Set(w, middleware.LanguageCookie, lang)

		// Warm the translation tree so the redirected render hits the cache.
		// The request context ends at the redirect; the load should not.
		go h.ctrl.Preload(context.WithoutCancel(r.Context()), lang)
	} else {
		h.log.WarnContext(r.Context(), "language switch rejected", slog.String("language", lang))
	}

	redirectBack(w, r)
}

// SwitchTheme persists the theme choice and sends the visitor back.
func (h *Preferences) SwitchTheme(w http.ResponseWriter, r *http.Request) {
	theme := r.URL.Query().Get("set")
	if theme == "light" || theme == "dark" {
		h.cookies.Set(w, ThemeCookie, theme)
	}
	redirectBack(w, r)
}

// redirectBack returns the visitor to the "from" path, restricted to local
// absolute paths so the endpoint cannot be used as an open redirect.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("from")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/mvasylkiv/vitae/pkg/i18n"
)

// Locales serves the per-language translation resource consumed by the
// i18n pipeline and any client-side consumer.
type Locales struct {
	store     *i18n.Store
	languages []string
}

// NewLocales creates the translation resource handler.
func NewLocales(store *i18n.Store, languages []string) *Locales {
	return &Locales{store: store, languages: languages}
}

// Get serves GET /locales/{lang}/translation.json. The tree is populated on
// first access per language; a failed load serves an empty object rather
// than an error, mirroring the pipeline's degrade-don't-fail contract.
func (h *Locales) Get(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !slices.Contains(h.languages, lang) {
		http.NotFound(w, r)
		return
	}

	tree := h.store.Load(r.Context(), lang)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	// Clients bust caches with a query parameter; keep proxies honest too.
	w.Header().Set("Cache-Control", "no-cache")
	_ = json.NewEncoder(w).Encode(tree)
}

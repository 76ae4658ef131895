// Package views renders the site's HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/mvasylkiv/vitae/internal/content"
	"github.com/mvasylkiv/vitae/pkg/i18n"
)

//go:embed templates/*.html
var files embed.FS

// PageData carries everything the page template needs.
type PageData struct {
	Lang        string
	Theme       string
	BaseURL     string
	Path        string
	Description string
	Languages   []string
	Resume      *content.Resume
	JSONLD      template.JS
}

// Renderer holds the parsed page templates.
type Renderer struct {
	base *template.Template
}

// New parses the embedded templates. The "t" function defaults to the
// package-global translate accessor; Render rebinds it per request.
func New() (*Renderer, error) {
	base, err := template.New("").
		Funcs(template.FuncMap{"t": i18n.T}).
		ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("views: parsing templates: %w", err)
	}
	return &Renderer{base: base}, nil
}

// Render executes the named template. When a Translator is given, the "t"
// function resolves in its language; otherwise it falls through to the
// global accessor.
func (r *Renderer) Render(w io.Writer, name string, data any, tr *i18n.Translator) error {
	tmpl, err := r.base.Clone()
	if err != nil {
		return fmt.Errorf("views: cloning templates: %w", err)
	}
	if tr != nil {
		tmpl = tmpl.Funcs(template.FuncMap{"t": tr.T})
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("views: rendering %s: %w", name, err)
	}
	return nil
}

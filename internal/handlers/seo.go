package handlers

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"net/http"

	"github.com/mvasylkiv/vitae/internal/content"
)

// personJSONLD builds the schema.org Person structured data embedded in the
// page head.
func personJSONLD(resume *content.Resume, baseURL string) (template.JS, error) {
	sameAs := make([]string, 0, len(resume.Profile.Links))
	for _, l := range resume.Profile.Links {
		sameAs = append(sameAs, l.URL)
	}

	doc := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     resume.Profile.Name,
		"jobTitle": resume.Profile.Title,
		"url":      baseURL,
	}
	if resume.Profile.Email != "" {
		doc["email"] = "mailto:" + resume.Profile.Email
	}
	if len(sameAs) > 0 {
		doc["sameAs"] = sameAs
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling structured data: %w", err)
	}
	return template.JS(data), nil //nolint:gosec
}

// SEO serves the sitemap and robots endpoints.
type SEO struct {
	baseURL   string
	languages []string
}

// NewSEO creates the SEO handler.
func NewSEO(baseURL string, languages []string) *SEO {
	return &SEO{baseURL: baseURL, languages: languages}
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap serves GET /sitemap.xml with one URL per language.
func (h *SEO) Sitemap(w http.ResponseWriter, _ *http.Request) {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: h.baseURL + "/"}},
	}
	for _, lang := range h.languages {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + "/?lang=" + lang})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(set)
}

// Robots serves GET /robots.txt.
func (h *SEO) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", h.baseURL)
}

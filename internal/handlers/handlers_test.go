package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/mvasylkiv/vitae/internal/config"
	"github.com/mvasylkiv/vitae/internal/content"
	"github.com/mvasylkiv/vitae/internal/handlers"
	"github.com/mvasylkiv/vitae/internal/middleware"
	"github.com/mvasylkiv/vitae/internal/views"
	"github.com/mvasylkiv/vitae/pkg/i18n"
	"github.com/mvasylkiv/vitae/pkg/logger"
)

const testResume = `
profile:
  name: Maria Vasylkiv
  title: Software Engineer
  email: maria@example.com
  summary: "Builder of **reliable** backend systems."
experience:
  - company: Acme Corp
    role: Senior Engineer
    start: "2021"
    description: "Led the platform team."
skills:
  - category: Backend
    level: 90
    items: [Go]
`

func newServer(t *testing.T) http.Handler {
	t.Helper()

	resume, err := content.Parse([]byte(testResume))
	require.NoError(t, err)

	renderer, err := views.New()
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"en/translation.json": {Data: []byte(`{"sections":{"experience":"Work Experience"}}`)},
		"es/translation.json": {Data: []byte(`{"sections":{"experience":"Experiencia en Vivo"}}`)},
	}
	store := i18n.NewStore(i18n.NewFSLoader(fsys))
	ctrl := i18n.NewController(store, i18n.WithLanguages("en", "es", "fr", "de"))
	ctrl.Preload(context.Background(), "en")

	cfg := &config.Config{
		Addr:            ":0",
		Environment:     "test",
		BaseURL:         "http://cv.test",
		DefaultLanguage: "en",
		Languages:       []string{"en", "es", "fr", "de"},
		StaticDir:       t.TempDir(),
	}

	return handlers.Router(cfg, logger.NewNop(), ctrl, store, resume, renderer)
}

func get(t *testing.T, srv http.Handler, target string, mod ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mod {
		m(req)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	t.Run("renders the page in English by default", func(t *testing.T) {
		rec := get(t, srv, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")

		body := rec.Body.String()
		require.Contains(t, body, "Maria Vasylkiv")
		require.Contains(t, body, "Work Experience")
		require.Contains(t, body, "<strong>reliable</strong>")
		require.Contains(t, body, `"@type":"Person"`)
		require.Contains(t, body, `hreflang="es"`)
	})

	t.Run("live tree wins for the requested language", func(t *testing.T) {
		rec := get(t, srv, "/?lang=es")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Experiencia en Vivo")
	})

	t.Run("default-table tier covers a language with no live keys", func(t *testing.T) {
		rec := get(t, srv, "/?lang=fr")
		require.Equal(t, http.StatusOK, rec.Code)
		// fr has no fetched resource; the compiled-in French defaults resolve.
		require.Contains(t, rec.Body.String(), "Expérience Professionnelle")
	})

	t.Run("language cookie drives rendering", func(t *testing.T) {
		rec := get(t, srv, "/", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: middleware.LanguageCookie, Value: "es"})
		})
		require.Contains(t, rec.Body.String(), "Experiencia en Vivo")
	})

	t.Run("theme cookie sets the page theme", func(t *testing.T) {
		rec := get(t, srv, "/", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: handlers.ThemeCookie, Value: "dark"})
		})
		require.Contains(t, rec.Body.String(), `data-theme="dark"`)
	})
}

func TestPreferences(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	t.Run("language switch persists cookie and redirects", func(t *testing.T) {
		rec := get(t, srv, "/language?lang=es&from=/")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, middleware.LanguageCookie, cookies[0].Name)
		require.Equal(t, "es", cookies[0].Value)
	})

	t.Run("unknown language writes no cookie", func(t *testing.T) {
		rec := get(t, srv, "/language?lang=xx")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("redirect target is restricted to local paths", func(t *testing.T) {
		rec := get(t, srv, "/language?lang=es&from=//evil.test/phish")
		require.Equal(t, "/", rec.Header().Get("Location"))

		rec = get(t, srv, "/language?lang=es&from=https://evil.test")
		require.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("theme switch persists cookie", func(t *testing.T) {
		rec := get(t, srv, "/theme?set=dark")
		require.Equal(t, http.StatusSeeOther, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, handlers.ThemeCookie, cookies[0].Name)
		require.Equal(t, "dark", cookies[0].Value)
	})

	t.Run("invalid theme writes no cookie", func(t *testing.T) {
		rec := get(t, srv, "/theme?set=neon")
		require.Empty(t, rec.Result().Cookies())
	})
}

func TestLocales(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	t.Run("serves the translation resource", func(t *testing.T) {
		rec := get(t, srv, "/locales/es/translation.json")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		require.Contains(t, rec.Body.String(), "Experiencia en Vivo")
	})

	t.Run("missing resource degrades to an empty object", func(t *testing.T) {
		rec := get(t, srv, "/locales/fr/translation.json")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, "{}", rec.Body.String())
	})

	t.Run("unsupported language is 404", func(t *testing.T) {
		rec := get(t, srv, "/locales/xx/translation.json")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPDF(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	rec := get(t, srv, "/resume.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "maria-vasylkiv-resume.pdf")

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "%PDF"), "body must be a PDF document")
}

func TestSEO(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	t.Run("sitemap lists every language", func(t *testing.T) {
		rec := get(t, srv, "/sitemap.xml")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "http://cv.test/")
		for _, lang := range []string{"en", "es", "fr", "de"} {
			require.Contains(t, body, "?lang="+lang)
		}
	})

	t.Run("robots points at the sitemap", func(t *testing.T) {
		rec := get(t, srv, "/robots.txt")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Sitemap: http://cv.test/sitemap.xml")
	})
}

func TestOps(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	t.Run("liveness", func(t *testing.T) {
		require.Equal(t, http.StatusOK, get(t, srv, "/health/live").Code)
	})

	t.Run("readiness after preload", func(t *testing.T) {
		require.Equal(t, http.StatusOK, get(t, srv, "/health/ready").Code)
	})

	t.Run("metrics endpoint responds", func(t *testing.T) {
		require.Equal(t, http.StatusOK, get(t, srv, "/metrics").Code)
	})
}

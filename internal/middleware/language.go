package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/mvasylkiv/vitae/pkg/cookie"
	"github.com/mvasylkiv/vitae/pkg/i18n"
)

// LanguageCookie is the durable client-side key for the language preference.
const LanguageCookie = "language"

type (
	languageKey   struct{}
	translatorKey struct{}
)

// Language resolves the request language and stores a pinned Translator in
// the context. Sources, in priority order: the "lang" query parameter, the
// language cookie, then the Accept-Language header matched against the
// supported set. Anything unresolvable falls back to the controller's
// current language.
//
// The resolved language's translation tree is populated on first access, so
// the first visitor in a language pays the load and everyone after hits the
// cache.
func Language(ctrl *i18n.Controller, cookies *cookie.Manager) func(http.Handler) http.Handler {
	supported := ctrl.Languages()

	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLanguage(r, supported, matcher, cookies)
			tr := ctrl.For(lang)
			ctrl.Preload(r.Context(), tr.Language())

			ctx := context.WithValue(r.Context(), languageKey{}, tr.Language())
			ctx = context.WithValue(ctx, translatorKey{}, tr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLanguage(r *http.Request, supported []string, matcher language.Matcher, cookies *cookie.Manager) string {
	if v := r.URL.Query().Get("lang"); isSupported(v, supported) {
		return v
	}
	if v, err := cookies.Get(r, LanguageCookie); err == nil && isSupported(v, supported) {
		return v
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if prefs, _, err := language.ParseAcceptLanguage(header); err == nil && len(prefs) > 0 {
			if _, idx, conf := matcher.Match(prefs...); conf > language.No && idx < len(supported) {
				return supported[idx]
			}
		}
	}
	return ""
}

func isSupported(code string, supported []string) bool {
	if code == "" {
		return false
	}
	for _, s := range supported {
		if s == code {
			return true
		}
	}
	return false
}

// GetLanguage returns the resolved request language, or "".
func GetLanguage(ctx context.Context) string {
	if v, ok := ctx.Value(languageKey{}).(string); ok {
		return v
	}
	return ""
}

// GetTranslator returns the request-scoped Translator, or nil when the
// Language middleware is not installed.
func GetTranslator(ctx context.Context) *i18n.Translator {
	if v, ok := ctx.Value(translatorKey{}).(*i18n.Translator); ok {
		return v
	}
	return nil
}

// Package i18n implements the site's translation resolution pipeline.
//
// Translations for a language form a Tree: a nested string-keyed structure
// whose leaves are strings. Trees are fetched lazily per language into a
// Store; a compiled-in default table covers critical UI strings when a
// fetched tree is missing or incomplete.
//
// Lookups go through a Controller, which resolves a dotted key through an
// ordered chain of fallback tiers, first success wins:
//
//  1. the fetched Tree for the current language
//  2. the default table for the current language
//  3. the default table for English (when the current language is not English)
//  4. the caller-supplied default, or the last dot-segment of the key
//
// Each tier fails independently per key, so a language whose fetched tree
// exists but lacks a specific key still falls through to its defaults.
// Resolution always produces a displayable string; a missing key is not an
// error condition.
//
// The Controller owns the current language (single writer), persists language
// changes best-effort through a Persister, and notifies registered
// subscribers on language changes and on completed translation loads.
// Persistence happens before notification so subscribers that read the
// persisted state observe it consistently.
//
// # Basic Usage
//
//	store := i18n.NewStore(i18n.NewFSLoader(os.DirFS("locales")))
//	ctrl := i18n.NewController(store,
//		i18n.WithLanguages("en", "es", "fr", "de"),
//		i18n.WithPersister(i18n.NewFilePersister(".language")),
//	)
//	ctrl.Preload(ctx, "en")
//
//	ctrl.Translate("sections.experience")          // "Work Experience"
//	ctrl.Translate("missing.key", "Fallback Text") // "Fallback Text"
//
// Template code that cannot inject the Controller uses the package-level
// accessor after SetDefault:
//
//	i18n.SetDefault(ctrl)
//	i18n.T("sections.skills")
package i18n

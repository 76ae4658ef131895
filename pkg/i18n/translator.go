package i18n

// Translator is a read-only view of a Controller pinned to one language.
// Handlers create one per request so rendering never depends on the
// process-wide current language.
type Translator struct {
	ctrl *Controller
	lang string
}

// For returns a Translator pinned to the given language. An empty or
// unsupported language falls back to the Controller's current language.
func (c *Controller) For(lang string) *Translator {
	if !c.supported(lang) {
		lang = c.Language()
	}
	return &Translator{ctrl: c, lang: lang}
}

// T resolves a key through the fallback chain for the pinned language.
func (t *Translator) T(key string, defaultValue ...string) string {
	return t.ctrl.TranslateIn(t.lang, key, defaultValue...)
}

// Language returns the pinned language.
func (t *Translator) Language() string {
	return t.lang
}

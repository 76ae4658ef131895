package i18n

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// Events emitted by the Controller.
const (
	// EventLanguageChanged fires synchronously after a successful language
	// switch, once the new language has been persisted (best-effort).
	EventLanguageChanged Event = "language_changed"
	// EventTranslationsLoaded fires after the translation resource for the
	// switched-to language has been fetched into the Store.
	EventTranslationsLoaded Event = "translations_loaded"
)

// Event identifies a Controller notification type.
type Event string

// Notification is the payload delivered to subscribers.
type Notification struct {
	Event    Event
	Language string
}

// Subscriber receives Controller notifications.
type Subscriber func(Notification)

// resolver is one fallback tier: it attempts to resolve a key and reports
// whether it succeeded. Tiers are combined first-success-wins.
type resolver func(key string) (string, bool)

// Controller owns the current language and orchestrates translation lookups
// across the fallback tiers. It is the single writer of the current language;
// any number of goroutines may read and translate concurrently.
type Controller struct {
	store     *Store
	defaults  map[string]Tree
	persister Persister
	log       *slog.Logger
	fallback  string
	languages []string

	mu      sync.RWMutex
	current string
	subs    []subscription
	nextID  int

	loads sync.WaitGroup
}

type subscription struct {
	id int
	fn Subscriber
}

// ControllerOption configures the Controller.
type ControllerOption func(*Controller)

// WithLanguages sets the closed set of supported languages.
// ChangeLanguage rejects codes outside this set.
func WithLanguages(langs ...string) ControllerOption {
	return func(c *Controller) {
		c.languages = slices.Clone(langs)
	}
}

// WithFallbackLanguage sets the universal fallback language (default "en").
func WithFallbackLanguage(lang string) ControllerOption {
	return func(c *Controller) {
		if lang != "" {
			c.fallback = lang
		}
	}
}

// WithInitialLanguage seeds the current language. A persisted preference,
// when present, takes priority over this seed.
func WithInitialLanguage(lang string) ControllerOption {
	return func(c *Controller) {
		if lang != "" {
			c.current = lang
		}
	}
}

// WithPersister sets the durable storage for the language preference.
func WithPersister(p Persister) ControllerOption {
	return func(c *Controller) {
		c.persister = p
	}
}

// WithDefaultTable replaces the compiled-in default table.
func WithDefaultTable(table map[string]Tree) ControllerOption {
	return func(c *Controller) {
		if table != nil {
			c.defaults = table
		}
	}
}

// WithControllerLogger sets the logger for persistence diagnostics.
func WithControllerLogger(log *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController creates a Controller over the given store. The current
// language is seeded from the persisted preference when available, then from
// WithInitialLanguage, then from the fallback language.
func NewController(store *Store, opts ...ControllerOption) *Controller {
	if store == nil {
		panic("i18n: store is not provided")
	}
	c := &Controller{
		store:    store,
		defaults: defaultTable,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		fallback: "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.current == "" {
		c.current = c.fallback
	}
	if c.persister != nil {
		if lang, ok := c.persister.Load(); ok && c.supported(lang) {
			c.current = lang
		}
	}
	return c
}

// Language returns the current language.
func (c *Controller) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Languages returns the supported languages, or nil when unrestricted.
func (c *Controller) Languages() []string {
	return slices.Clone(c.languages)
}

// FallbackLanguage returns the universal fallback language.
func (c *Controller) FallbackLanguage() string {
	return c.fallback
}

// supported reports whether a language is in the configured set.
// An empty set accepts any non-empty code.
func (c *Controller) supported(lang string) bool {
	if lang == "" {
		return false
	}
	if len(c.languages) == 0 {
		return true
	}
	return slices.Contains(c.languages, lang)
}

// ChangeLanguage switches the current language. Switching to the language
// already current is a no-op: no persistence write, no notification.
//
// Otherwise the in-memory language changes first, the preference is persisted
// best-effort (a storage failure is logged and the switch still proceeds),
// subscribers are notified of the change, and the translation resource for
// the new language is fetched in the background. Subscribers are notified a
// second time once the fetch completes.
func (c *Controller) ChangeLanguage(ctx context.Context, lang string) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if !c.supported(lang) {
		return ErrUnsupportedLanguage
	}

	c.mu.Lock()
	if lang == c.current {
		c.mu.Unlock()
		return nil
	}
	c.current = lang
	c.mu.Unlock()

	// Persist before notifying so subscribers that read storage see the
	// switched state. Persistence is best-effort: the session keeps working
	// without it.
	if c.persister != nil {
		if err := c.persister.Save(lang); err != nil {
			c.log.WarnContext(ctx, "language preference not persisted",
				slog.String("language", lang),
				slog.String("error", err.Error()),
			)
		}
	}

	c.notify(Notification{Event: EventLanguageChanged, Language: lang})

	c.loads.Add(1)
	go func() {
		defer c.loads.Done()
		c.store.Load(ctx, lang)
		c.notify(Notification{Event: EventTranslationsLoaded, Language: lang})
	}()

	return nil
}

// Preload fetches translation resources for the given languages, blocking
// until they are cached. Use at startup so first renders see live content
// instead of the default tiers.
func (c *Controller) Preload(ctx context.Context, langs ...string) {
	for _, lang := range langs {
		c.store.Load(ctx, lang)
	}
}

// Wait blocks until all background loads triggered by ChangeLanguage have
// completed. Intended for shutdown and tests.
func (c *Controller) Wait() {
	c.loads.Wait()
}

// Subscribe registers a subscriber and returns its removal function.
// Subscribers are invoked synchronously in registration order.
func (c *Controller) Subscribe(fn Subscriber) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs = slices.DeleteFunc(c.subs, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (c *Controller) notify(n Notification) {
	c.mu.RLock()
	subs := slices.Clone(c.subs)
	c.mu.RUnlock()

	for _, s := range subs {
		s.fn(n)
	}
}

// Translate resolves a key for the current language through the fallback
// chain. When no tier resolves, it returns the optional caller default, or
// the last dot-segment of the key. The result is always displayable.
func (c *Controller) Translate(key string, defaultValue ...string) string {
	return c.TranslateIn(c.Language(), key, defaultValue...)
}

// TranslateIn resolves a key for an explicit language. Request-scoped
// rendering uses this through a Translator so concurrent visitors with
// different languages never contend on the current-language state.
func (c *Controller) TranslateIn(lang, key string, defaultValue ...string) string {
	for _, tier := range c.chain(lang) {
		if s, ok := tier(key); ok {
			return s
		}
	}
	if len(defaultValue) > 0 && defaultValue[0] != "" {
		return defaultValue[0]
	}
	return LastSegment(key)
}

// chain builds the ordered fallback tiers for a language. Every tier fails
// independently per key; none is skipped because an earlier tier's tree
// merely exists.
func (c *Controller) chain(lang string) []resolver {
	tiers := make([]resolver, 0, 3)

	tiers = append(tiers, func(key string) (string, bool) {
		tree, ok := c.store.Tree(lang)
		if !ok {
			return "", false
		}
		return tree.Resolve(key)
	})

	tiers = append(tiers, func(key string) (string, bool) {
		return c.defaults[lang].Resolve(key)
	})

	if lang != c.fallback {
		tiers = append(tiers, func(key string) (string, bool) {
			return c.defaults[c.fallback].Resolve(key)
		})
	}

	return tiers
}

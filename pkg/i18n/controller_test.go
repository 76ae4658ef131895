package i18n_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasylkiv/vitae/pkg/i18n"
)

// staticLoader serves fixed trees per language; unknown languages fail.
func staticLoader(trees map[string]i18n.Tree) i18n.Loader {
	return i18n.LoaderFunc(func(_ context.Context, lang string) (i18n.Tree, error) {
		if tree, ok := trees[lang]; ok {
			return tree, nil
		}
		return nil, errors.New("no such language")
	})
}

// recordingPersister counts writes and fails on demand.
type recordingPersister struct {
	mu     sync.Mutex
	saves  []string
	failed bool
}

func (p *recordingPersister) Save(lang string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed {
		return errors.New("storage unavailable")
	}
	p.saves = append(p.saves, lang)
	return nil
}

func (p *recordingPersister) Load() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return "", false
	}
	return p.saves[len(p.saves)-1], true
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func TestTranslateFallbackTiers(t *testing.T) {
	t.Parallel()

	store := i18n.NewStore(staticLoader(map[string]i18n.Tree{
		"en": {"sections": map[string]any{"experience": "Work Experience"}},
	}))
	store.Load(context.Background(), "en")

	defaults := map[string]i18n.Tree{
		"en": {"sections": map[string]any{"experience": "Work Experience"}},
		"es": {"sections": map[string]any{"experience": "Experiencia Laboral"}},
	}

	newCtrl := func(lang string) *i18n.Controller {
		return i18n.NewController(store,
			i18n.WithDefaultTable(defaults),
			i18n.WithInitialLanguage(lang),
		)
	}

	t.Run("tier 2: current-language defaults beat English live tree", func(t *testing.T) {
		t.Parallel()
		ctrl := newCtrl("es")
		// The store only has an "en" entry, so tier 1 misses for "es" and the
		// Spanish default table resolves.
		require.Equal(t, "Experiencia Laboral", ctrl.Translate("sections.experience"))
	})

	t.Run("tier 3: English defaults when current language has none", func(t *testing.T) {
		t.Parallel()
		ctrl := newCtrl("fr")
		require.Equal(t, "Work Experience", ctrl.Translate("sections.experience"))
	})

	t.Run("tier 4: caller default when nothing matches", func(t *testing.T) {
		t.Parallel()
		ctrl := newCtrl("es")
		require.Equal(t, "Fallback Text", ctrl.Translate("nonexistent.key", "Fallback Text"))
	})

	t.Run("tier 4: last dot-segment without caller default", func(t *testing.T) {
		t.Parallel()
		ctrl := newCtrl("es")
		require.Equal(t, "missingKey", ctrl.Translate("a.b.missingKey"))
	})

	t.Run("keys in English defaults never surface as raw dotted keys", func(t *testing.T) {
		t.Parallel()
		for _, lang := range []string{"en", "es", "fr", "de"} {
			ctrl := i18n.NewController(store, i18n.WithInitialLanguage(lang))
			for _, key := range []string{
				"header.title", "sections.experience", "sections.skills", "actions.download",
			} {
				got := ctrl.Translate(key)
				assert.NotEqual(t, key, got, "lang=%s key=%s", lang, key)
				assert.NotEmpty(t, got)
			}
		}
	})

	t.Run("translate is idempotent without state changes", func(t *testing.T) {
		t.Parallel()
		ctrl := newCtrl("fr")
		first := ctrl.Translate("sections.experience")
		second := ctrl.Translate("sections.experience")
		require.Equal(t, first, second)
	})

	t.Run("sub-tree hit falls through to the next tier", func(t *testing.T) {
		t.Parallel()
		ctrl := newCtrl("en")
		// "sections" resolves to a sub-tree in every tier, which counts as a
		// miss, so the terminal fallback returns the key itself.
		require.Equal(t, "sections", ctrl.Translate("sections"))
	})
}

func TestChangeLanguage(t *testing.T) {
	t.Parallel()

	trees := map[string]i18n.Tree{
		"en": {"greeting": "Hello"},
		"es": {"greeting": "Hola"},
	}

	t.Run("switch persists before notifying and loads the new tree", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewStore(staticLoader(trees))
		persister := &recordingPersister{}

		var events []i18n.Notification
		var mu sync.Mutex

		ctrl := i18n.NewController(store,
			i18n.WithLanguages("en", "es"),
			i18n.WithPersister(persister),
		)
		ctrl.Subscribe(func(n i18n.Notification) {
			mu.Lock()
			defer mu.Unlock()
			if n.Event == i18n.EventLanguageChanged {
				// Persistence must already be visible when the change fires.
				saved, ok := persister.Load()
				assert.True(t, ok)
				assert.Equal(t, n.Language, saved)
			}
			events = append(events, n)
		})

		require.NoError(t, ctrl.ChangeLanguage(context.Background(), "es"))
		ctrl.Wait()

		require.Equal(t, "es", ctrl.Language())
		require.Equal(t, 1, persister.count())

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []i18n.Notification{
			{Event: i18n.EventLanguageChanged, Language: "es"},
			{Event: i18n.EventTranslationsLoaded, Language: "es"},
		}, events)

		require.Equal(t, "Hola", ctrl.Translate("greeting"))
	})

	t.Run("same-code switch is a no-op", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewStore(staticLoader(trees))
		persister := &recordingPersister{}

		var notified int
		var mu sync.Mutex

		ctrl := i18n.NewController(store,
			i18n.WithLanguages("en", "es"),
			i18n.WithPersister(persister),
		)
		ctrl.Subscribe(func(i18n.Notification) {
			mu.Lock()
			defer mu.Unlock()
			notified++
		})

		require.NoError(t, ctrl.ChangeLanguage(context.Background(), "es"))
		ctrl.Wait()

		mu.Lock()
		before := notified
		mu.Unlock()
		savesBefore := persister.count()

		require.NoError(t, ctrl.ChangeLanguage(context.Background(), "es"))
		ctrl.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, before, notified, "no notification on same-code switch")
		require.Equal(t, savesBefore, persister.count(), "no persistence write on same-code switch")
	})

	t.Run("persistence failure still switches and notifies", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewStore(staticLoader(trees))
		persister := &recordingPersister{failed: true}

		var notified int
		var mu sync.Mutex

		ctrl := i18n.NewController(store,
			i18n.WithLanguages("en", "es"),
			i18n.WithPersister(persister),
		)
		ctrl.Subscribe(func(i18n.Notification) {
			mu.Lock()
			defer mu.Unlock()
			notified++
		})

		require.NoError(t, ctrl.ChangeLanguage(context.Background(), "es"))
		ctrl.Wait()

		require.Equal(t, "es", ctrl.Language())
		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, 2, notified)
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewStore(staticLoader(trees))
		ctrl := i18n.NewController(store, i18n.WithLanguages("en", "es"))

		err := ctrl.ChangeLanguage(context.Background(), "xx")
		require.ErrorIs(t, err, i18n.ErrUnsupportedLanguage)
		require.Equal(t, "en", ctrl.Language())
	})

	t.Run("rejects empty language", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewStore(staticLoader(trees))
		ctrl := i18n.NewController(store)

		err := ctrl.ChangeLanguage(context.Background(), "")
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		t.Parallel()
		store := i18n.NewStore(staticLoader(trees))
		ctrl := i18n.NewController(store, i18n.WithLanguages("en", "es"))

		var notified int
		var mu sync.Mutex
		unsubscribe := ctrl.Subscribe(func(i18n.Notification) {
			mu.Lock()
			defer mu.Unlock()
			notified++
		})
		unsubscribe()

		require.NoError(t, ctrl.ChangeLanguage(context.Background(), "es"))
		ctrl.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Zero(t, notified)
	})
}

func TestControllerSeeding(t *testing.T) {
	t.Parallel()

	store := i18n.NewStore(staticLoader(nil))

	t.Run("defaults to fallback language", func(t *testing.T) {
		t.Parallel()
		ctrl := i18n.NewController(store)
		require.Equal(t, "en", ctrl.Language())
	})

	t.Run("persisted preference wins over initial language", func(t *testing.T) {
		t.Parallel()
		persister := &recordingPersister{saves: []string{"de"}}
		ctrl := i18n.NewController(store,
			i18n.WithLanguages("en", "de"),
			i18n.WithInitialLanguage("en"),
			i18n.WithPersister(persister),
		)
		require.Equal(t, "de", ctrl.Language())
	})

	t.Run("unsupported persisted preference is ignored", func(t *testing.T) {
		t.Parallel()
		persister := &recordingPersister{saves: []string{"xx"}}
		ctrl := i18n.NewController(store,
			i18n.WithLanguages("en", "es"),
			i18n.WithPersister(persister),
		)
		require.Equal(t, "en", ctrl.Language())
	})
}

func TestTranslatorView(t *testing.T) {
	t.Parallel()

	store := i18n.NewStore(staticLoader(nil))
	ctrl := i18n.NewController(store, i18n.WithLanguages("en", "es", "fr", "de"))

	t.Run("pins an explicit language", func(t *testing.T) {
		t.Parallel()
		tr := ctrl.For("es")
		require.Equal(t, "es", tr.Language())
		require.Equal(t, "Experiencia Laboral", tr.T("sections.experience"))
	})

	t.Run("falls back to current language when unsupported", func(t *testing.T) {
		t.Parallel()
		tr := ctrl.For("xx")
		require.Equal(t, "en", tr.Language())
	})
}

func TestGlobalAccessor(t *testing.T) {
	// Not parallel: mutates the process-wide default controller.
	store := i18n.NewStore(staticLoader(nil))
	ctrl := i18n.NewController(store, i18n.WithInitialLanguage("de"))

	i18n.SetDefault(ctrl)
	t.Cleanup(func() { i18n.SetDefault(nil) })

	require.Equal(t, "Berufserfahrung", i18n.T("sections.experience"))
	require.Equal(t, "missingKey", i18n.T("a.missingKey"))
	require.Equal(t, "Given", i18n.T("a.missingKey", "Given"))

	i18n.SetDefault(nil)
	require.Equal(t, "missingKey", i18n.T("a.missingKey"))
	require.Equal(t, "Given", i18n.T("a.missingKey", "Given"))
}

func TestFilePersister(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the preference", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "language")
		p := i18n.NewFilePersister(path)

		require.NoError(t, p.Save("es"))
		lang, ok := p.Load()
		require.True(t, ok)
		require.Equal(t, "es", lang)
	})

	t.Run("missing file reports no preference", func(t *testing.T) {
		t.Parallel()
		p := i18n.NewFilePersister(filepath.Join(t.TempDir(), "absent"))
		_, ok := p.Load()
		require.False(t, ok)
	})

	t.Run("rejects empty language", func(t *testing.T) {
		t.Parallel()
		p := i18n.NewFilePersister(filepath.Join(t.TempDir(), "language"))
		require.ErrorIs(t, p.Save(""), i18n.ErrEmptyLanguage)
	})
}

package i18n

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Store caches one Tree per language. A language is populated on first load
// and kept for the lifetime of the process; only Reload replaces an entry.
//
// A failed or malformed load resolves to an empty Tree rather than an error:
// callers rely on the Controller's fallback tiers to cover the gaps, so a
// missing resource must never be fatal.
type Store struct {
	loader Loader
	log    *slog.Logger

	mu      sync.Mutex
	trees   map[string]Tree
	pending map[string]chan struct{}
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for load diagnostics.
func WithStoreLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore creates a Store backed by the given loader.
func NewStore(loader Loader, opts ...StoreOption) *Store {
	if loader == nil {
		panic("i18n: loader is not provided")
	}
	s := &Store{
		loader:  loader,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		trees:   make(map[string]Tree),
		pending: make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tree returns the cached tree for a language without triggering a load.
func (s *Store) Tree(lang string) (Tree, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trees[lang]
	return t, ok
}

// Load returns the tree for a language, fetching it on first access.
// Concurrent loads for the same language collapse into a single fetch;
// later callers wait for the in-flight one. Load never fails: a load error
// caches an empty tree and the fallback tiers take over.
func (s *Store) Load(ctx context.Context, lang string) Tree {
	s.mu.Lock()
	if t, ok := s.trees[lang]; ok {
		s.mu.Unlock()
		return t
	}
	if done, ok := s.pending[lang]; ok {
		s.mu.Unlock()
		<-done
		t, _ := s.Tree(lang)
		return t
	}
	done := make(chan struct{})
	s.pending[lang] = done
	s.mu.Unlock()

	return s.fetch(ctx, lang, done)
}

// Reload replaces the cached tree for a language with a fresh fetch.
// This is the only way an entry is ever invalidated.
func (s *Store) Reload(ctx context.Context, lang string) Tree {
	done := make(chan struct{})

	s.mu.Lock()
	if prev, ok := s.pending[lang]; ok {
		s.mu.Unlock()
		<-prev
		s.mu.Lock()
	}
	delete(s.trees, lang)
	s.pending[lang] = done
	s.mu.Unlock()

	return s.fetch(ctx, lang, done)
}

func (s *Store) fetch(ctx context.Context, lang string, done chan struct{}) Tree {
	tree, err := s.loader.Load(ctx, lang)
	if err != nil {
		// Degrade silently: an empty tree falls through to the default tiers.
		s.log.WarnContext(ctx, "translation load failed",
			slog.String("language", lang),
			slog.String("error", err.Error()),
		)
		tree = Tree{}
	}
	if tree == nil {
		tree = Tree{}
	}

	s.mu.Lock()
	s.trees[lang] = tree
	delete(s.pending, lang)
	s.mu.Unlock()
	close(done)

	return tree
}

// Loaded reports whether a language has a cached tree.
func (s *Store) Loaded(lang string) bool {
	_, ok := s.Tree(lang)
	return ok
}

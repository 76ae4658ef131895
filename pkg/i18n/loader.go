package i18n

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// resourceFile is the per-language translation resource name.
// Resources follow the layout {lang}/translation.json.
const resourceFile = "translation.json"

// maxResourceSize caps a fetched translation resource at 4 MiB.
const maxResourceSize = 4 << 20

// Loader fetches the translation resource for a language.
type Loader interface {
	Load(ctx context.Context, lang string) (Tree, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, lang string) (Tree, error)

func (f LoaderFunc) Load(ctx context.Context, lang string) (Tree, error) {
	return f(ctx, lang)
}

// FSLoader reads translation resources from a file system.
//
// Expected layout:
//
//	en/translation.json
//	es/translation.json
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader backed by the given file system.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

func (l *FSLoader) Load(_ context.Context, lang string) (Tree, error) {
	if lang == "" {
		return nil, ErrEmptyLanguage
	}

	data, err := fs.ReadFile(l.fsys, path.Join(lang, resourceFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", lang, resourceFile, err)
	}
	return ParseTree(data)
}

// HTTPLoader fetches translation resources over HTTP from
// {base}/locales/{lang}/translation.json with a cache-busting query parameter.
type HTTPLoader struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewHTTPLoader creates a loader that fetches resources from baseURL.
// A nil client falls back to a client with a 10s timeout.
func NewHTTPLoader(client *http.Client, baseURL string) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPLoader{client: client, baseURL: baseURL, now: time.Now}
}

func (l *HTTPLoader) Load(ctx context.Context, lang string) (Tree, error) {
	if lang == "" {
		return nil, ErrEmptyLanguage
	}

	u := l.baseURL + "/locales/" + url.PathEscape(lang) + "/" + resourceFile +
		"?v=" + strconv.FormatInt(l.now().Unix(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", lang, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching translations for %q: %w", lang, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d for %q", ErrInvalidResource, resp.StatusCode, lang)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("reading translations for %q: %w", lang, err)
	}
	return ParseTree(data)
}

package i18n

import (
	"os"
	"strings"
)

// Persister stores the language preference durably across sessions.
// Persistence is best-effort: a failing Persister degrades to in-memory
// behavior for the current session, never to an error the user sees.
type Persister interface {
	// Save writes the language preference.
	Save(lang string) error
	// Load reads the stored preference. The bool reports whether a usable
	// value was found.
	Load() (string, bool)
}

// FilePersister stores the language preference in a single settings file.
type FilePersister struct {
	path string
}

// NewFilePersister creates a persister writing to the given path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Save(lang string) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	return os.WriteFile(p.path, []byte(lang+"\n"), 0o600)
}

func (p *FilePersister) Load() (string, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", false
	}
	lang := strings.TrimSpace(string(data))
	return lang, lang != ""
}

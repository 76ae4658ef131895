package i18n

import "sync"

var (
	globalMu   sync.RWMutex
	globalCtrl *Controller
)

// SetDefault installs the process-wide Controller behind the package-level
// T accessor. Call once during startup, before templates render.
func SetDefault(c *Controller) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCtrl = c
}

// Default returns the installed process-wide Controller, or nil.
func Default() *Controller {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCtrl
}

// T translates a key through the process-wide Controller. Declarative
// template code that cannot inject a Controller uses this accessor. Without
// an installed Controller it degrades to the terminal fallback so the result
// is still displayable.
func T(key string, defaultValue ...string) string {
	c := Default()
	if c == nil {
		if len(defaultValue) > 0 && defaultValue[0] != "" {
			return defaultValue[0]
		}
		return LastSegment(key)
	}
	return c.Translate(key, defaultValue...)
}

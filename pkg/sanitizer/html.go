package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markdownPolicy *bluemonday.Policy
	plainPolicy    *bluemonday.Policy
	once           sync.Once
)

func policies() {
	once.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()

		// Covers what goldmark emits for resume content: paragraphs, inline
		// emphasis, lists, links, and code. Everything else is stripped.
		markdownPolicy = bluemonday.NewPolicy()
		markdownPolicy.AllowStandardURLs()
		markdownPolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"h3", "h4",
		)
		markdownPolicy.AllowAttrs("href").OnElements("a")
		markdownPolicy.RequireNoFollowOnLinks(true)
	})
}

// Markdown sanitizes HTML produced from resume markdown, keeping basic
// formatting and dropping scripts, event handlers, and javascript: URLs.
func Markdown(s string) string {
	policies()
	return markdownPolicy.Sanitize(s)
}

// Plain strips all HTML, returning text only. Used for PDF output and meta
// descriptions.
func Plain(s string) string {
	policies()
	return plainPolicy.Sanitize(s)
}

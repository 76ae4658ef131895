// Package handlers wires the site's HTTP surface: the rendered CV page,
// language and theme switching, the per-language translation resource, PDF
// export, SEO endpoints, and the ops endpoints.
package handlers

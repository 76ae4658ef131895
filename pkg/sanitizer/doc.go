// Package sanitizer defines the HTML policies applied to rendered resume
// markdown before it reaches a template.
package sanitizer

// Package cookie provides a small cookie manager for visitor preferences.
//
// The site stores the language and theme preferences as plain cookies; the
// manager centralizes path, SameSite, and security attributes so every
// handler sets them consistently.
package cookie

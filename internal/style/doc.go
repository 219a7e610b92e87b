// Package style is a small rc-style parameter engine for chart rendering.
// It reads matplotlib-compatible stylesheets (one "key: value" per line),
// keeps the active parameters on an Engine and resolves style names either
// through registered package namespaces ("soltana.dark") or file paths.
package style

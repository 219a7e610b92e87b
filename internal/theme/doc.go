// Package theme resolves Soltana theme names to their bundled stylesheets
// and hands them to the style engine. The registry of themes is fixed at
// build time; stylesheets are embedded and never modified at runtime.
package theme

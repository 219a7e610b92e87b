package theme

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jmylchreest/soltana/internal/style"
)

// EmbeddedStyles contains the bundled stylesheets.
//
//go:embed styles/*.mplstyle
var EmbeddedStyles embed.FS

// StyleDir is the directory holding the stylesheets inside EmbeddedStyles.
const StyleDir = "styles"

// PackageName is the namespace the stylesheets are registered under with
// the style engine, so "soltana.dark" resolves to styles/dark.mplstyle.
const PackageName = "soltana"

func init() {
	style.RegisterPackage(PackageName, FS())
}

// FS returns the stylesheet directory as its own filesystem.
func FS() fs.FS {
	sub, err := fs.Sub(EmbeddedStyles, StyleDir)
	if err != nil {
		// StyleDir is a literal that matches the embed pattern.
		panic(err)
	}
	return sub
}

// GetEmbeddedStylesheet retrieves a bundled stylesheet by theme name.
// Returns the content and whether it was found.
func GetEmbeddedStylesheet(name string) ([]byte, bool) {
	data, err := EmbeddedStyles.ReadFile(path.Join(StyleDir, name+style.Extension))
	if err != nil {
		return nil, false
	}
	return data, true
}

// ListEmbeddedStylesheets returns the names of all embedded stylesheets,
// sorted by file name.
func ListEmbeddedStylesheets() []string {
	entries, err := fs.ReadDir(EmbeddedStyles, StyleDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), style.Extension); ok {
			names = append(names, name)
		}
	}
	return names
}

// LintEmbedded lints every embedded stylesheet and cross-checks the files
// against the theme registry.
func LintEmbedded() []style.Issue {
	return auditStylesheets(ListEmbeddedStylesheets(), GetEmbeddedStylesheet, Themes())
}

func auditStylesheets(files []string, read func(string) ([]byte, bool), registered []string) []style.Issue {
	var issues []style.Issue
	for _, name := range files {
		locator := path.Join(StyleDir, name+style.Extension)
		if !slices.Contains(registered, name) {
			issues = append(issues, style.Issue{Sheet: locator, Message: "stylesheet is not a registered theme"})
			continue
		}
		data, ok := read(name)
		if !ok {
			issues = append(issues, style.Issue{Sheet: locator, Message: "stylesheet could not be read"})
			continue
		}
		issues = append(issues, style.Lint(locator, data)...)
	}
	for _, name := range registered {
		if !slices.Contains(files, name) {
			issues = append(issues, style.Issue{
				Sheet:   path.Join(StyleDir, name+style.Extension),
				Message: "registered theme has no embedded stylesheet",
			})
		}
	}
	return issues
}

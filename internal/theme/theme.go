package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jmylchreest/soltana/internal/style"
)

// DefaultTheme is applied when no theme name is given.
const DefaultTheme = "dark"

// registry lists the themes in presentation order.
var registry = [...]string{"dark", "light", "sepia"}

// ErrUnknownTheme is matched by errors returned for names outside the registry.
var ErrUnknownTheme = errors.New("unknown theme")

// UnknownThemeError reports a theme name that is not in the registry.
type UnknownThemeError struct {
	Requested string
	Available []string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown theme %q (available: %s)", e.Requested, strings.Join(e.Available, ", "))
}

// Is lets errors.Is match ErrUnknownTheme.
func (e *UnknownThemeError) Is(target error) bool {
	return target == ErrUnknownTheme
}

// Themes returns the registered theme names in order.
// The returned slice is a copy.
func Themes() []string {
	return slices.Clone(registry[:])
}

// IsTheme reports whether name is a registered theme. Matching is exact.
func IsTheme(name string) bool {
	return slices.Contains(registry[:], name)
}

func check(name string) error {
	if !IsTheme(name) {
		return &UnknownThemeError{Requested: name, Available: Themes()}
	}
	return nil
}

// Path returns the locator of a theme's stylesheet within EmbeddedStyles.
func Path(name string) (string, error) {
	if err := check(name); err != nil {
		return "", err
	}
	return path.Join(StyleDir, name+style.Extension), nil
}

// Stylesheet returns the raw stylesheet of a registered theme.
func Stylesheet(name string) ([]byte, error) {
	locator, err := Path(name)
	if err != nil {
		return nil, err
	}
	return EmbeddedStyles.ReadFile(locator)
}

// Applier applies a stylesheet read from a filesystem.
// *style.Engine satisfies it.
type Applier interface {
	UseFS(fsys fs.FS, name string) error
}

// Resolver validates theme names and passes their stylesheet to an Applier.
type Resolver struct {
	applier Applier
}

// NewResolver creates a resolver that applies themes through applier.
func NewResolver(applier Applier) *Resolver {
	return &Resolver{applier: applier}
}

// Use applies the named theme. An empty name selects DefaultTheme.
// Unknown names return an *UnknownThemeError without touching the applier.
func (r *Resolver) Use(name string) error {
	if name == "" {
		name = DefaultTheme
	}

	locator, err := Path(name)
	if err != nil {
		return err
	}
	return r.applier.UseFS(EmbeddedStyles, locator)
}

// UseDefault applies DefaultTheme.
func (r *Resolver) UseDefault() error {
	return r.Use(DefaultTheme)
}

// Use applies the named theme to the process-wide style engine.
//
// The engine's parameters are global: goroutines applying different
// themes at the same time leave whichever ran last in effect.
func Use(name string) error {
	return NewResolver(style.Default()).Use(name)
}

// UseDefault applies DefaultTheme to the process-wide style engine.
func UseDefault() error {
	return Use(DefaultTheme)
}

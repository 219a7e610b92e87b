package style

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrStyleNotFound is returned when a style name resolves to nothing.
var ErrStyleNotFound = errors.New("style not found")

// Engine holds the active rendering parameters.
//
// The mutex only protects the parameter map from torn reads and writes.
// Callers applying different styles concurrently still race on which one
// ends up active.
type Engine struct {
	mu     sync.RWMutex
	params Params
	logger *slog.Logger
}

var defaultEngine = NewEngine(nil)

// Default returns the process-wide engine.
func Default() *Engine {
	return defaultEngine
}

// NewEngine creates an engine initialized with Defaults.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		params: Defaults(),
		logger: logger,
	}
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// Use applies a style by name.
//
// Resolution order:
//  1. "default" restores the default parameters
//  2. "<package>.<style>" reads <style>.mplstyle from a registered package
//  3. anything else is read as a filesystem path
func (e *Engine) Use(name string) error {
	if name == "default" {
		e.Reset()
		e.log().Debug("applied style", "name", name)
		return nil
	}

	if pkg, style, ok := splitPackage(name); ok {
		if fsys, found := LookupPackage(pkg); found {
			return e.UseFS(fsys, style+Extension)
		}
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q is neither a package style nor a file", ErrStyleNotFound, name)
		}
		return fmt.Errorf("read style %s: %w", name, err)
	}
	return e.apply(filepath.Base(name), data)
}

// UseFS applies the stylesheet stored at name within fsys.
func (e *Engine) UseFS(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStyleNotFound, name)
		}
		return fmt.Errorf("read style %s: %w", name, err)
	}
	return e.apply(name, data)
}

// Context applies a style for the duration of fn and restores the
// previous parameters afterwards, whether or not fn fails.
func (e *Engine) Context(name string, fn func() error) error {
	saved := e.Params()
	defer e.restore(saved)

	if err := e.Use(name); err != nil {
		return err
	}
	return fn()
}

func (e *Engine) apply(name string, data []byte) error {
	sheet, err := Parse(name, bytes.NewReader(data))
	if err != nil {
		return err
	}
	for _, issue := range sheet.Skipped {
		e.log().Warn("skipping stylesheet line", "sheet", name, "line", issue.Line, "reason", issue.Message)
	}

	updates := make(Params, len(sheet.Entries))
	for _, entry := range sheet.Entries {
		if _, ok := KnownKey(entry.Key); !ok {
			e.log().Warn("bad key in stylesheet", "sheet", name, "line", entry.Line, "key", entry.Key)
			continue
		}
		if err := validateValue(entry.Key, entry.Value); err != nil {
			e.log().Warn("bad value in stylesheet", "sheet", name, "line", entry.Line, "key", entry.Key, "error", err)
			continue
		}
		updates[entry.Key] = entry.Value
	}

	e.mu.Lock()
	for k, v := range updates {
		e.params[k] = v
	}
	e.mu.Unlock()

	e.log().Debug("applied style", "name", name, "keys", len(updates))
	return nil
}

// Reset restores the default parameters.
func (e *Engine) Reset() {
	e.restore(Defaults())
}

func (e *Engine) restore(p Params) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = p
}

// Params returns a copy of the active parameters.
func (e *Engine) Params() Params {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Clone()
}

// Get returns the raw value of key.
func (e *Engine) Get(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.params[key]
	return v, ok
}

// Color resolves key to a color against the active parameters.
func (e *Engine) Color(key string) (color.RGBA, error) {
	return e.Params().Color(key)
}

// Cycle returns the active prop cycle colors.
func (e *Engine) Cycle() ([]color.RGBA, error) {
	return e.Params().Cycle()
}

// splitPackage splits "pkg.style" at the last dot. Names that look like
// file paths are never split.
func splitPackage(name string) (pkg, style string, ok bool) {
	if strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, Extension) {
		return "", "", false
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

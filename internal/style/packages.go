package style

import (
	"io/fs"
	"sort"
	"sync"
)

var (
	packagesMu sync.RWMutex
	packages   = make(map[string]fs.FS)
)

// RegisterPackage makes the stylesheets at the root of fsys resolvable
// as "<name>.<style>". Registering the same name again replaces it.
func RegisterPackage(name string, fsys fs.FS) {
	packagesMu.Lock()
	defer packagesMu.Unlock()
	packages[name] = fsys
}

// LookupPackage returns the filesystem registered under name.
func LookupPackage(name string) (fs.FS, bool) {
	packagesMu.RLock()
	defer packagesMu.RUnlock()
	fsys, ok := packages[name]
	return fsys, ok
}

// Packages returns the registered package names in sorted order.
func Packages() []string {
	packagesMu.RLock()
	defer packagesMu.RUnlock()

	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

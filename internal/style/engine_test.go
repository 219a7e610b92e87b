package style

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSheet = `figure.facecolor: 14161b
text.color: eceef2
axes.prop_cycle: cycler('color', ['e8a54b', '5fb3d9'])
`

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(nil)

	v, ok := e.Get("figure.facecolor")
	require.True(t, ok)
	assert.Equal(t, "white", v)
	assert.Equal(t, Defaults(), e.Params())
}

func TestEngine_UseFile(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "custom.mplstyle", testSheet)

	e := NewEngine(nil)
	require.NoError(t, e.Use(path))

	v, _ := e.Get("figure.facecolor")
	assert.Equal(t, "14161b", v)

	c, err := e.Color("text.color")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xec, 0xee, 0xf2, 0xff}, c)

	// Keys the sheet does not mention keep their previous value
	v, _ = e.Get("axes.edgecolor")
	assert.Equal(t, "black", v)
}

func TestEngine_UseDefaultResets(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "custom.mplstyle", testSheet)

	e := NewEngine(nil)
	require.NoError(t, e.Use(path))
	require.NoError(t, e.Use("default"))

	assert.Equal(t, Defaults(), e.Params())
}

func TestEngine_UseNotFound(t *testing.T) {
	e := NewEngine(nil)

	for _, name := range []string{"nonexistent", "nopkg.style", "/no/such/file.mplstyle"} {
		t.Run(name, func(t *testing.T) {
			err := e.Use(name)
			assert.ErrorIs(t, err, ErrStyleNotFound)
		})
	}
	assert.Equal(t, Defaults(), e.Params())
}

func TestEngine_UsePackage(t *testing.T) {
	RegisterPackage("enginetest", fstest.MapFS{
		"night.mplstyle": {Data: []byte(testSheet)},
	})

	e := NewEngine(nil)
	require.NoError(t, e.Use("enginetest.night"))

	v, _ := e.Get("figure.facecolor")
	assert.Equal(t, "14161b", v)

	err := e.Use("enginetest.missing")
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestEngine_UseFS(t *testing.T) {
	fsys := fstest.MapFS{
		"styles/night.mplstyle": {Data: []byte(testSheet)},
	}

	e := NewEngine(nil)
	require.NoError(t, e.UseFS(fsys, "styles/night.mplstyle"))

	cycle, err := e.Cycle()
	require.NoError(t, err)
	assert.Len(t, cycle, 2)

	assert.ErrorIs(t, e.UseFS(fsys, "styles/day.mplstyle"), ErrStyleNotFound)
}

func TestEngine_SkipsBadEntries(t *testing.T) {
	sheet := `figure.facecolor: 14161b
figure.facecolour: 000000
text.color: rgb(1, 2, 3)
axes.grid: sometimes
no colon here
`
	fsys := fstest.MapFS{"bad.mplstyle": {Data: []byte(sheet)}}

	e := NewEngine(nil)
	require.NoError(t, e.UseFS(fsys, "bad.mplstyle"))

	params := e.Params()
	assert.Equal(t, "14161b", params["figure.facecolor"])
	assert.Equal(t, "black", params["text.color"])
	assert.Equal(t, "False", params["axes.grid"])
	assert.NotContains(t, params, "figure.facecolour")
}

func TestEngine_Context(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "custom.mplstyle", testSheet)
	e := NewEngine(nil)

	err := e.Context(path, func() error {
		v, _ := e.Get("figure.facecolor")
		assert.Equal(t, "14161b", v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), e.Params())
}

func TestEngine_ContextRestoresOnError(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "custom.mplstyle", testSheet)
	e := NewEngine(nil)
	boom := errors.New("boom")

	err := e.Context(path, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Defaults(), e.Params())

	err = e.Context("nonexistent", func() error {
		t.Fatal("fn must not run when the style cannot be applied")
		return nil
	})
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestEngine_ParamsIsCopy(t *testing.T) {
	e := NewEngine(nil)
	p := e.Params()
	p["figure.facecolor"] = "000000"

	v, _ := e.Get("figure.facecolor")
	assert.Equal(t, "white", v)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	dir := t.TempDir()
	a := writeSheet(t, dir, "a.mplstyle", "figure.facecolor: 111111\n")
	b := writeSheet(t, dir, "b.mplstyle", "figure.facecolor: 222222\n")

	e := NewEngine(nil)
	var wg sync.WaitGroup
	for i := range 50 {
		path := a
		if i%2 == 1 {
			path = b
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.Use(path))
			_ = e.Params()
		}()
	}
	wg.Wait()

	v, _ := e.Get("figure.facecolor")
	assert.Contains(t, []string{"111111", "222222"}, v)
}

func TestSplitPackage(t *testing.T) {
	tests := []struct {
		input string
		pkg   string
		style string
		ok    bool
	}{
		{"soltana.dark", "soltana", "dark", true},
		{"a.b.c", "a.b", "c", true},
		{"dark", "", "", false},
		{"dark.mplstyle", "", "", false},
		{"./dark", "", "", false},
		{"styles/dark", "", "", false},
		{".dark", "", "", false},
		{"soltana.", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pkg, style, ok := splitPackage(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.style, style)
		})
	}
}

func TestPackages(t *testing.T) {
	RegisterPackage("zz-packages-test", fstest.MapFS{})
	assert.Contains(t, Packages(), "zz-packages-test")

	_, ok := LookupPackage("never-registered")
	assert.False(t, ok)
}

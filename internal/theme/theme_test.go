package theme

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/soltana/internal/style"
)

// recordingApplier captures UseFS calls without applying anything.
type recordingApplier struct {
	calls []string
	err   error
}

func (a *recordingApplier) UseFS(_ fs.FS, name string) error {
	a.calls = append(a.calls, name)
	return a.err
}

func TestThemes_Registry(t *testing.T) {
	assert.Equal(t, []string{"dark", "light", "sepia"}, Themes())
}

func TestThemes_ReturnsCopy(t *testing.T) {
	themes := Themes()
	themes[0] = "neon"

	assert.Equal(t, "dark", Themes()[0])
	assert.False(t, IsTheme("neon"))
}

func TestIsTheme(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"dark", true},
		{"light", true},
		{"sepia", true},
		{"Dark", false},
		{" dark", false},
		{"neon", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTheme(tt.name))
		})
	}
}

func TestPath(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			p, err := Path(name)
			require.NoError(t, err)
			assert.Equal(t, "styles/"+name+".mplstyle", p)
		})
	}

	_, err := Path("neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestResolver_UseRegisteredThemes(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			applier := &recordingApplier{}
			err := NewResolver(applier).Use(name)
			require.NoError(t, err)
			assert.Equal(t, []string{"styles/" + name + ".mplstyle"}, applier.calls)
		})
	}
}

func TestResolver_UseDefault(t *testing.T) {
	applier := &recordingApplier{}
	r := NewResolver(applier)

	require.NoError(t, r.UseDefault())
	require.NoError(t, r.Use(""))
	require.NoError(t, r.Use("dark"))

	assert.Equal(t, []string{
		"styles/dark.mplstyle",
		"styles/dark.mplstyle",
		"styles/dark.mplstyle",
	}, applier.calls)
}

func TestResolver_UnknownThemeDoesNotApply(t *testing.T) {
	tests := []string{"neon", "Dark", "LIGHT", "sepia ", "dark.mplstyle", "soltana.dark"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			applier := &recordingApplier{}
			err := NewResolver(applier).Use(name)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownTheme)
			assert.Empty(t, applier.calls, "applier must not be invoked for unknown themes")

			var unknown *UnknownThemeError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, name, unknown.Requested)
			assert.Equal(t, Themes(), unknown.Available)
		})
	}
}

func TestUnknownThemeError_Message(t *testing.T) {
	err := NewResolver(&recordingApplier{}).Use("neon")
	require.Error(t, err)
	assert.Equal(t, `unknown theme "neon" (available: dark, light, sepia)`, err.Error())
}

func TestResolver_PropagatesApplierError(t *testing.T) {
	boom := errors.New("boom")
	err := NewResolver(&recordingApplier{err: boom}).Use("light")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnknownTheme)
}

func TestUse_AppliesToEngine(t *testing.T) {
	engine := style.NewEngine(nil)
	r := NewResolver(engine)

	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			engine.Reset()
			require.NoError(t, r.Use(name))

			facecolor, ok := engine.Get("figure.facecolor")
			require.True(t, ok)
			assert.NotEqual(t, "white", facecolor)
		})
	}
}

func TestUse_LightTextColor(t *testing.T) {
	engine := style.NewEngine(nil)
	require.NoError(t, NewResolver(engine).Use("light"))

	text, _ := engine.Get("text.color")
	assert.NotEqual(t, "white", text)

	c, err := engine.Color("text.color")
	require.NoError(t, err)
	assert.Less(t, int(c.R)+int(c.G)+int(c.B), 3*128, "light theme text should be dark")
}

func TestUse_UnknownLeavesEngineUnchanged(t *testing.T) {
	engine := style.NewEngine(nil)
	r := NewResolver(engine)
	require.NoError(t, r.Use("sepia"))
	before := engine.Params()

	err := r.Use("neon")
	require.ErrorIs(t, err, ErrUnknownTheme)
	assert.Equal(t, before, engine.Params())
}

func TestUse_DefaultMatchesDark(t *testing.T) {
	viaDefault := style.NewEngine(nil)
	require.NoError(t, NewResolver(viaDefault).UseDefault())

	viaDark := style.NewEngine(nil)
	require.NoError(t, NewResolver(viaDark).Use("dark"))

	assert.Equal(t, viaDark.Params(), viaDefault.Params())
}

func TestUse_LastWriteWins(t *testing.T) {
	engine := style.NewEngine(nil)
	r := NewResolver(engine)

	require.NoError(t, r.Use("dark"))
	require.NoError(t, r.Use("sepia"))

	viaSepia := style.NewEngine(nil)
	require.NoError(t, NewResolver(viaSepia).Use("sepia"))

	assert.Equal(t, viaSepia.Params(), engine.Params())
}

func TestUse_ProcessWideEngine(t *testing.T) {
	engine := style.Default()
	t.Cleanup(engine.Reset)

	require.NoError(t, UseDefault())
	v, _ := engine.Get("figure.facecolor")
	assert.Equal(t, "14161b", v)

	require.ErrorIs(t, Use("neon"), ErrUnknownTheme)
	v, _ = engine.Get("figure.facecolor")
	assert.Equal(t, "14161b", v)
}

func TestPackageNamespace_MatchesDirectUse(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			direct := style.NewEngine(nil)
			require.NoError(t, NewResolver(direct).Use(name))

			dotted := style.NewEngine(nil)
			require.NoError(t, dotted.Use(PackageName+"."+name))

			assert.Equal(t, direct.Params(), dotted.Params())
		})
	}
}

func TestPackageNamespace_Context(t *testing.T) {
	engine := style.NewEngine(nil)

	err := engine.Context("soltana.dark", func() error {
		v, _ := engine.Get("figure.facecolor")
		assert.NotEqual(t, "white", v)
		return nil
	})
	require.NoError(t, err)

	v, _ := engine.Get("figure.facecolor")
	assert.Equal(t, "white", v, "context should restore defaults")
}

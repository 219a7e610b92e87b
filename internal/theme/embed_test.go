package theme

import (
	"bufio"
	"bytes"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/soltana/internal/style"
)

var entryLine = regexp.MustCompile(`^[\w.-]+:\s*.+`)

func TestGetEmbeddedStylesheet_ExistsAndNonEmpty(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedStylesheet(name)
			require.True(t, found, "%s.mplstyle should be embedded", name)
			assert.NotEmpty(t, data)
		})
	}
}

func TestGetEmbeddedStylesheet_NotFound(t *testing.T) {
	data, found := GetEmbeddedStylesheet("nonexistent")
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestListEmbeddedStylesheets_MatchesRegistry(t *testing.T) {
	embedded := ListEmbeddedStylesheets()
	registered := Themes()
	sort.Strings(registered)

	assert.Equal(t, registered, embedded, "every registry entry needs exactly one stylesheet")
}

func TestStylesheets_KeyValueFormat(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			data, err := Stylesheet(name)
			require.NoError(t, err)

			scanner := bufio.NewScanner(bytes.NewReader(data))
			lineno := 0
			for scanner.Scan() {
				lineno++
				line := scanner.Text()
				trimmed := strings.TrimSpace(line)
				if trimmed == "" || strings.HasPrefix(trimmed, "#") {
					continue
				}
				assert.Regexp(t, entryLine, line, "%s.mplstyle:%d invalid format", name, lineno)
			}
			require.NoError(t, scanner.Err())
		})
	}
}

func TestStylesheets_NoRGBSyntax(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			data, err := Stylesheet(name)
			require.NoError(t, err)
			assert.NotContains(t, string(data), "rgb(", "%s.mplstyle contains rgb() syntax", name)
		})
	}
}

func TestStylesheets_LintClean(t *testing.T) {
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			data, err := Stylesheet(name)
			require.NoError(t, err)
			assert.Empty(t, style.Lint(name+style.Extension, data))
		})
	}
}

func TestStylesheets_SameKeys(t *testing.T) {
	keysOf := func(t *testing.T, name string) []string {
		data, err := Stylesheet(name)
		require.NoError(t, err)
		sheet, err := style.Parse(name, bytes.NewReader(data))
		require.NoError(t, err)

		var keys []string
		for _, e := range sheet.Entries {
			keys = append(keys, e.Key)
		}
		sort.Strings(keys)
		return keys
	}

	reference := keysOf(t, DefaultTheme)
	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, reference, keysOf(t, name),
				"themes must set the same keys so switching themes leaves nothing behind")
		})
	}
}

func TestStylesheets_HaveRequiredKeys(t *testing.T) {
	required := []string{
		"figure.facecolor",
		"axes.facecolor",
		"axes.edgecolor",
		"axes.labelcolor",
		"axes.prop_cycle",
		"text.color",
		"xtick.color",
		"ytick.color",
		"grid.color",
	}

	for _, name := range Themes() {
		t.Run(name, func(t *testing.T) {
			data, err := Stylesheet(name)
			require.NoError(t, err)
			sheet, err := style.Parse(name, bytes.NewReader(data))
			require.NoError(t, err)
			params := sheet.Params()

			for _, key := range required {
				assert.Contains(t, params, key, "theme %s should set %s", name, key)
			}
		})
	}
}

func TestStylesheet_Unknown(t *testing.T) {
	_, err := Stylesheet("neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestPackageRegistered(t *testing.T) {
	fsys, ok := style.LookupPackage(PackageName)
	require.True(t, ok)

	for _, name := range Themes() {
		_, err := fsys.Open(name + style.Extension)
		assert.NoError(t, err)
	}
}

func TestLintEmbedded_Clean(t *testing.T) {
	assert.Empty(t, LintEmbedded())
}

func TestAuditStylesheets(t *testing.T) {
	sheets := map[string][]byte{
		"dark":  []byte("figure.facecolor: 14161b\n"),
		"extra": []byte("figure.facecolor: ffffff\n"),
		"bad":   []byte("figure.facecolor = 14161b\n"),
	}
	read := func(name string) ([]byte, bool) {
		data, ok := sheets[name]
		return data, ok
	}

	tests := []struct {
		name       string
		files      []string
		registered []string
		wantSheets []string
	}{
		{
			name:       "matching",
			files:      []string{"dark"},
			registered: []string{"dark"},
		},
		{
			name:       "unregistered file",
			files:      []string{"dark", "extra"},
			registered: []string{"dark"},
			wantSheets: []string{"styles/extra.mplstyle"},
		},
		{
			name:       "theme without file",
			files:      []string{"dark"},
			registered: []string{"dark", "sepia"},
			wantSheets: []string{"styles/sepia.mplstyle"},
		},
		{
			name:       "unreadable file",
			files:      []string{"dark", "gone"},
			registered: []string{"dark", "gone"},
			wantSheets: []string{"styles/gone.mplstyle"},
		},
		{
			name:       "lint issue",
			files:      []string{"bad"},
			registered: []string{"bad"},
			wantSheets: []string{"styles/bad.mplstyle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := auditStylesheets(tt.files, read, tt.registered)

			var got []string
			for _, issue := range issues {
				got = append(got, issue.Sheet)
			}
			assert.Equal(t, tt.wantSheets, got)
		})
	}
}

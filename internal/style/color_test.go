package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}},
		{"#000", color.RGBA{0, 0, 0, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"14161b", color.RGBA{0x14, 0x16, 0x1b, 255}},
		{"#e8a54b", color.RGBA{0xe8, 0xa5, 0x4b, 255}},
		{"E8A54B", color.RGBA{0xe8, 0xa5, 0x4b, 255}},
		{"#ff000080", color.RGBA{255, 0, 0, 0x80}},
		{"ff000080", color.RGBA{255, 0, 0, 0x80}},
		{"'#00ff00'", color.RGBA{0, 255, 0, 255}},
		{"white", color.RGBA{255, 255, 255, 255}},
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"0.5", color.RGBA{128, 128, 128, 255}},
		{"0", color.RGBA{0, 0, 0, 255}},
		{"1.0", color.RGBA{255, 255, 255, 255}},
		{"none", color.RGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	tests := []string{
		"",
		"rgb(255, 0, 0)",
		"rgba(0,0,0,0.5)",
		"#12345",
		"#ggg",
		"1.5",
		"-0.1",
		"notacolor",
		"12345",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseColor(input)
			assert.ErrorIs(t, err, ErrInvalidColor)
		})
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#14161b", Hex(color.RGBA{0x14, 0x16, 0x1b, 0xff}))
	assert.Equal(t, "#ff0000", Hex(color.RGBA{R: 0xff, A: 0x10}))
}

func TestParseCycle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []color.RGBA
	}{
		{
			name:     "positional",
			input:    "cycler('color', ['e8a54b', '5fb3d9'])",
			expected: []color.RGBA{{0xe8, 0xa5, 0x4b, 255}, {0x5f, 0xb3, 0xd9, 255}},
		},
		{
			name:     "keyword",
			input:    `cycler(color=["ff0000", '#00ff00'])`,
			expected: []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}},
		},
		{
			name:     "trailing comma",
			input:    "cycler('color', ['000000',])",
			expected: []color.RGBA{{0, 0, 0, 255}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colors, err := ParseCycle(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, colors)
		})
	}
}

func TestParseCycle_Invalid(t *testing.T) {
	tests := []string{
		"",
		"['ff0000']",
		"cycler('linestyle', ['-', '--'])",
		"cycler('color', [])",
		"cycler('color', ['rgb(1,2,3)'])",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCycle(input)
			assert.Error(t, err)
		})
	}
}

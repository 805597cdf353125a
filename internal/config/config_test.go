package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radiolcd/lcd"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, 480, p.Display.Width)
	assert.Equal(t, 272, p.Display.Height)
	assert.Equal(t, 18, p.Text.LineHeight)

	p2, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, p, p2)
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`
[display]
width = 320

[text]
line_height = 16

[colors]
header_bg = "#102030"
alarm = "OrangeRed"
`))
	require.NoError(t, err)
	assert.Equal(t, 320, p.Display.Width)
	assert.Equal(t, 272, p.Display.Height)
	assert.Equal(t, 3, p.Text.HorzMargin)
	assert.Equal(t, 16, p.Text.LineHeight)

	res := lcd.NewResources()
	require.NoError(t, p.Apply(res))
	assert.Equal(t, lcd.RGB(0x10, 0x20, 0x30), res.Color(lcd.HeaderBgColor))
	assert.Equal(t, lcd.RGB(0xFF, 0x45, 0x00), res.Color(lcd.AlarmColor))
	assert.Equal(t, lcd.Black, res.Color(lcd.TextColor))
	assert.Equal(t, 16, res.Text.LineHeight)

	lim := p.Limits()
	assert.Equal(t, 320, lim.Width)
	assert.Equal(t, 272, lim.Height)
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"syntax":      `[display`,
		"unknown key": "[display]\ndepth = 16\n",
		"size":        "[display]\nwidth = 0\n",
		"huge":        "[display]\nheight = 70000\n",
		"metrics":     "[text]\nline_height = 0\n",
		"slot":        "[colors]\nsky = \"#000000\"\n",
		"color":       "[colors]\ntext = \"#12345\"\n",
		"name":        "[colors]\ntext = \"notacolor\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nwidth = 800\nheight = 480\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, p.Display.Width)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]lcd.Color{
		"#ffffff": lcd.White,
		"#000":    lcd.Black,
		"#F00":    lcd.RGB(0xFF, 0, 0),
		" white ": lcd.White,
		"Navy":    lcd.RGB(0, 0, 0x80),
	} {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "#gg0000", "#1234567", "blurple"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

// Package config loads display profiles: panel size, text box metrics and
// color theme overrides, stored as TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"radiolcd/lcd"
	"radiolcd/lcd/bitmap"
)

// EnvProfile names the environment variable holding a profile path.
const EnvProfile = "LCDTOOL_PROFILE"

type Profile struct {
	Display Display           `toml:"display"`
	Text    Text              `toml:"text"`
	Colors  map[string]string `toml:"colors"`
}

type Display struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Text struct {
	HorzMargin int `toml:"horz_margin"`
	VertMargin int `toml:"vert_margin"`
	LineHeight int `toml:"line_height"`
}

// ColorNames are the keys accepted in the [colors] table.
var ColorNames = map[string]lcd.ColorIndex{
	"text":             lcd.TextColor,
	"text_bg":          lcd.TextBgColor,
	"text_inverted":    lcd.TextInvertedColor,
	"text_inverted_bg": lcd.TextInvertedBgColor,
	"line":             lcd.LineColor,
	"header":           lcd.HeaderColor,
	"header_bg":        lcd.HeaderBgColor,
	"bar":              lcd.BarColor,
	"alarm":            lcd.AlarmColor,
	"warning":          lcd.WarningColor,
	"disabled":         lcd.DisabledColor,
}

// Default is the reference 480x272 panel with the stock theme.
func Default() Profile {
	m := lcd.DefaultTextMetrics
	return Profile{
		Display: Display{Width: bitmap.DisplayWidth, Height: bitmap.DisplayHeight},
		Text:    Text{HorzMargin: m.HorzMargin, VertMargin: m.VertMargin, LineHeight: m.LineHeight},
	}
}

// Load reads the profile at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a TOML profile over the defaults. Unknown keys are errors.
func Parse(data []byte) (Profile, error) {
	p := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Profile{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Profile{}, err
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	if p.Display.Width <= 0 || p.Display.Height <= 0 {
		return fmt.Errorf("display size %dx%d must be positive", p.Display.Width, p.Display.Height)
	}
	if p.Display.Width > lcd.MaxDim || p.Display.Height > lcd.MaxDim {
		return fmt.Errorf("display size %dx%d exceeds %d", p.Display.Width, p.Display.Height, lcd.MaxDim)
	}
	if p.Text.HorzMargin < 0 || p.Text.VertMargin < 0 || p.Text.LineHeight <= 0 {
		return fmt.Errorf("text metrics %+v out of range", p.Text)
	}
	for _, name := range p.colorKeys() {
		if _, ok := ColorNames[name]; !ok {
			return fmt.Errorf("unknown color slot %q", name)
		}
		if _, err := ParseColor(p.Colors[name]); err != nil {
			return fmt.Errorf("color %s: %w", name, err)
		}
	}
	return nil
}

func (p Profile) colorKeys() []string {
	keys := make([]string, 0, len(p.Colors))
	for k := range p.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Limits bounds decoded bitmaps to the panel.
func (p Profile) Limits() bitmap.Limits {
	return bitmap.Limits{Width: p.Display.Width, Height: p.Display.Height}
}

// Apply writes the profile's text metrics and color overrides into res.
func (p Profile) Apply(res *lcd.Resources) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	res.Text = lcd.TextMetrics{
		HorzMargin: p.Text.HorzMargin,
		VertMargin: p.Text.VertMargin,
		LineHeight: p.Text.LineHeight,
	}
	for _, name := range p.colorKeys() {
		c, _ := ParseColor(p.Colors[name])
		res.Colors[ColorNames[name]] = c
	}
	return nil
}

// ParseColor accepts #rrggbb, #rgb or an SVG color name.
func ParseColor(s string) (lcd.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return 0, fmt.Errorf("bad hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("bad hex color %q", s)
		}
		return lcd.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return lcd.RGB(c.R, c.G, c.B), nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

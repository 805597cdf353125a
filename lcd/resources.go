package lcd

import (
	"errors"
	"fmt"
)

// Mask is an alpha bitmap: one opacity level (0..OpacityMax) per pixel,
// row-major.
type Mask struct {
	Width  int
	Height int
	Alpha  []uint8
}

// Valid reports whether the alpha slice covers the declared size.
func (m *Mask) Valid() bool {
	return m != nil && m.Width >= 0 && m.Height >= 0 && len(m.Alpha) >= m.Width*m.Height
}

// Atlas is one font size: a glyph strip plus an offset table. Glyph i spans
// columns [Offsets[i], Offsets[i+1]) of the strip, so a table of N+1 entries
// describes N glyphs.
type Atlas struct {
	Mask
	Offsets []uint16
}

// NewAtlas validates the offset table against the strip.
func NewAtlas(strip Mask, offsets []uint16) (*Atlas, error) {
	if !strip.Valid() {
		return nil, errors.New("lcd: atlas strip smaller than declared size")
	}
	if len(offsets) < 2 {
		return nil, errors.New("lcd: atlas needs at least one glyph")
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, fmt.Errorf("lcd: atlas offset %d decreases", i)
		}
	}
	if int(offsets[len(offsets)-1]) > strip.Width {
		return nil, fmt.Errorf("lcd: atlas offsets exceed strip width %d", strip.Width)
	}
	return &Atlas{Mask: strip, Offsets: offsets}, nil
}

// Glyphs returns the number of glyphs in the atlas.
func (a *Atlas) Glyphs() int { return len(a.Offsets) - 1 }

// GlyphWidth returns the advance of glyph i, zero when i is out of range.
func (a *Atlas) GlyphWidth(i int) int {
	if a == nil || i < 0 || i+1 >= len(a.Offsets) {
		return 0
	}
	return int(a.Offsets[i+1]) - int(a.Offsets[i])
}

// CharMap maps a glyph code (>= 0x20) to an atlas index.
type CharMap func(c byte) int

// ASCIICharMap maps printable ASCII onto indices 0..94.
func ASCIICharMap(c byte) int { return int(c) - 0x20 }

// TextMetrics holds the inverted-text box presets.
type TextMetrics struct {
	HorzMargin int
	VertMargin int
	LineHeight int
}

// DefaultTextMetrics matches the 480x272 panel layout.
var DefaultTextMetrics = TextMetrics{HorzMargin: 3, VertMargin: 1, LineHeight: 18}

// Resources are the color table and glyph atlases every draw call resolves
// attributes against. They are built once at startup and released at
// shutdown.
type Resources struct {
	Colors  [NumColors]Color
	Fonts   [NumFontSizes]*Atlas
	CharMap CharMap
	Text    TextMetrics
}

// DefaultColors is the stock theme.
func DefaultColors() [NumColors]Color {
	var c [NumColors]Color
	c[TextColor] = Black
	c[TextBgColor] = White
	c[TextInvertedColor] = White
	c[TextInvertedBgColor] = RGB(0xE0, 0x00, 0x00)
	c[LineColor] = RGB(0xA0, 0xA0, 0xA0)
	c[HeaderColor] = White
	c[HeaderBgColor] = RGB(0x00, 0x60, 0xA0)
	c[BarColor] = RGB(0x30, 0xC0, 0x30)
	c[AlarmColor] = RGB(0xFF, 0x30, 0x30)
	c[WarningColor] = RGB(0xFF, 0xC0, 0x00)
	c[DisabledColor] = RGB(0x70, 0x70, 0x70)
	return c
}

// NewResources returns resources with the stock colors, ASCII mapping, the
// default text metrics and no fonts.
func NewResources() *Resources {
	return &Resources{
		Colors:  DefaultColors(),
		CharMap: ASCIICharMap,
		Text:    DefaultTextMetrics,
	}
}

// Color resolves a color table index. Unknown indices resolve to Black.
func (r *Resources) Color(i ColorIndex) Color {
	if r == nil || int(i) >= len(r.Colors) {
		return Black
	}
	return r.Colors[i]
}

// Font returns the atlas for size, falling back to the standard font.
func (r *Resources) Font(size FontSize) *Atlas {
	if r == nil {
		return nil
	}
	if int(size) < len(r.Fonts) && r.Fonts[size] != nil {
		return r.Fonts[size]
	}
	return r.Fonts[FontStd]
}

// Release drops the atlases. Drawing text with released resources paints
// nothing.
func (r *Resources) Release() {
	if r == nil {
		return
	}
	for i := range r.Fonts {
		r.Fonts[i] = nil
	}
}

func (r *Resources) mapChar(c byte) int {
	if r == nil || r.CharMap == nil {
		return ASCIICharMap(c)
	}
	return r.CharMap(c)
}

// Package fonts builds the glyph atlases the text renderer draws from.
//
// All sizes share one index space: 0x20..0x7F followed by 0xA0..0xFF
// (ISO 8859-1), so a single CharMap serves every atlas. Text is stored as
// ISO 8859-1 bytes; Encode converts from Go strings.
package fonts

import (
	"fmt"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"

	"radiolcd/lcd"
)

const (
	asciiGlyphs  = 0x80 - 0x20
	latin1Glyphs = 0x100 - 0xA0

	// NumGlyphs is the size of every atlas.
	NumGlyphs = asciiGlyphs + latin1Glyphs
)

// Rune returns the character stored at atlas index i.
func Rune(i int) rune {
	if i < asciiGlyphs {
		return rune(0x20 + i)
	}
	return rune(0xA0 + i - asciiGlyphs)
}

// CharMap maps an ISO 8859-1 byte to its atlas index. Bytes without a glyph
// (0x80..0x9F) show as '?'.
func CharMap(c byte) int {
	switch {
	case c >= 0x20 && c < 0x80:
		return int(c) - 0x20
	case c >= 0xA0:
		return asciiGlyphs + int(c) - 0xA0
	default:
		return '?' - 0x20
	}
}

// Encode converts s to ISO 8859-1. Control codes pass through; runes outside
// the charset become '?'.
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

var atlases = sync.OnceValues(buildAtlases)

// Atlases returns one atlas per font size. They are built on first use and
// shared; callers must not modify them.
func Atlases() ([lcd.NumFontSizes]*lcd.Atlas, error) {
	return atlases()
}

// NewResources returns the stock resources with every font size loaded.
func NewResources() (*lcd.Resources, error) {
	fonts, err := Atlases()
	if err != nil {
		return nil, err
	}
	res := lcd.NewResources()
	res.Fonts = fonts
	res.CharMap = CharMap
	lcd.Logger().Info("fonts: resources ready", "glyphs", NumGlyphs, "std_height", fonts[lcd.FontStd].Height)
	return res, nil
}

func buildAtlases() ([lcd.NumFontSizes]*lcd.Atlas, error) {
	var out [lcd.NumFontSizes]*lcd.Atlas

	tiny, err := tinyAtlas()
	if err != nil {
		return out, fmt.Errorf("fonts: tiny: %w", err)
	}
	out[lcd.FontTiny] = tiny

	small, err := faceAtlas(basicfont.Face7x13)
	if err != nil {
		return out, fmt.Errorf("fonts: small: %w", err)
	}
	out[lcd.FontSmall] = small

	mono, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return out, fmt.Errorf("fonts: parse gomono: %w", err)
	}
	for _, sz := range []struct {
		size lcd.FontSize
		px   float64
	}{
		{lcd.FontStd, 12},
		{lcd.FontMid, 16},
	} {
		face, err := opentype.NewFace(mono, &opentype.FaceOptions{Size: sz.px, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return out, fmt.Errorf("fonts: gomono %gpx: %w", sz.px, err)
		}
		a, err := faceAtlas(face)
		_ = face.Close()
		if err != nil {
			return out, fmt.Errorf("fonts: gomono %gpx: %w", sz.px, err)
		}
		out[sz.size] = a
	}

	dbl, err := scaleAtlas(out[lcd.FontStd], 2)
	if err != nil {
		return out, fmt.Errorf("fonts: double: %w", err)
	}
	out[lcd.FontDbl] = dbl
	return out, nil
}

// faceAtlas rasterizes every glyph of face into one strip, each clipped to
// its advance.
func faceAtlas(face font.Face) (*lcd.Atlas, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if height <= 0 {
		return nil, fmt.Errorf("face has no height")
	}

	fallback, _ := face.GlyphAdvance('?')
	offsets := make([]uint16, NumGlyphs+1)
	total := 0
	for i := 0; i < NumGlyphs; i++ {
		adv, ok := face.GlyphAdvance(Rune(i))
		if !ok {
			adv = fallback
		}
		offsets[i] = uint16(total)
		total += adv.Round()
	}
	offsets[NumGlyphs] = uint16(total)

	dst := image.NewAlpha(image.Rect(0, 0, total, height))
	for i := 0; i < NumGlyphs; i++ {
		cell := dst.SubImage(image.Rect(int(offsets[i]), 0, int(offsets[i+1]), height)).(*image.Alpha)
		d := font.Drawer{Dst: cell, Src: image.Opaque, Face: face, Dot: fixed.P(int(offsets[i]), ascent)}
		d.DrawString(string(Rune(i)))
	}
	return lcd.NewAtlas(alphaMask(dst.Pix, dst.Stride, total, height), offsets)
}

// scaleAtlas enlarges a by an integer factor without smoothing.
func scaleAtlas(a *lcd.Atlas, factor int) (*lcd.Atlas, error) {
	src := image.NewAlpha(image.Rect(0, 0, a.Width, a.Height))
	for i, v := range a.Alpha[:a.Width*a.Height] {
		src.Pix[i] = v * 0x11
	}
	w, h := a.Width*factor, a.Height*factor
	big := transform.Resize(src, w, h, transform.NearestNeighbor)

	mask := lcd.Mask{Width: w, Height: h, Alpha: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Alpha[y*w+x] = big.RGBAAt(x, y).A >> 4
		}
	}
	offsets := make([]uint16, len(a.Offsets))
	for i, o := range a.Offsets {
		offsets[i] = o * uint16(factor)
	}
	return lcd.NewAtlas(mask, offsets)
}

// alphaMask quantizes 8-bit coverage to lcd opacity levels.
func alphaMask(pix []uint8, stride, w, h int) lcd.Mask {
	m := lcd.Mask{Width: w, Height: h, Alpha: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w]
		for x, v := range row {
			m.Alpha[y*w+x] = v >> 4
		}
	}
	return m
}

package lcd

import (
	"strings"
	"testing"
)

const (
	blockW = 4
	blockH = 5
)

// blockFont is an ASCII atlas of solid blockW x blockH glyphs with a blank
// space.
func blockFont(t *testing.T) *Atlas {
	t.Helper()
	const n = 0x7F - 0x20
	m := Mask{Width: n * blockW, Height: blockH, Alpha: make([]uint8, n*blockW*blockH)}
	for y := 0; y < blockH; y++ {
		for x := blockW; x < m.Width; x++ {
			m.Alpha[y*m.Width+x] = OpacityMax
		}
	}
	offsets := make([]uint16, n+1)
	for i := range offsets {
		offsets[i] = uint16(i * blockW)
	}
	a, err := NewAtlas(m, offsets)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func newTextCanvas(t *testing.T, w, h int) *Canvas {
	c := newTestCanvas(w, h)
	c.Resources().Fonts[FontStd] = blockFont(t)
	return c
}

func TestNewAtlasValidates(t *testing.T) {
	strip := Mask{Width: 4, Height: 1, Alpha: make([]uint8, 4)}
	if _, err := NewAtlas(strip, []uint16{0}); err == nil {
		t.Fatalf("accepted a table without glyphs")
	}
	if _, err := NewAtlas(strip, []uint16{0, 3, 2}); err == nil {
		t.Fatalf("accepted decreasing offsets")
	}
	if _, err := NewAtlas(strip, []uint16{0, 5}); err == nil {
		t.Fatalf("accepted offsets past the strip")
	}
	if _, err := NewAtlas(Mask{Width: 4, Height: 2, Alpha: make([]uint8, 4)}, []uint16{0, 4}); err == nil {
		t.Fatalf("accepted a short strip")
	}
	a, err := NewAtlas(strip, []uint16{0, 1, 4})
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	if a.Glyphs() != 2 || a.GlyphWidth(1) != 3 || a.GlyphWidth(2) != 0 || a.GlyphWidth(-1) != 0 {
		t.Fatalf("glyph table = %d glyphs, widths %d %d", a.Glyphs(), a.GlyphWidth(0), a.GlyphWidth(1))
	}
}

func TestTextWidth(t *testing.T) {
	c := newTextCanvas(t, 8, 8)
	for _, tc := range []struct {
		s    string
		n    int
		want int
	}{
		{"AB", 2, 8},
		{"ABC", 2, 8},
		{"A\x01B", 3, 9},
		{"A\x03B", 3, 12},
		{"AAA\x1eB", 5, 12},
		{"B\x1eAAA", 5, 12},
		{"A\x1fPB", 4, 8},
		{"A\x00B", 3, 4},
		{"", 0, 0},
		{"AB", -1, 0},
		{strings.Repeat("A", 300), 300, TextBufferSize * blockW},
	} {
		if got := c.TextWidth([]byte(tc.s), tc.n, 0); got != tc.want {
			t.Fatalf("TextWidth(%q, %d) = %d, want %d", tc.s, tc.n, got, tc.want)
		}
	}
	if got := c.FontHeight(0); got != blockH {
		t.Fatalf("FontHeight = %d, want %d", got, blockH)
	}
	// Sizes without an atlas fall back to the standard font.
	if got := c.TextWidth([]byte("AB"), 2, FontDbl.Flags()); got != 8 {
		t.Fatalf("fallback TextWidth = %d, want 8", got)
	}
}

func TestDrawTextCursor(t *testing.T) {
	c := newTextCanvas(t, 32, 12)
	if got := c.DrawText(1, 0, "AB", 0, true); got != 9 || c.NextX() != 9 {
		t.Fatalf("DrawText end = %d, NextX = %d, want 9", got, c.NextX())
	}

	c = newTextCanvas(t, 32, 12)
	if got := c.DrawText(20, 0, "AB", AlignRight, true); got != 20 {
		t.Fatalf("right aligned end = %d, want 20", got)
	}
	if s := c.Surface(); s.Pixel(12, 0) != Black || s.Pixel(11, 0) != White {
		t.Fatalf("right aligned text starts at the wrong column:\n%s", grid(s))
	}

	c = newTextCanvas(t, 32, 12)
	if got := c.DrawText(20, 0, "AB", AlignCenter, true); got != 24 {
		t.Fatalf("centered end = %d, want 24", got)
	}
}

func TestDrawTextControlCodes(t *testing.T) {
	c := newTextCanvas(t, 32, 12)
	s := c.Surface()
	if got := c.DrawText(0, 0, "A\x1f\x0aB", 0, true); got != 14 {
		t.Fatalf("set-x end = %d, want 14", got)
	}
	if s.Pixel(3, 0) != Black || s.Pixel(4, 0) != White || s.Pixel(9, 0) != White || s.Pixel(10, 0) != Black {
		t.Fatalf("set-x layout:\n%s", grid(s))
	}

	c = newTextCanvas(t, 32, 12)
	s = c.Surface()
	if got := c.DrawText(2, 0, "A\x1eB", 0, true); got != 6 {
		t.Fatalf("newline end = %d, want 6", got)
	}
	if s.Pixel(2, blockH) != Black || s.Pixel(6, 0) != White || s.Pixel(2, blockH-1) != Black {
		t.Fatalf("newline layout:\n%s", grid(s))
	}

	c = newTextCanvas(t, 32, 12)
	if got := c.DrawText(0, 0, "A\x01\x04 B\x00B", 0, true); got != 4+1+6+4+4 {
		t.Fatalf("spacing end = %d, want %d", got, 4+1+6+4+4)
	}
}

func TestDrawTextInverse(t *testing.T) {
	bg := DefaultColors()[TextInvertedBgColor]
	for _, tc := range []struct {
		name    string
		size    FontSize
		in, out [][2]int
	}{
		// Glyph "A" at (10, 5), 4 pixels wide.
		{"std", FontStd, [][2]int{{7, 5}, {16, 22}}, [][2]int{{6, 5}, {17, 5}, {7, 4}, {7, 23}}},
		{"tiny", FontTiny, [][2]int{{9, 6}, {13, 16}}, [][2]int{{8, 6}, {9, 5}, {14, 6}, {9, 17}}},
		{"small", FontSmall, [][2]int{{8, 4}, {15, 21}}, [][2]int{{7, 4}, {16, 4}, {8, 3}, {8, 22}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newTextCanvas(t, 30, 30)
			s := c.Surface()
			c.DrawText(10, 5, "A", tc.size.Flags()|Inverse, true)
			for _, p := range tc.in {
				if s.Pixel(p[0], p[1]) != bg {
					t.Fatalf("%v not in the inverted box", p)
				}
			}
			for _, p := range tc.out {
				if s.Pixel(p[0], p[1]) != White {
					t.Fatalf("%v painted outside the box", p)
				}
			}
			if s.Pixel(10, 5) != DefaultColors()[TextInvertedColor] {
				t.Fatalf("glyph not drawn in the inverted color")
			}
		})
	}
}

func TestDrawTextBlink(t *testing.T) {
	c := newTextCanvas(t, 30, 30)
	s := c.Surface()
	c.DrawText(10, 5, "A", Inverse|Blink, false)
	if s.Pixel(10, 5) != Black || s.Pixel(7, 5) != White {
		t.Fatalf("blink-off inverse text drew a box")
	}

	c.DrawText(10, 5, "A", Inverse|Blink, true)
	if s.Pixel(7, 5) != DefaultColors()[TextInvertedBgColor] {
		t.Fatalf("blink-on inverse text drew no box")
	}
}

func TestDrawTextReleased(t *testing.T) {
	c := newTextCanvas(t, 16, 8)
	c.Resources().Release()
	if got := c.DrawText(3, 0, "AB", 0, true); got != 3 {
		t.Fatalf("released fonts advanced to %d", got)
	}
	if countColor(c.Surface(), Black) != 0 {
		t.Fatalf("released fonts drew pixels")
	}
	if c.FontHeight(0) != 0 {
		t.Fatalf("released FontHeight = %d", c.FontHeight(0))
	}
}

package lcd

// TextBufferSize bounds how many bytes of a string one call will walk.
const TextBufferSize = 256

// Control codes embedded in text.
const (
	CodeSpace1  = 0x01 // advance one pixel
	CodeNewline = 0x1E // back to the start column, one line down
	CodeSetX    = 0x1F // next byte is an absolute x coordinate
)

type invertBox struct {
	dx, dy int // offset from the text origin, in margins
	dw, dh int
}

func clampText(str []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n > len(str) {
		n = len(str)
	}
	if n > TextBufferSize {
		n = TextBufferSize
	}
	return str[:n]
}

// FontHeight returns the line height of the font selected by flags.
func (c *Canvas) FontHeight(flags Flags) int {
	font := c.res.Font(flags.FontSize())
	if font == nil {
		return 0
	}
	return font.Height
}

// TextWidth returns the width in pixels of the first n bytes of str, the
// widest line when str holds embedded newlines.
func (c *Canvas) TextWidth(str []byte, n int, flags Flags) int {
	font := c.res.Font(flags.FontSize())
	str = clampText(str, n)
	width, line := 0, 0
	for i := 0; i < len(str); i++ {
		ch := str[i]
		switch {
		case ch == 0:
			i = len(str)
		case ch >= 0x20:
			line += font.GlyphWidth(c.res.mapChar(ch))
		case ch == CodeSetX:
			i++
		case ch == CodeNewline:
			if line > width {
				width = line
			}
			line = 0
		case ch == CodeSpace1:
			line++
		default:
			line += 2 * (int(ch) - 1)
		}
	}
	if line > width {
		width = line
	}
	return width
}

// DrawText is DrawSizedText over the whole of s.
func (c *Canvas) DrawText(x, y int, s string, flags Flags, blinkOn bool) int {
	b := []byte(s)
	return c.DrawSizedText(x, y, b, len(b), flags, blinkOn)
}

// DrawSizedText walks the first n bytes of str (at most TextBufferSize) and
// returns the final cursor x, which NextX also reports afterwards.
//
// Bytes >= 0x20 are glyphs resolved through the CharMap. CodeSetX takes the
// following byte as the new x, CodeNewline returns to the start column one
// line lower, CodeSpace1 advances a pixel, and any other byte b < 0x20
// advances 2*(b-1) pixels. A zero byte ends the string early.
//
// Inverse paints a background box behind the text, unless Blink is also set
// and blinkOn is false.
func (c *Canvas) DrawSizedText(x, y int, str []byte, n int, flags Flags, blinkOn bool) int {
	str = clampText(str, n)
	font := c.res.Font(flags.FontSize())
	width := c.TextWidth(str, len(str), flags)
	height := c.FontHeight(flags)

	if flags&AlignRight != 0 {
		x -= width
	} else if flags&AlignCenter != 0 {
		x -= width / 2
	}

	if flags&Inverse != 0 && (flags&Blink == 0 || blinkOn) {
		flags = TextInvertedColor.Flags() | flags&lowFlagsMask
		c.drawInvertBox(x, y, width, flags.FontSize())
	}

	origX := x
	setX := false
	for _, ch := range str {
		if setX {
			x = int(ch)
			setX = false
			continue
		}
		if ch == 0 {
			break
		}
		switch {
		case ch >= 0x20:
			x = c.drawGlyph(x, y, font, c.res.mapChar(ch), flags)
		case ch == CodeSetX:
			setX = true
		case ch == CodeNewline:
			x = origX
			y += height
		case ch == CodeSpace1:
			x++
		default:
			x += 2 * (int(ch) - 1)
		}
	}
	c.nextX = x
	return x
}

// drawGlyph blits glyph index of font at (x, y) and returns the x after it.
func (c *Canvas) drawGlyph(x, y int, font *Atlas, index int, flags Flags) int {
	width := font.GlyphWidth(index)
	if width > 0 {
		c.DrawBitmapPattern(x, y, &font.Mask, flags, int(font.Offsets[index]), width)
	}
	c.nextX = x + width
	return c.nextX
}

func (c *Canvas) drawInvertBox(x, y, width int, size FontSize) {
	m := c.res.Text
	var b invertBox
	switch size {
	case FontTiny:
		b = invertBox{dx: -m.HorzMargin + 2, dy: -m.VertMargin + 2, dw: 2*m.HorzMargin - 5, dh: m.LineHeight - 7}
	case FontSmall:
		b = invertBox{dx: -m.HorzMargin + 1, dy: -m.VertMargin, dw: 2*m.HorzMargin - 2, dh: m.LineHeight}
	default:
		b = invertBox{dx: -m.HorzMargin, dw: 2 * m.HorzMargin, dh: m.LineHeight}
	}
	c.DrawSolidFilledRect(x+b.dx, y+b.dy, width+b.dw, b.dh, TextInvertedBgColor.Flags())
}

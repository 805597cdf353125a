package lcd

// DrawHLine draws w pixels rightwards from (x, y). Non-solid patterns gate
// each pixel with their low bit and rotate once per pixel, including pixels
// clipped off the left edge.
func (c *Canvas) DrawHLine(x, y, w int, pat Pattern, flags Flags) {
	row, skip := c.s.span(x, y, w)
	if row == nil {
		return
	}
	color := c.color(flags)
	opacity := flags.Opacity()

	if pat == Solid {
		for i := range row {
			blend(&row[i], opacity, color)
		}
		return
	}
	for skip %= 8; skip > 0; skip-- {
		pat.next()
	}
	for i := range row {
		if pat.next() {
			blend(&row[i], opacity, color)
		}
	}
}

// DrawVLine draws h pixels downwards from (x, y); a negative h draws upwards.
// A dotted pattern starts on the opposite phase when the first visible row is
// even so dotted verticals line up regardless of where they start.
func (c *Canvas) DrawVLine(x, y, h int, pat Pattern, flags Flags) {
	s := c.s
	if x < 0 || x >= s.width || y >= s.height {
		return
	}
	if h < 0 {
		y += h
		h = -h
	}
	if y < 0 {
		h += y
		y = 0
		if h <= 0 {
			return
		}
	}
	if y+h > s.height {
		h = s.height - y
	}
	if h <= 0 {
		return
	}

	color := c.color(flags)
	opacity := flags.Opacity()
	i := y*s.width + x

	if pat == Solid {
		for ; h > 0; h-- {
			blend(&s.pix[i], opacity, color)
			i += s.width
		}
		return
	}
	if pat == Dotted && y%2 == 0 {
		pat = ^pat
	}
	for ; h > 0; h-- {
		if pat.next() {
			blend(&s.pix[i], opacity, color)
		}
		i += s.width
	}
}

// DrawFilledRect draws h horizontal lines. With Round set the first and last
// rows are inset by one pixel on each side.
func (c *Canvas) DrawFilledRect(x, y, w, h int, pat Pattern, flags Flags) {
	for i := y; i < y+h; i++ {
		if flags&Round != 0 && (i == y || i == y+h-1) {
			c.DrawHLine(x+1, i, w-2, pat, flags)
		} else {
			c.DrawHLine(x, i, w, pat, flags)
		}
	}
}

// DrawSolidFilledRect is DrawFilledRect with the solid pattern.
func (c *Canvas) DrawSolidFilledRect(x, y, w, h int, flags Flags) {
	c.DrawFilledRect(x, y, w, h, Solid, flags)
}

// DrawRect draws a rectangle outline of the given thickness.
func (c *Canvas) DrawRect(x, y, w, h, thickness int, pat Pattern, flags Flags) {
	for i := 0; i < thickness; i++ {
		c.DrawVLine(x+i, y, h, pat, flags)
		c.DrawVLine(x+w-1-i, y, h, pat, flags)
		c.DrawHLine(x, y+h-1-i, w, pat, flags)
		c.DrawHLine(x, y+i, w, pat, flags)
	}
}

// InvertRect replaces each covered pixel with max + attr - background per
// channel: a true invert against Black, an approximate one otherwise.
func (c *Canvas) InvertRect(x, y, w, h int, flags Flags) {
	r, g, b := Split(c.color(flags))
	for i := y; i < y+h; i++ {
		row, _ := c.s.span(x, i, w)
		for j := range row {
			bgR, bgG, bgB := Split(row[j])
			row[j] = Join(RedMax+r-bgR, GreenMax+g-bgG, BlueMax+b-bgB)
		}
	}
}

// DrawBitmap copies src onto the canvas with its top-left corner at (x, y).
func (c *Canvas) DrawBitmap(x, y int, src *Surface) {
	if src == nil {
		return
	}
	for row := 0; row < src.height; row++ {
		dst, skip := c.s.span(x, y+row, src.width)
		if dst == nil {
			continue
		}
		copy(dst, src.pix[row*src.width+skip:(row+1)*src.width])
	}
}

// DrawBitmapPattern blends the colour selected by flags through columns
// [offset, offset+width) of m, using each alpha value as the opacity. A zero
// or oversized width means the whole mask.
func (c *Canvas) DrawBitmapPattern(x, y int, m *Mask, flags Flags, offset, width int) {
	if !m.Valid() || offset < 0 || offset >= m.Width {
		return
	}
	if width <= 0 || width > m.Width {
		width = m.Width
	}
	if offset+width > m.Width {
		width = m.Width - offset
	}
	color := c.color(flags)
	for row := 0; row < m.Height; row++ {
		dst, skip := c.s.span(x, y+row, width)
		if dst == nil {
			continue
		}
		src := m.Alpha[row*m.Width+offset+skip:]
		for i := range dst {
			blend(&dst[i], src[i], color)
		}
	}
}

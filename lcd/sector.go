package lcd

import "github.com/chewxy/math32"

// Slope sentinels, in hundredths.
const (
	slopeInfinity = 100000
	slopeVertical = 99000
)

// SectorSlopes bounds an angular wedge as four slopes (hundredths of dy/dx).
// Slots 0 and 1 bound the right half plane, slots 2 and 3 the left one; an
// infinite sentinel means the wedge has no edge on that side.
//
// Angles are in degrees, clockwise from twelve o'clock.
type SectorSlopes [4]int

// EvalSlopes converts [start, end) into slope bounds. It reports false for an
// empty wedge: start outside [0, 360), end outside (0, 360], or start >= end.
//
// The cotangents are evaluated in single precision and truncated, so wedge
// edges near the poles are approximate; pies rely on exactly this rounding.
func EvalSlopes(start, end int) (SectorSlopes, bool) {
	var s SectorSlopes
	if start < 0 || start >= 360 || end <= 0 || end > 360 || start >= end {
		return s, false
	}

	if start == 0 {
		s[1] = slopeInfinity
		s[2] = -slopeInfinity
	} else if start >= 180 {
		s[1] = -slopeInfinity
		s[2] = cot100(start)
	} else {
		s[1] = cot100(start)
		s[2] = -slopeInfinity
	}

	if end == 360 {
		s[0] = -slopeInfinity
		s[3] = slopeInfinity
	} else if end >= 180 {
		s[0] = -slopeInfinity
		s[3] = -cot100(end)
	} else {
		s[0] = cot100(end)
		s[3] = -slopeInfinity
	}
	return s, true
}

func cot100(deg int) int {
	a := float32(float64(deg) * 3.14159265 / 180)
	return int(math32.Cos(a) * 100 / math32.Sin(a))
}

// quarterSlope is the slope of the offset (x, y), x and y >= 0.
func quarterSlope(x, y int) int {
	if x == 0 {
		return slopeVertical
	}
	return y * 100 / x
}

func (s *SectorSlopes) right(slope int) bool { return slope >= s[0] && slope < s[1] }
func (s *SectorSlopes) left(slope int) bool  { return slope >= s[2] && slope < s[3] }

// Contains reports whether the offset (dx, dy) from the centre, screen
// coordinates with y growing downwards, lies inside the wedge. Offsets on an
// axis belong to every quadrant that touches it.
func (s SectorSlopes) Contains(dx, dy int) bool {
	x, y := dx, dy
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	slope := quarterSlope(x, y)
	if dx >= 0 {
		if dy <= 0 && s.right(slope) {
			return true
		}
		if dy >= 0 && s.right(-slope) {
			return true
		}
	}
	if dx <= 0 {
		if dy <= 0 && s.left(slope) {
			return true
		}
		if dy >= 0 && s.left(-slope) {
			return true
		}
	}
	return false
}

// DrawPie fills the part of the disc of the given radius around (x0, y0)
// that lies in the [start, end) wedge.
func (c *Canvas) DrawPie(x0, y0, radius, start, end int, flags Flags) {
	s, ok := EvalSlopes(start, end)
	if !ok || radius < 0 {
		return
	}
	color := c.color(flags)
	opacity := flags.Opacity()
	r2 := radius * radius

	// One quarter-plane walk covers all four quadrants by mirroring.
	for y := 0; y <= radius; y++ {
		for x := 0; x <= radius; x++ {
			if x*x+y*y > r2 {
				break
			}
			slope := quarterSlope(x, y)
			if s.right(slope) {
				c.s.BlendPixel(x0+x, y0-y, opacity, color)
			}
			if s.right(-slope) {
				c.s.BlendPixel(x0+x, y0+y, opacity, color)
			}
			if s.left(slope) {
				c.s.BlendPixel(x0-x, y0-y, opacity, color)
			}
			if s.left(-slope) {
				c.s.BlendPixel(x0-x, y0+y, opacity, color)
			}
		}
	}
}

// DrawBitmapPie copies the pixels of img that fall in the [start, end)
// wedge around the image centre, with img's top-left corner at (x0, y0).
func (c *Canvas) DrawBitmapPie(x0, y0 int, img *Surface, start, end int) {
	if img == nil {
		return
	}
	s, ok := EvalSlopes(start, end)
	if !ok {
		return
	}
	width := img.width
	w2 := width / 2
	h2 := img.height / 2
	q := img.pix

	for y := h2 - 1; y >= 0; y-- {
		for x := w2 - 1; x >= 0; x-- {
			slope := quarterSlope(x, y)
			if s.right(slope) {
				c.s.DrawPixel(x0+w2+x, y0+h2-y, q[(h2-y)*width+w2+x])
			}
			if s.right(-slope) {
				c.s.DrawPixel(x0+w2+x, y0+h2+y, q[(h2+y)*width+w2+x])
			}
			if s.left(slope) {
				c.s.DrawPixel(x0+w2-x, y0+h2-y, q[(h2-y)*width+w2-x])
			}
			if s.left(-slope) {
				c.s.DrawPixel(x0+w2-x, y0+h2+y, q[(h2+y)*width+w2-x])
			}
		}
	}
}

// DrawBitmapPatternPie blends the colour selected by flags through the
// alpha values of m that fall in the [start, end) wedge around the mask
// centre, with m's top-left corner at (x0, y0).
func (c *Canvas) DrawBitmapPatternPie(x0, y0 int, m *Mask, flags Flags, start, end int) {
	if !m.Valid() {
		return
	}
	s, ok := EvalSlopes(start, end)
	if !ok {
		return
	}
	color := c.color(flags)
	width := m.Width
	w2 := width / 2
	h2 := m.Height / 2
	q := m.Alpha

	for y := h2 - 1; y >= 0; y-- {
		for x := w2 - 1; x >= 0; x-- {
			slope := quarterSlope(x, y)
			if s.right(slope) {
				c.s.BlendPixel(x0+w2+x, y0+h2-y, q[(h2-y)*width+w2+x], color)
			}
			if s.right(-slope) {
				c.s.BlendPixel(x0+w2+x, y0+h2+y, q[(h2+y)*width+w2+x], color)
			}
			if s.left(slope) {
				c.s.BlendPixel(x0+w2-x, y0+h2-y, q[(h2-y)*width+w2-x], color)
			}
			if s.left(-slope) {
				c.s.BlendPixel(x0+w2-x, y0+h2+y, q[(h2+y)*width+w2-x], color)
			}
		}
	}
}

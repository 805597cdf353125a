package lcd

import (
	"errors"
	"image"
	"image/color"
)

// MaxDim is the largest width or height a Surface can describe in its
// header-prefixed sample form.
const MaxDim = 0xFFFF

// Surface is a fixed-size RGB565 pixel grid. Its dimensions never change
// after construction.
type Surface struct {
	width  int
	height int
	pix    []Color
}

// NewSurface allocates a zeroed width x height surface. Negative dimensions
// are treated as zero.
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Pix returns the row-major samples, top row first.
func (s *Surface) Pix() []Color { return s.pix }

// Empty reports whether the surface has no pixels.
func (s *Surface) Empty() bool { return s.width == 0 || s.height == 0 }

// Pixel returns the sample at (x, y), or Black when outside the surface.
func (s *Surface) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Black
	}
	return s.pix[y*s.width+x]
}

// DrawPixel overwrites the sample at (x, y). Off-surface writes are ignored.
func (s *Surface) DrawPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.pix[y*s.width+x] = c
}

// Clear fills the whole surface with c.
func (s *Surface) Clear(c Color) {
	for i := range s.pix {
		s.pix[i] = c
	}
}

// span returns the visible part of the w pixels starting at (x, y) and the
// number of pixels clipped on the left. It returns nil when nothing is
// visible.
func (s *Surface) span(x, y, w int) ([]Color, int) {
	if y < 0 || y >= s.height || w <= 0 || x >= s.width {
		return nil, 0
	}
	skip := 0
	if x < 0 {
		skip = -x
		w += x
		x = 0
		if w <= 0 {
			return nil, 0
		}
	}
	if x+w > s.width {
		w = s.width - x
	}
	off := y*s.width + x
	return s.pix[off : off+w], skip
}

// Samples returns the in-memory bitmap resource form of s: width, height,
// then the row-major pixels.
func (s *Surface) Samples() []uint16 {
	out := make([]uint16, 2+len(s.pix))
	out[0] = uint16(s.width)
	out[1] = uint16(s.height)
	for i, c := range s.pix {
		out[2+i] = uint16(c)
	}
	return out
}

// FromSamples builds a surface from a header-prefixed sample slice as
// produced by Samples.
func FromSamples(samples []uint16) (*Surface, error) {
	if len(samples) < 2 {
		return nil, errors.New("lcd: missing bitmap header")
	}
	w, h := int(samples[0]), int(samples[1])
	if len(samples)-2 < w*h {
		return nil, errors.New("lcd: truncated bitmap samples")
	}
	s := NewSurface(w, h)
	for i := range s.pix {
		s.pix[i] = Color(samples[2+i])
	}
	return s, nil
}

// FitScale returns the largest uniform scale at which s fits in w x h.
func FitScale(s *Surface, w, h int) float32 {
	if s == nil || s.Empty() {
		return 0
	}
	ws := float32(w) / float32(s.width)
	hs := float32(h) / float32(s.height)
	if ws < hs {
		return ws
	}
	return hs
}

// ToRGBA expands s into dst, which must be at least as large as s.
func (s *Surface) ToRGBA(dst *image.RGBA) {
	b := dst.Bounds()
	for y := 0; y < s.height && y < b.Dy(); y++ {
		row := s.pix[y*s.width : (y+1)*s.width]
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < len(row) && x < b.Dx(); x++ {
			r, g, bl := row[x].RGB888()
			dst.Pix[off+0] = r
			dst.Pix[off+1] = g
			dst.Pix[off+2] = bl
			dst.Pix[off+3] = 0xFF
			off += 4
		}
	}
}

func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }
func (s *Surface) ColorModel() color.Model { return Model }
func (s *Surface) At(x, y int) color.Color { return s.Pixel(x, y) }

func (s *Surface) Set(x, y int, c color.Color) {
	s.DrawPixel(x, y, Model.Convert(c).(Color))
}

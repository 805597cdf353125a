package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"

	"radiolcd/hal"
	"radiolcd/lcd"
)

// Callbacks is the stream a codec pulls from.
type Callbacks interface {
	// Read fills p and returns the count read; 0 means nothing is left.
	Read(p []byte) int
	// Skip moves n bytes relative to the current position. Negative n
	// rewinds.
	Skip(n int)
	// EOF reports whether the stream is exhausted.
	EOF() bool
}

// Formats the codec bridge accepts; anything else registered with package
// image is refused.
var codecFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
}

// LoadCodec decodes name through the image codecs.
func LoadCodec(st hal.Storage, name string, lim Limits) (*lcd.Surface, error) {
	f, err := st.Open(name)
	if err != nil {
		err = fmt.Errorf("%w: open %s: %w", ErrDecode, name, err)
		logResult(name, StrategyCodec, nil, err)
		return nil, err
	}
	defer f.Close()

	cb := &fileCallbacks{f: f}
	s, err := DecodeCallbacks(cb, lim)
	if err == nil && cb.err != nil {
		s, err = nil, fmt.Errorf("%w: %w", ErrDecode, cb.err)
	}
	logResult(name, StrategyCodec, s, err)
	return s, err
}

// DecodeCallbacks decodes an image pulled from cb. The header is read first
// and checked against lim; the stream is then rewound and decoded in full.
func DecodeCallbacks(cb Callbacks, lim Limits) (*lcd.Surface, error) {
	r := &callbackReader{cb: cb}
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !codecFormats[format] {
		return nil, decodeErr("unsupported format %q", format)
	}
	if err := lim.check(int64(cfg.Width), int64(cfg.Height)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	cb.Skip(-r.consumed)
	r.consumed = 0
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}
	b := img.Bounds()
	if err := lim.check(int64(b.Dx()), int64(b.Dy())); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return FromImage(img), nil
}

// FromImage converts img to a surface, dropping alpha.
func FromImage(img image.Image) *lcd.Surface {
	b := img.Bounds()
	s := lcd.NewSurface(b.Dx(), b.Dy())
	pix := s.Pix()
	w := b.Dx()

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			dst := pix[(y-b.Min.Y)*w : (y-b.Min.Y+1)*w]
			for x := range dst {
				p := src.Pix[i+4*x:]
				dst[x] = lcd.RGB(p[0], p[1], p[2])
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			dst := pix[(y-b.Min.Y)*w : (y-b.Min.Y+1)*w]
			for x := range dst {
				p := src.Pix[i+4*x:]
				if p[3] == 0xFF {
					dst[x] = lcd.RGB(p[0], p[1], p[2])
				} else {
					dst[x] = toColor(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
				}
			}
		}
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			dst := pix[(y-b.Min.Y)*w : (y-b.Min.Y+1)*w]
			for x := range dst {
				v := src.Pix[i+x]
				dst[x] = lcd.RGB(v, v, v)
			}
		}
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst := pix[(y-b.Min.Y)*w : (y-b.Min.Y+1)*w]
			for x := range dst {
				yi := src.YOffset(b.Min.X+x, y)
				ci := src.COffset(b.Min.X+x, y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				dst[x] = lcd.RGB(r, g, bl)
			}
		}
	case *image.Paletted:
		pal := make([]lcd.Color, len(src.Palette))
		for i, c := range src.Palette {
			pal[i] = toColor(c)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			dst := pix[(y-b.Min.Y)*w : (y-b.Min.Y+1)*w]
			for x := range dst {
				if idx := int(src.Pix[i+x]); idx < len(pal) {
					dst[x] = pal[idx]
				}
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst := pix[(y-b.Min.Y)*w : (y-b.Min.Y+1)*w]
			for x := range dst {
				dst[x] = toColor(img.At(b.Min.X+x, y))
			}
		}
	}
	return s
}

func toColor(c color.Color) lcd.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lcd.RGB(n.R, n.G, n.B)
}

// callbackReader adapts Callbacks to io.Reader, counting what it consumed
// so the stream can be rewound.
type callbackReader struct {
	cb       Callbacks
	consumed int
}

func (r *callbackReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.cb.EOF() {
		return 0, io.EOF
	}
	n := r.cb.Read(p)
	r.consumed += n
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// fileCallbacks serves Callbacks from a storage file. The first I/O error
// is kept in err and ends the stream.
type fileCallbacks struct {
	f   hal.File
	pos int64
	err error
}

func (c *fileCallbacks) Read(p []byte) int {
	if c.err != nil {
		return 0
	}
	n, err := c.f.Read(p)
	c.pos += int64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		c.err = err
	}
	return n
}

func (c *fileCallbacks) Skip(n int) {
	if c.err != nil {
		return
	}
	pos := c.pos + int64(n)
	if pos < 0 {
		pos = 0
	}
	if err := c.f.Seek(pos); err != nil {
		c.err = err
		return
	}
	c.pos = pos
}

func (c *fileCallbacks) EOF() bool {
	return c.err != nil || c.f.EOF()
}

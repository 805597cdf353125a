package lcd

import "image/color"

// Color is a packed RGB565 sample: rrrrrggggggbbbbb.
type Color uint16

// Channel maxima of the packed format.
const (
	RedMax   = 0x1F
	GreenMax = 0x3F
	BlueMax  = 0x1F
)

// RGB packs 8-bit channels into a Color by dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

// Split returns the raw 5/6/5 channel values of c.
func Split(c Color) (r, g, b int) {
	return int(c>>11) & RedMax, int(c>>5) & GreenMax, int(c) & BlueMax
}

// Join packs raw channel values. Each channel is clamped to [0, max] first so
// an out-of-range value never bleeds into its neighbour.
func Join(r, g, b int) Color {
	return Color(clampChannel(r, RedMax)<<11 | clampChannel(g, GreenMax)<<5 | clampChannel(b, BlueMax))
}

func clampChannel(v, max int) uint16 {
	if v < 0 {
		return 0
	}
	if v > max {
		return uint16(max)
	}
	return uint16(v)
}

// RGB888 expands c back to 8-bit channels.
func (c Color) RGB888() (r, g, b uint8) {
	rr, gg, bb := Split(c)
	return uint8(rr * 255 / RedMax), uint8(gg * 255 / GreenMax), uint8(bb * 255 / BlueMax)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB888()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Model converts arbitrary colors to Color, ignoring alpha.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(nc.R, nc.G, nc.B)
})

// Common colors.
const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

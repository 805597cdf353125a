package fonts

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"radiolcd/lcd"
)

var _ drivers.Displayer = (*maskDisplay)(nil)

// maskDisplay lets tinyfont draw into an atlas strip, clipped to one glyph
// cell at a time.
type maskDisplay struct {
	m      *lcd.Mask
	clipX0 int16
	clipX1 int16
}

func (d *maskDisplay) Size() (x, y int16) {
	return int16(d.m.Width), int16(d.m.Height)
}

func (d *maskDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < d.clipX0 || x >= d.clipX1 || y < 0 || int(y) >= d.m.Height {
		return
	}
	d.m.Alpha[int(y)*d.m.Width+int(x)] = c.A >> 4
}

func (d *maskDisplay) Display() error { return nil }

var opaque = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// tinyAtlas renders TomThumb, a 3x5 pixel font.
func tinyAtlas() (*lcd.Atlas, error) {
	font := &tinyfont.TomThumb
	height := int(font.GetYAdvance())
	if height <= 0 {
		return nil, fmt.Errorf("tomthumb has no height")
	}
	baseline := int16(height - 1)

	offsets := make([]uint16, NumGlyphs+1)
	total := 0
	for i := 0; i < NumGlyphs; i++ {
		_, adv := tinyfont.LineWidth(font, string(Rune(i)))
		if adv == 0 {
			_, adv = tinyfont.LineWidth(font, "?")
		}
		offsets[i] = uint16(total)
		total += int(adv)
	}
	offsets[NumGlyphs] = uint16(total)

	mask := lcd.Mask{Width: total, Height: height, Alpha: make([]uint8, total*height)}
	d := &maskDisplay{m: &mask}
	for i := 0; i < NumGlyphs; i++ {
		d.clipX0, d.clipX1 = int16(offsets[i]), int16(offsets[i+1])
		tinyfont.DrawChar(d, font, d.clipX0, baseline, Rune(i), opaque)
	}
	return lcd.NewAtlas(mask, offsets)
}

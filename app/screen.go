// Package app renders the radio telemetry screen.
package app

import (
	"fmt"
	"image"
	"time"

	"github.com/chewxy/math32"

	"radiolcd/hal"
	"radiolcd/internal/buildinfo"
	"radiolcd/lcd"
	"radiolcd/lcd/fonts"
)

const (
	headerHeight = 20
	gaugeRadius  = 36
	ringWidth    = 6
	blinkFrames  = 30
	lowBattery   = 20
	numChannels  = 8

	// Advances 2*(n-1) pixels.
	channelGap byte = 0x06
)

// Telemetry is one snapshot of the values on screen.
type Telemetry struct {
	Model    string
	RSSI     int // percent
	Battery  int // percent
	Voltage  float32
	Throttle int // percent
	Timer    time.Duration
	Channels [numChannels]int // -100..100
}

// Screen draws telemetry frames onto a canvas.
type Screen struct {
	c     *lcd.Canvas
	logo  *lcd.Surface
	ring  *lcd.Mask
	frame uint64
}

// NewScreen draws on c. logo may be nil.
func NewScreen(c *lcd.Canvas, logo *lcd.Surface) *Screen {
	return &Screen{c: c, logo: logo, ring: RingMask(gaugeRadius, ringWidth)}
}

// Canvas returns the canvas the screen draws on.
func (s *Screen) Canvas() *lcd.Canvas { return s.c }

// BlinkOn reports the blink phase of the current frame.
func (s *Screen) BlinkOn() bool { return (s.frame/blinkFrames)%2 == 0 }

// Draw renders one full frame of t and advances the blink clock.
func (s *Screen) Draw(t Telemetry) {
	surf := s.c.Surface()
	w, h := surf.Width(), surf.Height()
	res := s.c.Resources()
	surf.Clear(res.Color(lcd.TextBgColor))

	s.drawGrid(w, h)
	s.drawHeader(t, w)
	s.drawGauges(t, h)
	s.drawChannels(t, w)
	s.drawFooter(t, w, h)

	if t.Battery < lowBattery {
		s.drawLabel(w/2, h/2-s.c.FontHeight(lcd.FontDbl.Flags())/2, "LOW BATTERY",
			lcd.FontDbl.Flags()|lcd.AlignCenter|lcd.Inverse|lcd.Blink)
	}
	s.frame++
}

// Frame adapts the screen to a host presenter: each call draws the next
// snapshot from src and copies the surface into dst.
func (s *Screen) Frame(src func(frame uint64) Telemetry) hal.FrameFunc {
	return func(dst *image.RGBA) error {
		s.Draw(src(s.frame))
		s.c.Surface().ToRGBA(dst)
		return nil
	}
}

// drawLabel draws a Go string as ISO 8859-1 text and returns the end x.
func (s *Screen) drawLabel(x, y int, text string, flags lcd.Flags) int {
	b := fonts.Encode(text)
	return s.c.DrawSizedText(x, y, b, len(b), flags, s.BlinkOn())
}

func (s *Screen) drawGrid(w, h int) {
	line := lcd.LineColor.Flags()
	for y := headerHeight + 40; y < h-16; y += 40 {
		s.c.DrawHLine(0, y, w, lcd.Dotted, line)
	}
	s.c.DrawVLine(w/2, headerHeight, h-headerHeight-16, lcd.Dashed, line)
}

func (s *Screen) drawHeader(t Telemetry, w int) {
	s.c.DrawSolidFilledRect(0, 0, w, headerHeight, lcd.HeaderBgColor.Flags())
	hdr := lcd.HeaderColor.Flags()
	s.drawLabel(4, 3, t.Model, hdr)

	// Battery outline, fill and nub.
	bx := w - 110
	s.c.DrawRect(bx, 4, 30, 12, 1, lcd.Solid, hdr)
	s.c.DrawSolidFilledRect(bx+30, 7, 2, 6, hdr)
	fill := lcd.BarColor
	if t.Battery < lowBattery {
		fill = lcd.AlarmColor
	}
	s.c.DrawFilledRect(bx+2, 6, clampPct(t.Battery)*26/100, 8, lcd.Solid, fill.Flags()|lcd.Round)
	s.drawLabel(bx-4, 3, fmt.Sprintf("%.1fV", t.Voltage), hdr|lcd.AlignRight|lcd.FontSmall.Flags())

	secs := int(t.Timer / time.Second)
	s.drawLabel(w-4, 3, fmt.Sprintf("%02d:%02d", secs/60, secs%60), hdr|lcd.AlignRight)
}

func (s *Screen) drawGauges(t Telemetry, h int) {
	cx := gaugeRadius + 12
	cy := headerHeight + 14 + gaugeRadius

	// Throttle: a translucent full disc under the live wedge.
	s.c.DrawPie(cx, cy, gaugeRadius, 0, 360, lcd.LineColor.Flags()|lcd.Opacity(4))
	s.c.DrawPie(cx, cy, gaugeRadius, 0, clampPct(t.Throttle)*360/100, lcd.BarColor.Flags())
	// Label and value share a line, the value pinned to a column.
	thr := append(fonts.Encode("THR"), lcd.CodeSetX, byte(cx+4))
	thr = append(thr, fonts.Encode(fmt.Sprintf("%d%%", clampPct(t.Throttle)))...)
	s.c.DrawSizedText(cx-gaugeRadius, cy+gaugeRadius+4, thr, len(thr), lcd.FontSmall.Flags(), true)

	// RSSI: the ring mask swept through the reported fraction.
	rx := cx + 2*gaugeRadius + 20
	s.c.DrawBitmapPatternPie(rx-gaugeRadius, cy-gaugeRadius, s.ring, lcd.WarningColor.Flags(), 0, clampPct(t.RSSI)*360/100)
	label := fonts.Encode(fmt.Sprintf("RSSI\x1e%d%%", clampPct(t.RSSI)))
	s.c.DrawSizedText(rx-12, cy-8, label, len(label), lcd.FontSmall.Flags(), true)

	if s.logo == nil {
		return
	}
	// Logo: revealed clockwise as the timer's seconds advance.
	lx := 12
	ly := h - 20 - s.logo.Height()
	if ly <= cy+gaugeRadius+20 {
		return
	}
	secs := int(t.Timer/time.Second) % 60
	s.c.DrawBitmapPie(lx, ly, s.logo, 0, (secs+1)*6)
}

func (s *Screen) drawChannels(t Telemetry, w int) {
	x0 := w/2 + 8
	barX := x0 + 72
	barW := w - barX - 8
	if barW < 20 {
		return
	}
	for i, v := range t.Channels {
		y := headerHeight + 10 + i*22
		text := append(fonts.Encode(fmt.Sprintf("CH%d", i+1)), channelGap)
		text = append(text, fonts.Encode(fmt.Sprintf("%+d", clampChannel(v)))...)
		s.c.DrawSizedText(x0, y, text, len(text), lcd.FontSmall.Flags(), true)

		s.c.DrawRect(barX, y+2, barW, 10, 1, lcd.Solid, lcd.LineColor.Flags())
		mid := barX + barW/2
		span := clampChannel(v) * (barW/2 - 2) / 100
		if span >= 0 {
			s.c.DrawSolidFilledRect(mid, y+4, span, 6, lcd.BarColor.Flags())
		} else {
			s.c.DrawSolidFilledRect(mid+span, y+4, -span, 6, lcd.BarColor.Flags())
		}
		if v == 100 || v == -100 {
			s.c.InvertRect(barX+1, y+3, barW-2, 8, lcd.TextBgColor.Flags())
		}
	}
}

func (s *Screen) drawFooter(t Telemetry, w, h int) {
	s.c.DrawHLine(0, h-16, w, lcd.Solid, lcd.LineColor.Flags())
	s.drawLabel(4, h-12, "radiolcd "+buildinfo.Short(), lcd.FontTiny.Flags()|lcd.DisabledColor.Flags())
	status := "LINK OK"
	flags := lcd.FontSmall.Flags() | lcd.AlignRight
	if t.RSSI < 30 {
		status = "LINK LOW"
		flags |= lcd.Inverse | lcd.Blink
	}
	s.drawLabel(w-6, h-14, status, flags)
}

// RingMask builds a square alpha mask holding an anti-aliased ring of the
// given outer radius and thickness.
func RingMask(radius, thickness int) *lcd.Mask {
	size := 2 * radius
	m := &lcd.Mask{Width: size, Height: size, Alpha: make([]uint8, size*size)}
	outer := float32(radius)
	inner := float32(radius - thickness)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float32(x-radius) + 0.5
			dy := float32(y-radius) + 0.5
			d := math32.Sqrt(dx*dx + dy*dy)
			cover := math32.Min(outer-d, d-inner) + 0.5
			cover = math32.Max(0, math32.Min(1, cover))
			m.Alpha[y*size+x] = uint8(math32.Round(cover * lcd.OpacityMax))
		}
	}
	return m
}

// Simulate returns a deterministic telemetry snapshot for frame n of a
// 60 Hz preview.
func Simulate(n uint64) Telemetry {
	secs := float32(n) / 60
	t := Telemetry{
		Model:    "Glider 2",
		RSSI:     60 + int(35*math32.Sin(secs/3)),
		Battery:  100 - int(n/120)%100,
		Throttle: int(50 + 50*math32.Sin(secs)),
		Timer:    time.Duration(n) * time.Second / 60,
	}
	t.Voltage = 6.6 + 1.8*float32(t.Battery)/100
	for i := range t.Channels {
		t.Channels[i] = int(100 * math32.Sin(secs+float32(i)*0.7))
	}
	return t
}

func clampPct(v int) int {
	return max(0, min(100, v))
}

func clampChannel(v int) int {
	return max(-100, min(100, v))
}

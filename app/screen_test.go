package app

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radiolcd/lcd"
	"radiolcd/lcd/fonts"
)

func newTestScreen(t *testing.T, logo *lcd.Surface) (*Screen, *lcd.Resources) {
	t.Helper()
	res, err := fonts.NewResources()
	require.NoError(t, err)
	c := lcd.NewCanvas(lcd.NewSurface(480, 272), res)
	return NewScreen(c, logo), res
}

func count(s *lcd.Surface, c lcd.Color) int {
	n := 0
	for _, p := range s.Pix() {
		if p == c {
			n++
		}
	}
	return n
}

func TestDrawTelemetry(t *testing.T) {
	scr, res := newTestScreen(t, nil)
	scr.Draw(Telemetry{Model: "Test", RSSI: 90, Battery: 80, Voltage: 8.0, Throttle: 100})
	surf := scr.Canvas().Surface()

	assert.Equal(t, res.Color(lcd.HeaderBgColor), surf.Pixel(240, 1))
	// Full throttle fills the gauge disc.
	assert.Equal(t, res.Color(lcd.BarColor), surf.Pixel(58, 80))
	assert.Positive(t, count(surf, res.Color(lcd.WarningColor)))
	assert.Zero(t, count(surf, res.Color(lcd.TextInvertedBgColor)))
}

func TestLowBatteryBlinks(t *testing.T) {
	scr, res := newTestScreen(t, nil)
	tel := Telemetry{Model: "Test", RSSI: 90, Battery: 5, Throttle: 10}
	banner := res.Color(lcd.TextInvertedBgColor)

	require.True(t, scr.BlinkOn())
	scr.Draw(tel)
	assert.Positive(t, count(scr.Canvas().Surface(), banner))

	for i := 0; i < blinkFrames; i++ {
		scr.Draw(tel)
	}
	require.False(t, scr.BlinkOn())
	scr.Draw(tel)
	assert.Zero(t, count(scr.Canvas().Surface(), banner))
}

func TestDrawLogo(t *testing.T) {
	logo := lcd.NewSurface(40, 40)
	marker := lcd.RGB(0x12, 0x34, 0x56)
	logo.Clear(marker)
	scr, _ := newTestScreen(t, logo)

	scr.Draw(Telemetry{Model: "Test", RSSI: 90, Battery: 80})
	first := count(scr.Canvas().Surface(), marker)
	assert.Positive(t, first)

	scr.Draw(Telemetry{Model: "Test", RSSI: 90, Battery: 80, Timer: 59_000_000_000})
	assert.Greater(t, count(scr.Canvas().Surface(), marker), first)
}

func TestFrame(t *testing.T) {
	scr, res := newTestScreen(t, nil)
	dst := image.NewRGBA(image.Rect(0, 0, 480, 272))
	next := scr.Frame(Simulate)

	require.NoError(t, next(dst))
	require.NoError(t, next(dst))
	r, g, b := res.Color(lcd.HeaderBgColor).RGB888()
	px := dst.RGBAAt(240, 1)
	assert.Equal(t, [4]uint8{r, g, b, 0xFF}, [4]uint8{px.R, px.G, px.B, px.A})
	assert.Equal(t, uint64(2), scr.frame)
}

func TestRingMask(t *testing.T) {
	m := RingMask(36, 6)
	require.True(t, m.Valid())
	assert.Equal(t, 72, m.Width)
	assert.Equal(t, uint8(0), m.Alpha[36*72+36], "centre")
	assert.Equal(t, uint8(0), m.Alpha[0], "corner")
	assert.Equal(t, uint8(lcd.OpacityMax), m.Alpha[36*72+36+32], "ring")
}

func TestSimulate(t *testing.T) {
	for n := uint64(0); n < 60*600; n += 7 {
		tel := Simulate(n)
		require.GreaterOrEqual(t, tel.RSSI, 0)
		require.LessOrEqual(t, tel.RSSI, 100)
		require.Positive(t, tel.Battery)
		require.LessOrEqual(t, tel.Battery, 100)
		require.GreaterOrEqual(t, tel.Throttle, 0)
		require.LessOrEqual(t, tel.Throttle, 100)
		for _, v := range tel.Channels {
			require.LessOrEqual(t, v, 100)
			require.GreaterOrEqual(t, v, -100)
		}
	}
}

func TestDrawLabelLatin1(t *testing.T) {
	scr, res := newTestScreen(t, nil)
	flags := lcd.HeaderColor.Flags()
	glyph := res.Font(lcd.FontStd).GlyphWidth(fonts.CharMap(0xDC))
	require.Positive(t, glyph)

	assert.Equal(t, 4+glyph, scr.drawLabel(4, 3, "Ü", flags))
	assert.Equal(t, 4+2*glyph, scr.drawLabel(4, 3, "ÜÜ", flags))
}

package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radiolcd/lcd"
)

func coverage(a *lcd.Atlas, index int) int {
	sum := 0
	for y := 0; y < a.Height; y++ {
		for x := int(a.Offsets[index]); x < int(a.Offsets[index+1]); x++ {
			sum += int(a.Alpha[y*a.Width+x])
		}
	}
	return sum
}

func TestAtlases(t *testing.T) {
	all, err := Atlases()
	require.NoError(t, err)

	for size, a := range all {
		require.NotNil(t, a, "size %d", size)
		assert.Equal(t, NumGlyphs, a.Glyphs(), "size %d", size)
		assert.True(t, a.Valid(), "size %d", size)
		assert.Positive(t, a.Height, "size %d", size)
		assert.Zero(t, coverage(a, CharMap(' ')), "space in size %d", size)
		assert.Positive(t, coverage(a, CharMap('A')), "'A' in size %d", size)
		assert.Positive(t, a.GlyphWidth(CharMap('W')), "size %d", size)
		for _, v := range a.Alpha[:a.Width*a.Height] {
			if v > lcd.OpacityMax {
				t.Fatalf("size %d: alpha %d above max", size, v)
			}
		}
	}

	std, dbl := all[lcd.FontStd], all[lcd.FontDbl]
	assert.Equal(t, 2*std.Height, dbl.Height)
	assert.Equal(t, 2*std.Width, dbl.Width)
	assert.Equal(t, 2*std.GlyphWidth(CharMap('m')), dbl.GlyphWidth(CharMap('m')))
	assert.Less(t, all[lcd.FontTiny].Height, std.Height)
	assert.Less(t, std.Height, all[lcd.FontMid].Height)

	again, err := Atlases()
	require.NoError(t, err)
	assert.Same(t, std, again[lcd.FontStd])
}

func TestCharMap(t *testing.T) {
	assert.Equal(t, 0, CharMap(' '))
	assert.Equal(t, int('A'-0x20), CharMap('A'))
	assert.Equal(t, asciiGlyphs, CharMap(0xA0))
	assert.Equal(t, NumGlyphs-1, CharMap(0xFF))
	assert.Equal(t, CharMap('?'), CharMap(0x85))
	for c := 0x20; c < 0x100; c++ {
		if c >= 0x80 && c < 0xA0 {
			continue
		}
		i := CharMap(byte(c))
		require.Equal(t, rune(c), Rune(i))
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte{'G', 'r', 0xF6, 0xDF, 'e', '?'}, Encode("Größe€"))
	assert.Equal(t, []byte{'a', lcd.CodeNewline, 'b', lcd.CodeSetX, 40}, Encode("a\x1eb\x1f("))
	assert.Empty(t, Encode(""))
}

func TestNewResourcesDrawsText(t *testing.T) {
	res, err := NewResources()
	require.NoError(t, err)

	s := lcd.NewSurface(120, 40)
	s.Clear(lcd.White)
	c := lcd.NewCanvas(s, res)
	end := c.DrawSizedText(2, 2, Encode("Volt 7.4"), 8, lcd.TextColor.Flags(), true)
	assert.Equal(t, 2+c.TextWidth(Encode("Volt 7.4"), 8, 0), end)

	dark := 0
	for _, p := range s.Pix() {
		if p != lcd.White {
			dark++
		}
	}
	assert.Positive(t, dark)

	res.Release()
	for _, a := range res.Fonts {
		assert.Nil(t, a)
	}
	shared, err := Atlases()
	require.NoError(t, err)
	assert.NotNil(t, shared[lcd.FontStd])
}

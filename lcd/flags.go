package lcd

// Flags carries drawing attributes: modifiers in the low byte, the font size
// in bits 8-11, a color table index in bits 16-23 and the transparency level
// in bits 24-27. The zero value is opaque, left aligned, standard font,
// color index 0.
type Flags uint32

// Modifiers.
const (
	Blink       Flags = 0x01
	Inverse     Flags = 0x02
	AlignLeft   Flags = 0x00
	AlignRight  Flags = 0x04
	AlignCenter Flags = 0x08
	Round       Flags = 0x10
)

const (
	fontSizeShift = 8
	fontSizeMask  = 0x0F00
	colorShift    = 16
	opacityShift  = 24
	lowFlagsMask  = 0xFFFF
)

// OpacityMax is the fully opaque level.
const OpacityMax = 0x0F

// FontSize selects one of the resident glyph atlases.
type FontSize uint8

const (
	FontStd FontSize = iota
	FontTiny
	FontSmall
	FontMid
	FontDbl

	NumFontSizes
)

// Flags returns the size as an attribute value.
func (s FontSize) Flags() Flags { return Flags(s) << fontSizeShift }

// ColorIndex addresses an entry of the Resources color table.
type ColorIndex uint8

const (
	TextColor ColorIndex = iota
	TextBgColor
	TextInvertedColor
	TextInvertedBgColor
	LineColor
	HeaderColor
	HeaderBgColor
	BarColor
	AlarmColor
	WarningColor
	DisabledColor

	NumColors
)

// Flags returns the index as an attribute value.
func (i ColorIndex) Flags() Flags { return Flags(i) << colorShift }

// Opacity encodes an opacity level (0..OpacityMax) as an attribute value.
// Out-of-range levels are clamped.
func Opacity(level int) Flags {
	if level < 0 {
		level = 0
	}
	if level > OpacityMax {
		level = OpacityMax
	}
	return Flags(OpacityMax-level) << opacityShift
}

// FontSize returns the font size bits.
func (f Flags) FontSize() FontSize { return FontSize((f & fontSizeMask) >> fontSizeShift) }

// ColorIndex returns the color table index bits.
func (f Flags) ColorIndex() ColorIndex { return ColorIndex(f >> colorShift) }

// Opacity returns the opacity level, OpacityMax when no transparency is set.
func (f Flags) Opacity() uint8 { return OpacityMax - uint8((f>>opacityShift)&0x0F) }

// Pattern is an 8-pixel cyclic line mask consumed LSB first.
type Pattern uint8

const (
	Blank  Pattern = 0x00
	Dotted Pattern = 0x55
	Dashed Pattern = 0x33
	Solid  Pattern = 0xFF
)

// next reports whether the current pixel is set and rotates p right by one,
// reinserting the ejected bit at the top.
func (p *Pattern) next() bool {
	on := *p&1 != 0
	*p >>= 1
	if on {
		*p |= 0x80
	}
	return on
}

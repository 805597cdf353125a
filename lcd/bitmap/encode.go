package bitmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/anthonynsimon/bild/effect"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	biRGB       = 0
	biBitfields = 3

	infoHeaderSize   = 40
	infoHeaderV3Size = 56
	pixelsPerMeter   = 2835
	grayLevels       = 16
)

type fileHeader struct {
	Magic    [2]byte
	Size     uint32
	Reserved uint32
	Offset   uint32
}

type infoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	ImageSize     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ColorsUsed    uint32
	ColorsImp     uint32
}

type bitfields struct {
	Red, Green, Blue, Alpha uint32
}

// Encode writes img as a BMP that LoadContainer reads back. Depth 32 keeps
// the colors; depth 4 reduces the image to at most 16 gray levels.
func Encode(w io.Writer, img image.Image, depth int) error {
	b := img.Bounds()
	if err := (Limits{}).check(int64(b.Dx()), int64(b.Dy())); err != nil {
		return fmt.Errorf("bitmap: encode: %w", err)
	}
	var buf bytes.Buffer
	switch depth {
	case 32:
		encode32(&buf, img)
	case 4:
		encode4(&buf, img)
	default:
		return fmt.Errorf("bitmap: encode: unsupported depth %d", depth)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeHeaders(buf *bytes.Buffer, info infoHeader, extra any, pixelBytes int) {
	hsize := fileHeaderSize + binary.Size(info)
	if extra != nil {
		hsize += binary.Size(extra)
	}
	fh := fileHeader{
		Magic:  [2]byte{'B', 'M'},
		Size:   uint32(hsize + pixelBytes),
		Offset: uint32(hsize),
	}
	info.Planes = 1
	info.ImageSize = uint32(pixelBytes)
	info.XPelsPerMeter = pixelsPerMeter
	info.YPelsPerMeter = pixelsPerMeter
	_ = binary.Write(buf, binary.LittleEndian, fh)
	_ = binary.Write(buf, binary.LittleEndian, info)
	if extra != nil {
		_ = binary.Write(buf, binary.LittleEndian, extra)
	}
}

// encode32 stores bottom-up rows of A,B,G,R bytes: red in the high byte of
// each little-endian word, as the bitfield masks declare.
func encode32(buf *bytes.Buffer, img image.Image) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	writeHeaders(buf, infoHeader{
		Size:        infoHeaderV3Size,
		Width:       int32(w),
		Height:      int32(h),
		BitCount:    32,
		Compression: biBitfields,
	}, bitfields{Red: 0xFF000000, Green: 0x00FF0000, Blue: 0x0000FF00, Alpha: 0x000000FF}, 4*w*h)

	row := make([]byte, 4*w)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, y)).(color.NRGBA)
			row[4*x+0] = c.A
			row[4*x+1] = c.B
			row[4*x+2] = c.G
			row[4*x+3] = c.R
		}
		buf.Write(row)
	}
}

// encode4 quantizes a grayscale copy of img to a 16-entry palette.
func encode4(buf *bytes.Buffer, img image.Image) {
	gray := effect.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, grayLevels), gray)
	if len(pal) == 0 {
		pal = color.Palette{color.Black}
	}
	pm := image.NewPaletted(b, pal)
	draw.Draw(pm, b, gray, b.Min, draw.Src)

	var entries [grayLevels][4]byte
	for i, c := range pal {
		g := color.GrayModel.Convert(c).(color.Gray).Y
		entries[i] = [4]byte{g, g, g, 0}
	}

	stride := ((4*w + 31) / 32) * 4
	writeHeaders(buf, infoHeader{
		Size:        infoHeaderSize,
		Width:       int32(w),
		Height:      int32(h),
		BitCount:    4,
		Compression: biRGB,
		ColorsUsed:  grayLevels,
	}, entries, stride*h)

	row := make([]byte, stride)
	for y := h - 1; y >= 0; y-- {
		clear(row)
		off := pm.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			idx := pm.Pix[off+x] & 0x0F
			if x&1 == 0 {
				row[x/2] |= idx << 4
			} else {
				row[x/2] |= idx
			}
		}
		buf.Write(row)
	}
}

package bitmap

import (
	"encoding/binary"
	"fmt"

	"radiolcd/hal"
	"radiolcd/lcd"
)

const (
	fileHeaderSize = 14
	paletteBytes   = 64
)

// LoadContainer decodes a BMP file of depth 1, 4 or 32.
//
// Depth 32 pixels are stored with red in the high byte (BI_BITFIELDS masks
// 0xFF000000/0x00FF0000/0x0000FF00); the low byte is ignored. Depth 4 uses a
// 16-entry gray palette taken from the first byte of each palette entry.
// Depth 1 yields a zero-filled surface of the declared size.
func LoadContainer(st hal.Storage, name string, lim Limits) (*lcd.Surface, error) {
	f, err := st.Open(name)
	if err != nil {
		err = fmt.Errorf("%w: open %s: %w", ErrDecode, name, err)
		logResult(name, StrategyContainer, nil, err)
		return nil, err
	}
	defer f.Close()

	s, err := decodeContainer(f, lim)
	logResult(name, StrategyContainer, s, err)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func decodeContainer(f hal.File, lim Limits) (*lcd.Surface, error) {
	size := f.Size()
	if size < fileHeaderSize {
		return nil, decodeErr("file too short (%d bytes)", size)
	}

	var buf [32]byte
	if err := readFull(f, buf[:fileHeaderSize]); err != nil {
		return nil, fmt.Errorf("%w: file header: %w", ErrDecode, err)
	}
	if buf[0] != 'B' || buf[1] != 'M' {
		return nil, decodeErr("bad signature %q", buf[:2])
	}
	fsize := binary.LittleEndian.Uint32(buf[2:])
	hsize := binary.LittleEndian.Uint32(buf[10:])

	n := hsize - fileHeaderSize
	if n < 4 {
		n = 4
	}
	if n > uint32(len(buf)) {
		n = uint32(len(buf))
	}
	if err := readFull(f, buf[:n]); err != nil {
		return nil, fmt.Errorf("%w: info header: %w", ErrDecode, err)
	}
	ihsize := binary.LittleEndian.Uint32(buf[0:])
	if uint64(ihsize)+fileHeaderSize > uint64(hsize) {
		return nil, decodeErr("info header (%d) overruns header (%d)", ihsize, hsize)
	}

	// Some writers leave the file size unset or equal to the header sizes.
	if fsize == fileHeaderSize || fsize == ihsize+fileHeaderSize {
		fsize = uint32(size - 2)
	}
	if fsize <= hsize {
		return nil, decodeErr("no pixel data (file size %d, header %d)", fsize, hsize)
	}

	var w, h uint32
	var rest []byte
	switch ihsize {
	case 40, 56, 64, 108, 124:
		w = binary.LittleEndian.Uint32(buf[4:])
		h = binary.LittleEndian.Uint32(buf[8:])
		rest = buf[12:]
	case 12:
		w = uint32(binary.LittleEndian.Uint16(buf[4:]))
		h = uint32(binary.LittleEndian.Uint16(buf[6:]))
		rest = buf[8:]
	default:
		return nil, decodeErr("unsupported info header size %d", ihsize)
	}

	if planes := binary.LittleEndian.Uint16(rest[0:]); planes != 1 {
		return nil, decodeErr("unsupported plane count %d", planes)
	}
	depth := binary.LittleEndian.Uint16(rest[2:])
	switch depth {
	case 1, 4, 32:
	default:
		return nil, decodeErr("unsupported depth %d", depth)
	}
	if err := lim.check(int64(w), int64(h)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	width, height := int(w), int(h)

	var palette [16]uint8
	if depth == 4 {
		if hsize < paletteBytes {
			return nil, decodeErr("header (%d) too small for a palette", hsize)
		}
		if err := f.Seek(int64(hsize - paletteBytes)); err != nil {
			return nil, fmt.Errorf("%w: seek palette: %w", ErrDecode, err)
		}
		var pal [paletteBytes]byte
		if err := readFull(f, pal[:]); err != nil {
			return nil, fmt.Errorf("%w: palette: %w", ErrDecode, err)
		}
		for i := range palette {
			palette[i] = pal[4*i]
		}
	} else if err := f.Seek(int64(hsize)); err != nil {
		return nil, fmt.Errorf("%w: seek pixels: %w", ErrDecode, err)
	}

	s := lcd.NewSurface(width, height)
	pix := s.Pix()

	switch depth {
	case 32:
		row := make([]byte, 4*width)
		for y := height - 1; y >= 0; y-- {
			if err := readFull(f, row); err != nil {
				return nil, fmt.Errorf("%w: row %d: %w", ErrDecode, y, err)
			}
			dst := pix[y*width : (y+1)*width]
			for x := range dst {
				p := row[4*x:]
				dst[x] = lcd.RGB(p[3], p[2], p[1])
			}
		}
	case 4:
		row := make([]byte, ((4*width+31)/32)*4)
		for y := height - 1; y >= 0; y-- {
			if err := readFull(f, row); err != nil {
				return nil, fmt.Errorf("%w: row %d: %w", ErrDecode, y, err)
			}
			dst := pix[y*width : (y+1)*width]
			for x := range dst {
				shift := 4
				if x&1 != 0 {
					shift = 0
				}
				v := palette[(row[x/2]>>shift)&0x0F]
				dst[x] = lcd.RGB(v, v, v)
			}
		}
	}
	return s, nil
}

// readFull reads exactly len(p) bytes.
func readFull(f hal.File, p []byte) error {
	n, err := f.Read(p)
	if n == len(p) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("short read (%d of %d): %w", n, len(p), err)
	}
	return fmt.Errorf("short read (%d of %d)", n, len(p))
}

// Package bitmap loads image files from storage into lcd surfaces.
//
// Two strategies share one contract: a freshly allocated Surface on success,
// nothing on failure. The container strategy parses BMP files of depth 1, 4
// or 32 directly; the codec strategy bridges to the image codecs (PNG, JPEG,
// GIF, BMP) through a pull/skip/eof stream. Load picks one by sniffing the
// file's magic bytes, then its extension.
//
// Every failure wraps ErrDecode. I/O and format faults are deliberately not
// distinguished beyond the message text.
package bitmap

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/h2non/filetype"

	"radiolcd/hal"
	"radiolcd/lcd"
)

// ErrDecode is wrapped by every decode failure.
var ErrDecode = errors.New("bitmap: decode failed")

// Panel size of the reference hardware; the default decode bound.
const (
	DisplayWidth  = 480
	DisplayHeight = 272
)

// Limits bounds decoded surfaces. Width x Height is the largest pixel count
// accepted; each dimension must also fit in a bitmap header sample.
type Limits struct {
	Width  int
	Height int
}

// DefaultLimits is the reference panel.
var DefaultLimits = Limits{Width: DisplayWidth, Height: DisplayHeight}

func (l Limits) check(w, h int64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", w, h)
	}
	if w > lcd.MaxDim || h > lcd.MaxDim {
		return fmt.Errorf("dimensions %dx%d exceed %d", w, h, lcd.MaxDim)
	}
	if l.Width > 0 && l.Height > 0 && w*h > int64(l.Width)*int64(l.Height) {
		return fmt.Errorf("%dx%d exceeds the %dx%d pixel limit", w, h, l.Width, l.Height)
	}
	return nil
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}

// Strategy tags a decode path.
type Strategy uint8

const (
	StrategyUnknown Strategy = iota
	StrategyContainer
	StrategyCodec
)

func (s Strategy) String() string {
	switch s {
	case StrategyContainer:
		return "container"
	case StrategyCodec:
		return "codec"
	default:
		return "unknown"
	}
}

const sniffBytes = 32

// Sniff picks a strategy from the first bytes of a file, falling back to the
// file name's extension.
func Sniff(head []byte, name string) Strategy {
	if kind, err := filetype.Image(head); err == nil {
		switch kind.Extension {
		case "bmp":
			return StrategyContainer
		case "png", "jpg", "gif":
			return StrategyCodec
		}
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".bmp":
		return StrategyContainer
	case ".png", ".jpg", ".jpeg", ".gif":
		return StrategyCodec
	default:
		return StrategyUnknown
	}
}

// Load decodes the image at name with the strategy its contents select.
func Load(st hal.Storage, name string, lim Limits) (*lcd.Surface, error) {
	head, err := readHead(st, name)
	if err != nil {
		lcd.Logger().Debug("bitmap: sniff failed", "path", name, "err", err)
		return nil, err
	}
	switch Sniff(head, name) {
	case StrategyContainer:
		return LoadContainer(st, name, lim)
	case StrategyCodec:
		return LoadCodec(st, name, lim)
	default:
		err := decodeErr("%s: unrecognized image format", name)
		lcd.Logger().Debug("bitmap: sniff failed", "path", name, "err", err)
		return nil, err
	}
}

func readHead(st hal.Storage, name string) ([]byte, error) {
	f, err := st.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDecode, name, err)
	}
	defer f.Close()

	head := make([]byte, sniffBytes)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDecode, name, err)
	}
	return head[:n], nil
}

func logResult(name string, s Strategy, surf *lcd.Surface, err error) {
	if err != nil {
		lcd.Logger().Debug("bitmap: decode failed", "path", name, "strategy", s.String(), "err", err)
		return
	}
	lcd.Logger().Debug("bitmap: decoded", "path", name, "strategy", s.String(), "width", surf.Width(), "height", surf.Height())
}

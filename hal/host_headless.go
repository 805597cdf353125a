package hal

import (
	"context"
	"fmt"
	"image"
	"time"
)

// HeadlessConfig controls the no-window frame runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Hz     int
	Frames uint64
}

// RunHeadless renders frames at cfg.Hz without a window and returns the last
// one. It stops after cfg.Frames frames (0 = until ctx is done).
func RunHeadless(ctx context.Context, cfg HeadlessConfig, next FrameFunc) (*image.RGBA, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid headless geometry: %dx%d", cfg.Width, cfg.Height)
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return nil, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return img, ctx.Err()
		case <-t.C:
			if err := next(img); err != nil {
				return img, err
			}
			frame++
			if cfg.Frames > 0 && frame >= cfg.Frames {
				return img, nil
			}
		}
	}
}

package hal

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRunHeadlessFrames(t *testing.T) {
	calls := 0
	img, err := RunHeadless(context.Background(), HeadlessConfig{Width: 4, Height: 2, Hz: 1000, Frames: 3},
		func(dst *image.RGBA) error {
			calls++
			dst.Set(calls, 0, color.RGBA{R: 0xFF, A: 0xFF})
			return nil
		})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if calls != 3 {
		t.Fatalf("rendered %d frames, want 3", calls)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("frame size = %v", img.Bounds())
	}
	if img.RGBAAt(3, 0).R != 0xFF {
		t.Fatalf("last frame lost the drawn pixel")
	}
}

func TestRunHeadlessErrors(t *testing.T) {
	noop := func(*image.RGBA) error { return nil }
	if _, err := RunHeadless(context.Background(), HeadlessConfig{Width: 0, Height: 2}, noop); err == nil {
		t.Fatalf("accepted zero width")
	}

	boom := errors.New("boom")
	_, err := RunHeadless(context.Background(), HeadlessConfig{Width: 1, Height: 1, Hz: 1000},
		func(*image.RGBA) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("frame error = %v, want boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunHeadless(ctx, HeadlessConfig{Width: 1, Height: 1, Hz: 1}, noop); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled run = %v", err)
	}
}

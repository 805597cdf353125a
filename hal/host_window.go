//go:build !tinygo && cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig sizes the host preview window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
}

// RunWindow opens a desktop window that shows the frames produced by next.
// It blocks until the window closes or next returns an error.
func RunWindow(cfg WindowConfig, next FrameFunc) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	g := &hostGame{w: cfg.Width, h: cfg.Height, next: next}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	w, h  int
	img   *image.RGBA
	fbImg *ebiten.Image
	next  FrameFunc
}

func (g *hostGame) Update() error {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, g.w, g.h))
		g.fbImg = ebiten.NewImage(g.w, g.h)
	}
	if g.next != nil {
		if err := g.next(g.img); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		return
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

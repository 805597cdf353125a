//go:build tinygo || !cgo

package hal

import "fmt"

// WindowConfig sizes the host preview window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
}

// RunWindow needs ebiten, which needs cgo on most hosts. Use RunHeadless.
func RunWindow(_ WindowConfig, _ FrameFunc) error {
	return fmt.Errorf("hal: window mode requires cgo (build with CGO_ENABLED=1): %w", ErrNotImplemented)
}

// Package hal is the boundary between the LCD core and the outside world:
// file storage for bitmap assets and a host-side presenter for surfaces.
package hal

import (
	"errors"
	"image"
)

// ErrNotImplemented reports a capability missing from this build.
var ErrNotImplemented = errors.New("hal: not implemented")

// ErrClosed is returned by operations on a closed File.
var ErrClosed = errors.New("hal: file already closed")

// Storage opens files for reading.
type Storage interface {
	Open(path string) (File, error)
}

// File is an open, read-only storage handle.
//
// Read fills as much of p as the file allows; a short count means end of
// file, and io.EOF is only returned together with a zero count. Seek moves to
// an absolute offset. Close may be called more than once.
type File interface {
	Read(p []byte) (int, error)
	Seek(off int64) error
	Size() int64
	EOF() bool
	Close() error
}

// FrameFunc renders the next frame into dst.
type FrameFunc func(dst *image.RGBA) error

package hal

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	osfs "github.com/hack-pad/hackpadfs/os"
)

// FSStorage serves files from a hackpadfs filesystem.
type FSStorage struct {
	fs hackpadfs.FS
}

// NewFSStorage wraps fsys.
func NewFSStorage(fsys hackpadfs.FS) *FSStorage {
	return &FSStorage{fs: fsys}
}

// NewHostStorage serves files below root on the host disk.
func NewHostStorage(root string) (*FSStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("hal: storage root %q: %w", root, err)
	}
	fsys := osfs.NewFS()
	sub, err := fsys.Sub(normPath(filepath.ToSlash(abs)))
	if err != nil {
		return nil, fmt.Errorf("hal: storage root %q: %w", root, err)
	}
	return &FSStorage{fs: sub}, nil
}

// MemStorage is an in-memory storage, used for tests and embedded assets.
type MemStorage struct {
	*FSStorage
	mem *mem.FS
}

// NewMemStorage returns an empty in-memory storage.
func NewMemStorage() (*MemStorage, error) {
	m, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	return &MemStorage{FSStorage: NewFSStorage(m), mem: m}, nil
}

// WriteFile creates or replaces name with data.
func (s *MemStorage) WriteFile(name string, data []byte) error {
	p := normPath(name)
	if dir := path.Dir(p); dir != "." {
		if err := hackpadfs.MkdirAll(s.mem, dir, 0o755); err != nil {
			return err
		}
	}
	f, err := hackpadfs.OpenFile(s.mem, p, hackpadfs.FlagWriteOnly|hackpadfs.FlagCreate|hackpadfs.FlagTruncate, 0o644)
	if err != nil {
		return err
	}
	if _, err := hackpadfs.WriteFile(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Open opens path for reading.
func (s *FSStorage) Open(name string) (File, error) {
	p := normPath(name)
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("hal: open %s: is a directory", name)
	}
	return &fsFile{f: f, size: st.Size()}, nil
}

type fsFile struct {
	f      hackpadfs.File
	size   int64
	pos    int64
	closed bool
}

func (f *fsFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	n := 0
	for n < len(p) {
		m, err := f.f.Read(p[n:])
		n += m
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			f.pos += int64(n)
			return n, err
		}
		if m == 0 {
			break
		}
	}
	f.pos += int64(n)
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (f *fsFile) Seek(off int64) error {
	if f.closed {
		return ErrClosed
	}
	if off < 0 {
		return fmt.Errorf("hal: seek to negative offset %d", off)
	}
	if _, err := hackpadfs.SeekFile(f.f, off, io.SeekStart); err != nil {
		return err
	}
	f.pos = off
	return nil
}

func (f *fsFile) Size() int64 { return f.size }
func (f *fsFile) EOF() bool   { return f.pos >= f.size }

func (f *fsFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.f.Close()
}

// normPath makes p a non-rooted, cleaned fs path.
func normPath(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

package media

import (
	"fmt"
	"os"
)

// Source is an opened, seekable byte stream over an audio file. It is owned
// exclusively by the invocation that opened it and must be closed on every
// exit path.
type Source struct {
	f    *os.File
	path string
}

// Open opens the file at path for reading. Failures are reported as
// ErrUnreadable.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &Source{f: f, path: path}, nil
}

func (s *Source) Read(p []byte) (int, error) {
	return s.f.Read(p)
}

func (s *Source) Seek(offset int64, whence int) (int64, error) {
	return s.f.Seek(offset, whence)
}

// Path returns the path the source was opened from.
func (s *Source) Path() string { return s.path }

// Size returns the total size of the underlying file in bytes.
func (s *Source) Size() (int64, error) {
	fi, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Close releases the underlying file. Safe to call more than once.
func (s *Source) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	return f.Close()
}

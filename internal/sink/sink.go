// Package sink persists aggregates as JSON files.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
)

// Sink receives one aggregate per destination path.
type Sink interface {
	Persist(path string, v any) error
}

// Encode renders v as compact JSON with object keys sorted, so the same
// aggregate always produces the same bytes.
func Encode(v any) ([]byte, error) {
	opts := ojg.DefaultOptions
	opts.Sort = true
	opts.TimeFormat = time.RFC3339Nano
	data, err := oj.Marshal(v, &opts)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryBuild, "encode aggregate as JSON").Fatal().Build()
	}
	return data, nil
}

// FileSink writes each aggregate to disk, replacing the destination atomically.
type FileSink struct {
	PermFile os.FileMode
	PermDir  os.FileMode
}

// NewFileSink returns a FileSink with 0644 files and 0755 directories.
func NewFileSink() *FileSink {
	return &FileSink{PermFile: 0o644, PermDir: 0o755}
}

// Persist encodes v and writes it to path, overwriting any existing file.
func (s *FileSink) Persist(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "encode aggregate").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return s.WriteFile(path, data)
}

// WriteFile atomically replaces path with data, creating parent directories.
func (s *FileSink) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), s.permDir()); err != nil {
		return fsError(err, "create output directory", path)
	}
	if err := s.writeAtomic(path, data); err != nil {
		return fsError(err, "write", path)
	}
	return nil
}

// writeAtomic writes to a temp file in the destination directory and renames
// it over path, so readers never observe a half-written index.
func (s *FileSink) writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, s.permFile()); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *FileSink) permFile() os.FileMode {
	if s.PermFile == 0 {
		return 0o644
	}
	return s.PermFile
}

func (s *FileSink) permDir() os.FileMode {
	if s.PermDir == 0 {
		return 0o755
	}
	return s.PermDir
}

func fsError(err error, msg, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, fmt.Sprintf("%s %s", msg, path)).
		Fatal().
		WithContext("path", path).
		Build()
}

// MemorySink keeps encoded aggregates in memory. Useful for tests and dry runs.
type MemorySink struct {
	mu     sync.Mutex
	Writes map[string][]byte
	order  []string
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{Writes: make(map[string][]byte)}
}

// Persist records the encoded form of v under path.
func (m *MemorySink) Persist(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Writes[path]; !ok {
		m.order = append(m.order, path)
	}
	m.Writes[path] = data
	return nil
}

// Paths returns the destinations written, in write order.
func (m *MemorySink) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

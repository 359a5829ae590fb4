package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
)

// BookFile is the name of the mdBook configuration file.
const BookFile = "book.toml"

// DefaultSrc is the source directory used when [book].src is unset.
const DefaultSrc = "src"

// Book is the subset of book.toml the standalone host needs.
type Book struct {
	Root          string
	Src           string
	Preprocessors map[string]map[string]any
}

type bookFile struct {
	Book struct {
		Src string `toml:"src"`
	} `toml:"book"`
	Preprocessor map[string]map[string]any `toml:"preprocessor"`
}

// LoadBookTOML reads book.toml from path. The book root is the directory
// containing the file.
func LoadBookTOML(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read book configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}
	var raw bookFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse book configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}
	b := &Book{
		Root:          filepath.Dir(path),
		Src:           raw.Book.Src,
		Preprocessors: raw.Preprocessor,
	}
	if b.Src == "" {
		b.Src = DefaultSrc
	}
	if b.Preprocessors == nil {
		b.Preprocessors = map[string]map[string]any{}
	}
	return b, nil
}

// DefaultBook describes a directory without book.toml: the directory itself is
// the source root and no preprocessor tables are set.
func DefaultBook(root string) *Book {
	return &Book{Root: root, Src: ".", Preprocessors: map[string]map[string]any{}}
}

// LoadBookDir loads root/book.toml when it exists and falls back to
// DefaultBook otherwise.
func LoadBookDir(root string) (*Book, error) {
	path := filepath.Join(root, BookFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultBook(root), nil
	}
	return LoadBookTOML(path)
}

// SourceRoot is the directory that holds the Markdown sources.
func (b *Book) SourceRoot() string {
	if filepath.IsAbs(b.Src) {
		return b.Src
	}
	return filepath.Join(b.Root, b.Src)
}

// Preprocessor returns the table for name, or nil when it is not configured.
func (b *Book) Preprocessor(name string) map[string]any {
	if b == nil {
		return nil
	}
	return b.Preprocessors[name]
}

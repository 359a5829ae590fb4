// Package mdbook speaks the mdBook preprocessor protocol.
//
// mdBook writes a JSON array [context, book] to the preprocessor's stdin and
// expects the (possibly modified) book back on stdout. The book is kept as a
// generic tree so fields this package does not know about survive the round
// trip unchanged.
package mdbook

import (
	"io"
	"path/filepath"

	"github.com/ohler55/ojg/oj"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// Context is the preprocessor context mdBook sends ahead of the book.
type Context struct {
	Root          string
	Renderer      string
	MDBookVersion string
	Config        map[string]any
}

// ReadInput decodes the [context, book] pair from r.
func ReadInput(r io.Reader) (*Context, *Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryProtocol, "failed to read preprocessor input").Fatal().Build()
	}
	v, err := oj.Parse(data)
	if err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryProtocol, "preprocessor input is not valid JSON").Fatal().Build()
	}
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return nil, nil, ferrors.ProtocolError("preprocessor input must be a [context, book] array").Build()
	}
	rawCtx, ok := pair[0].(map[string]any)
	if !ok {
		return nil, nil, ferrors.ProtocolError("preprocessor context must be an object").Build()
	}
	rawBook, ok := pair[1].(map[string]any)
	if !ok {
		return nil, nil, ferrors.ProtocolError("book must be an object").Build()
	}

	ctx := &Context{
		Root:          stringField(rawCtx, "root"),
		Renderer:      stringField(rawCtx, "renderer"),
		MDBookVersion: stringField(rawCtx, "mdbook_version"),
		Config:        mapField(rawCtx, "config"),
	}
	return ctx, &Book{raw: rawBook}, nil
}

// WriteBook encodes b to w.
func WriteBook(w io.Writer, b *Book) error {
	data, err := sink.Encode(b.raw)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryProtocol, "failed to write book").Fatal().Build()
	}
	return nil
}

// Supports reports whether the preprocessors can run for renderer. They only
// touch Markdown source, so every renderer is supported.
func Supports(_ string) bool {
	return true
}

// SourceRoot is the absolute source directory: root joined with
// config.book.src, which defaults to "src".
func (c *Context) SourceRoot() string {
	src := stringField(mapField(c.Config, "book"), "src")
	if src == "" {
		src = "src"
	}
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(c.Root, src)
}

// PreprocessorTable returns config.preprocessor.<name>, or nil.
func (c *Context) PreprocessorTable(name string) map[string]any {
	return mapField(mapField(c.Config, "preprocessor"), name)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapField(m map[string]any, key string) map[string]any {
	sub, _ := m[key].(map[string]any)
	return sub
}

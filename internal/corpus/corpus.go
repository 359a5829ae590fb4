// Package corpus turns a directory of Markdown files into pipeline documents
// for the standalone host.
package corpus

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/logfields"
	"git.home.luguber.info/inful/mdcollect/internal/pipeline"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

// SummaryFile is the mdBook table of contents. It is navigation, not content.
const SummaryFile = "SUMMARY.md"

// Discover loads every *.md file below srcRoot in lexical path order.
// Document paths are slash separated and relative to srcRoot.
func Discover(srcRoot string) ([]*pipeline.Document, error) {
	var paths []string
	err := filepath.WalkDir(srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != srcRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		rel, err := filepath.Rel(srcRoot, p)
		if err != nil {
			return err
		}
		if rel == SummaryFile {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to walk source directory").
			Fatal().
			WithContext("path", srcRoot).
			Build()
	}
	sort.Strings(paths)

	docs := make([]*pipeline.Document, 0, len(paths))
	for _, rel := range paths {
		full := filepath.Join(srcRoot, filepath.FromSlash(rel))
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read document").
				Fatal().
				WithContext("path", full).
				Build()
		}
		docs = append(docs, &pipeline.Document{
			Path:    rel,
			Name:    DisplayName(rel, data),
			Content: string(data),
		})
	}
	return docs, nil
}

// DisplayName picks the name a document is listed under: the front matter
// title, then the first level-one heading, then the file stem.
func DisplayName(rel string, data []byte) string {
	var meta struct {
		Title string `yaml:"title" toml:"title" json:"title"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		slog.Debug("Ignoring unreadable front matter", logfields.Path(rel), logfields.Error(err))
		body = data
	}
	if t := strings.TrimSpace(meta.Title); t != "" {
		return t
	}
	if h := firstHeading(body); h != "" {
		return h
	}
	base := filepath.Base(filepath.FromSlash(rel))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(h, body))
		return gmast.WalkStop, nil
	})
	return title
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// WriteDrained mirrors docs into outDir, one file per document path.
func WriteDrained(outDir string, docs []*pipeline.Document) error {
	w := sink.NewFileSink()
	for _, doc := range docs {
		if err := w.WriteFile(filepath.Join(outDir, filepath.FromSlash(doc.Path)), []byte(doc.Content)); err != nil {
			return err
		}
	}
	return nil
}

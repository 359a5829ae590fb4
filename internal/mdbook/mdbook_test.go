package mdbook

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdcollect/internal/config"
	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/pipeline"
	"git.home.luguber.info/inful/mdcollect/internal/sink"
)

const sampleInput = `[
  {
    "root": "/work/book",
    "renderer": "html",
    "mdbook_version": "0.4.40",
    "config": {
      "book": {"src": "pages", "title": "Notes"},
      "preprocessor": {
        "collector": {"command": "mdcollect collector", "add_title": true},
        "tagger": {"split": ","}
      }
    }
  },
  {
    "sections": [
      {"Chapter": {
        "name": "Alpha",
        "content": "intro <!-- collect {\"x\":1} --> rest",
        "number": [1],
        "path": "a.md",
        "source_path": "a.md",
        "parent_names": [],
        "sub_items": [
          {"Chapter": {
            "name": "Nested",
            "content": "<!-- tags: go, rust -->body",
            "number": [1, 1],
            "path": "a/nested.md",
            "source_path": "a/nested.md",
            "parent_names": ["Alpha"],
            "sub_items": []
          }}
        ]
      }},
      "Separator",
      {"PartTitle": "Appendix"},
      {"Chapter": {
        "name": "Draft",
        "content": "",
        "number": null,
        "path": null,
        "source_path": null,
        "parent_names": [],
        "sub_items": []
      }}
    ],
    "__non_exhaustive": null
  }
]`

func TestReadInput(t *testing.T) {
	ctx, book, err := ReadInput(strings.NewReader(sampleInput))
	require.NoError(t, err)
	require.Equal(t, "/work/book", ctx.Root)
	require.Equal(t, "html", ctx.Renderer)
	require.Equal(t, "0.4.40", ctx.MDBookVersion)
	require.Equal(t, filepath.Join("/work/book", "pages"), ctx.SourceRoot())
	require.Equal(t, ",", ctx.PreprocessorTable("tagger")["split"])
	require.Nil(t, ctx.PreprocessorTable("tocjs"))

	var paths []string
	book.Chapters(func(ch *Chapter) { paths = append(paths, ch.Path()) })
	require.Equal(t, []string{"a.md", "a/nested.md"}, paths)
}

func TestContext_SourceRootDefaultsToSrc(t *testing.T) {
	ctx := &Context{Root: "/b"}
	require.Equal(t, filepath.Join("/b", "src"), ctx.SourceRoot())
}

func TestReadInput_Malformed(t *testing.T) {
	for _, in := range []string{
		"not json",
		`{"root": "/"}`,
		`[{}]`,
		`[[], {}]`,
		`[{}, "book"]`,
	} {
		_, _, err := ReadInput(strings.NewReader(in))
		require.Error(t, err, in)
		require.True(t, ferrors.HasCategory(err, ferrors.CategoryProtocol), in)
	}
}

func TestPreprocess_CollectorRoundTrip(t *testing.T) {
	mem := sink.NewMemorySink()
	var out bytes.Buffer

	err := Preprocess(strings.NewReader(sampleInput), &out, mem, nil, func(ctx *Context) (pipeline.Processor, error) {
		cfg, err := config.ResolveCollector(ctx.PreprocessorTable(config.CollectorName), ctx.SourceRoot())
		if err != nil {
			return nil, err
		}
		return pipeline.NewCollector(cfg), nil
	})
	require.NoError(t, err)

	savePath := filepath.Join("/work/book", "pages", "collect.json")
	require.JSONEq(t, `{"a.md":{"title":"Alpha","x":1}}`, string(mem.Writes[savePath]))

	v, err := oj.Parse(out.Bytes())
	require.NoError(t, err)
	book := &Book{raw: v.(map[string]any)}
	contents := map[string]string{}
	book.Chapters(func(ch *Chapter) { contents[ch.Path()] = ch.Content() })
	require.Equal(t, "intro  rest", contents["a.md"])
	require.Equal(t, "<!-- tags: go, rust -->body", contents["a/nested.md"])

	sections := book.raw["sections"].([]any)
	require.Len(t, sections, 4)
	require.Equal(t, "Separator", sections[1])
	require.Contains(t, book.raw, "__non_exhaustive")
}

func TestPreprocess_TaggerUsesConfiguredSplit(t *testing.T) {
	mem := sink.NewMemorySink()
	var out bytes.Buffer

	err := Preprocess(strings.NewReader(sampleInput), &out, mem, nil, func(ctx *Context) (pipeline.Processor, error) {
		cfg, err := config.ResolveTagger(ctx.PreprocessorTable(config.TaggerName), ctx.SourceRoot())
		if err != nil {
			return nil, err
		}
		return pipeline.NewTagger(cfg), nil
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"a/nested.md":["go","rust"]}`,
		string(mem.Writes[filepath.Join("/work/book", "pages", "post2tags.json")]))
	require.NotContains(t, out.String(), "<!-- tags")
}

func TestPreprocess_FactoryErrorStopsBeforeOutput(t *testing.T) {
	var out bytes.Buffer
	err := Preprocess(strings.NewReader(sampleInput), &out, sink.NewMemorySink(), nil, func(*Context) (pipeline.Processor, error) {
		return nil, ferrors.ConfigError("bad").Build()
	})
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.Zero(t, out.Len())
}

func TestSupports(t *testing.T) {
	require.True(t, Supports("html"))
	require.True(t, Supports("epub"))
}

package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
)

func testGlobal() *Global {
	return &Global{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), RunID: "test-run"}
}

func writeBook(t *testing.T, bookToml string, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	if bookToml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "book.toml"), []byte(bookToml), 0o600))
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return root
}

func TestScan_WritesIndexesAndDrainedCopies(t *testing.T) {
	root := writeBook(t, "[book]\nsrc = \"src\"\n\n[preprocessor.tagger]\nsplit = \",\"\n", map[string]string{
		"src/SUMMARY.md": "# Summary\n",
		"src/a.md":       "# Alpha\nintro <!-- collect {\"x\":1} --> rest\n",
		"src/b.md":       "# Beta\n<!-- tags: go, rust -->\n",
	})
	out := filepath.Join(t.TempDir(), "drained")
	metricsFile := filepath.Join(t.TempDir(), "mdcollect.prom")
	var tree bytes.Buffer

	cmd := &ScanCmd{Dir: root, Out: out, Tree: true, stdout: &tree}
	res, err := cmd.scanOnce(testGlobal(), &CLI{MetricsFile: metricsFile})
	require.NoError(t, err)

	collected, err := os.ReadFile(filepath.Join(root, "src", "collect.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"a.md":{"title":"Alpha","x":1}}`, string(collected))

	post2tags, err := os.ReadFile(filepath.Join(root, "src", "post2tags.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"b.md":["go","rust"]}`, string(post2tags))

	drained, err := os.ReadFile(filepath.Join(out, "a.md"))
	require.NoError(t, err)
	require.Equal(t, "# Alpha\nintro  rest\n", string(drained))

	require.Contains(t, tree.String(), "Beta [b.md]")
	require.Contains(t, tree.String(), "collected")
	require.Equal(t, 2, res.reports["collector"].Documents)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), "mdcollect_documents_total")

	require.True(t, res.isOutput(filepath.Join(root, "src", "collect.json")))
	require.True(t, res.isOutput(filepath.Join(out, "a.md")))
	require.False(t, res.isOutput(filepath.Join(root, "src", "a.md")))
}

func TestScan_PlainDirectoryAndToggles(t *testing.T) {
	root := writeBook(t, "", map[string]string{
		"note.md": "<!-- collect {\"k\":\"v\"} -->\n<!-- tags: x -->\n",
	})

	cmd := &ScanCmd{Dir: root, NoTagger: true}
	_, err := cmd.scanOnce(testGlobal(), &CLI{})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "collect.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "post2tags.json"))
	require.True(t, os.IsNotExist(err))
}

func TestScan_EnvOverrideDisablesTitle(t *testing.T) {
	root := writeBook(t, "", map[string]string{"n.md": "# N\n<!-- collect {\"k\":1} -->"})
	t.Setenv("MDCOLLECT_PREPROCESSOR__COLLECTOR__ADD_TITLE", "false")

	_, err := (&ScanCmd{Dir: root, NoTagger: true}).scanOnce(testGlobal(), &CLI{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "collect.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"n.md":{"k":1}}`, string(data))
}

func TestScan_BadConfigIsConfigError(t *testing.T) {
	root := writeBook(t, "[preprocessor.collector]\nadd_title = \"yes\"\n", map[string]string{"src/a.md": "x"})

	_, err := (&ScanCmd{Dir: root}).scanOnce(testGlobal(), &CLI{})
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.Equal(t, 7, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

const bookInput = `[{"root": "%ROOT%", "renderer": "html", "mdbook_version": "0.4.40",
  "config": {"book": {"src": "src"}, "preprocessor": {"tagger": {"split": ";"}}}},
 {"sections": [{"Chapter": {"name": "Post1", "content": "<!-- tags: go; rust; -->",
   "number": [1], "path": "p1.md", "source_path": "p1.md", "parent_names": [], "sub_items": []}}]}]`

func TestRunPreprocessor_Tagger(t *testing.T) {
	root := t.TempDir()
	in := strings.NewReader(strings.ReplaceAll(bookInput, "%ROOT%", filepath.ToSlash(root)))
	var out bytes.Buffer

	require.NoError(t, runPreprocessor(testGlobal(), &CLI{}, in, &out, newTagger))
	require.NotContains(t, out.String(), "<!-- tags")

	t2p, err := os.ReadFile(filepath.Join(root, "src", "tag2posts.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"go":[["Post1","p1.md"]],"rust":[["Post1","p1.md"]]}`, string(t2p))
}

func TestRunPreprocessor_CollectorWithoutMarkersWritesNothing(t *testing.T) {
	root := t.TempDir()
	in := strings.NewReader(strings.ReplaceAll(bookInput, "%ROOT%", filepath.ToSlash(root)))
	var out bytes.Buffer

	require.NoError(t, runPreprocessor(testGlobal(), &CLI{}, in, &out, newCollector))
	book, err := oj.Parse(out.Bytes())
	require.NoError(t, err)
	chapter := jp.MustParseString("$.sections[0].Chapter.content").First(book)
	require.Equal(t, "<!-- tags: go; rust; -->", chapter)
	_, err = os.Stat(filepath.Join(root, "src", "collect.json"))
	require.True(t, os.IsNotExist(err))
}

func TestRunPreprocessor_MalformedInput(t *testing.T) {
	err := runPreprocessor(testGlobal(), &CLI{}, strings.NewReader("[]"), io.Discard, newCollector)
	require.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestSupportsCmd(t *testing.T) {
	require.NoError(t, (&SupportsCmd{Renderer: "html"}).Run(testGlobal(), &CLI{}))
}

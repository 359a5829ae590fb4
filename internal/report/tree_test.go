package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdcollect/internal/aggregate"
)

func TestTagTree(t *testing.T) {
	idx := aggregate.NewTagIndex()
	idx.Add("p1.md", "Post1", []string{"rust", "go"})
	idx.Add("p2.md", "Post2", []string{"go"})

	out := TagTree(idx)
	require.True(t, strings.HasPrefix(out, "tags (2)"))
	require.Contains(t, out, "go (2)")
	require.Contains(t, out, "rust (1)")
	require.Contains(t, out, "Post1 [p1.md]")
	require.Contains(t, out, "Post2 [p2.md]")
	require.Less(t, strings.Index(out, "go (2)"), strings.Index(out, "rust (1)"))
}

func TestTagTree_Empty(t *testing.T) {
	out := TagTree(aggregate.NewTagIndex())
	require.True(t, strings.HasPrefix(out, "tags (0)"))
}

func TestPathTree(t *testing.T) {
	out := PathTree("collected", []string{"a.md", "guide/intro.md", "guide/deep/x.md"})
	require.True(t, strings.HasPrefix(out, "collected"))
	require.Equal(t, 1, strings.Count(out, "guide"))
	for _, want := range []string{"a.md", "intro.md", "deep", "x.md"} {
		require.Contains(t, out, want)
	}
}

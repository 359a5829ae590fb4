package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdcollect/internal/payload"
)

func TestFlat_AddInjectsTitle(t *testing.T) {
	f := NewFlat()
	f.Add("a.md", "Alpha", payload.Map{"x": int64(1)}, true)

	got, ok := f.Get("a.md")
	require.True(t, ok)
	require.Equal(t, payload.Map{"x": int64(1), "title": "Alpha"}, got)
	require.Equal(t, 1, f.Len())
}

func TestFlat_TitleInjectionOverridesPayloadTitle(t *testing.T) {
	f := NewFlat()
	f.Add("a.md", "Alpha", payload.Map{"title": "from payload"}, true)

	got, _ := f.Get("a.md")
	require.Equal(t, "Alpha", got[TitleKey])
}

func TestFlat_WithoutTitleKeepsPayload(t *testing.T) {
	f := NewFlat()
	f.Add("a.md", "Alpha", payload.Map{"title": "from payload"}, false)
	f.Add("b.md", "Beta", nil, false)

	a, _ := f.Get("a.md")
	require.Equal(t, "from payload", a[TitleKey])
	b, _ := f.Get("b.md")
	require.Empty(t, b)
}

func TestFlat_PathsAndExport(t *testing.T) {
	f := NewFlat()
	f.Add("z.md", "Z", payload.Map{"n": int64(1)}, false)
	f.Add("a.md", "A", payload.Map{"n": int64(2)}, false)

	require.Equal(t, []string{"z.md", "a.md"}, f.Paths())
	require.Equal(t, map[string]any{
		"z.md": map[string]any{"n": int64(1)},
		"a.md": map[string]any{"n": int64(2)},
	}, f.Export())
}

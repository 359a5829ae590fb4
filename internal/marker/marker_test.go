package marker

import (
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
)

func TestCompile_InvalidTokenFailsWithConfigError(t *testing.T) {
	_, err := Compile("(", GrammarPayload)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.Contains(t, err.Error(), `marker "(" could not be compiled`)
}

func TestCompile_ExpressionPerGrammar(t *testing.T) {
	require.Equal(t, `<!-- ?collect((?s).*?)-->`, MustCompile("collect", GrammarPayload).String())
	require.Equal(t, `<!-- ?tags:?((?s).*?)-->`, MustCompile("tags", GrammarTags).String())
}

func TestFindFirst(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		grammar Grammar
		text    string
		found   bool
		start   int
		end     int
		literal string
	}{
		{
			name: "payload marker inline", token: "collect", grammar: GrammarPayload,
			text:  `intro <!-- collect {"x":1} --> rest`,
			found: true, start: 6, end: 30, literal: ` {"x":1} `,
		},
		{
			name: "no space after comment opener", token: "collect", grammar: GrammarPayload,
			text:  `<!--collect {} -->`,
			found: true, start: 0, end: 18, literal: ` {} `,
		},
		{
			name: "tags marker with colon", token: "tags", grammar: GrammarTags,
			text:  `<!-- tags: go; rust; -->`,
			found: true, start: 0, end: 24, literal: ` go; rust; `,
		},
		{
			name: "tags marker without colon", token: "tags", grammar: GrammarTags,
			text:  `<!-- tags go -->`,
			found: true, start: 0, end: 16, literal: ` go `,
		},
		{
			name: "literal spans lines", token: "collect", grammar: GrammarPayload,
			text:  "a\n<!-- collect\n{\n  \"k\": 1\n}\n-->\nb",
			found: true, start: 2, end: 31, literal: "\n{\n  \"k\": 1\n}\n",
		},
		{
			name: "first closing delimiter ends the capture", token: "collect", grammar: GrammarPayload,
			text:  `<!-- collect a --> mid <!-- collect b -->`,
			found: true, start: 0, end: 18, literal: ` a `,
		},
		{
			name: "token is case sensitive", token: "collect", grammar: GrammarPayload,
			text: `<!-- COLLECT {} -->`,
		},
		{
			name: "unterminated comment", token: "collect", grammar: GrammarPayload,
			text: `<!-- collect {"x":1}`,
		},
		{
			name: "plain prose", token: "tags", grammar: GrammarTags,
			text: "no marker here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustCompile(tt.token, tt.grammar)
			span, ok := p.FindFirst(tt.text)
			require.Equal(t, tt.found, ok)
			if !tt.found {
				require.Equal(t, Span{}, span)
				return
			}
			require.Equal(t, tt.start, span.Start)
			require.Equal(t, tt.end, span.End)
			require.Equal(t, tt.literal, span.Literal)
			require.Equal(t, tt.text[span.Start:span.End], tt.text[tt.start:tt.end])
		})
	}
}

func TestFindFirst_DoesNotMutateInput(t *testing.T) {
	text := `x <!-- collect {} --> y`
	before := text
	_, ok := MustCompile("collect", GrammarPayload).FindFirst(text)
	require.True(t, ok)
	require.Equal(t, before, text)
}

func TestDrain_RemovesOnlyTheSpan(t *testing.T) {
	p := MustCompile("collect", GrammarPayload)
	text := `intro <!-- collect {"x":1} --> rest`

	span, ok := p.FindFirst(text)
	require.True(t, ok)
	require.Equal(t, "intro  rest", Drain(text, span))
}

func TestDrain_SecondPassFindsNothing(t *testing.T) {
	p := MustCompile("tags", GrammarTags)
	text := "# Title\n\n<!-- tags: a; b -->\nbody\n"

	span, ok := p.FindFirst(text)
	require.True(t, ok)
	once := Drain(text, span)

	_, again := p.FindFirst(once)
	require.False(t, again)
	require.Equal(t, "# Title\n\n\nbody\n", once)
}

func TestDrain_OutOfRangeSpanIsIgnored(t *testing.T) {
	require.Equal(t, "abc", Drain("abc", Span{Start: 2, End: 10}))
	require.Equal(t, "abc", Drain("abc", Span{Start: 2, End: 1}))
}

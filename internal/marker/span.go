package marker

// Span is the first marker occurrence in a document: the half-open byte range
// [Start, End) of the whole comment plus the raw captured literal.
type Span struct {
	Start   int
	End     int
	Literal string
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// FindFirst returns the first marker in text. It reports false when the text
// carries no marker, which is the common case and not an error.
func (p *Pattern) FindFirst(text string) (Span, bool) {
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil || loc[2] < 0 {
		return Span{}, false
	}
	return Span{
		Start:   loc[0],
		End:     loc[1],
		Literal: text[loc[2]:loc[3]],
	}, true
}

// Drain returns text with the span removed. Bytes outside the span are
// untouched. A span that does not fit text is ignored.
func Drain(text string, s Span) string {
	if s.Start < 0 || s.End > len(text) || s.Start > s.End {
		return text
	}
	return text[:s.Start] + text[s.End:]
}

// Package marker locates and removes inline HTML-comment markers such as
// `<!-- collect {"x": 1} -->` or `<!-- tags: go; rust -->` in document text.
//
// A Pattern is compiled once per run from a configurable token and reused for
// every document. Only the first occurrence in a document is ever reported.
package marker

import (
	"fmt"
	"regexp"

	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
)

// Grammar selects the delimiter grammar wrapped around the marker token.
type Grammar int

const (
	// GrammarPayload matches `<!-- TOKEN literal -->`.
	GrammarPayload Grammar = iota
	// GrammarTags matches `<!-- TOKEN: literal -->`; the colon is optional.
	GrammarTags
)

func (g Grammar) String() string {
	switch g {
	case GrammarPayload:
		return "payload"
	case GrammarTags:
		return "tags"
	default:
		return fmt.Sprintf("grammar(%d)", int(g))
	}
}

// expression returns the regular expression source for token under g.
// The capture is non-greedy and dot-all, so the first `-->` ends it.
func (g Grammar) expression(token string) (string, error) {
	switch g {
	case GrammarPayload:
		return fmt.Sprintf("<!-- ?%s((?s).*?)-->", token), nil
	case GrammarTags:
		return fmt.Sprintf("<!-- ?%s:?((?s).*?)-->", token), nil
	default:
		return "", fmt.Errorf("unknown marker grammar %d", int(g))
	}
}

// Pattern is an immutable compiled marker matcher.
type Pattern struct {
	token   string
	grammar Grammar
	re      *regexp.Regexp
}

// Compile builds the matcher for token. The token is spliced into the
// expression verbatim, so a token that is not valid regular expression syntax
// fails here rather than on the first document.
func Compile(token string, g Grammar) (*Pattern, error) {
	src, err := g.expression(token)
	if err != nil {
		return nil, ferrors.InternalError("invalid marker grammar").WithCause(err).Build()
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, ferrors.ConfigError(fmt.Sprintf("marker %q could not be compiled into a pattern", token)).
			WithContext("key", "marker").
			WithContext("marker", token).
			WithCause(err).
			Build()
	}
	return &Pattern{token: token, grammar: g, re: re}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level defaults with known-good tokens.
func MustCompile(token string, g Grammar) *Pattern {
	p, err := Compile(token, g)
	if err != nil {
		panic(err)
	}
	return p
}

// Token returns the marker token the pattern was compiled from.
func (p *Pattern) Token() string { return p.token }

// Grammar returns the delimiter grammar of the pattern.
func (p *Pattern) Grammar() Grammar { return p.grammar }

// String returns the regular expression source.
func (p *Pattern) String() string { return p.re.String() }

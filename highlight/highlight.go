// Package highlight renders document lines and edit scripts as
// syntax-highlighted HTML fragments for the report and serve views.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"docdiff.io/align"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordConstant:   "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.LiteralNumber:     "hl-n",
	chroma.Comment:           "hl-ii",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
	chroma.Punctuation:       "",
}

type Option func(*highlighter)

func Lang(lang string) Option {
	return func(hl *highlighter) {
		hl.lexer = lexers.Get(lang)
	}
}

func LangFromFilename(filename string) Option {
	return func(hl *highlighter) {
		hl.lexer = lexers.Match(filename)
	}
}

// Line is a single highlighted line with its 1-based number.
type Line struct {
	LineNo  int
	Content template.HTML
}

// Highlight highlights every line of in.
func Highlight(in string, opts ...Option) ([]Line, error) {
	hl := fromOptions(opts)
	lines, err := hl.lines(in)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %v", err)
	}

	ret := make([]Line, 0, len(lines))
	for i, line := range lines {
		ret = append(ret, Line{i + 1, template.HTML(hl.highlight(line))})
	}
	return ret, nil
}

// Edit is one highlighted unit of an edit script. OldNo and NewNo are the
// 1-based line numbers on each side, or -1 where the unit has no line on
// that side.
type Edit struct {
	Op      align.Op
	OldNo   int
	NewNo   int
	Content template.HTML
}

func (ed Edit) IsUnchanged() bool { return ed.Op == align.Unchanged }
func (ed Edit) IsAdded() bool     { return ed.Op == align.Added || ed.Op == align.ModifiedNew }
func (ed Edit) IsRemoved() bool   { return ed.Op == align.Removed || ed.Op == align.ModifiedOld }

// Script highlights every unit of script. Line numbers come straight from
// the units' own-side positions.
func Script(script align.Script, opts ...Option) ([]Edit, error) {
	hl := fromOptions(opts)

	ret := make([]Edit, 0, len(script))
	for _, u := range script {
		tokens, err := hl.tokens(u.Line)
		if err != nil {
			return nil, err
		}
		ln := template.HTML(hl.highlight(tokens))
		switch u.Op {
		case align.Unchanged:
			ret = append(ret, Edit{u.Op, u.Pos, u.Pos, ln})
		case align.Removed, align.ModifiedOld:
			ret = append(ret, Edit{u.Op, u.Pos, -1, ln})
		case align.Added, align.ModifiedNew:
			ret = append(ret, Edit{u.Op, -1, u.Pos, ln})
		}
	}
	return ret, nil
}

type highlighter struct {
	lexer chroma.Lexer
}

func fromOptions(opts []Option) *highlighter {
	hl := &highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

func (hl *highlighter) highlight(line []chroma.Token) string {
	var sb strings.Builder
	for _, token := range line {
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(token.Value))
		if class != "" {
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

func (hl *highlighter) tokens(in string) ([]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, in)
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	return it.Tokens(), nil
}

func (hl *highlighter) lines(in string) ([][]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, in)
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	return chroma.SplitTokensIntoLines(it.Tokens()), nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}

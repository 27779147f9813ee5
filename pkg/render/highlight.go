//go:build !nohighlight

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Highlighter colours source text by token. Highlight reports false when it
// cannot handle format, and callers fall back to another rendering.
type Highlighter interface {
	Highlight(format, source string) ([]Line, bool)
}

// DefaultHighlighter returns the built-in chroma highlighter.
func DefaultHighlighter() Highlighter { return chromaHighlighter{} }

// HighlightAvailable reports whether this build includes highlighting.
func HighlightAvailable() bool { return true }

type chromaHighlighter struct{}

func (chromaHighlighter) Highlight(format, source string) ([]Line, bool) {
	lexer := lexers.Get(format)
	if lexer == nil {
		return nil, false
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, Sanitize(source))
	if err != nil {
		return nil, false
	}

	lines := []Line{{}}
	for _, tok := range it.Tokens() {
		role := tokenRole(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, Line{})
			}
			last := len(lines) - 1
			lines[last] = lines[last].seg(role, part)
		}
	}
	for len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines, true
}

func tokenRole(t chroma.TokenType) style.Role {
	switch {
	case t.InCategory(chroma.Comment):
		return style.RoleMuted
	case t.InCategory(chroma.Keyword):
		return style.RolePrimary
	case t == chroma.NameTag, t == chroma.NameAttribute, t == chroma.NameBuiltin:
		return style.RoleKey
	case t.InSubCategory(chroma.LiteralString):
		return style.RoleSuccess
	case t.InSubCategory(chroma.LiteralNumber):
		return style.RoleAccent
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return style.RoleBorder
	case t == chroma.Error:
		return style.RoleError
	case t.InCategory(chroma.Literal):
		return style.RoleValue
	default:
		return style.RoleText
	}
}

package render

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/sidechan/pkg/style"
	"github.com/charmbracelet/x/ansi"
)

// tabStop is the column multiple tabs expand to.
const tabStop = 4

// Sanitize makes s safe to lay out: escape sequences and control characters
// are removed and tabs are expanded to spaces. Newlines are kept.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
			col = 0
		case r == '\t':
			n := tabStop - col%tabStop
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
			col += cells.RuneWidth(r)
		}
	}
	return b.String()
}

// Text is a run of role-tagged text. Long lines wrap at word boundaries
// unless NoWrap is set, in which case they are truncated.
type Text struct {
	Spans  []style.Span
	NoWrap bool
}

// NewText returns text drawn entirely with role.
func NewText(role style.Role, content string) *Text {
	return &Text{Spans: []style.Span{{Role: role, Text: content}}}
}

// NewMarkup returns text built from role markup such as
// "[success]ok[/success] ready".
func NewMarkup(src string) *Text {
	return &Text{Spans: style.ParseMarkup(src)}
}

// NewSpans returns text made of the given spans.
func NewSpans(spans ...style.Span) *Text {
	return &Text{Spans: append([]style.Span(nil), spans...)}
}

// Layout implements Renderable.
func (t *Text) Layout(ctx Context) []Line {
	var lines []Line
	for _, para := range splitParagraphs(t.Spans) {
		if t.NoWrap {
			lines = append(lines, truncateLine(para, ctx.Width, ctx.Glyphs().Ellipsis))
			continue
		}
		lines = append(lines, wrap(para, ctx.Width)...)
	}
	if len(lines) == 0 {
		lines = []Line{{}}
	}
	return lines
}

// splitParagraphs sanitizes spans and splits them into one Line per
// newline-separated paragraph.
func splitParagraphs(spans []style.Span) []Line {
	paras := []Line{{}}
	for _, sp := range spans {
		parts := strings.Split(Sanitize(sp.Text), "\n")
		for i, part := range parts {
			if i > 0 {
				paras = append(paras, Line{})
			}
			last := len(paras) - 1
			paras[last] = paras[last].seg(sp.Role, part)
		}
	}
	return paras
}

type token struct {
	role  style.Role
	text  string
	space bool
}

func tokenize(l Line) []token {
	var toks []token
	for _, s := range l {
		start := 0
		prev := false
		for i, r := range s.Text {
			sp := r == ' '
			if i > start && sp != prev {
				toks = append(toks, token{role: s.Role, text: s.Text[start:i], space: prev})
				start = i
			}
			prev = sp
		}
		if start < len(s.Text) {
			toks = append(toks, token{role: s.Role, text: s.Text[start:], space: prev})
		}
	}
	return toks
}

// wrap breaks one paragraph into lines of at most width cells. Words wider
// than the line are split by cell. Spaces at a break are dropped.
func wrap(para Line, width int) []Line {
	if width < 1 {
		width = 1
	}
	if para.Width() <= width {
		return []Line{para}
	}

	var (
		lines   []Line
		cur     Line
		curW    int
		wrapped bool
	)
	flush := func() {
		lines = append(lines, trimTrailingSpace(cur))
		cur, curW, wrapped = Line{}, 0, true
	}

	for _, tok := range tokenize(para) {
		tw := cells.StringWidth(tok.text)
		if tok.space {
			if curW == 0 && wrapped {
				continue
			}
			if curW+tw > width {
				flush()
				continue
			}
			cur = cur.seg(tok.role, tok.text)
			curW += tw
			continue
		}
		if curW+tw > width && curW > 0 {
			flush()
		}
		text := tok.text
		for cells.StringWidth(text) > width-curW {
			head := cells.Truncate(text, width-curW, "")
			if head == "" {
				// a single character wider than the line
				head = string([]rune(text)[:1])
			}
			cur = cur.seg(tok.role, head)
			text = text[len(head):]
			flush()
		}
		if text != "" {
			cur = cur.seg(tok.role, text)
			curW += cells.StringWidth(text)
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, trimTrailingSpace(cur))
	}
	return lines
}

func trimTrailingSpace(l Line) Line {
	for len(l) > 0 {
		last := &l[len(l)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		l = l[:len(l)-1]
	}
	return l
}

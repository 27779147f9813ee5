package style

import (
	"regexp"
	"strings"
)

// Span is a run of text sharing one role.
type Span struct {
	Role Role
	Text string
}

// tagPattern matches [role], [/role] and the short closer [/].
var tagPattern = regexp.MustCompile(`\[(/?)([a-z]*)\]`)

// ParseMarkup splits markup such as "[success]✓[/success] ready" into spans.
// Tags nest; [/] closes the innermost tag. Brackets that do not name a known
// role are kept as literal text, so arbitrary user strings survive intact.
func ParseMarkup(src string) []Span {
	var (
		spans []Span
		stack []Role
		text  strings.Builder
	)
	current := func() Role {
		if len(stack) == 0 {
			return RoleNone
		}
		return stack[len(stack)-1]
	}
	flush := func() {
		if text.Len() == 0 {
			return
		}
		spans = append(spans, Span{Role: current(), Text: text.String()})
		text.Reset()
	}

	last := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(src, -1) {
		closing := m[3] > m[2]
		name := src[m[4]:m[5]]
		role, known := ParseRole(name)

		switch {
		case closing && name == "" && len(stack) > 0:
		case closing && known && len(stack) > 0 && current() == role:
		case !closing && known:
		default:
			continue
		}

		text.WriteString(src[last:m[0]])
		flush()
		if closing {
			stack = stack[:len(stack)-1]
		} else {
			stack = append(stack, role)
		}
		last = m[1]
	}
	text.WriteString(src[last:])
	flush()
	return spans
}

// StripMarkup returns the text of src without role tags.
func StripMarkup(src string) string {
	var b strings.Builder
	for _, s := range ParseMarkup(src) {
		b.WriteString(s.Text)
	}
	return b.String()
}

package render

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/sidechan/pkg/style"
)

// Table lays out a header line followed by one delimiter-joined line per
// row. Rows are clamped to the column count: missing cells are blank and
// extra cells are dropped. When the table is wider than the context,
// the widest column gives up a cell until it fits.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string

	// MaxRows limits the rows shown; the rest are summarised on one line.
	// Zero shows every row.
	MaxRows int

	// Markup enables role tags inside cells.
	Markup bool
}

// NewTable returns a table with the given column headers.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// AddRow appends a row. The cells are copied.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, append([]string(nil), cells...))
	return t
}

// Layout implements Renderable.
func (t *Table) Layout(ctx Context) []Line {
	g := ctx.Glyphs()

	n := len(t.Columns)
	if n == 0 {
		for _, r := range t.Rows {
			if len(r) > n {
				n = len(r)
			}
		}
	}

	shown := t.Rows
	hidden := 0
	if t.MaxRows > 0 && len(shown) > t.MaxRows {
		hidden = len(shown) - t.MaxRows
		shown = shown[:t.MaxRows]
	}

	header := t.cellLines(t.Columns, n, style.RoleHeader)
	rows := make([][]Line, len(shown))
	for i, r := range shown {
		rows[i] = t.cellLines(r, n, style.RoleText)
	}

	widths := make([]int, n)
	for _, cellsOf := range append([][]Line{header}, rows...) {
		for c, cell := range cellsOf {
			if w := cell.Width(); w > widths[c] {
				widths[c] = w
			}
		}
	}
	shrink(widths, ctx.Width-StringWidth(g.Delimiter)*(n-1))

	var lines []Line
	if title := firstLine(t.Title); title != "" {
		lines = append(lines, Line{}.clip(style.RoleHeader, title, ctx.Width, g.Ellipsis))
	}
	lines = append(lines, joinCells(header, widths, g))
	for _, r := range rows {
		lines = append(lines, joinCells(r, widths, g))
	}
	if hidden > 0 {
		more := fmt.Sprintf("%s %d more rows", g.Ellipsis, hidden)
		lines = append(lines, Line{}.seg(style.RoleMuted, truncate(more, ctx.Width, g.Ellipsis)))
	}
	return lines
}

// cellLines turns one row into exactly n single-line cells.
func (t *Table) cellLines(row []string, n int, role style.Role) []Line {
	out := make([]Line, n)
	for i := 0; i < n && i < len(row); i++ {
		text := strings.ReplaceAll(Sanitize(row[i]), "\n", " ")
		if t.Markup {
			for _, sp := range style.ParseMarkup(text) {
				r := sp.Role
				if r == style.RoleNone {
					r = role
				}
				out[i] = out[i].seg(r, sp.Text)
			}
			continue
		}
		out[i] = out[i].seg(role, text)
	}
	return out
}

// shrink narrows the widest column, one cell at a time, until the widths
// sum to at most budget or every column is one cell wide.
func shrink(widths []int, budget int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := -1
		for i, w := range widths {
			if w > 1 && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			return
		}
		widths[widest]--
		total--
	}
}

func joinCells(row []Line, widths []int, g style.Glyphs) Line {
	var l Line
	for i, cell := range row {
		if i > 0 {
			l = l.seg(style.RoleBorder, g.Delimiter)
		}
		cell = truncateLine(cell, widths[i], g.Ellipsis)
		if i < len(row)-1 {
			cell = padLine(cell, widths[i])
		}
		for _, s := range cell {
			l = l.add(s)
		}
	}
	return l
}

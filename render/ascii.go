package render

import (
	"strings"
	"unicode/utf8"

	"github.com/reoring/skema"
)

// ASCII renders records as a bordered table:
//
//	+--------------------------+
//	| path    | code           |
//	+--------------------------+
//	| foo     | outOfRange     |
//	+--------------------------+
//
// Each column is as wide as its longest cell or header.
func ASCII(records []skema.Record, fields []string, opts Options) (string, error) {
	header, canon, err := resolveFields(fields)
	if err != nil {
		return "", err
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	rows := make([][]string, len(records))
	for r, rec := range records {
		row := make([]string, len(canon))
		for i, f := range canon {
			row[i] = text(rec, f)
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
		rows[r] = row
	}

	total := 4 + widths[0]
	for _, w := range widths[1:] {
		total += w + 3
	}
	border := "+" + strings.Repeat("-", total-2) + "+\n"

	b := &strings.Builder{}
	if !opts.SkipHeader {
		b.WriteString(border)
		writeRow(b, header, widths)
	}
	b.WriteString(border)
	for _, row := range rows {
		writeRow(b, row, widths)
	}
	b.WriteString(border)
	return b.String(), nil
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("| ")
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(c)
		b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c)))
	}
	b.WriteString(" |\n")
}

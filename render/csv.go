package render

import (
	"strings"

	"github.com/reoring/skema"
)

// CSV renders records with a header row of field names. Every cell is
// double-quoted and embedded quotes are backslash-escaped.
func CSV(records []skema.Record, fields []string) (string, error) {
	header, canon, err := resolveFields(fields)
	if err != nil {
		return "", err
	}
	b := &strings.Builder{}
	writeCSVRow(b, header)
	row := make([]string, len(canon))
	for _, rec := range records {
		for i, f := range canon {
			row[i] = text(rec, f)
		}
		writeCSVRow(b, row)
	}
	return b.String(), nil
}

var csvQuote = strings.NewReplacer(`"`, `\"`)

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		csvQuote.WriteString(b, c)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

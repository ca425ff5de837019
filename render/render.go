// Package render turns the flat records produced by skema.Describe into
// human and machine readable documents. Renderers only see the records and
// the caller's field list; they know nothing about the schema tree.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/skema"
)

// Field names accepted by every renderer.
const (
	FieldPath             = "path"
	FieldCode             = "code"
	FieldMessage          = "message"
	FieldFailureCondition = "failure_condition"
	FieldRule             = "rule"
)

// DefaultFields is used when the caller passes no fields.
var DefaultFields = []string{FieldPath, FieldCode, FieldMessage, FieldFailureCondition}

// Format names understood by Render.
const (
	FormatASCII   = "ascii"
	FormatCSV     = "csv"
	FormatRecords = "records"
	FormatJSON    = "json"
)

var (
	ErrUnknownField  = errors.New("render: unknown field")
	ErrUnknownFormat = errors.New("render: unknown format")
)

// Options tunes the tabular renderers.
type Options struct {
	// SkipHeader omits the header row (ASCII only).
	SkipHeader bool
}

// Render dispatches to the renderer named by format. "js" is accepted as an
// alias of "records". Records output is rendered as JSON.
func Render(format string, records []skema.Record, fields []string, opts Options) (string, error) {
	switch strings.ToLower(format) {
	case FormatASCII:
		return ASCII(records, fields, opts)
	case FormatCSV:
		return CSV(records, fields)
	case FormatJSON, FormatRecords, "js":
		out, err := JSON(records, fields)
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// resolveFields validates fields and maps aliases to canonical names. The
// returned slice is parallel to fields.
func resolveFields(fields []string) ([]string, []string, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	canon := make([]string, len(fields))
	for i, f := range fields {
		switch f {
		case FieldPath, FieldCode, FieldMessage, FieldFailureCondition, FieldRule:
			canon[i] = f
		case "failure condition", "failureCondition":
			canon[i] = FieldFailureCondition
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}
	return fields, canon, nil
}

// text renders one cell as plain text; the path is joined with ".".
func text(r skema.Record, field string) string {
	switch field {
	case FieldPath:
		return strings.Join(r.Path, ".")
	case FieldCode:
		return r.Code
	case FieldMessage:
		return r.Message
	case FieldFailureCondition:
		return r.FailureCondition
	case FieldRule:
		return r.Rule
	}
	return ""
}

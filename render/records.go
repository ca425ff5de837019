package render

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/skema"
)

// Records projects each record onto the requested fields. Field names are
// used as keys as given. The path is copied as a []string; an empty code is
// reported as nil.
func Records(records []skema.Record, fields []string) ([]map[string]any, error) {
	names, canon, err := resolveFields(fields)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(records))
	for r, rec := range records {
		m := make(map[string]any, len(canon))
		for i, f := range canon {
			switch f {
			case FieldPath:
				m[names[i]] = append([]string{}, rec.Path...)
			case FieldCode:
				if rec.Code == "" {
					m[names[i]] = nil
				} else {
					m[names[i]] = rec.Code
				}
			default:
				m[names[i]] = text(rec, f)
			}
		}
		out[r] = m
	}
	return out, nil
}

// JSON marshals the Records projection.
func JSON(records []skema.Record, fields []string) ([]byte, error) {
	projected, err := Records(records, fields)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(projected, "", "  ")
}

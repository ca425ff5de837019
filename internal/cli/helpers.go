// Package cli holds the building blocks of the skema command: loading schema
// definitions and instance documents, and writing results.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/logging"
	"github.com/reoring/skema/schemafile"
)

// Stdin is the path naming standard input.
const Stdin = "-"

// ErrNotObject is returned when create or update is asked for a schema whose
// root is not an object.
var ErrNotObject = errors.New("schema root is not an object")

// ErrNoDocuments is returned for an input without any document.
var ErrNoDocuments = errors.New("no documents")

// CreateLogger configures the application logger from the --log-level flag.
func CreateLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// LoadSchema loads the schema definition stored at path.
func LoadSchema(path string, log *slog.Logger) (skema.Type, error) {
	log.Debug("loading schema", "path", path)
	return schemafile.LoadFile(path, schemafile.Options{Logger: log})
}

// LoadObjectSchema loads a schema whose root must be an object.
func LoadObjectSchema(path string, log *slog.Logger) (*skema.ObjectType, error) {
	t, err := LoadSchema(path, log)
	if err != nil {
		return nil, err
	}
	o, ok := t.(*skema.ObjectType)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotObject)
	}
	return o, nil
}

// ReadDocuments reads the instance documents stored at path ("-" for
// standard input). Files ending in .json hold exactly one JSON document
// without duplicate keys;
// anything else is read as a YAML stream, which also accepts JSON.
func ReadDocuments(path string, stdin io.Reader) ([]any, error) {
	var data []byte
	var err error
	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := CheckDuplicateKeys(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []any{v}, nil
	}
	docs, err := schemafile.NewValueReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoDocuments)
	}
	return docs, nil
}

// ReadDocument reads exactly one document from path.
func ReadDocument(path string, stdin io.Reader) (any, error) {
	docs, err := ReadDocuments(path, stdin)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%s: expected one document, found %d", path, len(docs))
	}
	return docs[0], nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// FormatFailure renders a validation failure for the terminal:
// "<pointer>: <message> [code]".
func FormatFailure(err error) string {
	verr, ok := skema.AsValidationError(err)
	if !ok {
		return err.Error()
	}
	msg := verr.Pointer() + ": " + verr.Message()
	if verr.Code != "" {
		msg += " [" + verr.Code + "]"
	}
	return msg
}

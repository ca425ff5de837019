// Package schemafile loads skema type trees from YAML or JSON definitions.
//
// A definition is a mapping with a "type" attribute and the attributes that
// apply to that type:
//
//	type: object
//	properties:
//	  id:   {type: integer, range: {min: 1, code: invalidId}}
//	  name: {type: string, length: {min: 3, max: 100}}
//	  tags: {type: array, items: {type: string}, optional: true}
//	dictionary:
//	  key:   {type: string, pattern: '^x-'}
//	  value: {type: any}
//
// Property order is preserved. Duplicate keys, unknown attributes, unknown
// types and unknown factories are reported with their line and column.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/logging"
)

// Options controls loading.
type Options struct {
	// Factories registers named default factories usable through the
	// defaultFactory attribute. They take precedence over the built-ins.
	Factories map[string]skema.Factory
	// Logger receives debug output; nil disables logging.
	Logger *slog.Logger
}

// Error locates a load failure in the source document.
type Error struct {
	// Line and Col are 1-based; zero when unknown.
	Line, Col int
	// Path names the definition, "properties.foo.items" style ("" at the root).
	Path string
	Err  error
}

func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = "<root>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("schemafile: %d:%d: %s: %v", e.Line, e.Col, where, e.Err)
	}
	return fmt.Sprintf("schemafile: %s: %v", where, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrEmpty is returned for a document without a definition.
var ErrEmpty = errors.New("schemafile: empty document")

// Load reads one definition from r and builds its type tree.
func Load(r io.Reader, opts Options) (skema.Type, error) {
	root, err := NewValueReader(r).nextNode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		var dup *DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &Error{Line: dup.Line, Col: dup.Col, Err: err}
		}
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if root == nil {
		return nil, ErrEmpty
	}
	b := &builder{factories: builtinFactories(), log: opts.Logger}
	for name, f := range opts.Factories {
		b.factories[name] = func() skema.Factory { return f }
	}
	if b.log == nil {
		b.log = logging.NewNop()
	}
	t, err := b.build(root, "")
	if err != nil {
		return nil, err
	}
	if err := t.Err(); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return t, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(data []byte, opts Options) (skema.Type, error) {
	return Load(bytes.NewReader(data), opts)
}

// LoadFile loads the definition stored at path.
func LoadFile(path string, opts Options) (skema.Type, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	defer f.Close()
	t, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DuplicateKeyError reports an object key that occurs twice in a JSON
// document. Path is the JSON pointer of the object holding the key.
type DuplicateKeyError struct {
	Path string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in object at %q", e.Key, e.Path)
}

type frame struct {
	object    bool
	keys      map[string]struct{}
	expectKey bool
	pointer   string
	key       string
	index     int
}

// childPointer returns the pointer of the value that is about to start in f.
func (f *frame) childPointer() string {
	if f.object {
		return f.pointer + "/" + escapePointer(f.key)
	}
	return f.pointer + "/" + strconv.Itoa(f.index)
}

// valueDone advances f past one complete member or element.
func (f *frame) valueDone() {
	if f.object {
		f.expectKey = true
		return
	}
	f.index++
}

// CheckDuplicateKeys scans a JSON document and returns a *DuplicateKeyError
// for the first object key that repeats. Syntax errors are left to the
// decoder that reads the document.
func CheckDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []*frame

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	open := func(object bool) {
		ptr := ""
		if t := top(); t != nil {
			ptr = t.childPointer()
		}
		f := &frame{object: object, pointer: ptr, expectKey: object}
		if object {
			f.keys = map[string]struct{}{}
		}
		stack = append(stack, f)
	}
	closeFrame := func() {
		if len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
		if t := top(); t != nil {
			t.valueDone()
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return nil
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				open(true)
			case '[':
				open(false)
			case '}', ']':
				closeFrame()
			}
		case string:
			t := top()
			if t != nil && t.object && t.expectKey {
				if _, dup := t.keys[v]; dup {
					return &DuplicateKeyError{Path: t.pointer, Key: v}
				}
				t.keys[v] = struct{}{}
				t.key = v
				t.expectKey = false
				continue
			}
			if t != nil {
				t.valueDone()
			}
		default:
			if t := top(); t != nil {
				t.valueDone()
			}
		}
	}
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}

package skema

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object property or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path locates a value inside an instance, outermost segment first.
type Path []Segment

// String renders the path the way messages name values: "pets.cat",
// "items[2].name". The root path renders as the empty string.
func (p Path) String() string {
	b := &strings.Builder{}
	for i, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer ("/" for the root).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1'
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.Key, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Labels returns the path as plain labels, indices rendered as "[i]".
func (p Path) Labels() []string {
	out := make([]string, len(p))
	for i, s := range p {
		if s.IsIndex {
			out[i] = "[" + strconv.Itoa(s.Index) + "]"
		} else {
			out[i] = s.Key
		}
	}
	return out
}

func keySegment(name string) Segment { return Segment{Key: name} }

func indexSegment(i int) Segment { return Segment{Index: i, IsIndex: true} }

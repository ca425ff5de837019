package skema_test

import (
	"testing"

	json "github.com/goccy/go-json"
	jschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reoring/skema"
)

func compiledMovieJSONSchema(tb testing.TB) *jschema.Schema {
	tb.Helper()
	js, err := skema.JSONSchema(movieSchema(tb))
	if err != nil {
		tb.Fatalf("JSONSchema: %v", err)
	}
	raw, err := json.Marshal(js)
	if err != nil {
		tb.Fatalf("marshal: %v", err)
	}
	c, err := jschema.CompileString("mem:///movie.json", string(raw))
	if err != nil {
		tb.Fatalf("compile %s: %v", raw, err)
	}
	return c
}

func decode(tb testing.TB, doc string) any {
	tb.Helper()
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		tb.Fatalf("decode: %v", err)
	}
	return v
}

// The exported JSON Schema must accept and reject the same movie documents
// as the descriptor it was projected from.
func TestJSONSchemaAgreesWithAssert(t *testing.T) {
	s := movieSchema(t)
	c := compiledMovieJSONSchema(t)

	cases := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"complete", string(movieJSON()), true},
		{"rating omitted", `{"id":1,"name":"Alien","year":1979,"actors":[]}`, true},
		{"rating null", `{"id":1,"name":"Alien","year":1979,"rating":null,"actors":[]}`, true},
		{"name null", `{"id":1,"name":null,"year":1979,"actors":[]}`, false},
		{"rating too big", `{"id":1,"name":"Alien","year":1979,"rating":1.5,"actors":[]}`, false},
		{"name missing", `{"id":1,"year":1979,"actors":[]}`, false},
		{"name too short", `{"id":1,"name":"Al","year":1979,"actors":[]}`, false},
		{"year fractional", `{"id":1,"name":"Alien","year":1979.5,"actors":[]}`, false},
		{"unknown key", `{"id":1,"name":"Alien","year":1979,"actors":[],"extra":true}`, false},
		{"bad birthday", `{"id":1,"name":"Alien","year":1979,"actors":[{"id":1,"name":"Tom","birthday":"yesterday"}]}`, false},
		{"actor id zero", `{"id":1,"name":"Alien","year":1979,"actors":[{"id":0,"name":"Tom","birthday":"1933-8-25"}]}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := decode(t, tc.doc)
			skemaErr := s.Assert(v)
			schemaErr := c.Validate(v)
			if (skemaErr == nil) != tc.valid {
				t.Fatalf("Assert: want valid=%v, got %v", tc.valid, skemaErr)
			}
			if (schemaErr == nil) != tc.valid {
				t.Fatalf("JSON Schema: want valid=%v, got %v", tc.valid, schemaErr)
			}
		})
	}
}

// Defaults only apply on Create, so a defaulted property is still required
// by Assert and by the exported schema.
func TestJSONSchemaAgreesWithAssert_DefaultsAndNull(t *testing.T) {
	s := skema.Object().
		Field("kind", skema.String().Default("a")).
		Field("rating", skema.Number().Optional()).
		Field("tags", skema.Array(skema.String().Optional()).Optional())
	js, err := skema.JSONSchema(s)
	if err != nil {
		t.Fatalf("JSONSchema: %v", err)
	}
	raw, err := json.Marshal(js)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	c, err := jschema.CompileString("mem:///defaults.json", string(raw))
	if err != nil {
		t.Fatalf("compile %s: %v", raw, err)
	}

	cases := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"defaulted property omitted", `{}`, false},
		{"defaulted property null", `{"kind":null}`, false},
		{"defaulted property present", `{"kind":"a"}`, true},
		{"optional property null", `{"kind":"a","rating":null}`, true},
		{"optional element null", `{"kind":"a","tags":["x",null]}`, true},
		{"optional property wrong type", `{"kind":"a","rating":"high"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := decode(t, tc.doc)
			skemaErr := s.Assert(v)
			schemaErr := c.Validate(v)
			if (skemaErr == nil) != tc.valid {
				t.Fatalf("Assert: want valid=%v, got %v", tc.valid, skemaErr)
			}
			if (schemaErr == nil) != tc.valid {
				t.Fatalf("JSON Schema: want valid=%v, got %v", tc.valid, schemaErr)
			}
		})
	}
}

func Benchmark_Validate_Movie_JSONSchemaV5(b *testing.B) {
	c := compiledMovieJSONSchema(b)
	v := movieValue(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Validate(v); err != nil {
			b.Fatal(err)
		}
	}
}

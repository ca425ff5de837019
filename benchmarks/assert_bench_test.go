package skema_test

import (
	stdjson "encoding/json"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/skema"
)

// --- Fixtures ---

func movieSchema(tb testing.TB) *skema.ObjectType {
	tb.Helper()
	actor := skema.Object().
		Field("id", skema.Integer().Min(1, "invalidId")).
		Field("name", skema.String().Min(3, "invalidNameLength")).
		Field("birthday", skema.String().Pattern(`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}$`))
	s := skema.Object().
		Field("id", skema.Integer().Min(1, "invalidId")).
		Field("name", skema.String().Length(3, 100, "invalidNameLength")).
		Field("year", skema.Integer().Range(1900, 2100, "invalidYear")).
		Field("rating", skema.Number().Optional().Range(0, 1, "invalidPercentage")).
		Field("actors", skema.Array(actor))
	if err := s.Err(); err != nil {
		tb.Fatalf("schema: %v", err)
	}
	return s
}

func movieJSON() []byte {
	return []byte(`{"id":1,"name":"Alien","year":1979,"rating":0.9,"actors":[` +
		`{"id":1,"name":"Sigourney Weaver","birthday":"1949-10-08"},` +
		`{"id":2,"name":"Tom Skerritt","birthday":"1933-8-25"},` +
		`{"id":3,"name":"John Hurt","birthday":"1940-1-22"}]}`)
}

func movieValue(tb testing.TB) map[string]any {
	tb.Helper()
	var v map[string]any
	if err := json.Unmarshal(movieJSON(), &v); err != nil {
		tb.Fatalf("decode: %v", err)
	}
	return v
}

// --- Assert: compiled validator reused across calls ---

func Benchmark_Assert_Movie(b *testing.B) {
	s := movieSchema(b)
	v := movieValue(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Assert(v); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Assert: schema rebuilt every iteration (no compiled reuse) ---

func Benchmark_Assert_Movie_FreshSchema(b *testing.B) {
	v := movieValue(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := movieSchema(b).Assert(v); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Decode + Assert per JSON driver ---

func Benchmark_DecodeAssert_GoJSON(b *testing.B) {
	s := movieSchema(b)
	data := movieJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
		if err := s.Assert(v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeAssert_EncodingJSON(b *testing.B) {
	s := movieSchema(b)
	data := movieJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v any
		if err := stdjson.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
		if err := s.Assert(v); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Create / Update ---

func Benchmark_Create_Movie(b *testing.B) {
	s := movieSchema(b)
	patch := movieValue(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Create(patch); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Update_Movie(b *testing.B) {
	s := movieSchema(b)
	inst := movieValue(b)
	patch := map[string]any{"rating": 0.5, "name": "Aliens"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Update(inst, patch); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Describe ---

func Benchmark_Describe_Movie(b *testing.B) {
	s := movieSchema(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := skema.Describe(s); err != nil {
			b.Fatal(err)
		}
	}
}

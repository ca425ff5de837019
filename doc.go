package skema

// Package skema provides:
//
// - Composable runtime types (String, Number, Integer, Boolean, Any, Mixed, Array, Object)
// - Validation through a compiled, cached rule chain per type (Assert)
// - Instance creation from defaults and deep-merging updates under full re-validation (Create/Update)
// - A stable error model: ValidationError (message template, value, code, path) and DefinitionError
// - Introspection of the rule tree into flat Records for documentation (Describe)
//
// Design policy:
// - Keep the core in the root package; renderers live under render/, file loading under schemafile/.
// - Builder misuse is recorded on the type and surfaced by Err, Assert, Create, Update and Describe.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  user := skema.Object().
//      Field("name", skema.String().Length(3, 50)).
//      Field("age", skema.Integer().Range(18, 150).Optional()).
//      Field("pets", skema.Object().
//          Field("cat", skema.String().Optional()).
//          Field("dog", skema.String().Optional()))
//
//  bob, err := user.Create(map[string]any{"name": "Bob"})
//  bob, err = user.Update(bob, map[string]any{"pets": map[string]any{"cat": "Flip"}})
//  records, err := skema.Describe(user)
//

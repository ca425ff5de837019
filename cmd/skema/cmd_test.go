package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skema"
	"github.com/reoring/skema/i18n"
	"github.com/reoring/skema/internal/cli"
)

const petsSchema = `
type: object
properties:
  name: {type: string, length: {min: 1}}
  age:  {type: integer, optional: true, range: {min: 0, code: negativeAge}}
  kind: {type: string, values: [cat, dog], default: cat}
  tags: {type: array, items: {type: string}, optional: true}
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--lang", "en", "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDescribeCommand(t *testing.T) {
	schema := fixture(t, "pets.yaml", petsSchema)

	out, _, err := run(t, "", "describe", schema, "--format", "csv", "--fields", "path,code")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, `"path","code"`, lines[0])
	assert.Contains(t, lines, `"age","negativeAge"`)
	assert.Contains(t, lines, `"tags[index]",""`)

	describeFields = nil
	out, _, err = run(t, "", "describe", schema, "--format", "ascii")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "+"))
	assert.Contains(t, out, "failure_condition")

	_, _, err = run(t, "", "describe", schema, "--format", "xml")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	schema := fixture(t, "pets.yaml", petsSchema)
	good := fixture(t, "good.json", `{"name": "Tom", "kind": "cat"}`)
	bad := fixture(t, "bad.yaml", "name: Tom\nkind: cat\nage: -1\n---\nname: ''\nkind: dog\n")

	out, _, err := run(t, "", "validate", schema, good)
	require.NoError(t, err)
	assert.Equal(t, good+": valid\n", out)

	out, _, err = run(t, "", "validate", schema, good, bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, bad+"#0: /age: age must be >= 0 (found: -1) [negativeAge]")
	assert.Contains(t, out, bad+"#1: /name: name string length must be >= 1 (found: 0)")

	_, _, err = run(t, "", "validate", schema, "-")
	assert.ErrorIs(t, err, cli.ErrNoDocuments)
}

func TestCreateAndUpdateCommands(t *testing.T) {
	schema := fixture(t, "pets.yaml", petsSchema)

	out, _, err := run(t, `{"name": "Rex"}`, "create", schema, "-")
	require.NoError(t, err)
	var inst map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &inst))
	assert.Equal(t, "Rex", inst["name"])
	assert.Equal(t, "cat", inst["kind"])

	existing := fixture(t, "rex.json", out)
	out, _, err = run(t, "kind: dog\ntags: [good]\n", "update", schema, existing, "-")
	require.NoError(t, err)
	inst = nil
	require.NoError(t, json.Unmarshal([]byte(out), &inst))
	assert.Equal(t, "dog", inst["kind"])
	assert.Equal(t, []any{"good"}, inst["tags"])

	_, stderr, err := run(t, "kind: bird\n", "update", schema, existing, "-")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, stderr, "/kind: kind must be one of")

	_, _, err = run(t, "", "update", schema, "-", "-")
	assert.Error(t, err)
}

func TestCreateRequiresObjectRoot(t *testing.T) {
	schema := fixture(t, "str.yaml", "type: string\n")
	_, _, err := run(t, "", "create", schema)
	assert.Error(t, err)
}

func TestJSONSchemaCommand(t *testing.T) {
	schema := fixture(t, "pets.yaml", petsSchema)
	out, _, err := run(t, "", "jsonschema", schema)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"name", "kind"}, doc["required"])
}

func TestLanguageFlag(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	schema := fixture(t, "pets.yaml", petsSchema)
	bad := fixture(t, "bad.json", `{"kind": "cat"}`)

	out, _, err := run(t, "", "--lang", "ja", "validate", schema, bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "name は省略できません")

	_, _, err = run(t, "", "--lang", "fr", "version")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "skema version "+skema.Version+"\n", out)
}

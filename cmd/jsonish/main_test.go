package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const personSchema = `
enums:
  - name: Color
    values: [RED, GREEN]
classes:
  - name: Person
    fields:
      - {name: name, type: string}
      - {name: age, type: int}
`

func writeSchema(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(p, []byte(personSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newCoerceCmd()
	switch args[0] {
	case "parse":
		cmd = newParseCmd()
		args = args[1:]
	case "schema":
		cmd = newSchemaCmd()
		args = args[1:]
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCoerceCmd_DefaultTarget(t *testing.T) {
	sch := writeSchema(t)
	out, err := runCmd(t, "Sure! ```json\n{name: Ann, age: \"31\"}\n```", "--schema", sch, "--flags")
	if err != nil {
		t.Fatalf("coerce: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, `{"name":"Ann","age":31}`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Person.age: string_to_number") {
		t.Fatalf("flags not printed:\n%s", out)
	}
}

func TestCoerceCmd_TargetExpression(t *testing.T) {
	sch := writeSchema(t)
	out, err := runCmd(t, "[red, green]", "--schema", sch, "--target", "Color[]")
	if err != nil {
		t.Fatalf("coerce: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != `["RED","GREEN"]` {
		t.Fatalf("got %s", out)
	}
}

func TestCoerceCmd_FailureIsReported(t *testing.T) {
	sch := writeSchema(t)
	out, err := runCmd(t, `{"name": "Ann"}`, "--schema", sch)
	if err == nil {
		t.Fatalf("expected failure, got %s", out)
	}
	if !strings.Contains(out, "Person.age") {
		t.Fatalf("error should name the missing field:\n%s", out)
	}
}

func TestCoerceCmd_PartialsFromEnv(t *testing.T) {
	t.Setenv("JSONISH_ALLOW_PARTIALS", "true")
	sch := writeSchema(t)
	out, err := runCmd(t, `{"name": "Ann", "age": 3`, "--schema", sch)
	if err != nil {
		t.Fatalf("coerce: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, `{"name":"Ann","age":3}`) {
		t.Fatalf("got %s", out)
	}
}

func TestParseCmd(t *testing.T) {
	out, err := runCmd(t, `{"a": [1, true]}`, "parse")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(out, "true") {
		t.Fatalf("got %s", out)
	}
}

func TestSchemaCmd(t *testing.T) {
	sch := writeSchema(t)
	out, err := runCmd(t, "", "schema", "--schema", sch)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out, `"$ref": "#/$defs/Person"`) {
		t.Fatalf("got %s", out)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if cfg.MaxDepth != 256 || cfg.Lang != "en" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

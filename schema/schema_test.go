package schema_test

import (
	"strings"
	"testing"

	"github.com/reoring/jsonish/schema"
)

func TestParseType_Shapes(t *testing.T) {
	reg := schema.NewRegistry().MustAdd(
		&schema.Class{Name: "Item"},
		&schema.Enum{Name: "Color"},
		&schema.Alias{Name: "Tree"},
	)
	cases := []struct {
		src  string
		want string
		kind schema.TypeKind
	}{
		{"int", "int", schema.KindPrimitive},
		{"Item[]", "Item[]", schema.KindList},
		{"map<string, Item[]>?", "map<string, Item[]>?", schema.KindOptional},
		{`"a" | "b" | int`, `"a" | "b" | int`, schema.KindUnion},
		{"(int, string)", "(int, string)", schema.KindTuple},
		{"(Color | null)[]", "(Color | null)[]", schema.KindList},
		{"Tree", "Tree", schema.KindAlias},
		{"-3", "-3", schema.KindLiteral},
		{"true", "true", schema.KindLiteral},
	}
	for _, c := range cases {
		got, err := schema.ParseType(c.src, reg.Lookup)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", c.src, err)
		}
		if got.String() != c.want || got.Kind != c.kind {
			t.Fatalf("ParseType(%q) = %s (kind %d), want %s (kind %d)", c.src, got, got.Kind, c.want, c.kind)
		}
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, src := range []string{"Unknown", "map<string>", "(int", `"open`, "int ]"} {
		if _, err := schema.ParseType(src, nil); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}

func TestRegistry_DuplicateNames(t *testing.T) {
	reg := schema.NewRegistry()
	if err := reg.AddClass(&schema.Class{Name: "A"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := reg.AddEnum(&schema.Enum{Name: "A"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestRegistry_DefaultTarget(t *testing.T) {
	reg := schema.NewRegistry().MustAdd(&schema.Enum{Name: "E"}, &schema.Class{Name: "C"})
	got, err := reg.DefaultTarget()
	if err != nil || got.Kind != schema.KindClass || got.Name != "C" {
		t.Fatalf("expected first class, got %v %v", got, err)
	}
	onlyEnum := schema.NewRegistry().MustAdd(&schema.Enum{Name: "E"})
	got, err = onlyEnum.DefaultTarget()
	if err != nil || got.Kind != schema.KindEnum {
		t.Fatalf("expected enum fallback, got %v %v", got, err)
	}
	if _, err := schema.NewRegistry().DefaultTarget(); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestIsOptional(t *testing.T) {
	if !schema.OptionalOf(schema.Int()).IsOptional() {
		t.Fatalf("int? should be optional")
	}
	if !schema.UnionOf(schema.Int(), schema.Null()).IsOptional() {
		t.Fatalf("int | null should be optional")
	}
	if schema.ListOf(schema.Int()).IsOptional() {
		t.Fatalf("int[] should not be optional")
	}
}

const doc = `
enums:
  - name: Color
    values:
      - name: RED
        alias: r
      - GREEN
classes:
  - name: Person
    fields:
      - name: name
        type: string
      - name: age
        type: int?
        checks:
          - label: adult
            expr: this >= 18
      - name: favorite
        type: Color
        alias: color
    asserts:
      - strlen(this.name) > 0
  - name: TreeNode
    fields:
      - name: value
        type: int
      - name: children
        type: Tree[]
aliases:
  - name: Tree
    type: TreeNode
`

func TestLoadYAML(t *testing.T) {
	reg, err := schema.LoadYAML([]byte(doc))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	color, ok := reg.FindEnum("Color")
	if !ok || len(color.Values) != 2 || color.Values[0].Alias != "r" || color.Values[1].Name != "GREEN" {
		t.Fatalf("unexpected enum: %+v", color)
	}
	person, ok := reg.FindClass("Person")
	if !ok || len(person.Fields) != 3 {
		t.Fatalf("unexpected class: %+v", person)
	}
	age := person.Fields[1]
	if age.Type.String() != "int?" || len(age.Type.Constraints) != 1 || age.Type.Constraints[0].Label != "adult" {
		t.Fatalf("unexpected age field: %+v", age.Type)
	}
	if person.Fields[2].RenderedName() != "color" || person.Fields[2].Type.Kind != schema.KindEnum {
		t.Fatalf("unexpected favorite field: %+v", person.Fields[2])
	}
	if len(person.Constraints) != 1 || person.Constraints[0].Level != schema.LevelAssert {
		t.Fatalf("unexpected class constraints: %+v", person.Constraints)
	}
	tree, ok := reg.FindAlias("Tree")
	if !ok || tree.Target.Kind != schema.KindClass || tree.Target.Name != "TreeNode" {
		t.Fatalf("unexpected alias: %+v", tree)
	}
}

func TestLoadYAML_UnknownType(t *testing.T) {
	_, err := schema.LoadYAML([]byte("classes:\n  - name: A\n    fields:\n      - {name: x, type: Missing}\n"))
	if err == nil || !strings.Contains(err.Error(), "Missing") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

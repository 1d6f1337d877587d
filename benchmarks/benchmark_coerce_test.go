package benchmarks_test

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/reoring/jsonish"
	"github.com/reoring/jsonish/schema"
)

// ---- Helpers ----

func userRegistry(tb testing.TB) *schema.Registry {
	tb.Helper()
	reg, err := schema.LoadYAML([]byte(`
enums:
  - name: Role
    values: [ADMIN, MEMBER, GUEST]
classes:
  - name: User
    fields:
      - {name: id, type: string}
      - {name: name, type: string}
      - {name: age, type: int}
      - {name: role, type: Role}
      - {name: tags, type: "string[]"}
      - {name: score, type: "float?"}
`))
	if err != nil {
		tb.Fatalf("schema load failed: %v", err)
	}
	return reg
}

func smallUserJSON() string {
	return `{"id":"u_1","name":"alice","age":31,"role":"ADMIN","tags":["a"],"score":1.5}`
}

// messyUser needs every repair step: a fence, prose, unquoted keys,
// case-folded enum, stringified number and a trailing comma.
func messyUser() string {
	return "Here you go:\n```json\n{id: u_1, name: 'alice', age: \"31\", role: admin, tags: [a, b,],}\n```\nAnything else?"
}

// generateUsers returns a JSON array of n users.
func generateUsers(n int) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":"u_%d","name":"n%d","age":%d,"role":"MEMBER","tags":["t%d"],"score":null}`, i, i, i%90, i)
	}
	buf.WriteByte(']')
	return buf.String()
}

// ---- Benchmarks ----

func BenchmarkFromString_Exact(b *testing.B) {
	reg := userRegistry(b)
	in := smallUserJSON()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := jsonish.FromString(reg, schema.ClassRef("User"), in, jsonish.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFromString_Messy(b *testing.B) {
	reg := userRegistry(b)
	in := messyUser()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := jsonish.FromString(reg, schema.ClassRef("User"), in, jsonish.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFromString_Array(b *testing.B) {
	reg := userRegistry(b)
	for _, n := range []int{10, 100, 1000} {
		in := generateUsers(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.SetBytes(int64(len(in)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := jsonish.FromString(reg, schema.ListOf(schema.ClassRef("User")), in, jsonish.Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFromString_Partial(b *testing.B) {
	reg := userRegistry(b)
	full := generateUsers(50)
	in := full[:len(full)*2/3]
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := jsonish.FromString(reg, schema.ListOf(schema.ClassRef("User")), in, jsonish.Options{AllowPartials: true}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCoerceAll(b *testing.B) {
	reg := userRegistry(b)
	texts := make([]string, 64)
	for i := range texts {
		texts[i] = messyUser()
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := jsonish.CoerceAll(context.Background(), reg, schema.ClassRef("User"), texts, jsonish.Options{}, 0); err != nil {
			b.Fatal(err)
		}
	}
}

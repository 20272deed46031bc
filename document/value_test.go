package document

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValue_KindAccessors(t *testing.T) {
	obj := Object(map[string]Value{
		"n": Number("21.5"),
		"s": String("512"),
		"b": Bool(true),
		"z": Null(),
		"a": Array(Number("1"), Number("2")),
	})
	if obj.Kind() != KindObject {
		t.Fatalf("expected object kind, got %v", obj.Kind())
	}
	n, _ := obj.Get("n")
	if lit, ok := n.AsNumber(); !ok || lit != "21.5" {
		t.Fatalf("expected number 21.5, got %q ok=%v", lit, ok)
	}
	s, _ := obj.Get("s")
	if _, ok := s.AsNumber(); ok {
		t.Fatalf("numeric string must not read as number")
	}
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "n", "s", "z"}) {
		t.Fatalf("unexpected key order: %v", got)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Fatalf("expected missing key to report false")
	}
	if _, ok := String("x").Get("x"); ok {
		t.Fatalf("Get on a non-object must report false")
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindNull:   "null",
		KindBool:   "boolean",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("kind %d: expected %q, got %q", k, want, got)
		}
	}
}

func TestValue_Interface(t *testing.T) {
	v := Object(map[string]Value{
		"gps":  Object(map[string]Value{"lat": Number("43.65413")}),
		"tags": Array(String("a")),
		"off":  Bool(false),
		"none": Null(),
	})
	want := map[string]any{
		"gps":  map[string]any{"lat": json.Number("43.65413")},
		"tags": []any{"a"},
		"off":  false,
		"none": nil,
	}
	if got := v.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tree:\n got: %#v\nwant: %#v", got, want)
	}
	if got := Array().Interface(); !reflect.DeepEqual(got, []any{}) {
		t.Fatalf("empty array should convert to empty slice, got %#v", got)
	}
}

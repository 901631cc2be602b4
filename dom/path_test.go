package dom

import (
	"fmt"
	"testing"

	"github.com/andygello555/json-bind/dom/node"
)

func mustParse(t *testing.T, src string) *node.Object {
	t.Helper()
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestParsePath(t *testing.T) {
	for testNo, test := range []struct {
		path     string
		expected string
	}{
		{"a.b.c", "[{a 0 false} {b 0 false} {c 0 false}]"},
		{"items[1].n", "[{items 1 true} {n 0 false}]"},
		// Empty segments (consecutive delimiters) are skipped, not errors
		{"a..b.", "[{a 0 false} {b 0 false}]"},
		{"", "[]"},
		{"...", "[]"},
		// Segments that don't match the name[index] shape are literal keys
		{"x[y]", "[{x[y] 0 false}]"},
	} {
		if actual := fmt.Sprintf("%v", ParsePath(test.path)); actual != test.expected {
			t.Errorf("test no. %d: ParsePath(%q) = %s, expected %s", testNo+1, test.path, actual, test.expected)
		}
	}
}

func TestResolveDepth(t *testing.T) {
	root := mustParse(t, `{"a":{"b":{"c":1}}}`)

	if actual := Resolve(root, "a.b.c"); actual != int32(1) {
		t.Errorf("Resolve(a.b.c) = %v, expected 1", actual)
	}
	// Best effort: a missing middle segment yields the deepest valid node, which is a's value
	if actual := Resolve(root, "a.x.c"); actual != root.Get("a") {
		t.Errorf("Resolve(a.x.c) = %v, expected a's value", actual)
	}
	// Descending through a scalar stops at the scalar
	if actual := Resolve(root, "a.b.c.d"); actual != int32(1) {
		t.Errorf("Resolve(a.b.c.d) = %v, expected 1", actual)
	}
	if actual := Resolve(root, ""); actual != root {
		t.Errorf("Resolve(\"\") = %v, expected the root", actual)
	}
}

func TestResolveIndexed(t *testing.T) {
	root := mustParse(t, `{"items":[{"n":1},{"n":2}]}`)

	if actual := Resolve(root, "items[1].n"); actual != int32(2) {
		t.Errorf("Resolve(items[1].n) = %v, expected 2", actual)
	}
	// Out-of-bounds indices resolve to absent, never an error
	if actual := Resolve(root, "items[5].n"); actual != nil {
		t.Errorf("Resolve(items[5].n) = %v, expected nil", actual)
	}
	// An index suffix on a non-array stops at the value itself
	scalarRoot := mustParse(t, `{"items":1}`)
	if actual := Resolve(scalarRoot, "items[0]"); actual != int32(1) {
		t.Errorf("Resolve over scalar = %v, expected 1", actual)
	}
}

func TestGetPathExact(t *testing.T) {
	root := mustParse(t, `{"a":{"b":{"c":1}}}`)

	if actual := GetPath(root, "a.b.c"); actual != int32(1) {
		t.Errorf("GetPath(a.b.c) = %v, expected 1", actual)
	}
	// Unlike Resolve, a partial match reads as absent
	if actual := GetPath(root, "a.x.c"); actual != nil {
		t.Errorf("GetPath(a.x.c) = %v, expected nil", actual)
	}
	if actual := GetPath(root, ""); actual != root {
		t.Errorf("GetPath(\"\") = %v, expected the root", actual)
	}
}

func TestSetPath(t *testing.T) {
	root := node.NewObject()

	// Missing intermediate Objects are materialised on write
	if !SetPath(root, "a.b.c", 7) {
		t.Fatal("SetPath(a.b.c) failed")
	}
	if actual := GetPath(root, "a.b.c"); actual != int32(7) {
		t.Errorf("GetPath(a.b.c) = %v, expected 7", actual)
	}

	// A nil write removes the leaf
	if !SetPath(root, "a.b.c", nil) {
		t.Fatal("SetPath(a.b.c, nil) failed")
	}
	if GetPath(root, "a.b.c") != nil {
		t.Error("leaf still present after nil write")
	}

	// Intermediate scalars are not clobbered
	root.Set("scalar", 1)
	if SetPath(root, "scalar.x", 2) {
		t.Error("SetPath clobbered a scalar intermediate")
	}
	if root.Get("scalar") != int32(1) {
		t.Errorf("scalar = %v, expected 1", root.Get("scalar"))
	}
}

func TestSetPathIndexed(t *testing.T) {
	root := mustParse(t, `{"items":[1,{"n":2}]}`)

	if !SetPath(root, "items[0]", 5) {
		t.Fatal("SetPath(items[0]) failed")
	}
	if actual := Resolve(root, "items[0]"); actual != int32(5) {
		t.Errorf("items[0] = %v, expected 5", actual)
	}
	if !SetPath(root, "items[1].n", 9) {
		t.Fatal("SetPath(items[1].n) failed")
	}
	if actual := Resolve(root, "items[1].n"); actual != int32(9) {
		t.Errorf("items[1].n = %v, expected 9", actual)
	}

	// Out-of-bounds and missing arrays are silent no-ops
	if SetPath(root, "items[9]", 5) {
		t.Error("SetPath landed out of bounds")
	}
	if SetPath(root, "missing[0].n", 5) {
		t.Error("SetPath materialised an array")
	}
}

func TestResolveObject(t *testing.T) {
	root := mustParse(t, `{"person":{"address":{"city":"London"},"age":18}}`)
	person := root.Get("person").(*node.Object)
	address := person.Get("address").(*node.Object)

	for testNo, test := range []struct {
		path     string
		expected *node.Object
	}{
		{"person.address.city", address},
		{"person.address", address},
		{"person.age", person},
		{"person.missing.deeper", person},
		{"missing", root},
		{"", root},
	} {
		if actual := ResolveObject(root, test.path); actual != test.expected {
			t.Errorf("test no. %d: ResolveObject(%q) = %v, expected %v", testNo+1, test.path, actual, test.expected)
		}
	}
}

func TestParentOf(t *testing.T) {
	root := mustParse(t, `{"a":{"b":{"c":1}}}`)
	b := GetPath(root, "a.b").(*node.Object)

	parent, leaf, ok := ParentOf(root, "a.b.c")
	if !ok || parent != b || leaf != "c" {
		t.Errorf("ParentOf(a.b.c) = (%v, %q, %t)", parent, leaf, ok)
	}
	parent, leaf, ok = ParentOf(root, "c")
	if !ok || parent != root || leaf != "c" {
		t.Errorf("ParentOf(c) = (%v, %q, %t)", parent, leaf, ok)
	}
	if _, _, ok = ParentOf(root, "a.x.c"); ok {
		t.Error("ParentOf resolved through a missing segment")
	}
	if _, _, ok = ParentOf(root, ""); ok {
		t.Error("ParentOf accepted an empty path")
	}
}

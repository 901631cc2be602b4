package main

import (
	"encoding/json"
	"testing"
)

func TestDecodeValue(t *testing.T) {
	for testNo, test := range []struct {
		raw      string
		expected interface{}
		valueErr bool
	}{
		// Empty means "remove the key"
		{"", nil, false},
		{"42", json.Number("42"), false},
		{"true", true, false},
		{`"John Smith"`, "John Smith", false},
		// Hand-typed values that never parse as JSON are plain strings
		{"John Smith", "John Smith", false},
		{"2024-01-01T10:30", "2024-01-01T10:30", false},
		// JSON literals with trailing content are typos, not plain strings
		{`{"a":1} garbage`, nil, true},
		{"1 2", nil, true},
	} {
		actual, err := decodeValue(test.raw)
		if test.valueErr != (err != nil) {
			t.Errorf("test no. %d: decodeValue(%q) err = %v, expected valueErr=%t", testNo+1, test.raw, err, test.valueErr)
			continue
		}
		if !test.valueErr && actual != test.expected {
			t.Errorf("test no. %d: decodeValue(%q) = %v (%T), expected %v (%T)",
				testNo+1, test.raw, actual, actual, test.expected, test.expected)
		}
	}
}

func TestDecodeValueContainers(t *testing.T) {
	actual, err := decodeValue(`{"a":1,"b":[true,"x"]}`)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := actual.(map[string]interface{})
	if !ok {
		t.Fatalf("decodeValue(object) = %T, expected a map", actual)
	}
	if m["a"] != json.Number("1") {
		t.Errorf("a = %v (%T), expected the undecoded numeric literal", m["a"], m["a"])
	}
	s, ok := m["b"].([]interface{})
	if !ok || len(s) != 2 || s[0] != true || s[1] != "x" {
		t.Errorf("b = %v, expected [true x]", m["b"])
	}
}

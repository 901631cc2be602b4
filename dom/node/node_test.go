package node

import (
	"fmt"
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	for testNo, test := range []struct {
		literal  string
		expected Value
	}{
		{"42", int32(42)},
		{"-1", int32(-1)},
		{"0", int32(0)},
		{"2147483647", int32(math.MaxInt32)},
		{"-2147483648", int32(math.MinInt32)},
		{"2147483648", int64(2147483648)},
		{"9223372036854775807", int64(math.MaxInt64)},
		// Integer literals beyond int64 fall through to float parsing; 2^63 happens to survive the
		// float32 round-trip exactly so it lands there
		{"9223372036854775808", float32(9223372036854775808)},
		{"1.5", float32(1.5)},
		{"42.0", float32(42)},
		{"1e2", float32(100)},
		// 0.1 does not survive the float32 round-trip so it stays a float64
		{"0.1", 0.1},
		{"1e39", 1e39},
		// Literals beyond the float64 range clamp instead of failing
		{"1e400", math.MaxFloat64},
		{"-1e400", -math.MaxFloat64},
	} {
		if actual := ParseNumber(test.literal); actual != test.expected {
			t.Errorf("test no. %d: ParseNumber(%q) = %v (%T), expected %v (%T)",
				testNo+1, test.literal, actual, actual, test.expected, test.expected)
		}
	}
}

func TestEqual(t *testing.T) {
	sameObj := NewObject()
	for testNo, test := range []struct {
		a        Value
		b        Value
		expected bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{true, true, true},
		{true, false, false},
		{nil, nil, true},
		{nil, int32(0), false},
		{int32(2), int32(2), true},
		{int32(2), int64(2), true},
		{int64(3), int32(2), false},
		{int32(2), float64(2), true},
		{float32(1.5), float64(1.5), true},
		{float64(0.1), float32(0.1), false},
		{"1", int32(1), false},
		{true, int32(1), false},
		// Containers are never equal, not even to themselves
		{NewObject(), NewObject(), false},
		{sameObj, sameObj, false},
		{NewArray(), NewArray(), false},
	} {
		if actual := Equal(test.a, test.b); actual != test.expected {
			t.Errorf("test no. %d: Equal(%v, %v) = %t, expected %t", testNo+1, test.a, test.b, actual, test.expected)
		}
	}
}

func TestFromGo(t *testing.T) {
	for testNo, test := range []struct {
		in       interface{}
		expected Value
	}{
		{nil, nil},
		{42, int32(42)},
		{int(math.MaxInt32) + 1, int64(math.MaxInt32) + 1},
		{int8(7), int32(7)},
		{uint64(math.MaxInt64), int64(math.MaxInt64)},
		{3.5, float64(3.5)},
		{"hello", "hello"},
		{false, false},
	} {
		if actual := FromGo(test.in); actual != test.expected {
			t.Errorf("test no. %d: FromGo(%v) = %v (%T), expected %v (%T)",
				testNo+1, test.in, actual, actual, test.expected, test.expected)
		}
	}
}

func TestFromGoContainers(t *testing.T) {
	value := FromGo(map[string]interface{}{
		"b":    1,
		"a":    []interface{}{1, "two"},
		"gone": nil,
	})
	obj, ok := value.(*Object)
	if !ok {
		t.Fatalf("FromGo(map) = %T, expected *Object", value)
	}
	// Keys are sorted (Go maps carry no order) and nil members are omitted
	if fmt.Sprintf("%v", obj.Keys()) != "[a b]" {
		t.Errorf("keys = %v, expected [a b]", obj.Keys())
	}
	arr, ok := obj.Get("a").(*Array)
	if !ok {
		t.Fatalf("obj.Get(a) = %T, expected *Array", obj.Get("a"))
	}
	if arr.Len() != 2 || arr.Get(0) != int32(1) || arr.Get(1) != "two" {
		t.Errorf("array = %v, expected [1 two]", arr)
	}
}

func TestToGoRoundTrip(t *testing.T) {
	obj := NewObject()
	obj.Set("name", "Jane Doe")
	obj.Set("age", 24)
	inner := NewObject()
	inner.Set("city", "London")
	obj.Set("address", inner)

	plain := ToGo(obj).(map[string]interface{})
	if plain["name"] != "Jane Doe" || plain["age"] != int32(24) {
		t.Errorf("ToGo scalars = %v", plain)
	}
	address, ok := plain["address"].(map[string]interface{})
	if !ok || address["city"] != "London" {
		t.Errorf("ToGo nested = %v", plain["address"])
	}
}

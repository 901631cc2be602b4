// Contains the dynamically-typed value tree that documents are built out of: scalars, ordered Object
// nodes and Array nodes, along with the conversions between the tree and plain Go values.
//
// A tree is always acyclic as it is only ever built from JSON text or from plain Go maps/slices,
// neither of which can express cycles.
package node

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is the dynamic union held at any position of a document tree. A Value is always one of:
//
//	string, bool, int32, int64, float32, float64, *Object, *Array
//
// A nil Value means "absent". There is no null scalar: parsing a JSON null omits the member and
// setting a key to nil removes it (explicit-absence policy).
type Value interface{}

// Returns true if the given Value is an Object or an Array.
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Object, *Array:
		return true
	}
	return false
}

// Converts a JSON numeric literal into the narrowest scalar type that exactly represents it.
// The types are tried in a fixed order: int32, int64, float32, float64.
//
// NOTE integer literals that do not fit int64 fall through to float parsing which can silently lose
// precision for large exact integers. This fallback order is kept for compatibility with the
// documents produced by older versions, see the design notes.
//
// Literals beyond the float64 range never fail: they clamp to +/-math.MaxFloat64 so that the tree
// always remains serialisable.
func ParseNumber(literal string) Value {
	if !strings.ContainsAny(literal, ".eE") {
		if i, err := strconv.ParseInt(literal, 10, 32); err == nil {
			return int32(i)
		}
		if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return i
		}
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		// strconv only errors with ErrRange here as the literal has already been through the JSON
		// scanner, so clamp to the largest representable float
		if strings.HasPrefix(strings.TrimSpace(literal), "-") {
			return -math.MaxFloat64
		}
		return math.MaxFloat64
	}
	// Take float32 only when the value survives the round-trip exactly
	if f32 := float32(f); float64(f32) == f {
		return f32
	}
	return f
}

// Coerces an arbitrary Go value into a Value. Maps become Object nodes (keys sorted, as Go maps carry
// no order), slices become Array nodes and integers are narrowed to the smallest of int32/int64 that
// holds them. json.Number goes through ParseNumber so that decoded literals keep the narrowing rule.
//
// nil coerces to nil (absent). Values of types with no JSON analogue fall back to their fmt
// representation rather than failing, which keeps Set permissive for UI callers.
func FromGo(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case bool:
		return val
	case int32:
		return val
	case int64:
		return val
	case float32:
		return val
	case float64:
		return val
	case *Object:
		return val
	case *Array:
		return val
	case json.Number:
		return ParseNumber(val.String())
	case int:
		if val >= math.MinInt32 && val <= math.MaxInt32 {
			return int32(val)
		}
		return int64(val)
	case int8:
		return int32(val)
	case int16:
		return int32(val)
	case uint8:
		return int32(val)
	case uint16:
		return int32(val)
	case uint32:
		if val <= math.MaxInt32 {
			return int32(val)
		}
		return int64(val)
	case uint:
		if uint64(val) <= math.MaxInt64 {
			return int64(val)
		}
		return float64(val)
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}
		return float64(val)
	case map[string]interface{}:
		return NewObjectFromMap(val)
	case []interface{}:
		return NewArrayFromSlice(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Converts a Value back into plain Go data: Object nodes become map[string]interface{} (insertion
// order is lost), Array nodes become []interface{} and scalars pass through unchanged.
// Used to hand the tree over to script environments.
func ToGo(v Value) interface{} {
	switch val := v.(type) {
	case *Object:
		m := make(map[string]interface{}, val.Len())
		for key, child := range val.All() {
			m[key] = ToGo(child)
		}
		return m
	case *Array:
		s := make([]interface{}, 0, val.Len())
		for child := range val.All() {
			s = append(s, ToGo(child))
		}
		return s
	default:
		return v
	}
}

// Reports whether two Values are equal for the purposes of change suppression: setting a key to a
// value equal to its current one must not fire a notification.
//
// Scalars compare by value; numeric values compare across widths (an int32 2 equals an int64 2) and
// int/float mixes compare by promoted value. Containers are never equal to anything, not even to
// themselves: any container assignment is treated as a change.
func Equal(a, b Value) bool {
	if IsContainer(a) || IsContainer(b) {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	ai, aInt := asInt64(a)
	bi, bInt := asInt64(b)
	if aInt && bInt {
		return ai == bi
	}
	af, aNum := asFloat64(a)
	bf, bNum := asFloat64(b)
	return aNum && bNum && af == bf
}

func asInt64(v Value) (int64, bool) {
	switch val := v.(type) {
	case int32:
		return int64(val), true
	case int64:
		return val, true
	}
	return 0, false
}

func asFloat64(v Value) (float64, bool) {
	switch val := v.(type) {
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	}
	return 0, false
}

// Returns the keys of the given map sorted lexicographically.
// Go maps have no insertion order to preserve, so sorting keeps conversions deterministic.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package dom

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andygello555/json-bind/dom/node"
	"github.com/andygello555/json-bind/globals"
)

// A single segment of a parsed dotted path: a key with an optional array index suffix.
type Segment struct {
	// The key to descend down.
	Key string
	// The array index to take after descending down Key. Only meaningful when HasIndex is set.
	Index int
	// Whether the segment carried an "[n]" suffix.
	HasIndex bool
}

// Matches "name" or "name[n]" where name may be anything that doesn't clash with the path syntax.
var segmentPattern = regexp.MustCompile(`^([^.\[\]]+)(\[(\d+)])?$`)

// Tokenises a dotted path ("a.b[2].c") into its segments.
//
// Parsing is lenient and never errors: empty segments (consecutive delimiters, leading/trailing
// dots) are skipped and a segment that doesn't match the name[index] shape is taken as a literal
// key. This keeps path handling consistent with the silent-absence policy of resolution.
func ParsePath(path string) []Segment {
	segments := make([]Segment, 0)
	for _, raw := range strings.Split(path, string(globals.PathDelim)) {
		if raw == "" {
			continue
		}
		match := segmentPattern.FindStringSubmatch(raw)
		if match == nil {
			segments = append(segments, Segment{Key: raw})
			continue
		}
		segment := Segment{Key: match[1]}
		if match[3] != "" {
			if n, err := strconv.Atoi(match[3]); err == nil {
				segment.Index, segment.HasIndex = n, true
			} else {
				segment.Key = raw
			}
		}
		segments = append(segments, segment)
	}
	return segments
}

// Navigates the given path through the tree, best-effort to the deepest valid point:
//
// • a missing segment key stops and returns the node reached so far
//
// • a value of the wrong kind where further descent is required stops and returns that value
//
// • an out-of-bounds array index resolves to nil (absent)
//
// Never errors: a binding to a not-yet-existent path must not crash the UI host.
func Resolve(root *node.Object, path string) node.Value {
	value, _ := resolve(root, ParsePath(path))
	return value
}

// The exact counterpart of Resolve: returns the value only when the whole path resolves, and nil
// (absent) otherwise. This is what UI bindings read through.
func GetPath(root *node.Object, path string) node.Value {
	value, exact := resolve(root, ParsePath(path))
	if !exact {
		return nil
	}
	return value
}

func resolve(root *node.Object, segments []Segment) (value node.Value, exact bool) {
	var current node.Value = root
	for _, segment := range segments {
		obj, isObj := current.(*node.Object)
		if !isObj {
			// Cannot descend into a scalar/array, stop at the deepest valid node
			return current, false
		}
		child, exists := obj.Lookup(segment.Key)
		if !exists {
			return obj, false
		}
		if segment.HasIndex {
			arr, isArr := child.(*node.Array)
			if !isArr {
				return child, false
			}
			elem := arr.Get(segment.Index)
			if elem == nil {
				// Out-of-bounds indices resolve to absent
				return nil, false
			}
			current = elem
		} else {
			current = child
		}
	}
	return current, true
}

// Returns the deepest Object node reachable along the path: the node whose change notifications a
// path-scoped observer should subscribe to. Always returns at least the root.
func ResolveObject(root *node.Object, path string) *node.Object {
	deepest := root
	var current node.Value = root
	for _, segment := range ParsePath(path) {
		obj, isObj := current.(*node.Object)
		if !isObj {
			break
		}
		deepest = obj
		child, exists := obj.Lookup(segment.Key)
		if !exists {
			break
		}
		if segment.HasIndex {
			arr, isArr := child.(*node.Array)
			if !isArr {
				break
			}
			elem := arr.Get(segment.Index)
			if elem == nil {
				break
			}
			current = elem
		} else {
			current = child
		}
	}
	if obj, isObj := current.(*node.Object); isObj {
		deepest = obj
	}
	return deepest
}

// Returns the Object holding the path's leaf key, along with that key, or ok=false when the parent
// chain does not fully resolve to an Object or the leaf carries an index suffix (indexed leaves have
// an Array parent, which holds no listeners).
func ParentOf(root *node.Object, path string) (parent *node.Object, leaf string, ok bool) {
	segments := ParsePath(path)
	if len(segments) == 0 {
		return nil, "", false
	}
	last := segments[len(segments)-1]
	if last.HasIndex {
		return nil, "", false
	}
	value, exact := resolve(root, segments[:len(segments)-1])
	if !exact {
		return nil, "", false
	}
	obj, isObj := value.(*node.Object)
	if !isObj {
		return nil, "", false
	}
	return obj, last.Key, true
}

// Writes the given value at the given path.
//
// Missing intermediate Objects are materialised on plain segments; indexed segments only descend
// array elements that already exist and hold Objects. The write itself follows the store contract of
// Object.Set (nil removes, scalar-equal writes are silent no-ops). An indexed leaf overwrites the
// array element in place, without notification, as Arrays carry no listeners of their own.
//
// Returns false, without error, when the write could not land anywhere.
func SetPath(root *node.Object, path string, value interface{}) bool {
	segments := ParsePath(path)
	if len(segments) == 0 {
		return false
	}

	current := root
	for _, segment := range segments[:len(segments)-1] {
		child, exists := current.Lookup(segment.Key)
		if segment.HasIndex {
			if !exists {
				return false
			}
			arr, isArr := child.(*node.Array)
			if !isArr {
				return false
			}
			elem, isObj := arr.Get(segment.Index).(*node.Object)
			if !isObj {
				return false
			}
			current = elem
			continue
		}
		if !exists {
			// Materialise the intermediate node, notifying the holder as any insert would
			created := node.NewObject()
			current.Set(segment.Key, created)
			current = created
			continue
		}
		obj, isObj := child.(*node.Object)
		if !isObj {
			// Refuse to clobber a scalar/array sitting on an intermediate segment
			return false
		}
		current = obj
	}

	last := segments[len(segments)-1]
	if last.HasIndex {
		arr, isArr := current.Get(last.Key).(*node.Array)
		if !isArr {
			return false
		}
		return arr.Set(last.Index, value)
	}
	current.Set(last.Key, value)
	return true
}

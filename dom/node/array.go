package node

import (
	"bytes"
	"encoding/json"
	"iter"
)

// An ordered sequence node.
//
// Arrays hold Values of any kind. Unlike Objects they carry no listeners of their own: observation
// happens on the Object nodes inside them (see dom.Document for the recursive wiring).
type Array struct {
	elems []Value
}

// Construct a new empty Array.
// Returns a pointer to an Array.
func NewArray() *Array {
	return &Array{elems: make([]Value, 0)}
}

// Constructs a new Array from the given interface{} slice, coercing every element with FromGo.
// nil elements are kept as JSON nulls, as a sequence cannot express absence the way a map can.
// Returns a pointer to an Array.
func NewArrayFromSlice(s []interface{}) *Array {
	arr := &Array{elems: make([]Value, 0, len(s))}
	for _, elem := range s {
		arr.elems = append(arr.elems, FromGo(elem))
	}
	return arr
}

// The number of elements within the Array.
func (arr *Array) Len() int {
	return len(arr.elems)
}

// Returns the element at the given index, or nil if the index is out of bounds. Never errors.
func (arr *Array) Get(i int) Value {
	if i < 0 || i >= len(arr.elems) {
		return nil
	}
	return arr.elems[i]
}

// Overwrites the element at the given index with the given value (coerced with FromGo).
// Returns false, without modifying the Array, if the index is out of bounds.
func (arr *Array) Set(i int, value interface{}) bool {
	if i < 0 || i >= len(arr.elems) {
		return false
	}
	arr.elems[i] = FromGo(value)
	return true
}

// Appends the given values (coerced with FromGo) to the end of the Array.
func (arr *Array) Append(values ...interface{}) {
	for _, value := range values {
		arr.elems = append(arr.elems, FromGo(value))
	}
}

// Returns a lazy, restartable sequence of the Array's elements in order.
func (arr *Array) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, elem := range arr.elems {
			if !yield(elem) {
				return
			}
		}
	}
}

// Marshals the Array into JSON. nil elements marshal as null.
func (arr *Array) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, elem := range arr.elems {
		if i > 0 {
			b.WriteByte(',')
		}
		elemBytes, err := json.Marshal(elem)
		if err != nil {
			return nil, err
		}
		b.Write(elemBytes)
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

// The String implementation of Array marshals the node to compact JSON.
func (arr *Array) String() string {
	out, err := json.Marshal(arr)
	if err != nil {
		return "[]"
	}
	return string(out)
}

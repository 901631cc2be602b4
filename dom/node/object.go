package node

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/google/uuid"
)

// An insertion-ordered, observable string->Value map node.
//
// Keys are unique and keep the order in which they were first inserted, which makes serialisation
// deterministic. Every mutation notifies exactly the listeners registered on this node (via
// Subscribe) before the mutating call returns. An Object is not safe for unsynchronised concurrent
// use: the whole store assumes a single UI/event thread drives all reads and writes.
type Object struct {
	keys      []string
	values    map[string]Value
	listeners []listenerEntry
}

type listenerEntry struct {
	token string
	fn    Listener
}

// Construct a new empty Object.
// Returns a pointer to an Object.
func NewObject() *Object {
	return &Object{
		keys:   make([]string, 0),
		values: make(map[string]Value),
	}
}

// Constructs a new Object from the given string->interface{} map. Values are coerced with FromGo,
// keys are inserted in sorted order and nil values are omitted entirely (explicit-absence policy).
// Returns a pointer to an Object.
func NewObjectFromMap(m map[string]interface{}) *Object {
	obj := NewObject()
	for _, key := range sortedKeys(m) {
		if value := FromGo(m[key]); value != nil {
			obj.keys = append(obj.keys, key)
			obj.values[key] = value
		}
	}
	return obj
}

// Returns the value stored at the given key, or nil if the key is absent.
// An empty key always resolves to nil. Never errors.
func (obj *Object) Get(key string) Value {
	return obj.values[key]
}

// Returns the value stored at the given key along with whether the key exists.
func (obj *Object) Lookup(key string) (Value, bool) {
	value, ok := obj.values[key]
	return value, ok
}

// Returns whether the given key exists within the Object.
func (obj *Object) Has(key string) bool {
	_, ok := obj.values[key]
	return ok
}

// The number of keys within the Object.
func (obj *Object) Len() int {
	return len(obj.keys)
}

// Returns a copy of the Object's keys in insertion order.
func (obj *Object) Keys() []string {
	keys := make([]string, len(obj.keys))
	copy(keys, obj.keys)
	return keys
}

// Sets the given key to the given value, coercing it with FromGo first.
//
// The permissive store contract:
//
// • An empty key is a no-op.
//
// • A nil value removes the key, notifying only if the key existed.
//
// • Overwriting a key with a value Equal to the current one is a silent no-op.
//
// • Otherwise the key is inserted/overwritten and an OpSet change fires on this node.
func (obj *Object) Set(key string, value interface{}) {
	if key == "" {
		return
	}
	coerced := FromGo(value)
	if coerced == nil {
		obj.Remove(key)
		return
	}

	if old, ok := obj.values[key]; ok {
		if Equal(old, coerced) {
			return
		}
		obj.values[key] = coerced
	} else {
		obj.keys = append(obj.keys, key)
		obj.values[key] = coerced
	}
	obj.notify(Change{Op: OpSet, Key: key, Value: coerced, Node: obj})
}

// Removes the given key from the Object, firing an OpRemove change if it existed.
// Returns true if the key existed.
//
// Listeners registered on a removed subtree are not unregistered: they simply become inert as
// nothing mutates the detached nodes any more.
func (obj *Object) Remove(key string) bool {
	if _, ok := obj.values[key]; !ok {
		return false
	}
	delete(obj.values, key)
	for i, k := range obj.keys {
		if k == key {
			obj.keys = append(obj.keys[:i], obj.keys[i+1:]...)
			break
		}
	}
	obj.notify(Change{Op: OpRemove, Key: key, Node: obj})
	return true
}

// Removes all keys from the Object.
// Fires a single OpClear change if the Object was non-empty, none if it was already empty.
func (obj *Object) Clear() {
	if len(obj.keys) == 0 {
		return
	}
	obj.keys = obj.keys[:0]
	obj.values = make(map[string]Value)
	obj.notify(Change{Op: OpClear, Node: obj})
}

// Returns a lazy, restartable sequence of the Object's (key, value) pairs in insertion order.
func (obj *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range obj.keys {
			if !yield(key, obj.values[key]) {
				return
			}
		}
	}
}

// Registers the given listener on this node and returns the token to Unsubscribe it with.
// Listeners are invoked synchronously and in subscription order on every mutation of this node
// (and only this node: changes do not bubble by themselves, see dom.Document for wiring).
func (obj *Object) Subscribe(fn Listener) string {
	token := uuid.NewString()
	obj.listeners = append(obj.listeners, listenerEntry{token: token, fn: fn})
	return token
}

// Removes the listener registered under the given token.
// Returns true if such a listener existed.
func (obj *Object) Unsubscribe(token string) bool {
	for i, entry := range obj.listeners {
		if entry.token == token {
			obj.listeners = append(obj.listeners[:i], obj.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (obj *Object) notify(change Change) {
	// Iterate over a snapshot so that listeners may (un)subscribe during dispatch without
	// disturbing the current mutation's deterministic order
	snapshot := make([]listenerEntry, len(obj.listeners))
	copy(snapshot, obj.listeners)
	for _, entry := range snapshot {
		entry.fn(change)
	}
}

// Marshals the Object into JSON with its members in insertion order.
func (obj *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range obj.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		b.Write(keyBytes)
		b.WriteByte(':')
		valueBytes, err := json.Marshal(obj.values[key])
		if err != nil {
			return nil, err
		}
		b.Write(valueBytes)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// The String implementation of Object marshals the node to compact JSON.
func (obj *Object) String() string {
	out, err := json.Marshal(obj)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// Contains the observable dynamic document: a mutable tree of ordered key/value Object nodes, Array
// nodes and scalars built from JSON text, navigated by dotted/indexed paths and observed through
// synchronous change notifications that bubble up to document-level subscribers.
//
// The whole package assumes a single UI/event thread drives all reads and writes: there are no
// locks, no background goroutines and no suspension points. Embedders on multiple threads must
// confine a Document to one of them or synchronise externally.
package dom

import (
	"encoding/json"

	"github.com/andygello555/json-bind/dom/node"
	"github.com/andygello555/json-bind/globals"
	"github.com/google/uuid"
)

// Document wraps a root Object node and presents the surface a UI host binds to: get/set by dotted
// path, a serialized JSON snapshot and a coarse "document changed" subscription that re-raises every
// nested mutation.
type Document struct {
	root *node.Object
	subs []*docSubscription
}

type docSubscription struct {
	token string
	fn    node.Listener
	// Every node listener this subscription attached during its last wiring walk
	wired []wiredNode
}

type wiredNode struct {
	obj   *node.Object
	token string
}

// Construct a new empty Document.
// Returns a pointer to a Document.
func New() *Document {
	return &Document{root: node.NewObject()}
}

// The root Object node of the document.
func (doc *Document) Root() *node.Object {
	return doc.root
}

// Replaces the document's contents with the given JSON text.
//
// The root is cleared first, firing a single document change if it was non-empty, then the parsed
// members are set one by one through the ordinary store contract. Malformed text returns a
// ParseError and leaves the store empty; a syntactically valid non-object top level leaves it empty
// without error. Live subscriptions are re-wired onto the new structure before returning.
func (doc *Document) Unmarshal(jsonBytes []byte) error {
	parsed, err := Parse(jsonBytes)
	doc.root.Clear()
	if err != nil {
		doc.Rewire()
		return err
	}
	for key, value := range parsed.All() {
		doc.root.Set(key, value)
	}
	doc.Rewire()
	return nil
}

// Replaces the document's contents with the given hand-authored hjson text.
// Same contract as Unmarshal, with ParseRelaxed's ordering caveats.
func (doc *Document) UnmarshalRelaxed(hjsonBytes []byte) error {
	parsed, err := ParseRelaxed(hjsonBytes)
	doc.root.Clear()
	if err != nil {
		doc.Rewire()
		return err
	}
	for key, value := range parsed.All() {
		doc.root.Set(key, value)
	}
	doc.Rewire()
	return nil
}

// Renders the document as indented JSON, members in insertion order. The serialized form is
// regenerated on every call (pull-based, never cached) and round-trips through Parse to a
// value-equal tree.
func (doc *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(doc.root, "", globals.Indent)
}

// The String implementation of Document marshals the tree to indented JSON.
func (doc *Document) String() string {
	out, err := doc.Marshal()
	if err != nil {
		return "{}"
	}
	return string(out)
}

// Returns the value at the given path, or nil unless the whole path resolves. See GetPath.
func (doc *Document) Get(path string) node.Value {
	return GetPath(doc.root, path)
}

// Returns whether the whole path resolves to a present value.
func (doc *Document) Has(path string) bool {
	return doc.Get(path) != nil
}

// Writes the given value at the given path, materialising intermediate Objects. See SetPath.
func (doc *Document) Set(path string, value interface{}) bool {
	return SetPath(doc.root, path, value)
}

// Best-effort navigation to the deepest valid node for the given path. See Resolve.
func (doc *Document) Resolve(path string) node.Value {
	return Resolve(doc.root, path)
}

// The deepest Object node along the given path: the subscribe target for path-scoped observers.
func (doc *Document) ResolveObject(path string) *node.Object {
	return ResolveObject(doc.root, path)
}

// Registers a document-level listener and returns the token to Unsubscribe it with.
//
// Subscribing walks the tree recursively and attaches a re-raising listener to every nested Object
// found, including Objects inside Arrays at any depth, so that a mutation anywhere in the tree
// reaches the document observer as the single conceptual "document" event (the original Change is
// passed through so observers can still see where it happened).
//
// The walk is a static snapshot of the structure at subscribe time: Objects added afterwards are not
// wired automatically. Call Rewire after structural changes, or rely on the methods that do (the
// Unmarshal family).
func (doc *Document) Subscribe(fn node.Listener) string {
	sub := &docSubscription{token: uuid.NewString(), fn: fn}
	sub.wired = wire(doc.root, fn)
	doc.subs = append(doc.subs, sub)
	return sub.token
}

// Removes the document-level listener registered under the given token, detaching every node
// listener its wiring walk attached. Returns true if such a subscription existed.
func (doc *Document) Unsubscribe(token string) bool {
	for i, sub := range doc.subs {
		if sub.token == token {
			for _, w := range sub.wired {
				w.obj.Unsubscribe(w.token)
			}
			doc.subs = append(doc.subs[:i], doc.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Drops and re-attaches the node listeners of every live subscription, refreshing the static wiring
// snapshot against the current structure.
func (doc *Document) Rewire() {
	for _, sub := range doc.subs {
		for _, w := range sub.wired {
			w.obj.Unsubscribe(w.token)
		}
		sub.wired = wire(doc.root, sub.fn)
	}
}

func wire(obj *node.Object, fn node.Listener) []wiredNode {
	wired := []wiredNode{{obj: obj, token: obj.Subscribe(fn)}}
	for _, value := range obj.All() {
		wired = append(wired, wireValue(value, fn)...)
	}
	return wired
}

func wireValue(value node.Value, fn node.Listener) []wiredNode {
	switch v := value.(type) {
	case *node.Object:
		return wire(v, fn)
	case *node.Array:
		wired := make([]wiredNode, 0)
		for elem := range v.All() {
			wired = append(wired, wireValue(elem, fn)...)
		}
		return wired
	}
	return nil
}

package node

import "fmt"

// Represents the kind of a mutation that occurred on an Object node.
type Op int

// All the mutation kinds that an Object can notify its listeners about.
const (
	// A key was inserted or overwritten.
	OpSet Op = iota
	// A key was removed (also raised when a key is set to nil).
	OpRemove Op = iota
	// The whole object was emptied. Only raised when the object was non-empty.
	OpClear Op = iota
)

// Map of mutation kinds to their corresponding names.
// Used in the String method of Op.
var opNames = map[Op]string{
	OpSet:    "set",
	OpRemove: "remove",
	OpClear:  "clear",
}

func (op Op) String() string {
	return opNames[op]
}

// A single mutation of an Object node.
//
// Changes are delivered synchronously: every listener registered on the mutated node runs before the
// mutating call (Set/Remove/Clear) returns to its caller. Listeners run in subscription order.
type Change struct {
	// What kind of mutation occurred.
	Op Op
	// The key that was mutated. Empty for OpClear.
	Key string
	// The newly stored value for OpSet, nil otherwise.
	Value Value
	// The node on which the mutation occurred.
	Node *Object
}

// Returns the conceptual event name of the change: "item[<key>]" for keyed mutations and "document"
// for whole-object ones. Document-level observers re-raise every nested change under the latter name.
func (c Change) String() string {
	if c.Op == OpClear || c.Key == "" {
		return "document"
	}
	return fmt.Sprintf("item[%s]", c.Key)
}

// Callback registered on an Object node via Subscribe.
type Listener func(change Change)

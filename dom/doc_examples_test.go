package dom

import (
	"fmt"

	"github.com/andygello555/json-bind/dom/node"
)

// How to load a document, observe it and write through dotted paths.
func Example() {
	doc := New()
	err := doc.UnmarshalRelaxed([]byte(`
	{
		greeting: hello
		person: {
			name: John Smith
		}
	}
	`))
	if err != nil {
		panic(err)
	}

	// A document subscription re-raises every mutation anywhere in the tree.
	doc.Subscribe(func(change node.Change) {
		fmt.Println("changed:", change)
	})

	// The first write fires, the value-equal second one is suppressed.
	doc.Set("person.age", 18)
	doc.Set("person.age", 18)

	fmt.Println(doc.Get("person.age"))

	// The String implementation of Document marshals the tree to indented JSON.
	fmt.Println(doc)
	// Output:
	// changed: item[age]
	// 18
	// {
	//   "greeting": "hello",
	//   "person": {
	//     "name": "John Smith",
	//     "age": 18
	//   }
	// }
}

// Writing through a path materialises the intermediate Objects it names.
func ExampleDocument_Set() {
	doc := New()
	doc.Set("a.b.c", 1)
	fmt.Println(doc)
	// Output:
	// {
	//   "a": {
	//     "b": {
	//       "c": 1
	//     }
	//   }
	// }
}

// Resolve navigates as deep as the path allows instead of failing on the first missing segment.
func ExampleDocument_Resolve() {
	doc := New()
	_ = doc.Unmarshal([]byte(`{"person":{"name":"John"}}`))

	fmt.Println(doc.Resolve("person.name"))
	// The missing segments stop navigation at the deepest valid node, person itself.
	fmt.Println(doc.Resolve("person.missing.deep"))
	// Output:
	// John
	// {"name":"John"}
}

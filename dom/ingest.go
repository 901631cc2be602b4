package dom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andygello555/json-bind/dom/node"
	"github.com/andygello555/json-bind/utils"
	"github.com/hjson/hjson-go"
)

// Options controlling how the ingestor converts JSON arrays.
type ParseOptions struct {
	// When true, array elements that are not objects are dropped while converting (the strict
	// object-array variant). The default (general) mode keeps scalar, array and object elements
	// alike. The two modes are never mixed within one conversion.
	ObjectArraysOnly bool
}

// Parses the given JSON text into a document tree in the general array mode.
//
// The contract is best-effort: a syntactically valid document whose top-level value is not an object
// yields an empty Object node, never an error. Only malformed JSON text aborts, with a ParseError.
// Member order is preserved, numeric literals are narrowed with node.ParseNumber and null members
// are omitted entirely.
func Parse(jsonBytes []byte) (*node.Object, error) {
	return ParseWithOptions(jsonBytes, ParseOptions{})
}

// Parses the given JSON text into a document tree using the given ParseOptions.
// See Parse for the conversion contract.
func ParseWithOptions(jsonBytes []byte, opts ParseOptions) (*node.Object, error) {
	// A token-driven decode keeps the member order that json.Unmarshal into a Go map would lose
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.UseNumber()

	value, err := parseValue(dec, opts)
	if err != nil {
		return node.NewObject(), utils.ParseError.FillError(err.Error())
	}
	// The decoder must be exhausted: trailing content makes the whole text malformed
	if _, err = dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected content after the top-level value")
		}
		return node.NewObject(), utils.ParseError.FillError(err.Error())
	}
	root, ok := value.(*node.Object)
	if !ok {
		// Best effort: non-object top level (array, scalar, null) becomes an empty document
		return node.NewObject(), nil
	}
	return root, nil
}

// Parses a hand-authored hjson document into a document tree.
//
// hjson decodes through Go maps, so member order is normalised to sorted order and numbers arrive as
// float64 without the literal-narrowing rule. The best-effort contract matches Parse: a non-object
// root yields an empty Object and only malformed text returns a ParseError.
func ParseRelaxed(hjsonBytes []byte) (*node.Object, error) {
	var insides map[string]interface{}
	if err := hjson.Unmarshal(hjsonBytes, &insides); err != nil {
		// An array or scalar at the root is valid hjson but not a document tree
		var root interface{}
		if rootErr := hjson.Unmarshal(hjsonBytes, &root); rootErr == nil {
			return node.NewObject(), nil
		}
		return node.NewObject(), utils.ParseError.FillError(err.Error())
	}
	return node.NewObjectFromMap(insides), nil
}

func parseValue(dec *json.Decoder, opts ParseOptions) (node.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, opts)
		case '[':
			return parseArray(dec, opts)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return t, nil
	case bool:
		return t, nil
	case json.Number:
		return node.ParseNumber(t.String()), nil
	}
	// JSON null: absence, not a null-valued entry
	return nil, nil
}

func parseObject(dec *json.Decoder, opts ParseOptions) (*node.Object, error) {
	obj := node.NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)
		value, err := parseValue(dec, opts)
		if err != nil {
			return nil, err
		}
		// Null members are omitted; an Object under construction has no listeners so Set is silent
		if value != nil {
			obj.Set(key, value)
		}
	}
	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, opts ParseOptions) (*node.Array, error) {
	arr := node.NewArray()
	for dec.More() {
		value, err := parseValue(dec, opts)
		if err != nil {
			return nil, err
		}
		if opts.ObjectArraysOnly {
			if _, isObj := value.(*node.Object); !isObj {
				continue
			}
		}
		arr.Append(value)
	}
	// Consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Provides JSON Schema validation for documents.
package schema

import (
	"github.com/andygello555/json-bind/dom"
	"github.com/andygello555/json-bind/utils"
	"github.com/xeipuuv/gojsonschema"
)

// Validator validates serialized documents against a JSON Schema.
type Validator struct {
	schemaLoader gojsonschema.JSONLoader
}

// Creates a validator from schema bytes.
// Returns a pointer to a Validator.
func NewValidator(schemaData []byte) *Validator {
	return &Validator{schemaLoader: gojsonschema.NewBytesLoader(schemaData)}
}

// Validates raw JSON bytes against the schema.
// Returns a SchemaError carrying every failure description, or nil when the data conforms.
func (v *Validator) Validate(data []byte) error {
	result, err := gojsonschema.Validate(v.schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return utils.SchemaError.FillError(err.Error())
	}
	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}
		return utils.SchemaError.FillError(descriptions...)
	}
	return nil
}

// Validates the current serialized form of the given document.
func (v *Validator) ValidateDocument(doc *dom.Document) error {
	out, err := doc.Marshal()
	if err != nil {
		return utils.SchemaError.FillError(err.Error())
	}
	return v.Validate(out)
}

// Package jsonschema holds the JSON Schema document the validators export.
package jsonschema

// Draft is the $schema URI stamped on root documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type string   `json:"type,omitempty"`
	Enum []string `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// AsRoot returns a copy of s stamped with the draft URI.
func (s Schema) AsRoot() *Schema {
	s.SchemaURI = Draft
	return &s
}

package openai

import (
	"encoding/json"
	"fmt"

	"github.com/swaggest/jsonschema-go"
)

// JSONSchemaType is the "type" keyword of a JSON Schema
type JSONSchemaType string

const (
	JSONSchemaTypeObject  JSONSchemaType = "object"
	JSONSchemaTypeNumber  JSONSchemaType = "number"
	JSONSchemaTypeInteger JSONSchemaType = "integer"
	JSONSchemaTypeString  JSONSchemaType = "string"
	JSONSchemaTypeArray   JSONSchemaType = "array"
	JSONSchemaTypeNull    JSONSchemaType = "null"
	JSONSchemaTypeBoolean JSONSchemaType = "boolean"
)

// JSONSchemaDefine is a hand-built JSON Schema node
type JSONSchemaDefine struct {
	Type        JSONSchemaType               `json:"type,omitempty"`
	Description string                       `json:"description,omitempty"`
	Enum        []string                     `json:"enum,omitempty"`
	Properties  map[string]*JSONSchemaDefine `json:"properties,omitempty"`
	Required    []string                     `json:"required,omitempty"`
	Items       *JSONSchemaDefine            `json:"items,omitempty"`
}

// FunctionParameters is the top level object schema of a function tool
type FunctionParameters struct {
	Type       JSONSchemaType               `json:"type"`
	Properties map[string]*JSONSchemaDefine `json:"properties"`
	Required   []string                     `json:"required,omitempty"`
}

// NewFunctionParameters creates an object schema with the given properties
func NewFunctionParameters(properties map[string]*JSONSchemaDefine, required ...string) FunctionParameters {
	if properties == nil {
		properties = map[string]*JSONSchemaDefine{}
	}
	return FunctionParameters{
		Type:       JSONSchemaTypeObject,
		Properties: properties,
		Required:   required,
	}
}

// SchemaFromStruct generates a JSON Schema from a Go struct using the swaggest/jsonschema-go library
//
// Example:
//
//	type Person struct {
//	    Name string `json:"name" required:"true" description:"Full name"`
//	    Age  int    `json:"age" minimum:"0" maximum:"150"`
//	}
//	schema, err := SchemaFromStruct(Person{})
func SchemaFromStruct(structType any) (jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{}

	schema, err := reflector.Reflect(structType)
	if err != nil {
		return jsonschema.Schema{}, fmt.Errorf("failed to reflect struct to JSON schema: %w", err)
	}

	return schema, nil
}

// SchemaFromStructAsMap generates a JSON Schema as map[string]any from a Go
// struct, suitable for FunctionDefinition.Parameters
func SchemaFromStructAsMap(structType any) (map[string]any, error) {
	schema, err := SchemaFromStruct(structType)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}

	var schemaMap map[string]any
	if err := json.Unmarshal(jsonBytes, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON to map: %w", err)
	}

	return schemaMap, nil
}

// ResponseFormatType defines the type of response format
type ResponseFormatType string

const (
	// ResponseFormatText indicates plain text response (default)
	ResponseFormatText ResponseFormatType = "text"
	// ResponseFormatJSON indicates JSON object response without strict schema
	ResponseFormatJSON ResponseFormatType = "json_object"
	// ResponseFormatJSONSchema indicates JSON response with strict schema validation
	ResponseFormatJSONSchema ResponseFormatType = "json_schema"
)

// Known reports whether t is a defined response format type
func (t ResponseFormatType) Known() bool {
	switch t {
	case ResponseFormatText, ResponseFormatJSON, ResponseFormatJSONSchema:
		return true
	default:
		return false
	}
}

// ResponseFormat specifies the desired response format for chat completions
type ResponseFormat struct {
	Type       ResponseFormatType `json:"type"`
	JSONSchema *JSONSchema        `json:"json_schema,omitempty"`
}

// JSONSchema is a named schema for structured outputs
type JSONSchema struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      any    `json:"schema"`
	Strict      *bool  `json:"strict,omitempty"`
}

// NewJSONResponseFormat creates a ResponseFormat for basic JSON object output (no schema)
func NewJSONResponseFormat() *ResponseFormat {
	return &ResponseFormat{Type: ResponseFormatJSON}
}

// NewJSONSchemaResponseFormat creates a ResponseFormat with JSON Schema
func NewJSONSchemaResponseFormat(name, description string, schema any) *ResponseFormat {
	return &ResponseFormat{
		Type: ResponseFormatJSONSchema,
		JSONSchema: &JSONSchema{
			Name:        name,
			Description: description,
			Schema:      schema,
		},
	}
}

// NewJSONSchemaResponseFormatStrict creates a ResponseFormat with strict JSON Schema validation
func NewJSONSchemaResponseFormatStrict(name, description string, schema any) *ResponseFormat {
	rf := NewJSONSchemaResponseFormat(name, description, schema)
	rf.JSONSchema.Strict = Ptr(true)
	return rf
}

// NewJSONSchemaResponseFormatFromStruct creates a ResponseFormat with the JSON Schema of a Go struct
func NewJSONSchemaResponseFormatFromStruct(name, description string, structType any) (*ResponseFormat, error) {
	schema, err := SchemaFromStructAsMap(structType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema from struct: %w", err)
	}
	return NewJSONSchemaResponseFormat(name, description, schema), nil
}

// Tool and tool call types
package openai

import (
	"encoding/json"
	"fmt"
)

// ToolType identifies the kind of tool
type ToolType string

const (
	ToolTypeFunction        ToolType = "function"
	ToolTypeCodeInterpreter ToolType = "code_interpreter"
	ToolTypeRetrieval       ToolType = "retrieval"
)

// Known reports whether t is a defined tool type
func (t ToolType) Known() bool {
	switch t {
	case ToolTypeFunction, ToolTypeCodeInterpreter, ToolTypeRetrieval:
		return true
	default:
		return false
	}
}

func (t ToolType) String() string { return string(t) }

// Tool represents a tool the model may call
type Tool struct {
	Type     ToolType            `json:"type"`
	Function *FunctionDefinition `json:"function,omitempty"`
}

// FunctionDefinition describes a function the model may call
type FunctionDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Parameters is a JSON Schema object: a FunctionParameters, a map, raw
	// JSON or anything else that marshals to a schema.
	Parameters any   `json:"parameters,omitempty"`
	Strict     *bool `json:"strict,omitempty"`
}

// ToolCall represents a tool call made by the model
type ToolCall struct {
	ID       string       `json:"id"`
	Type     ToolType     `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall represents the function call details
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// DecodeArguments unmarshals the JSON encoded arguments into v
func (tc ToolCall) DecodeArguments(v any) error {
	if err := json.Unmarshal([]byte(tc.Function.Arguments), v); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", tc.Function.Name, err)
	}
	return nil
}

// NewFunctionTool creates a function tool. params may be nil, a ready schema
// (FunctionParameters, map or json.RawMessage) or a Go struct whose JSON
// Schema is derived with SchemaFromStructAsMap.
func NewFunctionTool(name, description string, params any) (Tool, error) {
	var schema any
	switch p := params.(type) {
	case nil:
	case FunctionParameters, *FunctionParameters, map[string]any, json.RawMessage:
		schema = p
	default:
		m, err := SchemaFromStructAsMap(p)
		if err != nil {
			return Tool{}, fmt.Errorf("failed to build parameters for %s: %w", name, err)
		}
		schema = m
	}

	return Tool{
		Type: ToolTypeFunction,
		Function: &FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
	}, nil
}

// ToolChoiceMode is the string form of tool_choice
type ToolChoiceMode string

const (
	ToolChoiceModeNone     ToolChoiceMode = "none"
	ToolChoiceModeAuto     ToolChoiceMode = "auto"
	ToolChoiceModeRequired ToolChoiceMode = "required"
)

// Known reports whether m is a defined mode
func (m ToolChoiceMode) Known() bool {
	switch m {
	case ToolChoiceModeNone, ToolChoiceModeAuto, ToolChoiceModeRequired:
		return true
	default:
		return false
	}
}

// ToolChoice controls which tool the model calls: a mode, or one specific
// function when Function is set.
type ToolChoice struct {
	Mode     ToolChoiceMode
	Function string
}

// ToolChoiceNone forbids tool calls
func ToolChoiceNone() *ToolChoice { return &ToolChoice{Mode: ToolChoiceModeNone} }

// ToolChoiceAuto lets the model decide
func ToolChoiceAuto() *ToolChoice { return &ToolChoice{Mode: ToolChoiceModeAuto} }

// ToolChoiceRequired forces at least one tool call
func ToolChoiceRequired() *ToolChoice { return &ToolChoice{Mode: ToolChoiceModeRequired} }

// ToolChoiceFunction forces a call to the named function
func ToolChoiceFunction(name string) *ToolChoice { return &ToolChoice{Function: name} }

type toolChoiceObject struct {
	Type     ToolType `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

// MarshalJSON implements json.Marshaler
func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	if tc.Function == "" {
		return json.Marshal(tc.Mode)
	}
	obj := toolChoiceObject{Type: ToolTypeFunction}
	obj.Function.Name = tc.Function
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler
func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		*tc = ToolChoice{Mode: ToolChoiceMode(mode)}
		return nil
	}
	var obj toolChoiceObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*tc = ToolChoice{Function: obj.Function.Name}
	return nil
}

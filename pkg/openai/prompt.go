package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// Prompts holds configured system and user prompts, as found in the prompts
// section of a config file
type Prompts struct {
	System []string `yaml:"system,omitempty" json:"system,omitempty"`
	User   []string `yaml:"user,omitempty" json:"user,omitempty"`
}

// SystemText joins the system prompts with newlines
func (p Prompts) SystemText() string {
	return strings.Join(p.System, "\n")
}

// UserText joins the user prompts with newlines
func (p Prompts) UserText() string {
	return strings.Join(p.User, "\n")
}

// Messages returns a system message and a user message for the non-empty
// prompt groups, in that order
func (p Prompts) Messages() []ChatCompletionMessage {
	var messages []ChatCompletionMessage
	if len(p.System) > 0 {
		messages = append(messages, SystemMessage(p.SystemText()))
	}
	if len(p.User) > 0 {
		messages = append(messages, UserMessage(p.UserText()))
	}
	return messages
}

// PromptTemplate is a text/template rendered into message text
type PromptTemplate struct {
	Template string
}

// NewPromptTemplate creates a template from its source
func NewPromptTemplate(tmpl string) PromptTemplate {
	return PromptTemplate{Template: tmpl}
}

// Render executes the template with the given inputs
func (pt PromptTemplate) Render(inputs map[string]any) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(pt.Template)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, inputs); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return buf.String(), nil
}

// RenderWithSchemaFor renders the template with the JSON schema of v
// available as {{.JSONSchema}}. inputs is not modified.
func (pt PromptTemplate) RenderWithSchemaFor(inputs map[string]any, v any) (string, error) {
	schema, err := SchemaFromStruct(v)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}

	merged := make(map[string]any, len(inputs)+1)
	for k, val := range inputs {
		merged[k] = val
	}
	merged["JSONSchema"] = string(data)
	return pt.Render(merged)
}

// Message renders the template into a message with the given role
func (pt PromptTemplate) Message(role Role, inputs map[string]any) (ChatCompletionMessage, error) {
	text, err := pt.Render(inputs)
	if err != nil {
		return ChatCompletionMessage{}, err
	}
	return NewTextMessage(role, text), nil
}

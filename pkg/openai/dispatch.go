package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// ToolHandlerFunc executes a function tool call. It receives the raw JSON
// arguments chosen by the model and returns the output sent back to it.
type ToolHandlerFunc func(ctx context.Context, arguments json.RawMessage) (string, error)

// ToolDispatcher routes tool calls made by the model to registered Go
// handlers. It is safe for concurrent use.
type ToolDispatcher struct {
	mu       sync.RWMutex
	handlers map[string]ToolHandlerFunc
}

// NewToolDispatcher creates an empty dispatcher
func NewToolDispatcher() *ToolDispatcher {
	return &ToolDispatcher{handlers: make(map[string]ToolHandlerFunc)}
}

// Register adds or replaces the handler for the named function
func (d *ToolDispatcher) Register(name string, handler ToolHandlerFunc) {
	if handler == nil {
		panic("handler function cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = handler
}

// Handles reports whether a handler is registered for name
func (d *ToolDispatcher) Handles(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[name]
	return ok
}

// Names returns the registered function names, sorted
func (d *ToolDispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the handler for a single tool call
func (d *ToolDispatcher) Call(ctx context.Context, call ToolCall) (string, error) {
	if call.Type != "" && call.Type != ToolTypeFunction {
		return "", fmt.Errorf("tool call %s: unsupported tool type %q", call.ID, call.Type)
	}

	d.mu.RLock()
	handler, ok := d.handlers[call.Function.Name]
	d.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no handler registered for tool %q", call.Function.Name)
	}

	args := json.RawMessage(call.Function.Arguments)
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if !json.Valid(args) {
		return "", fmt.Errorf("tool %s: arguments are not valid JSON", call.Function.Name)
	}

	output, err := handler(ctx, args)
	if err != nil {
		return "", fmt.Errorf("tool %s failed: %w", call.Function.Name, err)
	}
	return output, nil
}

// Dispatch runs every call in order and returns the tool messages to append
// to the conversation. It stops at the first failing call.
func (d *ToolDispatcher) Dispatch(ctx context.Context, calls []ToolCall) ([]ChatCompletionMessage, error) {
	messages := make([]ChatCompletionMessage, 0, len(calls))
	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		output, err := d.Call(ctx, call)
		if err != nil {
			return nil, err
		}
		messages = append(messages, ToolMessage(call.ID, output))
	}
	return messages, nil
}

// Outputs runs every call and returns them as run tool outputs, ready for
// SubmitToolOutputs.
func (d *ToolDispatcher) Outputs(ctx context.Context, calls []ToolCall) ([]ToolOutput, error) {
	outputs := make([]ToolOutput, 0, len(calls))
	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		output, err := d.Call(ctx, call)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, ToolOutput{ToolCallID: call.ID, Output: output})
	}
	return outputs, nil
}

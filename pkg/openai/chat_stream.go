package openai

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
)

// ChatCompletionChunk is one streamed piece of a chat completion
type ChatCompletionChunk struct {
	ID                string                      `json:"id"`
	Object            string                      `json:"object"`
	Created           int64                       `json:"created"`
	Model             Model                       `json:"model"`
	SystemFingerprint string                      `json:"system_fingerprint,omitempty"`
	Choices           []ChatCompletionChunkChoice `json:"choices"`
	Usage             *Usage                      `json:"usage,omitempty"`
}

// ChatCompletionChunkChoice represents a choice in the streaming response
type ChatCompletionChunkChoice struct {
	Index        int                 `json:"index"`
	Delta        ChatCompletionDelta `json:"delta"`
	FinishReason FinishReason        `json:"finish_reason,omitempty"`
}

// ChatCompletionDelta represents incremental updates to a message
type ChatCompletionDelta struct {
	Role      Role            `json:"role,omitempty"`
	Content   string          `json:"content,omitempty"`
	ToolCalls []ToolCallDelta `json:"tool_calls,omitempty"`
}

// ToolCallDelta represents an incremental tool call update
type ToolCallDelta struct {
	Index    int               `json:"index"`
	ID       string            `json:"id,omitempty"`
	Type     ToolType          `json:"type,omitempty"`
	Function FunctionCallDelta `json:"function"`
}

// FunctionCallDelta represents incremental function call details
type FunctionCallDelta struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ChatCompletionStream is the stream returned by CreateChatCompletionStream
type ChatCompletionStream = Stream[ChatCompletionChunk]

// CreateChatCompletionStream sends a chat completion request with streaming
// enabled and returns the open stream. The caller must drain or Close it.
func (c *Client) CreateChatCompletionStream(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionStream, error) {
	req.Stream = true
	return doStream[ChatCompletionChunk](ctx, c, "/chat/completions", req)
}

// ChatStreamAccumulator rebuilds a complete response from streamed chunks:
// content is concatenated and tool call fragments are merged by index.
type ChatStreamAccumulator struct {
	response ChatCompletionResponse
	choices  map[int]*accumulatedChoice
}

type accumulatedChoice struct {
	role         Role
	content      strings.Builder
	finishReason FinishReason
	toolCalls    map[int]*accumulatedToolCall
}

type accumulatedToolCall struct {
	id        string
	typ       ToolType
	name      string
	arguments strings.Builder
}

// NewChatStreamAccumulator creates an empty accumulator
func NewChatStreamAccumulator() *ChatStreamAccumulator {
	return &ChatStreamAccumulator{choices: make(map[int]*accumulatedChoice)}
}

// Add merges a chunk into the accumulated response
func (a *ChatStreamAccumulator) Add(chunk ChatCompletionChunk) {
	if a.response.ID == "" {
		a.response.ID = chunk.ID
		a.response.Created = chunk.Created
		a.response.Model = chunk.Model
		a.response.Object = "chat.completion"
	}
	if chunk.SystemFingerprint != "" {
		a.response.SystemFingerprint = chunk.SystemFingerprint
	}
	if chunk.Usage != nil {
		usage := *chunk.Usage
		a.response.Usage = &usage
	}

	for _, c := range chunk.Choices {
		choice, ok := a.choices[c.Index]
		if !ok {
			choice = &accumulatedChoice{toolCalls: make(map[int]*accumulatedToolCall)}
			a.choices[c.Index] = choice
		}

		if c.Delta.Role != "" {
			choice.role = c.Delta.Role
		}
		choice.content.WriteString(c.Delta.Content)
		if c.FinishReason != "" && c.FinishReason != FinishReasonNull {
			choice.finishReason = c.FinishReason
		}

		for _, d := range c.Delta.ToolCalls {
			call, ok := choice.toolCalls[d.Index]
			if !ok {
				call = &accumulatedToolCall{}
				choice.toolCalls[d.Index] = call
			}
			if d.ID != "" {
				call.id = d.ID
			}
			if d.Type != "" {
				call.typ = d.Type
			}
			if d.Function.Name != "" {
				call.name = d.Function.Name
			}
			call.arguments.WriteString(d.Function.Arguments)
		}
	}
}

// Response returns the response assembled so far
func (a *ChatStreamAccumulator) Response() *ChatCompletionResponse {
	resp := a.response
	resp.Choices = make([]ChatCompletionChoice, 0, len(a.choices))

	for _, index := range sortedKeys(a.choices) {
		choice := a.choices[index]
		role := choice.role
		if role == "" {
			role = RoleAssistant
		}

		msg := ChatCompletionMessage{Role: role, Content: TextContent(choice.content.String())}
		for _, ti := range sortedKeys(choice.toolCalls) {
			call := choice.toolCalls[ti]
			typ := call.typ
			if typ == "" {
				typ = ToolTypeFunction
			}
			msg.ToolCalls = append(msg.ToolCalls, ToolCall{
				ID:   call.id,
				Type: typ,
				Function: FunctionCall{
					Name:      call.name,
					Arguments: call.arguments.String(),
				},
			})
		}

		resp.Choices = append(resp.Choices, ChatCompletionChoice{
			Index:        index,
			Message:      msg,
			FinishReason: choice.finishReason,
		})
	}
	return &resp
}

// CollectChatStream drains the stream into a single response and closes it.
// The response headers are those of the streaming call.
func CollectChatStream(stream *ChatCompletionStream) (*ChatCompletionResponse, error) {
	defer func() { _ = stream.Close() }()

	acc := NewChatStreamAccumulator()
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		acc.Add(chunk)
	}

	resp := acc.Response()
	resp.setHeader(stream.Header())
	return resp, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

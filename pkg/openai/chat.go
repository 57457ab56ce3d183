// Chat completion requests, responses and endpoint
package openai

import (
	"context"
	"encoding/json"
	"net/http"
)

// ChatCompletionMessage is a single message of a conversation
type ChatCompletionMessage struct {
	Role       Role       `json:"role"`
	Content    Content    `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// MarshalJSON omits the content of assistant turns that only carry tool
// calls; every other message sends it, even when empty.
func (m ChatCompletionMessage) MarshalJSON() ([]byte, error) {
	type plain ChatCompletionMessage
	if m.Content.IsZero() && len(m.ToolCalls) > 0 {
		return json.Marshal(struct {
			plain
			Content *Content `json:"content,omitempty"`
		}{plain: plain(m)})
	}
	return json.Marshal(plain(m))
}

// NewTextMessage creates a message with plain text content
func NewTextMessage(role Role, text string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: role, Content: TextContent(text)}
}

// SystemMessage creates a system message
func SystemMessage(text string) ChatCompletionMessage {
	return NewTextMessage(RoleSystem, text)
}

// UserMessage creates a user message
func UserMessage(text string) ChatCompletionMessage {
	return NewTextMessage(RoleUser, text)
}

// UserMessageParts creates a multi-modal user message
func UserMessageParts(parts ...ContentPart) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleUser, Content: PartsContent(parts...)}
}

// AssistantMessage creates an assistant message
func AssistantMessage(text string) ChatCompletionMessage {
	return NewTextMessage(RoleAssistant, text)
}

// ToolMessage creates the reply to a tool call
func ToolMessage(toolCallID, content string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleTool, Content: TextContent(content), ToolCallID: toolCallID}
}

// Text returns the message text
func (m ChatCompletionMessage) Text() string {
	return m.Content.String()
}

// HasToolCalls checks if the message contains any tool calls
func (m ChatCompletionMessage) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// ChatCompletionRequest represents a chat completion request. Optional
// fields left unset are not sent, so the API applies its own defaults.
type ChatCompletionRequest struct {
	Model            Model                   `json:"model"`
	Messages         []ChatCompletionMessage `json:"messages"`
	Temperature      *float32                `json:"temperature,omitempty"`
	TopP             *float32                `json:"top_p,omitempty"`
	N                *int                    `json:"n,omitempty"`
	ResponseFormat   *ResponseFormat         `json:"response_format,omitempty"`
	Stream           bool                    `json:"stream,omitempty"`
	StreamOptions    *StreamOptions          `json:"stream_options,omitempty"`
	Stop             []string                `json:"stop,omitempty"`
	MaxTokens        *int                    `json:"max_tokens,omitempty"`
	PresencePenalty  *float32                `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float32                `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]int          `json:"logit_bias,omitempty"`
	User             string                  `json:"user,omitempty"`
	Seed             *int64                  `json:"seed,omitempty"`
	Tools            []Tool                  `json:"tools,omitempty"`
	ToolChoice       *ToolChoice             `json:"tool_choice,omitempty"`
}

// StreamOptions tunes streamed responses
type StreamOptions struct {
	// IncludeUsage adds a final chunk carrying token usage
	IncludeUsage bool `json:"include_usage"`
}

// NewChatCompletionRequest creates a request with a single message
func NewChatCompletionRequest(model Model, message ChatCompletionMessage) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:    model,
		Messages: []ChatCompletionMessage{message},
	}
}

// NewChatCompletionRequestMulti creates a request for a whole conversation
func NewChatCompletionRequestMulti(model Model, messages []ChatCompletionMessage) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
}

// NewChatCompletionRequestFromText creates a request asking DefaultModel a
// single user question
func NewChatCompletionRequestFromText(text string) ChatCompletionRequest {
	return NewChatCompletionRequest(DefaultModel, UserMessage(text))
}

// WithMessages appends messages to the conversation
func (r ChatCompletionRequest) WithMessages(messages ...ChatCompletionMessage) ChatCompletionRequest {
	r.Messages = append(append([]ChatCompletionMessage(nil), r.Messages...), messages...)
	return r
}

// WithTemperature sets the sampling temperature
func (r ChatCompletionRequest) WithTemperature(temperature float32) ChatCompletionRequest {
	r.Temperature = &temperature
	return r
}

// WithTopP sets nucleus sampling
func (r ChatCompletionRequest) WithTopP(topP float32) ChatCompletionRequest {
	r.TopP = &topP
	return r
}

// WithN sets how many choices to generate
func (r ChatCompletionRequest) WithN(n int) ChatCompletionRequest {
	r.N = &n
	return r
}

// WithMaxTokens limits the length of the completion
func (r ChatCompletionRequest) WithMaxTokens(maxTokens int) ChatCompletionRequest {
	r.MaxTokens = &maxTokens
	return r
}

// WithStop sets up to four stop sequences
func (r ChatCompletionRequest) WithStop(stop ...string) ChatCompletionRequest {
	r.Stop = stop
	return r
}

// WithPresencePenalty sets the presence penalty
func (r ChatCompletionRequest) WithPresencePenalty(penalty float32) ChatCompletionRequest {
	r.PresencePenalty = &penalty
	return r
}

// WithFrequencyPenalty sets the frequency penalty
func (r ChatCompletionRequest) WithFrequencyPenalty(penalty float32) ChatCompletionRequest {
	r.FrequencyPenalty = &penalty
	return r
}

// WithLogitBias sets the token bias map
func (r ChatCompletionRequest) WithLogitBias(bias map[string]int) ChatCompletionRequest {
	r.LogitBias = bias
	return r
}

// WithUser sets the end-user identifier
func (r ChatCompletionRequest) WithUser(user string) ChatCompletionRequest {
	r.User = user
	return r
}

// WithSeed requests deterministic sampling
func (r ChatCompletionRequest) WithSeed(seed int64) ChatCompletionRequest {
	r.Seed = &seed
	return r
}

// WithTools sets the tools the model may call
func (r ChatCompletionRequest) WithTools(tools ...Tool) ChatCompletionRequest {
	r.Tools = tools
	return r
}

// WithToolChoice controls tool selection
func (r ChatCompletionRequest) WithToolChoice(choice *ToolChoice) ChatCompletionRequest {
	r.ToolChoice = choice
	return r
}

// WithResponseFormat sets the output format
func (r ChatCompletionRequest) WithResponseFormat(format *ResponseFormat) ChatCompletionRequest {
	r.ResponseFormat = format
	return r
}

// FinishReason tells why the model stopped generating
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
	FinishReasonToolCalls     FinishReason = "tool_calls"
	FinishReasonFunctionCall  FinishReason = "function_call"
	// FinishReasonNull is what the API sends while a streamed choice is
	// still being generated; a JSON null decodes to it as well.
	FinishReasonNull FinishReason = "null"
)

// Known reports whether f is a defined finish reason
func (f FinishReason) Known() bool {
	switch f {
	case FinishReasonStop, FinishReasonLength, FinishReasonContentFilter,
		FinishReasonToolCalls, FinishReasonFunctionCall, FinishReasonNull:
		return true
	default:
		return false
	}
}

func (f FinishReason) String() string { return string(f) }

// MarshalJSON writes FinishReasonNull back as a JSON null
func (f FinishReason) MarshalJSON() ([]byte, error) {
	if f == FinishReasonNull {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}

// UnmarshalJSON maps a JSON null to FinishReasonNull
func (f *FinishReason) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FinishReasonNull
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FinishReason(s)
	return nil
}

// FinishDetails is reported by some vision models instead of finish_reason
type FinishDetails struct {
	Type string `json:"type"`
	Stop string `json:"stop,omitempty"`
}

// ChatCompletionChoice represents a single response choice
type ChatCompletionChoice struct {
	Index         int                   `json:"index"`
	Message       ChatCompletionMessage `json:"message"`
	FinishReason  FinishReason          `json:"finish_reason,omitempty"`
	FinishDetails *FinishDetails        `json:"finish_details,omitempty"`
}

// WantsToolExecution checks if this choice indicates the model wants to execute tools
func (c ChatCompletionChoice) WantsToolExecution() bool {
	return c.FinishReason == FinishReasonToolCalls || c.Message.HasToolCalls()
}

// ChatCompletionResponse represents a chat completion response
type ChatCompletionResponse struct {
	ResponseMeta
	ID                string                 `json:"id"`
	Object            string                 `json:"object"`
	Created           int64                  `json:"created"`
	Model             Model                  `json:"model"`
	SystemFingerprint string                 `json:"system_fingerprint,omitempty"`
	Choices           []ChatCompletionChoice `json:"choices"`
	Usage             *Usage                 `json:"usage,omitempty"`
}

// FirstChoice returns the first choice, if any
func (r *ChatCompletionResponse) FirstChoice() (ChatCompletionChoice, bool) {
	if r == nil || len(r.Choices) == 0 {
		return ChatCompletionChoice{}, false
	}
	return r.Choices[0], true
}

// Content returns the text of the first choice
func (r *ChatCompletionResponse) Content() string {
	choice, ok := r.FirstChoice()
	if !ok {
		return ""
	}
	return choice.Message.Text()
}

// ToolCalls returns all tool calls from all choices in the response
func (r *ChatCompletionResponse) ToolCalls() []ToolCall {
	if r == nil {
		return nil
	}
	var calls []ToolCall
	for _, choice := range r.Choices {
		calls = append(calls, choice.Message.ToolCalls...)
	}
	return calls
}

// CreateChatCompletion sends a chat completion request. req.Stream is
// ignored; use CreateChatCompletionStream for streamed output.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	req.Stream = false
	req.StreamOptions = nil
	return doJSON[ChatCompletionResponse](ctx, c, http.MethodPost, "/chat/completions", withJSON(req))
}

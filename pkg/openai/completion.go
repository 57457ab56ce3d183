// Legacy text completions
package openai

import (
	"context"
	"net/http"
)

// CompletionRequest represents a text completion request
type CompletionRequest struct {
	Model            Model          `json:"model"`
	Prompt           Input          `json:"prompt"`
	Suffix           string         `json:"suffix,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	Temperature      *float32       `json:"temperature,omitempty"`
	TopP             *float32       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	Stream           bool           `json:"stream,omitempty"`
	Logprobs         *int           `json:"logprobs,omitempty"`
	Echo             *bool          `json:"echo,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	PresencePenalty  *float32       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float32       `json:"frequency_penalty,omitempty"`
	BestOf           *int           `json:"best_of,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             string         `json:"user,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
}

// NewCompletionRequest creates a request for a single prompt
func NewCompletionRequest(model Model, prompt string) CompletionRequest {
	return CompletionRequest{Model: model, Prompt: Input{prompt}}
}

// NewCompletionRequestMulti creates a request completing several prompts at once
func NewCompletionRequestMulti(model Model, prompts []string) CompletionRequest {
	return CompletionRequest{Model: model, Prompt: Input(prompts)}
}

// WithMaxTokens limits the length of each completion
func (r CompletionRequest) WithMaxTokens(maxTokens int) CompletionRequest {
	r.MaxTokens = &maxTokens
	return r
}

// WithTemperature sets the sampling temperature
func (r CompletionRequest) WithTemperature(temperature float32) CompletionRequest {
	r.Temperature = &temperature
	return r
}

// WithTopP sets nucleus sampling
func (r CompletionRequest) WithTopP(topP float32) CompletionRequest {
	r.TopP = &topP
	return r
}

// WithN sets how many completions to generate per prompt
func (r CompletionRequest) WithN(n int) CompletionRequest {
	r.N = &n
	return r
}

// WithSuffix sets the text that follows the insertion point
func (r CompletionRequest) WithSuffix(suffix string) CompletionRequest {
	r.Suffix = suffix
	return r
}

// WithLogprobs requests the log probabilities of the top tokens
func (r CompletionRequest) WithLogprobs(n int) CompletionRequest {
	r.Logprobs = &n
	return r
}

// WithEcho echoes the prompt in the completion
func (r CompletionRequest) WithEcho(echo bool) CompletionRequest {
	r.Echo = &echo
	return r
}

// WithStop sets up to four stop sequences
func (r CompletionRequest) WithStop(stop ...string) CompletionRequest {
	r.Stop = stop
	return r
}

// WithPresencePenalty sets the presence penalty
func (r CompletionRequest) WithPresencePenalty(penalty float32) CompletionRequest {
	r.PresencePenalty = &penalty
	return r
}

// WithFrequencyPenalty sets the frequency penalty
func (r CompletionRequest) WithFrequencyPenalty(penalty float32) CompletionRequest {
	r.FrequencyPenalty = &penalty
	return r
}

// WithBestOf generates n completions server side and returns the best
func (r CompletionRequest) WithBestOf(n int) CompletionRequest {
	r.BestOf = &n
	return r
}

// WithLogitBias sets the token bias map
func (r CompletionRequest) WithLogitBias(bias map[string]int) CompletionRequest {
	r.LogitBias = bias
	return r
}

// WithUser sets the end-user identifier
func (r CompletionRequest) WithUser(user string) CompletionRequest {
	r.User = user
	return r
}

// LogprobResult holds token level log probabilities
type LogprobResult struct {
	Tokens        []string             `json:"tokens"`
	TokenLogprobs []float32            `json:"token_logprobs"`
	TopLogprobs   []map[string]float32 `json:"top_logprobs"`
	TextOffset    []int                `json:"text_offset"`
}

// CompletionChoice is one generated completion
type CompletionChoice struct {
	Text         string         `json:"text"`
	Index        int            `json:"index"`
	FinishReason FinishReason   `json:"finish_reason,omitempty"`
	Logprobs     *LogprobResult `json:"logprobs,omitempty"`
}

// CompletionResponse represents a text completion response. Streamed events
// share the same shape.
type CompletionResponse struct {
	ResponseMeta
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   Model              `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
}

// Text returns the text of the first choice
func (r *CompletionResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}

// CreateCompletion sends a completion request. req.Stream is ignored.
func (c *Client) CreateCompletion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req.Stream = false
	return doJSON[CompletionResponse](ctx, c, http.MethodPost, "/completions", withJSON(req))
}

// CreateCompletionStream sends a completion request with streaming enabled
func (c *Client) CreateCompletionStream(ctx context.Context, req CompletionRequest) (*Stream[CompletionResponse], error) {
	req.Stream = true
	return doStream[CompletionResponse](ctx, c, "/completions", req)
}

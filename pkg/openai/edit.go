package openai

import (
	"context"
	"net/http"
)

// EditRequest asks the model to rewrite input following an instruction
type EditRequest struct {
	Model       Model    `json:"model"`
	Input       string   `json:"input,omitempty"`
	Instruction string   `json:"instruction"`
	N           *int     `json:"n,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
}

// NewEditRequest creates an edit request
func NewEditRequest(model Model, input, instruction string) EditRequest {
	return EditRequest{Model: model, Input: input, Instruction: instruction}
}

// EditChoice is one edited version of the input
type EditChoice struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// EditResponse holds the edits
type EditResponse struct {
	ResponseMeta
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Usage   Usage        `json:"usage"`
	Choices []EditChoice `json:"choices"`
}

// CreateEdit sends an edit request
func (c *Client) CreateEdit(ctx context.Context, req EditRequest) (*EditResponse, error) {
	return doJSON[EditResponse](ctx, c, http.MethodPost, "/edits", withJSON(req))
}

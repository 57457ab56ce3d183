package openai

import (
	"context"
	"net/http"
)

// ThreadMessage is an initial message of a new thread
type ThreadMessage struct {
	Role     Role     `json:"role"`
	Content  string   `json:"content"`
	FileIDs  []string `json:"file_ids,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// ThreadRequest creates a thread
type ThreadRequest struct {
	Messages []ThreadMessage `json:"messages,omitempty"`
	Metadata Metadata        `json:"metadata,omitempty"`
}

// NewThreadRequest creates a thread with the given user messages
func NewThreadRequest(messages ...string) ThreadRequest {
	req := ThreadRequest{}
	for _, m := range messages {
		req.Messages = append(req.Messages, ThreadMessage{Role: RoleUser, Content: m})
	}
	return req
}

// Thread is a conversation with an assistant
type Thread struct {
	ResponseMeta
	ID        string   `json:"id"`
	Object    string   `json:"object"`
	CreatedAt int64    `json:"created_at"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

type metadataRequest struct {
	Metadata Metadata `json:"metadata"`
}

// CreateThread creates a thread
func (c *Client) CreateThread(ctx context.Context, req ThreadRequest) (*Thread, error) {
	return doJSON[Thread](ctx, c, http.MethodPost, "/threads", withJSON(req), withBeta())
}

// RetrieveThread returns a thread
func (c *Client) RetrieveThread(ctx context.Context, threadID string) (*Thread, error) {
	return doJSON[Thread](ctx, c, http.MethodGet, endpoint("/threads/%s", threadID), withBeta())
}

// ModifyThread replaces the metadata of a thread
func (c *Client) ModifyThread(ctx context.Context, threadID string, metadata Metadata) (*Thread, error) {
	return doJSON[Thread](ctx, c, http.MethodPost, endpoint("/threads/%s", threadID),
		withJSON(metadataRequest{Metadata: metadata}), withBeta())
}

// DeleteThread deletes a thread
func (c *Client) DeleteThread(ctx context.Context, threadID string) (*DeletionStatus, error) {
	return doJSON[DeletionStatus](ctx, c, http.MethodDelete, endpoint("/threads/%s", threadID), withBeta())
}

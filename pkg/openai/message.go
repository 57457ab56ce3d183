package openai

import (
	"context"
	"net/http"
	"strings"
)

// MessageRequest adds a message to a thread
type MessageRequest struct {
	Role     Role     `json:"role"`
	Content  string   `json:"content"`
	FileIDs  []string `json:"file_ids,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// NewMessageRequest creates a user message
func NewMessageRequest(content string) MessageRequest {
	return MessageRequest{Role: RoleUser, Content: content}
}

// MessageContentType discriminates the parts of a thread message
type MessageContentType string

const (
	MessageContentText      MessageContentType = "text"
	MessageContentImageFile MessageContentType = "image_file"
)

// Annotation references a file from a text part
type Annotation struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	StartIndex   int           `json:"start_index"`
	EndIndex     int           `json:"end_index"`
	FileCitation *FileCitation `json:"file_citation,omitempty"`
	FilePath     *FilePathRef  `json:"file_path,omitempty"`
}

// FileCitation is a quote taken from a retrieved file
type FileCitation struct {
	FileID string `json:"file_id"`
	Quote  string `json:"quote,omitempty"`
}

// FilePathRef is a file produced by the code interpreter
type FilePathRef struct {
	FileID string `json:"file_id"`
}

// MessageText is the text of a message part
type MessageText struct {
	Value       string       `json:"value"`
	Annotations []Annotation `json:"annotations"`
}

// ImageFile references an image generated by the assistant
type ImageFile struct {
	FileID string `json:"file_id"`
}

// MessageContent is one part of a thread message
type MessageContent struct {
	Type      MessageContentType `json:"type"`
	Text      *MessageText       `json:"text,omitempty"`
	ImageFile *ImageFile         `json:"image_file,omitempty"`
}

// Message is a message in a thread
type Message struct {
	ResponseMeta
	ID          string           `json:"id"`
	Object      string           `json:"object"`
	CreatedAt   int64            `json:"created_at"`
	ThreadID    string           `json:"thread_id"`
	Role        Role             `json:"role"`
	Content     []MessageContent `json:"content"`
	AssistantID *string          `json:"assistant_id,omitempty"`
	RunID       *string          `json:"run_id,omitempty"`
	FileIDs     []string         `json:"file_ids"`
	Metadata    Metadata         `json:"metadata,omitempty"`
}

// Text concatenates the text parts
func (m *Message) Text() string {
	var b strings.Builder
	for _, part := range m.Content {
		if part.Type == MessageContentText && part.Text != nil {
			b.WriteString(part.Text.Value)
		}
	}
	return b.String()
}

// MessageList is the response of ListMessages
type MessageList = List[Message]

// MessageFile links a file to a message
type MessageFile struct {
	ResponseMeta
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	MessageID string `json:"message_id"`
}

// MessageFileList is the response of ListMessageFiles
type MessageFileList = List[MessageFile]

// CreateMessage adds a message to a thread
func (c *Client) CreateMessage(ctx context.Context, threadID string, req MessageRequest) (*Message, error) {
	return doJSON[Message](ctx, c, http.MethodPost, endpoint("/threads/%s/messages", threadID), withJSON(req), withBeta())
}

// RetrieveMessage returns a message
func (c *Client) RetrieveMessage(ctx context.Context, threadID, messageID string) (*Message, error) {
	return doJSON[Message](ctx, c, http.MethodGet, endpoint("/threads/%s/messages/%s", threadID, messageID), withBeta())
}

// ModifyMessage replaces the metadata of a message
func (c *Client) ModifyMessage(ctx context.Context, threadID, messageID string, metadata Metadata) (*Message, error) {
	return doJSON[Message](ctx, c, http.MethodPost, endpoint("/threads/%s/messages/%s", threadID, messageID),
		withJSON(metadataRequest{Metadata: metadata}), withBeta())
}

// ListMessages lists the messages of a thread; params may be nil
func (c *Client) ListMessages(ctx context.Context, threadID string, params *ListParams) (*MessageList, error) {
	return doJSON[MessageList](ctx, c, http.MethodGet, endpoint("/threads/%s/messages", threadID),
		withQuery(params.Values()), withBeta())
}

// RetrieveMessageFile returns a file attached to a message
func (c *Client) RetrieveMessageFile(ctx context.Context, threadID, messageID, fileID string) (*MessageFile, error) {
	return doJSON[MessageFile](ctx, c, http.MethodGet,
		endpoint("/threads/%s/messages/%s/files/%s", threadID, messageID, fileID), withBeta())
}

// ListMessageFiles lists the files of a message; params may be nil
func (c *Client) ListMessageFiles(ctx context.Context, threadID, messageID string, params *ListParams) (*MessageFileList, error) {
	return doJSON[MessageFileList](ctx, c, http.MethodGet,
		endpoint("/threads/%s/messages/%s/files", threadID, messageID), withQuery(params.Values()), withBeta())
}

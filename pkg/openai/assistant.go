// Assistants endpoints (beta)
package openai

import (
	"context"
	"net/http"
)

// AssistantRequest creates or modifies an assistant. On modify only the set
// fields are changed.
type AssistantRequest struct {
	Model        Model    `json:"model,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
	Tools        []Tool   `json:"tools,omitempty"`
	FileIDs      []string `json:"file_ids,omitempty"`
	Metadata     Metadata `json:"metadata,omitempty"`
}

// NewAssistantRequest creates a request with only the model set
func NewAssistantRequest(model Model) AssistantRequest {
	return AssistantRequest{Model: model}
}

// WithName sets the assistant name
func (r AssistantRequest) WithName(name string) AssistantRequest {
	r.Name = &name
	return r
}

// WithDescription sets the assistant description
func (r AssistantRequest) WithDescription(description string) AssistantRequest {
	r.Description = &description
	return r
}

// WithInstructions sets the system instructions
func (r AssistantRequest) WithInstructions(instructions string) AssistantRequest {
	r.Instructions = &instructions
	return r
}

// WithTools sets the enabled tools
func (r AssistantRequest) WithTools(tools ...Tool) AssistantRequest {
	r.Tools = tools
	return r
}

// WithFileIDs attaches files
func (r AssistantRequest) WithFileIDs(ids ...string) AssistantRequest {
	r.FileIDs = ids
	return r
}

// WithMetadata sets the metadata
func (r AssistantRequest) WithMetadata(metadata Metadata) AssistantRequest {
	r.Metadata = metadata
	return r
}

// Assistant is a configured assistant
type Assistant struct {
	ResponseMeta
	ID           string   `json:"id"`
	Object       string   `json:"object"`
	CreatedAt    int64    `json:"created_at"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Model        Model    `json:"model"`
	Instructions *string  `json:"instructions,omitempty"`
	Tools        []Tool   `json:"tools"`
	FileIDs      []string `json:"file_ids"`
	Metadata     Metadata `json:"metadata,omitempty"`
}

// AssistantList is the response of ListAssistants
type AssistantList = List[Assistant]

// AssistantFile links a file to an assistant
type AssistantFile struct {
	ResponseMeta
	ID          string `json:"id"`
	Object      string `json:"object"`
	CreatedAt   int64  `json:"created_at"`
	AssistantID string `json:"assistant_id"`
}

// AssistantFileList is the response of ListAssistantFiles
type AssistantFileList = List[AssistantFile]

type assistantFileRequest struct {
	FileID string `json:"file_id"`
}

// CreateAssistant creates an assistant
func (c *Client) CreateAssistant(ctx context.Context, req AssistantRequest) (*Assistant, error) {
	return doJSON[Assistant](ctx, c, http.MethodPost, "/assistants", withJSON(req), withBeta())
}

// RetrieveAssistant returns an assistant
func (c *Client) RetrieveAssistant(ctx context.Context, assistantID string) (*Assistant, error) {
	return doJSON[Assistant](ctx, c, http.MethodGet, endpoint("/assistants/%s", assistantID), withBeta())
}

// ModifyAssistant changes the set fields of an assistant
func (c *Client) ModifyAssistant(ctx context.Context, assistantID string, req AssistantRequest) (*Assistant, error) {
	return doJSON[Assistant](ctx, c, http.MethodPost, endpoint("/assistants/%s", assistantID), withJSON(req), withBeta())
}

// DeleteAssistant deletes an assistant
func (c *Client) DeleteAssistant(ctx context.Context, assistantID string) (*DeletionStatus, error) {
	return doJSON[DeletionStatus](ctx, c, http.MethodDelete, endpoint("/assistants/%s", assistantID), withBeta())
}

// ListAssistants lists assistants; params may be nil
func (c *Client) ListAssistants(ctx context.Context, params *ListParams) (*AssistantList, error) {
	return doJSON[AssistantList](ctx, c, http.MethodGet, "/assistants", withQuery(params.Values()), withBeta())
}

// CreateAssistantFile attaches an uploaded file to an assistant
func (c *Client) CreateAssistantFile(ctx context.Context, assistantID, fileID string) (*AssistantFile, error) {
	return doJSON[AssistantFile](ctx, c, http.MethodPost, endpoint("/assistants/%s/files", assistantID),
		withJSON(assistantFileRequest{FileID: fileID}), withBeta())
}

// RetrieveAssistantFile returns a file attached to an assistant
func (c *Client) RetrieveAssistantFile(ctx context.Context, assistantID, fileID string) (*AssistantFile, error) {
	return doJSON[AssistantFile](ctx, c, http.MethodGet, endpoint("/assistants/%s/files/%s", assistantID, fileID), withBeta())
}

// DeleteAssistantFile detaches a file from an assistant
func (c *Client) DeleteAssistantFile(ctx context.Context, assistantID, fileID string) (*DeletionStatus, error) {
	return doJSON[DeletionStatus](ctx, c, http.MethodDelete, endpoint("/assistants/%s/files/%s", assistantID, fileID), withBeta())
}

// ListAssistantFiles lists the files of an assistant; params may be nil
func (c *Client) ListAssistantFiles(ctx context.Context, assistantID string, params *ListParams) (*AssistantFileList, error) {
	return doJSON[AssistantFileList](ctx, c, http.MethodGet, endpoint("/assistants/%s/files", assistantID),
		withQuery(params.Values()), withBeta())
}

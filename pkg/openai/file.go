// Files endpoints
package openai

import (
	"context"
	"net/http"
	"net/url"
)

// FilePurpose is the intended use of an uploaded file
type FilePurpose string

const (
	FilePurposeFineTune         FilePurpose = "fine-tune"
	FilePurposeFineTuneResults  FilePurpose = "fine-tune-results"
	FilePurposeAssistants       FilePurpose = "assistants"
	FilePurposeAssistantsOutput FilePurpose = "assistants_output"
	FilePurposeBatch            FilePurpose = "batch"
	FilePurposeVision           FilePurpose = "vision"
)

// Known reports whether p is a defined purpose
func (p FilePurpose) Known() bool {
	switch p {
	case FilePurposeFineTune, FilePurposeFineTuneResults, FilePurposeAssistants,
		FilePurposeAssistantsOutput, FilePurposeBatch, FilePurposeVision:
		return true
	default:
		return false
	}
}

func (p FilePurpose) String() string { return string(p) }

// File describes an uploaded file
type File struct {
	ResponseMeta
	ID            string      `json:"id"`
	Object        string      `json:"object"`
	Bytes         int64       `json:"bytes"`
	CreatedAt     int64       `json:"created_at"`
	Filename      string      `json:"filename"`
	Purpose       FilePurpose `json:"purpose"`
	Status        string      `json:"status,omitempty"`
	StatusDetails string      `json:"status_details,omitempty"`
}

// FileList is the response of ListFiles
type FileList = List[File]

// FileUploadRequest uploads a file for later use
type FileUploadRequest struct {
	File    FileInput
	Purpose FilePurpose
}

// NewFileUploadRequest uploads a local file
func NewFileUploadRequest(path string, purpose FilePurpose) FileUploadRequest {
	return FileUploadRequest{File: FileFromPath(path), Purpose: purpose}
}

// ListFiles lists uploaded files, optionally only those with the given purpose
func (c *Client) ListFiles(ctx context.Context, purpose FilePurpose) (*FileList, error) {
	q := url.Values{}
	if purpose != "" {
		q.Set("purpose", string(purpose))
	}
	return doJSON[FileList](ctx, c, http.MethodGet, "/files", withQuery(q))
}

// UploadFile uploads a file as a multipart form
func (c *Client) UploadFile(ctx context.Context, req FileUploadRequest) (*File, error) {
	f := newForm().
		field("purpose", string(req.Purpose)).
		file("file", req.File)
	return doJSON[File](ctx, c, http.MethodPost, "/files", withForm(f))
}

// RetrieveFile returns information about a file
func (c *Client) RetrieveFile(ctx context.Context, fileID string) (*File, error) {
	return doJSON[File](ctx, c, http.MethodGet, endpoint("/files/%s", fileID))
}

// DeleteFile deletes a file
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*DeletionStatus, error) {
	return doJSON[DeletionStatus](ctx, c, http.MethodDelete, endpoint("/files/%s", fileID))
}

// RetrieveFileContent downloads the content of a file. The caller must
// close the returned body.
func (c *Client) RetrieveFileContent(ctx context.Context, fileID string) (*RawResponse, error) {
	return c.doRaw(ctx, http.MethodGet, endpoint("/files/%s/content", fileID))
}

package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

// EmbeddingEncodingFormat selects how vectors are returned
type EmbeddingEncodingFormat string

const (
	EmbeddingEncodingFloat  EmbeddingEncodingFormat = "float"
	EmbeddingEncodingBase64 EmbeddingEncodingFormat = "base64"
)

// EmbeddingRequest asks for the embedding of one or more inputs
type EmbeddingRequest struct {
	Model          Model                   `json:"model"`
	Input          Input                   `json:"input"`
	Dimensions     *int                    `json:"dimensions,omitempty"`
	EncodingFormat EmbeddingEncodingFormat `json:"encoding_format,omitempty"`
	User           string                  `json:"user,omitempty"`
}

// NewEmbeddingRequest creates a request for a single input
func NewEmbeddingRequest(model Model, input string) EmbeddingRequest {
	return EmbeddingRequest{Model: model, Input: Input{input}}
}

// NewEmbeddingRequestMulti creates a request embedding several inputs
func NewEmbeddingRequestMulti(model Model, inputs []string) EmbeddingRequest {
	return EmbeddingRequest{Model: model, Input: Input(inputs)}
}

// WithDimensions truncates the embeddings to n dimensions
func (r EmbeddingRequest) WithDimensions(n int) EmbeddingRequest {
	r.Dimensions = &n
	return r
}

// WithUser sets the end-user identifier
func (r EmbeddingRequest) WithUser(user string) EmbeddingRequest {
	r.User = user
	return r
}

// Embedding is the vector for one input
type Embedding struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// UnmarshalJSON accepts the vector either as a float array or, with
// EmbeddingEncodingBase64, as base64 of little-endian float32 values.
func (e *Embedding) UnmarshalJSON(data []byte) error {
	var raw struct {
		Object    string          `json:"object"`
		Embedding json.RawMessage `json:"embedding"`
		Index     int             `json:"index"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Embedding{Object: raw.Object, Index: raw.Index}

	vec := bytes.TrimSpace(raw.Embedding)
	if len(vec) == 0 || bytes.Equal(vec, []byte("null")) {
		return nil
	}
	if vec[0] != '"' {
		return json.Unmarshal(vec, &e.Embedding)
	}

	var encoded string
	if err := json.Unmarshal(vec, &encoded); err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("invalid base64 embedding: %w", err)
	}
	if len(decoded)%4 != 0 {
		return fmt.Errorf("invalid base64 embedding: %d bytes is not a multiple of 4", len(decoded))
	}
	e.Embedding = make([]float32, len(decoded)/4)
	for i := range e.Embedding {
		e.Embedding[i] = math.Float32frombits(binary.LittleEndian.Uint32(decoded[i*4:]))
	}
	return nil
}

// EmbeddingResponse holds one embedding per input, in input order
type EmbeddingResponse struct {
	ResponseMeta
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  Model       `json:"model"`
	Usage  Usage       `json:"usage"`
}

// CreateEmbeddings computes embeddings
func (c *Client) CreateEmbeddings(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	return doJSON[EmbeddingResponse](ctx, c, http.MethodPost, "/embeddings", withJSON(req))
}

// Model identifiers and the models endpoints
package openai

import (
	"context"
	"net/http"
)

// Model identifies a model. Any string is accepted; the constants below are
// the identifiers this package knows about.
type Model string

// GPT-4 family
const (
	GPT4o            Model = "gpt-4o"
	GPT4Turbo        Model = "gpt-4-turbo"
	GPT4TurboPreview Model = "gpt-4-turbo-preview"
	GPT4             Model = "gpt-4"
	GPT40125Preview  Model = "gpt-4-0125-preview"
)

// GPT-3.5 family
const (
	GPT35Turbo         Model = "gpt-3.5-turbo"
	GPT35TurboInstruct Model = "gpt-3.5-turbo-instruct"
	GPT35Turbo0125     Model = "gpt-3.5-turbo-0125"
)

// Image, audio, embedding and moderation models
const (
	DallE2 Model = "dall-e-2"
	DallE3 Model = "dall-e-3"

	Whisper1 Model = "whisper-1"
	TTS1     Model = "tts-1"
	TTS1HD   Model = "tts-1-hd"

	TextEmbeddingAda002 Model = "text-embedding-ada-002"
	TextEmbedding3Small Model = "text-embedding-3-small"
	TextEmbedding3Large Model = "text-embedding-3-large"

	TextModerationLatest Model = "text-moderation-latest"
	TextModerationStable Model = "text-moderation-stable"

	TextDavinciEdit001 Model = "text-davinci-edit-001"
)

// DefaultModel is used by constructors that do not take a model
const DefaultModel = GPT4o

var knownModels = map[Model]bool{
	GPT4o: true, GPT4Turbo: true, GPT4TurboPreview: true, GPT4: true, GPT40125Preview: true,
	GPT35Turbo: true, GPT35TurboInstruct: true, GPT35Turbo0125: true,
	DallE2: true, DallE3: true,
	Whisper1: true, TTS1: true, TTS1HD: true,
	TextEmbeddingAda002: true, TextEmbedding3Small: true, TextEmbedding3Large: true,
	TextModerationLatest: true, TextModerationStable: true,
	TextDavinciEdit001: true,
}

// Known reports whether m is one of the identifiers defined by this package
func (m Model) Known() bool {
	return knownModels[m]
}

func (m Model) String() string { return string(m) }

// ModelObject describes a model available to the account
type ModelObject struct {
	ResponseMeta
	ID      Model  `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the response of ListModels
type ModelList = List[ModelObject]

// ListModels lists the models available to the account
func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	return doJSON[ModelList](ctx, c, http.MethodGet, "/models")
}

// RetrieveModel returns a single model
func (c *Client) RetrieveModel(ctx context.Context, id Model) (*ModelObject, error) {
	return doJSON[ModelObject](ctx, c, http.MethodGet, endpoint("/models/%s", string(id)))
}

// DeleteFineTunedModel deletes a model created by a fine-tuning job
func (c *Client) DeleteFineTunedModel(ctx context.Context, id Model) (*DeletionStatus, error) {
	return doJSON[DeletionStatus](ctx, c, http.MethodDelete, endpoint("/models/%s", string(id)))
}

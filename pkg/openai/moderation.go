package openai

import (
	"context"
	"net/http"
)

// ModerationRequest classifies text against the usage policies
type ModerationRequest struct {
	Input Input `json:"input"`
	Model Model `json:"model,omitempty"`
}

// NewModerationRequest creates a request for a single text
func NewModerationRequest(input string) ModerationRequest {
	return ModerationRequest{Input: Input{input}}
}

// NewModerationRequestMulti creates a request for several texts
func NewModerationRequestMulti(inputs []string) ModerationRequest {
	return ModerationRequest{Input: Input(inputs)}
}

// ModerationCategories flags each policy category
type ModerationCategories struct {
	Hate                  bool `json:"hate"`
	HateThreatening       bool `json:"hate/threatening"`
	Harassment            bool `json:"harassment"`
	HarassmentThreatening bool `json:"harassment/threatening"`
	SelfHarm              bool `json:"self-harm"`
	SelfHarmIntent        bool `json:"self-harm/intent"`
	SelfHarmInstructions  bool `json:"self-harm/instructions"`
	Sexual                bool `json:"sexual"`
	SexualMinors          bool `json:"sexual/minors"`
	Violence              bool `json:"violence"`
	ViolenceGraphic       bool `json:"violence/graphic"`
}

// ModerationCategoryScores holds the confidence for each category
type ModerationCategoryScores struct {
	Hate                  float64 `json:"hate"`
	HateThreatening       float64 `json:"hate/threatening"`
	Harassment            float64 `json:"harassment"`
	HarassmentThreatening float64 `json:"harassment/threatening"`
	SelfHarm              float64 `json:"self-harm"`
	SelfHarmIntent        float64 `json:"self-harm/intent"`
	SelfHarmInstructions  float64 `json:"self-harm/instructions"`
	Sexual                float64 `json:"sexual"`
	SexualMinors          float64 `json:"sexual/minors"`
	Violence              float64 `json:"violence"`
	ViolenceGraphic       float64 `json:"violence/graphic"`
}

// ModerationResult classifies one input
type ModerationResult struct {
	Flagged        bool                     `json:"flagged"`
	Categories     ModerationCategories     `json:"categories"`
	CategoryScores ModerationCategoryScores `json:"category_scores"`
}

// ModerationResponse holds one result per input
type ModerationResponse struct {
	ResponseMeta
	ID      string             `json:"id"`
	Model   Model              `json:"model"`
	Results []ModerationResult `json:"results"`
}

// Flagged reports whether any input was flagged
func (r *ModerationResponse) Flagged() bool {
	for _, result := range r.Results {
		if result.Flagged {
			return true
		}
	}
	return false
}

// CreateModeration classifies the input
func (c *Client) CreateModeration(ctx context.Context, req ModerationRequest) (*ModerationResponse, error) {
	return doJSON[ModerationResponse](ctx, c, http.MethodPost, "/moderations", withJSON(req))
}

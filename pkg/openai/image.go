// Image generation, edits and variations
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
)

// ImageSize is the resolution of generated images
type ImageSize string

const (
	ImageSize256x256   ImageSize = "256x256"
	ImageSize512x512   ImageSize = "512x512"
	ImageSize1024x1024 ImageSize = "1024x1024"
	ImageSize1792x1024 ImageSize = "1792x1024"
	ImageSize1024x1792 ImageSize = "1024x1792"
)

// Known reports whether s is a defined size
func (s ImageSize) Known() bool {
	switch s {
	case ImageSize256x256, ImageSize512x512, ImageSize1024x1024, ImageSize1792x1024, ImageSize1024x1792:
		return true
	default:
		return false
	}
}

// ImageResponseFormat selects URLs or inline base64 data
type ImageResponseFormat string

const (
	ImageResponseFormatURL     ImageResponseFormat = "url"
	ImageResponseFormatB64JSON ImageResponseFormat = "b64_json"
)

// Known reports whether f is a defined format
func (f ImageResponseFormat) Known() bool {
	return f == ImageResponseFormatURL || f == ImageResponseFormatB64JSON
}

// ImageQuality is supported by dall-e-3
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"
)

// Known reports whether q is a defined quality
func (q ImageQuality) Known() bool {
	return q == ImageQualityStandard || q == ImageQualityHD
}

// ImageStyle is supported by dall-e-3
type ImageStyle string

const (
	ImageStyleVivid   ImageStyle = "vivid"
	ImageStyleNatural ImageStyle = "natural"
)

// Known reports whether s is a defined style
func (s ImageStyle) Known() bool {
	return s == ImageStyleVivid || s == ImageStyleNatural
}

// ImageGenerationRequest creates images from a prompt
type ImageGenerationRequest struct {
	Prompt         string              `json:"prompt"`
	Model          Model               `json:"model,omitempty"`
	N              *int                `json:"n,omitempty"`
	Size           ImageSize           `json:"size,omitempty"`
	Quality        ImageQuality        `json:"quality,omitempty"`
	Style          ImageStyle          `json:"style,omitempty"`
	ResponseFormat ImageResponseFormat `json:"response_format,omitempty"`
	User           string              `json:"user,omitempty"`
}

// NewImageGenerationRequest creates a generation request with API defaults
func NewImageGenerationRequest(prompt string) ImageGenerationRequest {
	return ImageGenerationRequest{Prompt: prompt}
}

// ImageEditRequest edits an image, optionally restricted by a mask
type ImageEditRequest struct {
	Image          FileInput
	Mask           FileInput
	Prompt         string
	Model          Model
	N              *int
	Size           ImageSize
	ResponseFormat ImageResponseFormat
	User           string
}

// ImageVariationRequest creates variations of an image
type ImageVariationRequest struct {
	Image          FileInput
	Model          Model
	N              *int
	Size           ImageSize
	ResponseFormat ImageResponseFormat
	User           string
}

// ImageData is a generated image
type ImageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Decode returns the image bytes of a b64_json response
func (d ImageData) Decode() ([]byte, error) {
	if d.B64JSON == "" {
		return nil, fmt.Errorf("image has no inline data")
	}
	return base64.StdEncoding.DecodeString(d.B64JSON)
}

// ImageResponse is returned by all image endpoints
type ImageResponse struct {
	ResponseMeta
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// CreateImage generates images from a prompt
func (c *Client) CreateImage(ctx context.Context, req ImageGenerationRequest) (*ImageResponse, error) {
	return doJSON[ImageResponse](ctx, c, http.MethodPost, "/images/generations", withJSON(req))
}

// CreateImageEdit edits an image as a multipart upload
func (c *Client) CreateImageEdit(ctx context.Context, req ImageEditRequest) (*ImageResponse, error) {
	f := newForm().
		file("image", req.Image).
		file("mask", req.Mask).
		field("prompt", req.Prompt).
		field("model", string(req.Model)).
		intField("n", req.N).
		field("size", string(req.Size)).
		field("response_format", string(req.ResponseFormat)).
		field("user", req.User)
	return doJSON[ImageResponse](ctx, c, http.MethodPost, "/images/edits", withForm(f))
}

// CreateImageVariation creates variations of an image as a multipart upload
func (c *Client) CreateImageVariation(ctx context.Context, req ImageVariationRequest) (*ImageResponse, error) {
	f := newForm().
		file("image", req.Image).
		field("model", string(req.Model)).
		intField("n", req.N).
		field("size", string(req.Size)).
		field("response_format", string(req.ResponseFormat)).
		field("user", req.User)
	return doJSON[ImageResponse](ctx, c, http.MethodPost, "/images/variations", withForm(f))
}

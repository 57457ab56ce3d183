package openai

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ContentPartType identifies a part of a multi-modal message
type ContentPartType string

// Supported content part types
const (
	ContentPartText     ContentPartType = "text"
	ContentPartImageURL ContentPartType = "image_url"
)

// Known reports whether t is a supported part type
func (t ContentPartType) Known() bool {
	return t == ContentPartText || t == ContentPartImageURL
}

// ImageDetail controls the resolution used to process an image part
type ImageDetail string

const (
	ImageDetailAuto ImageDetail = "auto"
	ImageDetailLow  ImageDetail = "low"
	ImageDetailHigh ImageDetail = "high"
)

// Known reports whether d is a defined detail level
func (d ImageDetail) Known() bool {
	switch d {
	case ImageDetailAuto, ImageDetailLow, ImageDetailHigh:
		return true
	default:
		return false
	}
}

// ContentPart is one element of a multi-modal message
type ContentPart struct {
	Type     ContentPartType `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *ImageURL       `json:"image_url,omitempty"`
}

// ImageURL references an image by URL or data URI
type ImageURL struct {
	URL    string      `json:"url"`
	Detail ImageDetail `json:"detail,omitempty"`
}

// TextPart creates a text content part
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentPartText, Text: text}
}

// ImagePart creates an image content part from a URL
func ImagePart(url string) ContentPart {
	return ContentPart{Type: ContentPartImageURL, ImageURL: &ImageURL{URL: url}}
}

// ImagePartWithDetail creates an image content part with an explicit detail level
func ImagePartWithDetail(url string, detail ImageDetail) ContentPart {
	return ContentPart{Type: ContentPartImageURL, ImageURL: &ImageURL{URL: url, Detail: detail}}
}

// ImagePartFromBytes embeds image data as a base64 data URI
func ImagePartFromBytes(data []byte, mimeType string) ContentPart {
	return ImagePart("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// Content is the body of a chat message: plain text, or a list of parts for
// multi-modal input. Text is sent as a JSON string, parts as an array.
type Content struct {
	Text  string
	Parts []ContentPart
}

// TextContent creates text-only content
func TextContent(text string) Content {
	return Content{Text: text}
}

// PartsContent creates multi-modal content
func PartsContent(parts ...ContentPart) Content {
	return Content{Parts: parts}
}

// IsZero reports whether there is no content, in which case the field is
// left out of the request
func (c Content) IsZero() bool {
	return c.Text == "" && len(c.Parts) == 0
}

// IsMultiPart reports whether the content is a list of parts
func (c Content) IsMultiPart() bool {
	return c.Parts != nil
}

// String returns the text, or the text parts joined by newlines
func (c Content) String() string {
	if c.Parts == nil {
		return c.Text
	}
	var texts []string
	for _, p := range c.Parts {
		if p.Type == ContentPartText && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// MarshalJSON implements json.Marshaler
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Content{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		return json.Unmarshal(data, &c.Text)
	case data[0] == '[':
		parts := []ContentPart{}
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		c.Parts = parts
		return nil
	default:
		return errors.New("message content must be a string or an array of parts")
	}
}

// Speech to text, translation and text to speech
package openai

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// AudioResponseFormat is the output format of transcriptions and translations
type AudioResponseFormat string

const (
	AudioResponseFormatJSON        AudioResponseFormat = "json"
	AudioResponseFormatText        AudioResponseFormat = "text"
	AudioResponseFormatSRT         AudioResponseFormat = "srt"
	AudioResponseFormatVerboseJSON AudioResponseFormat = "verbose_json"
	AudioResponseFormatVTT         AudioResponseFormat = "vtt"
)

// Known reports whether f is a defined format
func (f AudioResponseFormat) Known() bool {
	switch f {
	case AudioResponseFormatJSON, AudioResponseFormatText, AudioResponseFormatSRT,
		AudioResponseFormatVerboseJSON, AudioResponseFormatVTT:
		return true
	default:
		return false
	}
}

// Voice is a text to speech voice
type Voice string

const (
	VoiceAlloy   Voice = "alloy"
	VoiceEcho    Voice = "echo"
	VoiceFable   Voice = "fable"
	VoiceOnyx    Voice = "onyx"
	VoiceNova    Voice = "nova"
	VoiceShimmer Voice = "shimmer"
)

// Known reports whether v is a defined voice
func (v Voice) Known() bool {
	switch v {
	case VoiceAlloy, VoiceEcho, VoiceFable, VoiceOnyx, VoiceNova, VoiceShimmer:
		return true
	default:
		return false
	}
}

// SpeechFormat is the audio encoding produced by CreateSpeech
type SpeechFormat string

const (
	SpeechFormatMP3  SpeechFormat = "mp3"
	SpeechFormatOpus SpeechFormat = "opus"
	SpeechFormatAAC  SpeechFormat = "aac"
	SpeechFormatFLAC SpeechFormat = "flac"
	SpeechFormatWAV  SpeechFormat = "wav"
	SpeechFormatPCM  SpeechFormat = "pcm"
)

// Known reports whether f is a defined encoding
func (f SpeechFormat) Known() bool {
	switch f {
	case SpeechFormatMP3, SpeechFormatOpus, SpeechFormatAAC, SpeechFormatFLAC, SpeechFormatWAV, SpeechFormatPCM:
		return true
	default:
		return false
	}
}

// AudioTranscriptionRequest transcribes audio in its original language
type AudioTranscriptionRequest struct {
	File           FileInput
	Model          Model
	Prompt         string
	ResponseFormat AudioResponseFormat
	Temperature    *float32
	Language       string
}

// NewAudioTranscriptionRequest creates a request for a local audio file
func NewAudioTranscriptionRequest(model Model, path string) AudioTranscriptionRequest {
	return AudioTranscriptionRequest{Model: model, File: FileFromPath(path)}
}

// AudioTranslationRequest translates audio into English
type AudioTranslationRequest struct {
	File           FileInput
	Model          Model
	Prompt         string
	ResponseFormat AudioResponseFormat
	Temperature    *float32
}

// NewAudioTranslationRequest creates a request for a local audio file
func NewAudioTranslationRequest(model Model, path string) AudioTranslationRequest {
	return AudioTranslationRequest{Model: model, File: FileFromPath(path)}
}

// AudioSegment is present in verbose_json responses
type AudioSegment struct {
	ID               int     `json:"id"`
	Seek             int     `json:"seek"`
	Start            float64 `json:"start"`
	End              float64 `json:"end"`
	Text             string  `json:"text"`
	Temperature      float64 `json:"temperature"`
	AvgLogprob       float64 `json:"avg_logprob"`
	CompressionRatio float64 `json:"compression_ratio"`
	NoSpeechProb     float64 `json:"no_speech_prob"`
}

// AudioResponse is the result of a transcription or translation. For the
// text, srt and vtt formats the whole body is placed in Text.
type AudioResponse struct {
	ResponseMeta
	Text     string         `json:"text"`
	Task     string         `json:"task,omitempty"`
	Language string         `json:"language,omitempty"`
	Duration float64        `json:"duration,omitempty"`
	Segments []AudioSegment `json:"segments,omitempty"`
}

// CreateTranscription transcribes audio
func (c *Client) CreateTranscription(ctx context.Context, req AudioTranscriptionRequest) (*AudioResponse, error) {
	f := newForm().
		file("file", req.File).
		field("model", string(req.Model)).
		field("prompt", req.Prompt).
		field("response_format", string(req.ResponseFormat)).
		floatField("temperature", req.Temperature).
		field("language", req.Language)
	return c.audio(ctx, "/audio/transcriptions", f)
}

// CreateTranslation translates audio into English
func (c *Client) CreateTranslation(ctx context.Context, req AudioTranslationRequest) (*AudioResponse, error) {
	f := newForm().
		file("file", req.File).
		field("model", string(req.Model)).
		field("prompt", req.Prompt).
		field("response_format", string(req.ResponseFormat)).
		floatField("temperature", req.Temperature)
	return c.audio(ctx, "/audio/translations", f)
}

func (c *Client) audio(ctx context.Context, path string, f *form) (*AudioResponse, error) {
	resp, err := c.send(ctx, http.MethodPost, path, withForm(f), withAccept("*/*"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := &AudioResponse{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := decodeResponse(resp, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError("failed to read response body", err)
	}
	out.Text = string(body)
	out.setHeader(resp.Header)
	return out, nil
}

// SpeechRequest turns text into audio
type SpeechRequest struct {
	Model          Model        `json:"model"`
	Input          string       `json:"input"`
	Voice          Voice        `json:"voice"`
	ResponseFormat SpeechFormat `json:"response_format,omitempty"`
	Speed          *float32     `json:"speed,omitempty"`
}

// NewSpeechRequest creates a speech request
func NewSpeechRequest(model Model, input string, voice Voice) SpeechRequest {
	return SpeechRequest{Model: model, Input: input, Voice: voice}
}

// CreateSpeech generates audio. The returned body streams the audio and
// must be closed.
func (c *Client) CreateSpeech(ctx context.Context, req SpeechRequest) (*RawResponse, error) {
	return c.doRaw(ctx, http.MethodPost, "/audio/speech", withJSON(req))
}

// SaveSpeech generates audio and writes it to path, creating missing
// directories
func (c *Client) SaveSpeech(ctx context.Context, req SpeechRequest, path string) (*RawResponse, error) {
	raw, err := c.CreateSpeech(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := raw.SaveTo(path); err != nil {
		return nil, err
	}
	return raw, nil
}

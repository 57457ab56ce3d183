package openai_test

import (
	"encoding/json"
	"testing"

	gogpt "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-oai/pkg/openai"
)

// The sashabaranov/go-openai types act as an independent reading of the wire
// format: what we send must decode there, and what it produces must decode
// here.

func roundTrip(t *testing.T, from, to any) {
	t.Helper()
	data, err := json.Marshal(from)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, to), string(data))
}

func TestCompatChatRequest(t *testing.T) {
	tool, err := openai.NewFunctionTool("get_weather", "current weather", struct {
		City string `json:"city" required:"true"`
	}{})
	require.NoError(t, err)

	req := openai.NewChatCompletionRequestMulti(openai.GPT4o, []openai.ChatCompletionMessage{
		openai.SystemMessage("be brief"),
		openai.UserMessageParts(
			openai.TextPart("what is in this image?"),
			openai.ImagePartWithDetail("https://images.example/cat.png", openai.ImageDetailHigh),
		),
		{Role: openai.RoleAssistant, ToolCalls: []openai.ToolCall{{
			ID: "call_1", Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{Name: "get_weather", Arguments: `{"city":"Paris"}`},
		}}},
		openai.ToolMessage("call_1", "sunny"),
	}).
		WithTemperature(0.5).
		WithMaxTokens(100).
		WithStop("\n").
		WithSeed(42).
		WithTools(tool).
		WithToolChoice(openai.ToolChoiceFunction("get_weather"))

	var got gogpt.ChatCompletionRequest
	roundTrip(t, req, &got)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.InDelta(t, 0.5, got.Temperature, 1e-6)
	assert.Equal(t, 100, got.MaxTokens)
	assert.Equal(t, []string{"\n"}, got.Stop)
	require.NotNil(t, got.Seed)
	assert.Equal(t, 42, *got.Seed)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, "be brief", got.Messages[0].Content)

	parts := got.Messages[1].MultiContent
	require.Len(t, parts, 2)
	assert.Equal(t, gogpt.ChatMessagePartTypeText, parts[0].Type)
	assert.Equal(t, gogpt.ChatMessagePartTypeImageURL, parts[1].Type)
	require.NotNil(t, parts[1].ImageURL)
	assert.Equal(t, "https://images.example/cat.png", parts[1].ImageURL.URL)
	assert.Equal(t, gogpt.ImageURLDetailHigh, parts[1].ImageURL.Detail)

	require.Len(t, got.Messages[2].ToolCalls, 1)
	assert.Equal(t, "get_weather", got.Messages[2].ToolCalls[0].Function.Name)
	assert.Equal(t, "call_1", got.Messages[3].ToolCallID)

	require.Len(t, got.Tools, 1)
	assert.Equal(t, gogpt.ToolTypeFunction, got.Tools[0].Type)
	assert.Equal(t, "get_weather", got.Tools[0].Function.Name)

	choice, ok := got.ToolChoice.(map[string]any)
	require.True(t, ok, "tool_choice for a named function is an object")
	assert.Equal(t, "function", choice["type"])
}

func TestCompatChatResponse(t *testing.T) {
	upstream := gogpt.ChatCompletionResponse{
		ID:      "chatcmpl-1",
		Object:  "chat.completion",
		Created: 1700000000,
		Model:   "gpt-4o-2024-08-06",
		Choices: []gogpt.ChatCompletionChoice{{
			Index: 0,
			Message: gogpt.ChatCompletionMessage{
				Role: gogpt.ChatMessageRoleAssistant,
				ToolCalls: []gogpt.ToolCall{{
					ID:       "call_1",
					Type:     gogpt.ToolTypeFunction,
					Function: gogpt.FunctionCall{Name: "get_weather", Arguments: `{"city":"Paris"}`},
				}},
			},
			FinishReason: gogpt.FinishReasonToolCalls,
		}},
		Usage: gogpt.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}

	var got openai.ChatCompletionResponse
	roundTrip(t, upstream, &got)

	assert.Equal(t, "chatcmpl-1", got.ID)
	assert.False(t, got.Model.Known())
	assert.Equal(t, 15, got.Usage.TotalTokens)

	choice, ok := got.FirstChoice()
	require.True(t, ok)
	assert.Equal(t, openai.FinishReasonToolCalls, choice.FinishReason)
	assert.True(t, choice.WantsToolExecution())

	var args struct{ City string }
	require.NoError(t, got.ToolCalls()[0].DecodeArguments(&args))
	assert.Equal(t, "Paris", args.City)
}

func TestCompatStreamChunk(t *testing.T) {
	upstream := gogpt.ChatCompletionStreamResponse{
		ID:      "chatcmpl-2",
		Object:  "chat.completion.chunk",
		Created: 1700000000,
		Model:   "gpt-4o",
		Choices: []gogpt.ChatCompletionStreamChoice{{
			Index: 0,
			Delta: gogpt.ChatCompletionStreamChoiceDelta{Role: "assistant", Content: "Hel"},
		}},
	}

	var got openai.ChatCompletionChunk
	roundTrip(t, upstream, &got)

	require.Len(t, got.Choices, 1)
	assert.Equal(t, openai.RoleAssistant, got.Choices[0].Delta.Role)
	assert.Equal(t, "Hel", got.Choices[0].Delta.Content)
}

func TestCompatEmbeddings(t *testing.T) {
	var req gogpt.EmbeddingRequest
	roundTrip(t, openai.NewEmbeddingRequest(openai.TextEmbedding3Small, "hello").WithDimensions(256), &req)
	assert.Equal(t, "hello", req.Input)
	assert.Equal(t, 256, req.Dimensions)

	upstream := gogpt.EmbeddingResponse{
		Object: "list",
		Model:  gogpt.SmallEmbedding3,
		Data:   []gogpt.Embedding{{Object: "embedding", Index: 0, Embedding: []float32{0.5, -0.25}}},
		Usage:  gogpt.Usage{PromptTokens: 1, TotalTokens: 1},
	}

	var got openai.EmbeddingResponse
	roundTrip(t, upstream, &got)
	require.Len(t, got.Data, 1)
	assert.Equal(t, []float32{0.5, -0.25}, got.Data[0].Embedding)
	assert.Equal(t, openai.TextEmbedding3Small, got.Model)
}

func TestCompatCompletionRequest(t *testing.T) {
	var got gogpt.CompletionRequest
	roundTrip(t, openai.NewCompletionRequest(openai.GPT35TurboInstruct, "Say this is a test").
		WithMaxTokens(7).
		WithEcho(true), &got)

	assert.Equal(t, "gpt-3.5-turbo-instruct", got.Model)
	assert.Equal(t, "Say this is a test", got.Prompt)
	assert.Equal(t, 7, got.MaxTokens)
	assert.True(t, got.Echo)
}

func TestCompatModeration(t *testing.T) {
	upstream := gogpt.ModerationResponse{
		ID:    "modr-1",
		Model: "text-moderation-007",
		Results: []gogpt.Result{{
			Categories: gogpt.ResultCategories{Violence: true},
			Flagged:    true,
		}},
	}

	var got openai.ModerationResponse
	roundTrip(t, upstream, &got)
	assert.True(t, got.Flagged())
	assert.True(t, got.Results[0].Categories.Violence)
}

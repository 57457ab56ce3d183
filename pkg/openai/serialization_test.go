package openai

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestMinimalChatRequestBody(t *testing.T) {
	t.Parallel()

	req := NewChatCompletionRequest(GPT4o, UserMessage("What is bitcoin?"))
	assert.JSONEq(t, `{"model":"gpt-4o","messages":[{"role":"user","content":"What is bitcoin?"}]}`, marshal(t, req))
}

func TestMinimalRequestsOmitOptionalFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  any
		want string
	}{
		{
			name: "completion",
			req:  NewCompletionRequest(GPT35TurboInstruct, "Say this is a test"),
			want: `{"model":"gpt-3.5-turbo-instruct","prompt":"Say this is a test"}`,
		},
		{
			name: "completion multi",
			req:  NewCompletionRequestMulti(GPT35TurboInstruct, []string{"a", "b"}),
			want: `{"model":"gpt-3.5-turbo-instruct","prompt":["a","b"]}`,
		},
		{
			name: "edit",
			req:  NewEditRequest(TextDavinciEdit001, "What day of the wek is it?", "Fix the spelling mistakes"),
			want: `{"model":"text-davinci-edit-001","input":"What day of the wek is it?","instruction":"Fix the spelling mistakes"}`,
		},
		{
			name: "embedding",
			req:  NewEmbeddingRequest(TextEmbeddingAda002, "The food was delicious"),
			want: `{"model":"text-embedding-ada-002","input":"The food was delicious"}`,
		},
		{
			name: "image",
			req:  NewImageGenerationRequest("A cute baby sea otter"),
			want: `{"prompt":"A cute baby sea otter"}`,
		},
		{
			name: "moderation",
			req:  NewModerationRequest("I want to kill them."),
			want: `{"input":"I want to kill them."}`,
		},
		{
			name: "speech",
			req:  NewSpeechRequest(TTS1, "Hello", VoiceAlloy),
			want: `{"model":"tts-1","input":"Hello","voice":"alloy"}`,
		},
		{
			name: "fine-tuning job",
			req:  NewFineTuningJobRequest(GPT35Turbo, "file-abc123"),
			want: `{"model":"gpt-3.5-turbo","training_file":"file-abc123"}`,
		},
		{
			name: "assistant",
			req:  NewAssistantRequest(GPT4),
			want: `{"model":"gpt-4"}`,
		},
		{
			name: "thread",
			req:  ThreadRequest{},
			want: `{}`,
		},
		{
			name: "message",
			req:  NewMessageRequest("How does AI work?"),
			want: `{"role":"user","content":"How does AI work?"}`,
		},
		{
			name: "run",
			req:  NewRunRequest("asst_abc123"),
			want: `{"assistant_id":"asst_abc123"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.JSONEq(t, tt.want, marshal(t, tt.req))
		})
	}
}

func TestChatRequestBuilders(t *testing.T) {
	t.Parallel()

	base := NewChatCompletionRequest(GPT4o, SystemMessage("be brief"))
	req := base.
		WithMessages(UserMessage("hi")).
		WithTemperature(0).
		WithMaxTokens(10).
		WithStop("\n").
		WithSeed(42).
		WithToolChoice(ToolChoiceAuto())

	assert.Len(t, base.Messages, 1, "builders must not modify the receiver")
	assert.JSONEq(t, `{
		"model":"gpt-4o",
		"messages":[{"role":"system","content":"be brief"},{"role":"user","content":"hi"}],
		"temperature":0,
		"max_tokens":10,
		"stop":["\n"],
		"seed":42,
		"tool_choice":"auto"
	}`, marshal(t, req))
}

func TestContentJSON(t *testing.T) {
	t.Parallel()

	t.Run("parts", func(t *testing.T) {
		t.Parallel()

		msg := UserMessageParts(TextPart("What is in this image?"), ImagePartWithDetail("https://example.com/cat.png", ImageDetailLow))
		assert.JSONEq(t, `{"role":"user","content":[
			{"type":"text","text":"What is in this image?"},
			{"type":"image_url","image_url":{"url":"https://example.com/cat.png","detail":"low"}}
		]}`, marshal(t, msg))
	})

	t.Run("empty content is omitted", func(t *testing.T) {
		t.Parallel()

		msg := ChatCompletionMessage{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call_1", Type: ToolTypeFunction, Function: FunctionCall{Name: "f", Arguments: "{}"}}}}
		assert.JSONEq(t, `{"role":"assistant","tool_calls":[{"id":"call_1","type":"function","function":{"name":"f","arguments":"{}"}}]}`, marshal(t, msg))
	})

	t.Run("empty content is sent without tool calls", func(t *testing.T) {
		t.Parallel()

		assert.JSONEq(t, `{"role":"user","content":""}`, marshal(t, UserMessage("")))
		assert.JSONEq(t, `{"role":"assistant","content":""}`, marshal(t, ChatCompletionMessage{Role: RoleAssistant}))
	})

	t.Run("decode", func(t *testing.T) {
		t.Parallel()

		var msgs []ChatCompletionMessage
		require.NoError(t, json.Unmarshal([]byte(`[
			{"role":"assistant","content":null},
			{"role":"user","content":"plain"},
			{"role":"user","content":[{"type":"text","text":"a"},{"type":"text","text":"b"}]}
		]`), &msgs))

		assert.True(t, msgs[0].Content.IsZero())
		assert.Equal(t, "plain", msgs[1].Text())
		assert.True(t, msgs[2].Content.IsMultiPart())
		assert.Equal(t, "a\nb", msgs[2].Text())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		var msg ChatCompletionMessage
		assert.Error(t, json.Unmarshal([]byte(`{"role":"user","content":42}`), &msg))
	})

	t.Run("data uri", func(t *testing.T) {
		t.Parallel()

		part := ImagePartFromBytes([]byte{0x89, 'P', 'N', 'G'}, "image/png")
		assert.Equal(t, "data:image/png;base64,iVBORw==", part.ImageURL.URL)
	})
}

func TestToolChoiceJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"none"`, marshal(t, ToolChoiceNone()))
	assert.Equal(t, `"required"`, marshal(t, ToolChoiceRequired()))
	assert.JSONEq(t, `{"type":"function","function":{"name":"get_weather"}}`, marshal(t, ToolChoiceFunction("get_weather")))

	var tc ToolChoice
	require.NoError(t, json.Unmarshal([]byte(`{"type":"function","function":{"name":"lookup"}}`), &tc))
	assert.Equal(t, "lookup", tc.Function)
	require.NoError(t, json.Unmarshal([]byte(`"auto"`), &tc))
	assert.Equal(t, ToolChoice{Mode: ToolChoiceModeAuto}, tc)
}

func TestNewFunctionTool(t *testing.T) {
	t.Parallel()

	type weatherArgs struct {
		Location string `json:"location" required:"true" description:"City and country"`
		Unit     string `json:"unit,omitempty" enum:"celsius,fahrenheit"`
	}

	tool, err := NewFunctionTool("get_weather", "Get the current weather", weatherArgs{})
	require.NoError(t, err)
	assert.Equal(t, ToolTypeFunction, tool.Type)

	params, ok := tool.Function.Parameters.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", params["type"])
	assert.Equal(t, []any{"location"}, params["required"])
	assert.Contains(t, params["properties"], "unit")

	manual, err := NewFunctionTool("noop", "", NewFunctionParameters(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"function","function":{"name":"noop","parameters":{"type":"object","properties":{}}}}`, marshal(t, manual))
}

func TestInputJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"one"`, marshal(t, Input{"one"}))
	assert.Equal(t, `["one","two"]`, marshal(t, Input{"one", "two"}))

	var in Input
	require.NoError(t, json.Unmarshal([]byte(`"single"`), &in))
	assert.Equal(t, Input{"single"}, in)
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &in))
	assert.Equal(t, Input{"a", "b"}, in)
	assert.Error(t, json.Unmarshal([]byte(`{}`), &in))
}

func TestUnknownEnumValuesArePreserved(t *testing.T) {
	t.Parallel()

	var resp ChatCompletionResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"id":"chatcmpl-1",
		"object":"chat.completion",
		"model":"gpt-5-preview",
		"choices":[{"index":0,"message":{"role":"developer","content":"hi"},"finish_reason":"brand_new_reason"}]
	}`), &resp))

	choice, ok := resp.FirstChoice()
	require.True(t, ok)
	assert.Equal(t, Model("gpt-5-preview"), resp.Model)
	assert.False(t, resp.Model.Known())
	assert.Equal(t, Role("developer"), choice.Message.Role)
	assert.False(t, choice.Message.Role.Known())
	assert.Equal(t, FinishReason("brand_new_reason"), choice.FinishReason)
	assert.False(t, choice.FinishReason.Known())

	assert.True(t, GPT4o.Known())
	assert.True(t, RoleTool.Known())
	assert.True(t, FinishReasonToolCalls.Known())
	assert.False(t, RunStatus("paused").Known())
	assert.False(t, FilePurpose("archive").Known())
}

func TestFinishReasonNull(t *testing.T) {
	t.Parallel()

	var choice ChatCompletionChunkChoice
	require.NoError(t, json.Unmarshal([]byte(`{"index":0,"delta":{"content":"x"},"finish_reason":null}`), &choice))
	assert.Equal(t, FinishReasonNull, choice.FinishReason)
}

func TestFinishReasonNullEncodesAsNull(t *testing.T) {
	t.Parallel()

	choice := ChatCompletionChunkChoice{Delta: ChatCompletionDelta{Content: "x"}, FinishReason: FinishReasonNull}
	assert.JSONEq(t, `{"index":0,"delta":{"content":"x"},"finish_reason":null}`, marshal(t, choice))

	choice.FinishReason = ""
	assert.JSONEq(t, `{"index":0,"delta":{"content":"x"}}`, marshal(t, choice))
}

// roundTrip decodes fixture into T and checks that encoding it again gives
// back the same JSON
func roundTrip[T any](t *testing.T, fixture string) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal([]byte(fixture), &v))
	assert.JSONEq(t, fixture, marshal(t, v))
	return v
}

func TestResponseFixturesRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("chat completion", func(t *testing.T) {
		t.Parallel()

		resp := roundTrip[ChatCompletionResponse](t, `{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"created": 1677652288,
			"model": "gpt-4o",
			"system_fingerprint": "fp_44709d6fcb",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Hello there"}, "finish_reason": "stop"},
				{"index": 1, "message": {"role": "assistant", "tool_calls": [
					{"id": "call_1", "type": "function", "function": {"name": "get_weather", "arguments": "{\"city\":\"Boston\"}"}}
				]}, "finish_reason": "tool_calls"}
			],
			"usage": {"prompt_tokens": 9, "completion_tokens": 12, "total_tokens": 21}
		}`)
		assert.Equal(t, "Hello there", resp.Content())
		assert.Len(t, resp.ToolCalls(), 1)
	})

	t.Run("chunk in progress", func(t *testing.T) {
		t.Parallel()

		chunk := roundTrip[ChatCompletionChunk](t, `{
			"id": "chatcmpl-123", "object": "chat.completion.chunk", "created": 1694268190, "model": "gpt-4o",
			"choices": [{"index": 0, "delta": {"role": "assistant", "content": "Hel"}, "finish_reason": null}]
		}`)
		assert.Equal(t, FinishReasonNull, chunk.Choices[0].FinishReason)
	})

	t.Run("last chunk", func(t *testing.T) {
		t.Parallel()

		roundTrip[ChatCompletionChunk](t, `{
			"id": "chatcmpl-123", "object": "chat.completion.chunk", "created": 1694268190, "model": "gpt-4o",
			"choices": [{"index": 0, "delta": {}, "finish_reason": "stop"}]
		}`)
	})
}

func TestNilChatResponseHelpers(t *testing.T) {
	t.Parallel()

	var resp *ChatCompletionResponse
	assert.NotPanics(t, func() {
		assert.Empty(t, resp.Content())
		assert.Nil(t, resp.ToolCalls())
		_, ok := resp.FirstChoice()
		assert.False(t, ok)
	})
}

func TestAutoOrJSON(t *testing.T) {
	t.Parallel()

	hp := Hyperparameters{
		BatchSize:              AutoValue[int](),
		LearningRateMultiplier: FixedValue(0.5),
		NEpochs:                FixedValue(3),
	}
	assert.JSONEq(t, `{"batch_size":"auto","learning_rate_multiplier":0.5,"n_epochs":3}`, marshal(t, hp))

	var decoded Hyperparameters
	require.NoError(t, json.Unmarshal([]byte(`{"n_epochs":"auto","batch_size":4}`), &decoded))
	assert.True(t, decoded.NEpochs.Auto)
	assert.Equal(t, 4, decoded.BatchSize.Value)
	assert.Nil(t, decoded.LearningRateMultiplier)
}

func TestEmbeddingBase64(t *testing.T) {
	t.Parallel()

	values := []float32{0.25, -1, 3.5}
	raw := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	payload := `{"object":"embedding","index":1,"embedding":"` + base64.StdEncoding.EncodeToString(raw) + `"}`

	var e Embedding
	require.NoError(t, json.Unmarshal([]byte(payload), &e))
	assert.Equal(t, values, e.Embedding)
	assert.Equal(t, 1, e.Index)

	require.NoError(t, json.Unmarshal([]byte(`{"object":"embedding","index":0,"embedding":[0.1,0.2]}`), &e))
	assert.Equal(t, []float32{0.1, 0.2}, e.Embedding)

	assert.Error(t, json.Unmarshal([]byte(`{"embedding":"AAA="}`), &e))
}

func TestModerationCategoryKeys(t *testing.T) {
	t.Parallel()

	var result ModerationResult
	require.NoError(t, json.Unmarshal([]byte(`{
		"flagged":true,
		"categories":{"violence":true,"self-harm/intent":true,"hate/threatening":false},
		"category_scores":{"violence":0.97,"sexual/minors":0.01}
	}`), &result))

	assert.True(t, result.Categories.Violence)
	assert.True(t, result.Categories.SelfHarmIntent)
	assert.InDelta(t, 0.97, result.CategoryScores.Violence, 1e-9)
	assert.InDelta(t, 0.01, result.CategoryScores.SexualMinors, 1e-9)
}

func TestRunStepDetails(t *testing.T) {
	t.Parallel()

	var step RunStep
	require.NoError(t, json.Unmarshal([]byte(`{
		"id":"step_1","object":"thread.run.step","type":"tool_calls","status":"completed",
		"step_details":{"type":"tool_calls","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"f","arguments":"{}","output":"42"}},
			{"id":"call_2","type":"code_interpreter","code_interpreter":{"input":"1+1","outputs":[]}}
		]}
	}`), &step))

	require.Len(t, step.StepDetails.ToolCalls, 2)
	fn := step.StepDetails.ToolCalls[0].Function
	require.NotNil(t, fn)
	assert.Equal(t, "42", *fn.Output)
	assert.Contains(t, string(step.StepDetails.ToolCalls[1].Raw), `"input":"1+1"`)
	assert.True(t, step.Type.Known())
	assert.True(t, RunStatusExpired.IsTerminal())
	assert.False(t, RunStatusRequiresAction.IsTerminal())
}

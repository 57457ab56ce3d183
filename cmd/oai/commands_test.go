package main

import (
	"encoding/base64"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-oai/pkg/openaitest"
)

func TestRunComplete(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/completions", openaitest.JSON(http.StatusOK, map[string]any{
		"id": "cmpl-1", "object": "text_completion", "created": 1, "model": "gpt-3.5-turbo-instruct",
		"choices": []any{map[string]any{"text": " there lived a king", "index": 0, "finish_reason": "length"}},
	}))

	cmd, out, _ := testCommand(t, srv)
	orig := completeFlags
	t.Cleanup(func() { completeFlags = orig })
	completeFlags.maxTokens, completeFlags.suffix, completeFlags.echo = 16, "", false

	require.NoError(t, runComplete(cmd, []string{"Once upon a time"}))
	assert.Equal(t, " there lived a king\n", out.String())

	body := srv.LastRequest().Map()
	assert.Equal(t, "gpt-3.5-turbo-instruct", body["model"])
	assert.EqualValues(t, 16, body["max_tokens"])
}

func TestRunEmbed(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/embeddings", openaitest.JSON(http.StatusOK, map[string]any{
		"object": "list", "model": "text-embedding-3-small",
		"data": []any{
			map[string]any{"object": "embedding", "index": 0, "embedding": []float32{0.5, 0.25, 0.125, 1}},
			map[string]any{"object": "embedding", "index": 1, "embedding": []float32{1}},
		},
		"usage": map[string]any{"prompt_tokens": 2, "total_tokens": 2},
	}))

	cmd, out, _ := testCommand(t, srv)
	orig := embedFlags
	t.Cleanup(func() { embedFlags = orig })
	embedFlags.dimensions, embedFlags.format = 0, "text"

	require.NoError(t, runEmbed(cmd, []string{"alpha", "beta"}))
	assert.Contains(t, out.String(), "0\t4 dims\t[0.5000 0.2500 0.1250 ...]\talpha")
	assert.Contains(t, out.String(), "1\t1 dims\t[1.0000 ...]\tbeta")
	assert.Contains(t, out.String(), "2 tokens")

	embedFlags.format = "json"
	out.Reset()
	require.NoError(t, runEmbed(cmd, []string{"alpha", "beta"}))
	assert.Contains(t, out.String(), `"embedding": [`)
}

func TestModelsCommands(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodGet, "/models", openaitest.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data": []any{
			map[string]any{"id": "gpt-4o", "object": "model", "created": 0, "owned_by": "system"},
		},
	}))
	srv.Handle(http.MethodGet, "/models/gpt-4o", openaitest.JSON(http.StatusOK,
		map[string]any{"id": "gpt-4o", "object": "model", "created": 1715367049, "owned_by": "system"}))
	srv.Handle(http.MethodDelete, "/models/ft:gpt-4o:acme::1", openaitest.JSON(http.StatusOK,
		map[string]any{"id": "ft:gpt-4o:acme::1", "object": "model", "deleted": true}))

	cmd, out, _ := testCommand(t, srv)

	require.NoError(t, listModels(cmd, nil))
	assert.Contains(t, out.String(), "ID")
	assert.Contains(t, out.String(), "OWNED BY")
	assert.Contains(t, out.String(), "gpt-4o")

	out.Reset()
	require.NoError(t, getModel(cmd, []string{"gpt-4o"}))
	assert.Contains(t, out.String(), `"owned_by": "system"`)

	out.Reset()
	require.NoError(t, deleteModel(cmd, []string{"ft:gpt-4o:acme::1"}))
	assert.Equal(t, "deleted ft:gpt-4o:acme::1: true\n", out.String())
}

func TestFilesCommands(t *testing.T) {
	fileObject := map[string]any{
		"id": "file-abc", "object": "file", "bytes": 3, "created_at": 1613779121,
		"filename": "train.jsonl", "purpose": "fine-tune",
	}

	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodGet, "/files", openaitest.JSON(http.StatusOK, map[string]any{"object": "list", "data": []any{fileObject}}))
	srv.Handle(http.MethodPost, "/files", openaitest.JSON(http.StatusOK, fileObject))
	srv.Handle(http.MethodGet, "/files/file-abc", openaitest.JSON(http.StatusOK, fileObject))
	srv.Handle(http.MethodDelete, "/files/file-abc", openaitest.JSON(http.StatusOK,
		map[string]any{"id": "file-abc", "object": "file", "deleted": true}))
	srv.Handle(http.MethodGet, "/files/file-abc/content", openaitest.Raw(http.StatusOK, "application/octet-stream", []byte("{}\n")))

	cmd, out, errOut := testCommand(t, srv)
	orig := filesFlags
	t.Cleanup(func() { filesFlags = orig })
	dir := t.TempDir()

	filesFlags.purpose = "fine-tune"
	require.NoError(t, listFiles(cmd, nil))
	assert.Contains(t, out.String(), "train.jsonl")
	assert.Equal(t, "fine-tune", srv.LastRequest().Query.Get("purpose"))

	path := filepath.Join(dir, "train.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))
	out.Reset()
	require.NoError(t, uploadFile(cmd, []string{path}))
	assert.Equal(t, "uploaded train.jsonl as file-abc (3 bytes)\n", out.String())

	out.Reset()
	require.NoError(t, getFile(cmd, []string{"file-abc"}))
	assert.Contains(t, out.String(), `"id": "file-abc"`)

	out.Reset()
	filesFlags.output = ""
	require.NoError(t, fileContent(cmd, []string{"file-abc"}))
	assert.Equal(t, "{}\n", out.String())

	filesFlags.output = filepath.Join(dir, "download", "content.jsonl")
	require.NoError(t, fileContent(cmd, []string{"file-abc"}))
	data, err := os.ReadFile(filesFlags.output)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
	assert.Contains(t, errOut.String(), "wrote 3 bytes")

	out.Reset()
	require.NoError(t, deleteFile(cmd, []string{"file-abc"}))
	assert.Equal(t, "deleted file-abc: true\n", out.String())
}

func TestRunModerate(t *testing.T) {
	respond := func(flagged bool) map[string]any {
		return map[string]any{
			"id": "modr-1", "model": "text-moderation-007",
			"results": []any{map[string]any{
				"flagged":         flagged,
				"categories":      map[string]any{"violence": flagged},
				"category_scores": map[string]any{"violence": 0.9},
			}},
		}
	}

	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/moderations", openaitest.JSON(http.StatusOK, respond(true)))

	cmd, out, _ := testCommand(t, srv)
	orig := moderateFlags
	t.Cleanup(func() { moderateFlags = orig })
	moderateFlags.format = "text"

	err := runModerate(cmd, []string{"bad words"})
	assert.ErrorIs(t, err, errFlagged)
	assert.Contains(t, out.String(), "flagged: true")
	assert.Contains(t, out.String(), "[x] violence")

	srv.Handle(http.MethodPost, "/moderations", openaitest.JSON(http.StatusOK, respond(false)))
	moderateFlags.format = "json"
	out.Reset()
	require.NoError(t, runModerate(cmd, []string{"kind words"}))
	assert.Contains(t, out.String(), `"flagged": false`)
}

func TestRunSpeech(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/audio/speech", openaitest.Raw(http.StatusOK, "audio/wav", []byte("RIFF")))

	cmd, out, _ := testCommand(t, srv)
	orig := speechFlags
	t.Cleanup(func() { speechFlags = orig })
	speechFlags.output = filepath.Join(t.TempDir(), "audio", "hello.wav")
	speechFlags.voice, speechFlags.format, speechFlags.speed = "nova", "wav", 1.5

	require.NoError(t, runSpeech(cmd, []string{"Hello world"}))
	assert.Equal(t, "wrote "+speechFlags.output+"\n", out.String())

	data, err := os.ReadFile(speechFlags.output)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	body := srv.LastRequest().Map()
	assert.Equal(t, "tts-1", body["model"])
	assert.Equal(t, "nova", body["voice"])
	assert.Equal(t, "wav", body["response_format"])
	assert.InDelta(t, 1.5, body["speed"], 1e-6)

	speechFlags.voice = "robot"
	assert.EqualError(t, runSpeech(cmd, []string{"x"}), `unknown voice "robot"`)
}

func TestRunImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/images/generations", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), `"response_format":"b64_json"`) {
			openaitest.JSON(http.StatusOK, map[string]any{"created": 1, "data": []any{
				map[string]any{"b64_json": base64.StdEncoding.EncodeToString(png)},
			}})(w, r)
			return
		}
		openaitest.JSON(http.StatusOK, map[string]any{"created": 1, "data": []any{
			map[string]any{"url": "https://images.example/1.png", "revised_prompt": "a cat, watercolor"},
		}})(w, r)
	})

	cmd, out, _ := testCommand(t, srv)
	orig := imageFlags
	t.Cleanup(func() { imageFlags = orig })
	imageFlags.size, imageFlags.n, imageFlags.quality, imageFlags.output = "512x512", 1, "", ""

	require.NoError(t, runImage(cmd, []string{"a cat"}))
	assert.Contains(t, out.String(), "revised prompt: a cat, watercolor")
	assert.Contains(t, out.String(), "https://images.example/1.png")

	body := srv.LastRequest().Map()
	assert.Equal(t, "512x512", body["size"])
	assert.NotContains(t, body, "n")
	assert.NotContains(t, body, "model")

	imageFlags.output = filepath.Join(t.TempDir(), "images")
	out.Reset()
	require.NoError(t, runImage(cmd, []string{"a cat"}))

	path := filepath.Join(imageFlags.output, "image-1.png")
	assert.Equal(t, path+"\n", out.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, png, data)
}

func TestFinetuneCommands(t *testing.T) {
	job := map[string]any{
		"id": "ftjob-1", "object": "fine_tuning.job", "created_at": 1, "model": "gpt-3.5-turbo-0125",
		"status": "queued", "training_file": "file-abc", "hyperparameters": map[string]any{"n_epochs": 3},
	}

	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/fine_tuning/jobs", openaitest.JSON(http.StatusOK, job))
	srv.Handle(http.MethodGet, "/fine_tuning/jobs", openaitest.JSON(http.StatusOK,
		map[string]any{"object": "list", "data": []any{job}, "has_more": true}))
	srv.Handle(http.MethodGet, "/fine_tuning/jobs/ftjob-1", openaitest.JSON(http.StatusOK, job))
	srv.Handle(http.MethodPost, "/fine_tuning/jobs/ftjob-1/cancel", openaitest.JSON(http.StatusOK,
		map[string]any{"id": "ftjob-1", "object": "fine_tuning.job", "status": "cancelled"}))
	srv.Handle(http.MethodGet, "/fine_tuning/jobs/ftjob-1/events", openaitest.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data": []any{map[string]any{"id": "ev-1", "object": "fine_tuning.job.event", "created_at": 0, "level": "info", "message": "Job queued"}},
	}))

	cmd, out, errOut := testCommand(t, srv)
	orig := finetuneFlags
	t.Cleanup(func() { finetuneFlags = orig })
	finetuneFlags.after, finetuneFlags.limit = "", 0
	finetuneFlags.epochs, finetuneFlags.suffix, finetuneFlags.validationFile = 3, "custom", ""

	require.NoError(t, createFineTuningJob(cmd, []string{"file-abc"}))
	assert.Equal(t, "created ftjob-1 (queued)\n", out.String())
	assert.JSONEq(t, `{"model":"gpt-3.5-turbo-0125","training_file":"file-abc","suffix":"custom","hyperparameters":{"n_epochs":3}}`,
		string(srv.LastRequest().Body))

	out.Reset()
	finetuneFlags.limit = 5
	require.NoError(t, listFineTuningJobs(cmd, nil))
	assert.Contains(t, out.String(), "ftjob-1")
	assert.Equal(t, "5", srv.LastRequest().Query.Get("limit"))
	assert.Contains(t, errOut.String(), "more jobs available")

	out.Reset()
	require.NoError(t, getFineTuningJob(cmd, []string{"ftjob-1"}))
	assert.Contains(t, out.String(), `"status": "queued"`)

	out.Reset()
	require.NoError(t, cancelFineTuningJob(cmd, []string{"ftjob-1"}))
	assert.Equal(t, "ftjob-1 is cancelled\n", out.String())

	out.Reset()
	require.NoError(t, listFineTuningEvents(cmd, []string{"ftjob-1"}))
	assert.Contains(t, out.String(), "info   Job queued")
}

package openaitest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON answers with v encoded as JSON
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", "req_test")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error answers with an API error envelope
func Error(status int, errType, message string) http.HandlerFunc {
	return JSON(status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    errType,
			"param":   nil,
			"code":    nil,
		},
	})
}

// Raw answers with an arbitrary body
func Raw(status int, contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

// SSE answers with a server-sent events stream. Each event is sent as a
// data line: strings and byte slices verbatim, anything else JSON encoded.
// The stream ends with the [DONE] marker unless the last event is
// NoDone.
func SSE(events ...any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)

		done := true
		for i, ev := range events {
			if ev == NoDone && i == len(events)-1 {
				done = false
				break
			}
			var data string
			switch v := ev.(type) {
			case string:
				data = v
			case []byte:
				data = string(v)
			default:
				encoded, err := json.Marshal(v)
				if err != nil {
					panic(fmt.Sprintf("openaitest: cannot encode event: %v", err))
				}
				data = string(encoded)
			}
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			if flusher != nil {
				flusher.Flush()
			}
		}
		if done {
			_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
		}
	}
}

type noDone struct{}

// NoDone ends an SSE stream without the [DONE] marker
var NoDone = noDone{}

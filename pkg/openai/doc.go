// Package openai is a client for the OpenAI REST API.
//
// It maps every endpoint family (models, completions, chat, edits, images,
// embeddings, audio, files, fine-tuning, moderations, and the assistants
// beta with threads, messages and runs) onto typed requests and responses.
// Every method performs exactly one HTTP call: there are no retries and no
// caching.
//
// A minimal program:
//
//	client, err := openai.NewClientFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	req := openai.NewChatCompletionRequest(openai.GPT4o, openai.UserMessage("What is bitcoin?"))
//	resp, err := client.CreateChatCompletion(ctx, req)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp.Content())
//
// Requests are plain structs. Optional fields are pointers or omitempty
// values so that a request built from its constructor serializes only the
// required fields; the With* methods return modified copies.
//
// Responses embed ResponseMeta, which exposes the HTTP headers of the call,
// the request id and the rate limit headers.
//
// Every failure is an *Error. Its Kind tells configuration, transport,
// serialization, deserialization and API errors apart, and errors.Is works
// with the Err* sentinels:
//
//	if errors.Is(err, openai.ErrAPI) {
//		apiErr, _ := openai.AsAPIError(err)
//		log.Printf("status %d: %s", apiErr.StatusCode, apiErr.Message)
//	}
//
// Streaming endpoints return a *Stream that yields chunks until the server
// sends its end marker; use Recv in a loop or range over All.
//
// HTTP behavior (logging, metrics, tracing, request ids) is added with the
// middlewares of the transport package through WithMiddleware.
package openai

// Package openaitest provides a fake API server for testing code built on
// the openai package.
//
// The server answers routes registered with Handle using the canned
// responders JSON, Error, Raw and SSE, and records every request so tests
// can assert on what was sent:
//
//	srv := openaitest.NewServer(t)
//	srv.Handle(http.MethodPost, "/chat/completions", openaitest.JSON(http.StatusOK, response))
//
//	client := srv.Client()
//	_, err := client.CreateChatCompletion(ctx, req)
//	require.NoError(t, err)
//	assert.Equal(t, "Bearer "+openaitest.APIKey, srv.LastRequest().Header.Get("Authorization"))
//
// Unregistered routes answer 404 with an API error envelope.
package openaitest

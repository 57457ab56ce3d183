// oai is a command-line client for the OpenAI API and compatible endpoints.
//
// Usage:
//
//	# Ask a single question
//	oai chat "What is bitcoin?"
//
//	# Start an interactive conversation with streamed answers
//	oai chat --stream
//
//	# Talk to a local ollama server
//	oai --preset ollama chat "hello"
//
//	# Use a configuration file
//	oai --config oai.yaml models list
//
//	# Generate speech
//	oai speech "Hello world" -o hello.mp3
//
// The API key is read from OPENAI_API_KEY unless a preset or a config file
// says otherwise.
package main

func main() {
	Execute()
}

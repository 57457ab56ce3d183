package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var chatFlags struct {
	system      string
	stream      bool
	temperature float32
	maxTokens   int
}

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Chat with a model",
	Long: `Send a prompt to the chat completions endpoint and print the answer.

Without a prompt the text is read from standard input. When standard input
is a terminal an interactive session starts instead; the conversation is
kept until /reset or /exit.

System and user prompts listed under "prompts" in the config file are sent
before the conversation. --system replaces the configured system prompt.

Examples:
  # Single question
  oai chat "What is bitcoin?"

  # Stream the answer as it is generated
  oai chat --stream "Tell me a short story"

  # Pipe a document in
  cat notes.txt | oai chat --system "Summarize the text"

  # Interactive session
  oai chat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&chatFlags.system, "system", "s", "", "system prompt")
	chatCmd.Flags().BoolVar(&chatFlags.stream, "stream", false, "stream the answer")
	chatCmd.Flags().Float32VarP(&chatFlags.temperature, "temperature", "t", 1, "sampling temperature")
	chatCmd.Flags().IntVar(&chatFlags.maxTokens, "max-tokens", 0, "maximum tokens to generate (0 uses the model limit)")
}

func runChat(cmd *cobra.Command, args []string) error {
	settings, err := loadFileSettings(cfgFile)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	c := &chatSession{
		client:   client,
		model:    chatModel(settings),
		base:     systemMessages(settings.Prompts),
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		setTemp:  cmd.Flags().Changed("temperature"),
		setLimit: chatFlags.maxTokens > 0,
	}

	if len(args) == 1 {
		_, err := c.send(ctx, append(slices.Clone(c.base), openai.UserMessage(args[0])))
		return err
	}

	if isTerminal(cmd.InOrStdin()) {
		line := liner.NewLiner()
		defer func() { _ = line.Close() }()
		line.SetCtrlCAborts(true)
		return c.loop(ctx, line)
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return errors.New("empty prompt")
	}
	_, err = c.send(ctx, append(slices.Clone(c.base), openai.UserMessage(prompt)))
	return err
}

// systemMessages returns the messages sent before the conversation
func systemMessages(p openai.Prompts) []openai.ChatCompletionMessage {
	if chatFlags.system != "" {
		p.System = []string{chatFlags.system}
	}
	return p.Messages()
}

// lineReader is the part of liner.State used by the interactive loop
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type chatSession struct {
	client   *openai.Client
	model    openai.Model
	base     []openai.ChatCompletionMessage
	out      io.Writer
	errOut   io.Writer
	setTemp  bool
	setLimit bool
}

func (c *chatSession) request(messages []openai.ChatCompletionMessage) openai.ChatCompletionRequest {
	req := openai.NewChatCompletionRequestMulti(c.model, messages)
	if c.setTemp {
		req = req.WithTemperature(chatFlags.temperature)
	}
	if c.setLimit {
		req = req.WithMaxTokens(chatFlags.maxTokens)
	}
	return req
}

// send runs one turn and prints the answer, returning the assistant message
func (c *chatSession) send(ctx context.Context, messages []openai.ChatCompletionMessage) (openai.ChatCompletionMessage, error) {
	req := c.request(messages)

	if chatFlags.stream {
		stream, err := c.client.CreateChatCompletionStream(ctx, req)
		if err != nil {
			return openai.ChatCompletionMessage{}, err
		}
		defer func() { _ = stream.Close() }()

		acc := openai.NewChatStreamAccumulator()
		for chunk, err := range stream.All() {
			if err != nil {
				fmt.Fprintln(c.out)
				return openai.ChatCompletionMessage{}, err
			}
			acc.Add(chunk)
			for _, choice := range chunk.Choices {
				if choice.Index == 0 {
					assistantColor.Fprint(c.out, choice.Delta.Content)
				}
			}
		}
		fmt.Fprintln(c.out)

		choice, ok := acc.Response().FirstChoice()
		if !ok {
			return openai.ChatCompletionMessage{}, errors.New("the stream returned no choices")
		}
		return choice.Message, nil
	}

	resp, err := withSpinner(c.errOut, "thinking", func() (*openai.ChatCompletionResponse, error) {
		return c.client.CreateChatCompletion(ctx, req)
	})
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}
	choice, ok := resp.FirstChoice()
	if !ok {
		return openai.ChatCompletionMessage{}, errors.New("the response has no choices")
	}
	assistantColor.Fprintln(c.out, choice.Message.Text())
	if verbose && resp.Usage != nil {
		fmt.Fprintf(c.errOut, "tokens: %d prompt + %d completion = %d\n",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	}
	return choice.Message, nil
}

// loop runs the interactive session until end of input or /exit
func (c *chatSession) loop(ctx context.Context, in lineReader) error {
	noticeColor.Fprintf(c.out, "Chatting with %s. Type /reset to start over, /exit to quit.\n", c.model)

	history := slices.Clone(c.base)
	for {
		line, err := in.Prompt("you> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/reset":
			history = slices.Clone(c.base)
			noticeColor.Fprintln(c.out, "Conversation cleared.")
			continue
		}
		in.AppendHistory(line)

		reply, err := c.send(ctx, append(history, openai.UserMessage(line)))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			errorColor.Fprintf(c.errOut, "error: %v\n", err)
			continue
		}
		history = append(history, openai.UserMessage(line), reply)
	}
}

var _ lineReader = (*liner.State)(nil)

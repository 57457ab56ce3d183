package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var completeFlags struct {
	maxTokens int
	suffix    string
	echo      bool
}

var completeCmd = &cobra.Command{
	Use:   "complete <prompt>",
	Short: "Complete a prompt with the legacy completions endpoint",
	Long: `Send a prompt to the completions endpoint and print the generated text.

Examples:
  oai complete "Once upon a time"
  oai complete --max-tokens 50 --echo "def fibonacci(n):"`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)

	completeCmd.Flags().IntVar(&completeFlags.maxTokens, "max-tokens", 256, "maximum tokens to generate")
	completeCmd.Flags().StringVar(&completeFlags.suffix, "suffix", "", "text that follows the completion")
	completeCmd.Flags().BoolVar(&completeFlags.echo, "echo", false, "print the prompt before the completion")
}

func runComplete(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewCompletionRequest(modelOr(openai.GPT35TurboInstruct), args[0])
	if completeFlags.maxTokens > 0 {
		req = req.WithMaxTokens(completeFlags.maxTokens)
	}
	if completeFlags.suffix != "" {
		req = req.WithSuffix(completeFlags.suffix)
	}
	if completeFlags.echo {
		req = req.WithEcho(true)
	}

	resp, err := withSpinner(cmd.ErrOrStderr(), "completing", func() (*openai.CompletionResponse, error) {
		return client.CreateCompletion(commandContext(cmd), req)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Text())
	return nil
}

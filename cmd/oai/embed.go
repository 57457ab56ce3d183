package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var embedFlags struct {
	dimensions int
	format     string
}

var embedCmd = &cobra.Command{
	Use:   "embed <text...>",
	Short: "Compute embeddings",
	Long: `Compute one embedding per argument.

Output formats:
  - text (default): one line per input with its size and leading values
  - json: the full vectors

Examples:
  oai embed "The food was delicious"
  oai embed --dimensions 256 --format json "first" "second"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().IntVar(&embedFlags.dimensions, "dimensions", 0, "truncate the vectors to this size")
	embedCmd.Flags().StringVar(&embedFlags.format, "format", "text", "output format: text, json")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewEmbeddingRequestMulti(modelOr(openai.TextEmbedding3Small), args)
	if embedFlags.dimensions > 0 {
		req = req.WithDimensions(embedFlags.dimensions)
	}

	resp, err := client.CreateEmbeddings(commandContext(cmd), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if embedFlags.format == "json" {
		return printJSON(out, resp.Data)
	}

	for _, e := range resp.Data {
		preview := make([]string, 0, 3)
		for _, v := range e.Embedding[:min(3, len(e.Embedding))] {
			preview = append(preview, fmt.Sprintf("%.4f", v))
		}
		var input string
		if e.Index < len(args) {
			input = args[e.Index]
		}
		fmt.Fprintf(out, "%d\t%d dims\t[%s ...]\t%s\n", e.Index, len(e.Embedding), strings.Join(preview, " "), input)
	}
	fmt.Fprintf(out, "model %s, %d tokens\n", resp.Model, resp.Usage.TotalTokens)
	return nil
}

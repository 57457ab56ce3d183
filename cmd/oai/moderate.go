package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var moderateFlags struct {
	format string
}

var moderateCmd = &cobra.Command{
	Use:   "moderate <text>",
	Short: "Check text against the moderation endpoint",
	Long: `Classify text with the moderation endpoint.

The command exits with an error when the text is flagged, so it can be used
as a filter in scripts.

Examples:
  oai moderate "I want to hurt them"
  oai moderate --format json "hello"`,
	Args: cobra.ExactArgs(1),
	RunE: runModerate,
}

func init() {
	rootCmd.AddCommand(moderateCmd)

	moderateCmd.Flags().StringVar(&moderateFlags.format, "format", "text", "output format: text, json")
}

// errFlagged is returned when the moderation endpoint flags the input
var errFlagged = errors.New("input flagged by moderation")

func runModerate(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewModerationRequest(args[0])
	if modelName != "" {
		req.Model = openai.Model(modelName)
	}
	resp, err := client.CreateModeration(commandContext(cmd), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if moderateFlags.format == "json" {
		if err := printJSON(out, resp.Results); err != nil {
			return err
		}
	} else {
		for _, r := range resp.Results {
			labelColor.Fprint(out, "flagged: ")
			fmt.Fprintln(out, r.Flagged)
			c, s := r.Categories, r.CategoryScores
			printCategory(out, "harassment", c.Harassment, s.Harassment)
			printCategory(out, "harassment/threatening", c.HarassmentThreatening, s.HarassmentThreatening)
			printCategory(out, "hate", c.Hate, s.Hate)
			printCategory(out, "hate/threatening", c.HateThreatening, s.HateThreatening)
			printCategory(out, "self-harm", c.SelfHarm, s.SelfHarm)
			printCategory(out, "self-harm/intent", c.SelfHarmIntent, s.SelfHarmIntent)
			printCategory(out, "self-harm/instructions", c.SelfHarmInstructions, s.SelfHarmInstructions)
			printCategory(out, "sexual", c.Sexual, s.Sexual)
			printCategory(out, "sexual/minors", c.SexualMinors, s.SexualMinors)
			printCategory(out, "violence", c.Violence, s.Violence)
			printCategory(out, "violence/graphic", c.ViolenceGraphic, s.ViolenceGraphic)
		}
	}

	if resp.Flagged() {
		return errFlagged
	}
	return nil
}

func printCategory(w io.Writer, name string, flagged bool, score float64) {
	mark := " "
	if flagged {
		mark = errorColor.Sprint("x")
	}
	fmt.Fprintf(w, "  [%s] %-24s %.4f\n", mark, name, score)
}

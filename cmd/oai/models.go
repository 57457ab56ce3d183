package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List and inspect models",
	Long: `List the models available to the account, or show one of them.

Subcommands:
  list   - List models (default)
  get    - Show a model
  delete - Delete a fine-tuned model

Examples:
  oai models
  oai models get gpt-4o`,
	Args: cobra.NoArgs,
	RunE: listModels,
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models",
	Args:  cobra.NoArgs,
	RunE:  listModels,
}

var modelsGetCmd = &cobra.Command{
	Use:   "get <model>",
	Short: "Show a model",
	Args:  cobra.ExactArgs(1),
	RunE:  getModel,
}

var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <model>",
	Short: "Delete a fine-tuned model",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteModel,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsGetCmd)
	modelsCmd.AddCommand(modelsDeleteCmd)
}

func listModels(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	list, err := client.ListModels(commandContext(cmd))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNED BY\tCREATED")
	for _, m := range list.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.OwnedBy, formatTime(m.Created))
	}
	return w.Flush()
}

func getModel(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	model, err := client.RetrieveModel(commandContext(cmd), openai.Model(args[0]))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), model)
}

func deleteModel(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	status, err := client.DeleteFineTunedModel(commandContext(cmd), openai.Model(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s: %t\n", status.ID, status.Deleted)
	return nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var finetuneFlags struct {
	after          string
	limit          int
	validationFile string
	suffix         string
	epochs         int
}

var finetuneCmd = &cobra.Command{
	Use:   "finetune",
	Short: "Manage fine-tuning jobs",
	Long: `Create, list, inspect and cancel fine-tuning jobs.

Subcommands:
  list   - List jobs
  get    - Show a job
  create - Start a job from an uploaded training file
  cancel - Cancel a running job
  events - Show the events of a job

Examples:
  oai files upload --purpose fine-tune train.jsonl
  oai finetune create --model gpt-3.5-turbo-0125 --epochs 3 file-abc123
  oai finetune events ftjob-abc123`,
}

var finetuneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fine-tuning jobs",
	Args:  cobra.NoArgs,
	RunE:  listFineTuningJobs,
}

var finetuneGetCmd = &cobra.Command{
	Use:   "get <job-id>",
	Short: "Show a fine-tuning job",
	Args:  cobra.ExactArgs(1),
	RunE:  getFineTuningJob,
}

var finetuneCreateCmd = &cobra.Command{
	Use:   "create <training-file-id>",
	Short: "Start a fine-tuning job",
	Args:  cobra.ExactArgs(1),
	RunE:  createFineTuningJob,
}

var finetuneCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a fine-tuning job",
	Args:  cobra.ExactArgs(1),
	RunE:  cancelFineTuningJob,
}

var finetuneEventsCmd = &cobra.Command{
	Use:   "events <job-id>",
	Short: "Show the events of a fine-tuning job",
	Args:  cobra.ExactArgs(1),
	RunE:  listFineTuningEvents,
}

func init() {
	rootCmd.AddCommand(finetuneCmd)
	finetuneCmd.AddCommand(finetuneListCmd, finetuneGetCmd, finetuneCreateCmd, finetuneCancelCmd, finetuneEventsCmd)

	for _, c := range []*cobra.Command{finetuneListCmd, finetuneEventsCmd} {
		c.Flags().StringVar(&finetuneFlags.after, "after", "", "return entries after this id")
		c.Flags().IntVar(&finetuneFlags.limit, "limit", 0, "maximum number of entries")
	}
	finetuneCreateCmd.Flags().StringVar(&finetuneFlags.validationFile, "validation-file", "", "id of the validation file")
	finetuneCreateCmd.Flags().StringVar(&finetuneFlags.suffix, "suffix", "", "suffix added to the fine-tuned model name")
	finetuneCreateCmd.Flags().IntVar(&finetuneFlags.epochs, "epochs", 0, "number of epochs (0 lets the API choose)")
}

func listFineTuningJobs(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	list, err := client.ListFineTuningJobs(commandContext(cmd), finetuneFlags.after, finetuneFlags.limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSTATUS\tFINE-TUNED MODEL\tCREATED")
	for _, job := range list.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", job.ID, job.Model, job.Status, deref(job.FineTunedModel), formatTime(job.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if list.HasMore {
		noticeColor.Fprintln(cmd.ErrOrStderr(), "more jobs available, use --after with the last id")
	}
	return nil
}

func getFineTuningJob(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	job, err := client.RetrieveFineTuningJob(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), job)
}

func createFineTuningJob(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewFineTuningJobRequest(modelOr(openai.GPT35Turbo0125), args[0])
	req.ValidationFile = finetuneFlags.validationFile
	req.Suffix = finetuneFlags.suffix
	if finetuneFlags.epochs > 0 {
		req.Hyperparameters = &openai.Hyperparameters{NEpochs: openai.FixedValue(finetuneFlags.epochs)}
	}

	job, err := client.CreateFineTuningJob(commandContext(cmd), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", job.ID, job.Status)
	return nil
}

func cancelFineTuningJob(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	job, err := client.CancelFineTuningJob(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", job.ID, job.Status)
	return nil
}

func listFineTuningEvents(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	events, err := client.ListFineTuningJobEvents(commandContext(cmd), args[0], finetuneFlags.after, finetuneFlags.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range events.Data {
		fmt.Fprintf(out, "%s  %-5s  %s\n", formatTime(e.CreatedAt), e.Level, e.Message)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

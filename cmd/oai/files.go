package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var filesFlags struct {
	purpose string
	output  string
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage uploaded files",
	Long: `Upload, list, inspect, download and delete files.

Subcommands:
  list    - List files, optionally by purpose
  upload  - Upload a file
  get     - Show a file
  delete  - Delete a file
  content - Download the content of a file

Examples:
  oai files upload --purpose fine-tune train.jsonl
  oai files list --purpose fine-tune
  oai files content file-abc123 -o results.csv`,
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files",
	Args:  cobra.NoArgs,
	RunE:  listFiles,
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE:  uploadFile,
}

var filesGetCmd = &cobra.Command{
	Use:   "get <file-id>",
	Short: "Show a file",
	Args:  cobra.ExactArgs(1),
	RunE:  getFile,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFile,
}

var filesContentCmd = &cobra.Command{
	Use:   "content <file-id>",
	Short: "Download the content of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  fileContent,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd, filesUploadCmd, filesGetCmd, filesDeleteCmd, filesContentCmd)

	filesListCmd.Flags().StringVar(&filesFlags.purpose, "purpose", "", "only list files with this purpose")
	filesUploadCmd.Flags().StringVar(&filesFlags.purpose, "purpose", string(openai.FilePurposeFineTune), "purpose of the file")
	filesContentCmd.Flags().StringVarP(&filesFlags.output, "output", "o", "", "write to this file instead of stdout")
}

func listFiles(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	list, err := client.ListFiles(commandContext(cmd), openai.FilePurpose(filesFlags.purpose))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tPURPOSE\tBYTES\tCREATED")
	for _, f := range list.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.Filename, f.Purpose, f.Bytes, formatTime(f.CreatedAt))
	}
	return w.Flush()
}

func uploadFile(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewFileUploadRequest(args[0], openai.FilePurpose(filesFlags.purpose))
	file, err := withSpinner(cmd.ErrOrStderr(), "uploading", func() (*openai.File, error) {
		return client.UploadFile(commandContext(cmd), req)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s as %s (%d bytes)\n", file.Filename, file.ID, file.Bytes)
	return nil
}

func getFile(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	file, err := client.RetrieveFile(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), file)
}

func deleteFile(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	status, err := client.DeleteFile(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s: %t\n", status.ID, status.Deleted)
	return nil
}

func fileContent(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	content, err := client.RetrieveFileContent(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if filesFlags.output != "" {
		n, err := content.SaveTo(filesFlags.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", n, filesFlags.output)
		return nil
	}

	defer func() { _ = content.Close() }()
	if _, err := io.Copy(cmd.OutOrStdout(), content); err != nil {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	return nil
}

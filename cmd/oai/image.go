package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var imageFlags struct {
	size    string
	n       int
	quality string
	output  string
}

var imageCmd = &cobra.Command{
	Use:   "image <prompt>",
	Short: "Generate images from a prompt",
	Long: `Generate images and print their URLs.

With --output the images are requested inline and written into that
directory as image-1.png, image-2.png and so on.

Examples:
  oai image "a white siamese cat"
  oai image --model dall-e-3 --size 1792x1024 --quality hd "a lighthouse at dusk"
  oai image --n 2 -o ./images "a watercolor fox"`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().StringVar(&imageFlags.size, "size", "", "image size, e.g. 1024x1024")
	imageCmd.Flags().IntVar(&imageFlags.n, "n", 1, "number of images")
	imageCmd.Flags().StringVar(&imageFlags.quality, "quality", "", "standard or hd (dall-e-3 only)")
	imageCmd.Flags().StringVarP(&imageFlags.output, "output", "o", "", "directory to save the images into")
}

func runImage(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewImageGenerationRequest(args[0])
	req.Model = modelOr("")
	req.Size = openai.ImageSize(imageFlags.size)
	req.Quality = openai.ImageQuality(imageFlags.quality)
	if imageFlags.n > 1 {
		req.N = openai.Ptr(imageFlags.n)
	}
	if imageFlags.output != "" {
		req.ResponseFormat = openai.ImageResponseFormatB64JSON
	}

	resp, err := withSpinner(cmd.ErrOrStderr(), "generating", func() (*openai.ImageResponse, error) {
		return client.CreateImage(commandContext(cmd), req)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, img := range resp.Data {
		if img.RevisedPrompt != "" {
			noticeColor.Fprintf(out, "revised prompt: %s\n", img.RevisedPrompt)
		}
		if imageFlags.output == "" {
			fmt.Fprintln(out, img.URL)
			continue
		}

		data, err := img.Decode()
		if err != nil {
			return fmt.Errorf("image %d: %w", i+1, err)
		}
		if err := os.MkdirAll(imageFlags.output, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path := filepath.Join(imageFlags.output, fmt.Sprintf("image-%d.png", i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		fmt.Fprintln(out, path)
	}
	return nil
}

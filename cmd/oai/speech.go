package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inercia/go-oai/pkg/openai"
)

var speechFlags struct {
	output string
	voice  string
	format string
	speed  float32
}

var speechCmd = &cobra.Command{
	Use:   "speech <text>",
	Short: "Turn text into spoken audio",
	Long: `Generate audio from text and write it to a file. Missing directories in
the output path are created.

Voices: alloy, echo, fable, onyx, nova, shimmer.
Formats: mp3, opus, aac, flac, wav, pcm.

Examples:
  oai speech "Hello world" -o hello.mp3
  oai speech --voice nova --format wav "Good morning" -o out/morning.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeech,
}

func init() {
	rootCmd.AddCommand(speechCmd)

	speechCmd.Flags().StringVarP(&speechFlags.output, "output", "o", "speech.mp3", "output file")
	speechCmd.Flags().StringVar(&speechFlags.voice, "voice", string(openai.VoiceAlloy), "voice to use")
	speechCmd.Flags().StringVar(&speechFlags.format, "format", "", "audio format (defaults to mp3)")
	speechCmd.Flags().Float32Var(&speechFlags.speed, "speed", 0, "speaking speed between 0.25 and 4.0")
}

func runSpeech(cmd *cobra.Command, args []string) error {
	voice := openai.Voice(speechFlags.voice)
	if !voice.Known() {
		return fmt.Errorf("unknown voice %q", speechFlags.voice)
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	req := openai.NewSpeechRequest(modelOr(openai.TTS1), args[0], voice)
	req.ResponseFormat = openai.SpeechFormat(speechFlags.format)
	if speechFlags.speed > 0 {
		req.Speed = openai.Ptr(speechFlags.speed)
	}

	_, err = withSpinner(cmd.ErrOrStderr(), "generating audio", func() (*openai.RawResponse, error) {
		return client.SaveSpeech(commandContext(cmd), req, speechFlags.output)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", speechFlags.output)
	return nil
}

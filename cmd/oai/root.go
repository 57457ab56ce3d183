package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inercia/go-oai/pkg/factory"
	"github.com/inercia/go-oai/pkg/openai"
	"github.com/inercia/go-oai/pkg/transport"
)

var (
	// Global flags
	cfgFile    string
	verbose    bool
	modelName  string
	presetName string
)

var rootCmd = &cobra.Command{
	Use:   "oai",
	Short: "Command-line client for the OpenAI API",
	Long: `oai talks to the OpenAI REST API, or to any endpoint speaking the same
protocol.

The client is configured, in order of preference, from:
  - a named preset (--preset openai|openrouter|deepseek|ollama)
  - a YAML config file (--config)
  - the OPENAI_* environment variables`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if flushErr := tel.flush(context.Background()); flushErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", flushErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request to stderr")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "model to use instead of the command default")
	rootCmd.PersistentFlags().StringVarP(&presetName, "preset", "p", "", "endpoint preset: "+presetNames())
}

func presetNames() string {
	return strings.Join(factory.ListPresets(), ", ")
}

// fileSettings holds the parts of the config file only the CLI reads. The
// connection settings in the same file are decoded by openai.LoadConfigFile.
type fileSettings struct {
	Model   openai.Model   `yaml:"model"`
	Prompts openai.Prompts `yaml:"prompts"`
}

func loadFileSettings(path string) (fileSettings, error) {
	var settings fileSettings
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config file: %w", err)
	}
	return settings, nil
}

// newClient builds the client used by every subcommand
var newClient = defaultClient

func defaultClient(cmd *cobra.Command) (*openai.Client, error) {
	logger := newLogger(cmd.ErrOrStderr())
	mws := append([]transport.Middleware{transport.RequestID()}, tel.middlewares()...)
	opts := []openai.Option{
		openai.WithLogger(logger),
		openai.WithMiddleware(append(mws, transport.Logging(logger))...),
	}

	switch {
	case presetName != "":
		client, err := factory.New().CreateClient(presetName, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for preset %s: %w", presetName, err)
		}
		return client, nil
	case cfgFile != "":
		cfg, err := openai.LoadConfigFile(cfgFile)
		if err != nil {
			return nil, err
		}
		return openai.NewClientWithConfig(cfg, opts...)
	default:
		return openai.NewClientFromEnv(opts...)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// modelOr returns the model given with --model, or fallback
func modelOr(fallback openai.Model) openai.Model {
	if modelName != "" {
		return openai.Model(modelName)
	}
	return fallback
}

// chatModel resolves the chat model: --model, then the config file, then the
// preset default
func chatModel(settings fileSettings) openai.Model {
	if modelName != "" {
		return openai.Model(modelName)
	}
	if settings.Model != "" {
		return settings.Model
	}
	if presetName != "" {
		if p, ok := factory.GetPreset(presetName); ok && p.DefaultModel != "" {
			return openai.Model(p.DefaultModel)
		}
	}
	return openai.DefaultModel
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

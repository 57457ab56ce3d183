// Package factory creates API clients for OpenAI and for the OpenAI
// compatible services that share its wire format.
//
// Each service is described by a Preset: its base URL, the environment
// variables holding its key and endpoint, and its default model. The
// built-in presets are registered when the package is imported, and
// programs may register their own.
//
// Example usage:
//
//	import (
//	    "github.com/inercia/go-oai/pkg/factory"
//	    "github.com/inercia/go-oai/pkg/openai"
//	)
//
//	client, err := factory.New().CreateClient("openrouter", openai.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
package factory

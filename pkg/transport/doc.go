// Package transport provides the HTTP plumbing used by the openai client.
//
// It defines the Doer swap point used by the client to issue requests, a
// RoundTripper based middleware chain, and ready-made middleware for
// structured logging, Prometheus metrics, OpenTelemetry tracing and client
// request ids.
//
// Example usage:
//
//	metrics, err := transport.NewMetrics(prometheus.DefaultRegisterer, "oai")
//	if err != nil {
//	    return err
//	}
//	httpClient, err := transport.NewHTTPClient(transport.Options{
//	    Timeout: 30 * time.Second,
//	    Middlewares: []transport.Middleware{
//	        transport.RequestID(),
//	        transport.Logging(slog.Default()),
//	        metrics.Middleware(),
//	        transport.Tracing(),
//	    },
//	})
package transport

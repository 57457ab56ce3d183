package transport

import (
	"net/http"
)

// Doer executes a single HTTP request. *http.Client satisfies it, which makes
// it the swap point for alternative HTTP implementations and test doubles.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Middleware decorates a RoundTripper with additional behavior.
//
// Implementations must not modify the incoming request; they should clone it
// before changing headers, as required by the http.RoundTripper contract.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to the http.RoundTripper interface
type RoundTripperFunc func(req *http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// DoerFunc adapts a function to the Doer interface
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do implements Doer
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with the given middlewares. The first middleware is the
// outermost one: it sees the request first and the response last.
// A nil base means http.DefaultTransport. Nil middlewares are skipped.
func Chain(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		rt = middlewares[i](rt)
	}
	return rt
}

// WrapDoer applies middlewares to an existing Doer.
//
// When the Doer is an *http.Client the middlewares are installed on a shallow
// copy of it, so its timeout, cookie jar and redirect policy are preserved.
// Any other Doer is adapted through a RoundTripper, in which case the
// middlewares run before the Doer is invoked.
func WrapDoer(doer Doer, middlewares ...Middleware) Doer {
	if len(middlewares) == 0 {
		return doer
	}

	if hc, ok := doer.(*http.Client); ok {
		clone := *hc
		clone.Transport = Chain(hc.Transport, middlewares...)
		return &clone
	}

	rt := Chain(RoundTripperFunc(doer.Do), middlewares...)
	return DoerFunc(rt.RoundTrip)
}

// StaticHeaders sets the given headers on every request that does not already
// carry them.
func StaticHeaders(headers http.Header) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if len(headers) == 0 {
				return next.RoundTrip(req)
			}

			req = req.Clone(req.Context())
			for name, values := range headers {
				if req.Header.Get(name) != "" {
					continue
				}
				for _, v := range values {
					req.Header.Add(name, v)
				}
			}
			return next.RoundTrip(req)
		})
	}
}

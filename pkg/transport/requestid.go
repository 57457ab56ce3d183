package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries a client generated id that the API echoes in its
// logs, which makes it possible to correlate a failed call with support.
const RequestIDHeader = "X-Client-Request-Id"

// RequestID sets a random UUID in RequestIDHeader on requests lacking one
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(req)
		})
	}
}

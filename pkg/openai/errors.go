// Error types and handling
package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ErrorKind classifies where a failure happened
type ErrorKind string

const (
	// KindConfig indicates missing or invalid credentials, base URL or proxy
	KindConfig ErrorKind = "config"
	// KindTransport indicates a connection failure, timeout, TLS failure or cancellation
	KindTransport ErrorKind = "transport"
	// KindSerialization indicates the request could not be encoded
	KindSerialization ErrorKind = "serialization"
	// KindDeserialization indicates the response body did not match the expected schema
	KindDeserialization ErrorKind = "deserialization"
	// KindAPI indicates the API answered with a non-2xx status or an in-stream error
	KindAPI ErrorKind = "api"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrConfig          = &Error{Kind: KindConfig}
	ErrTransport       = &Error{Kind: KindTransport}
	ErrSerialization   = &Error{Kind: KindSerialization}
	ErrDeserialization = &Error{Kind: KindDeserialization}
	ErrAPI             = &Error{Kind: KindAPI}
)

// Error represents every failure returned by the client
type Error struct {
	Kind       ErrorKind `json:"kind"`
	StatusCode int       `json:"status_code,omitempty"`
	Message    string    `json:"message"`
	Type       string    `json:"type,omitempty"`
	Code       string    `json:"code,omitempty"`
	Param      string    `json:"param,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`

	// Body holds the raw response body for API and deserialization errors
	Body []byte `json:"-"`
	// Cause is the underlying error, if any
	Cause error `json:"-"`
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("openai: ")
	sb.WriteString(string(e.Kind))
	sb.WriteString(" error")

	var details []string
	if e.StatusCode != 0 {
		details = append(details, "status "+strconv.Itoa(e.StatusCode))
	}
	if e.Type != "" {
		details = append(details, "type "+e.Type)
	}
	if e.Code != "" {
		details = append(details, "code "+e.Code)
	}
	if len(details) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(details, ", "))
		sb.WriteString(")")
	}

	switch {
	case e.Message != "" && e.Cause != nil:
		sb.WriteString(": " + e.Message + ": " + e.Cause.Error())
	case e.Message != "":
		sb.WriteString(": " + e.Message)
	case e.Cause != nil:
		sb.WriteString(": " + e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is one of the kind sentinels matching e
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return isSentinel(t) && t.Kind == e.Kind
}

func isSentinel(e *Error) bool {
	return e.Message == "" && e.StatusCode == 0 && e.Cause == nil && e.Type == "" && e.Code == ""
}

// Temporary reports whether the same call may succeed later: transport
// failures, rate limiting and server side errors.
func (e *Error) Temporary() bool {
	switch {
	case e.Kind == KindTransport:
		return true
	case e.Kind == KindAPI:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// AsAPIError returns the *Error carried by err when it is an API error
func AsAPIError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindAPI {
		return e, true
	}
	return nil, false
}

func newConfigError(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

func newTransportError(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Cause: cause}
}

func newSerializationError(message string, cause error) *Error {
	return &Error{Kind: KindSerialization, Message: message, Cause: cause}
}

func newDeserializationError(message string, body []byte, cause error) *Error {
	return &Error{Kind: KindDeserialization, Message: message, Body: body, Cause: cause}
}

// errorEnvelope is the {"error": ...} wrapper the API uses for failures.
// Some OpenAI compatible servers send the error as a bare string.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

type errorBody struct {
	Message looseString `json:"message"`
	Type    looseString `json:"type"`
	Param   looseString `json:"param"`
	Code    looseString `json:"code"`
}

// looseString accepts a JSON string, number, boolean, null or an array of
// strings. The API is not consistent about the types in its error bodies.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case '[':
		var parts []looseString
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		strs := make([]string, 0, len(parts))
		for _, p := range parts {
			strs = append(strs, string(p))
		}
		*s = looseString(strings.Join(strs, "; "))
	default:
		*s = looseString(data)
	}
	return nil
}

// parseErrorPayload extracts an API error from a JSON payload.
// It returns nil when the payload carries no error object.
func parseErrorPayload(data []byte) *Error {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err != nil || len(env.Error) == 0 || bytes.Equal(env.Error, []byte("null")) {
		return nil
	}

	raw := bytes.TrimSpace(env.Error)
	if raw[0] == '"' {
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil
		}
		return &Error{Kind: KindAPI, Message: msg}
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return &Error{
		Kind:    KindAPI,
		Message: string(body.Message),
		Type:    string(body.Type),
		Param:   string(body.Param),
		Code:    string(body.Code),
	}
}

// maxErrorBody bounds how much of a failed response is kept in memory
const maxErrorBody = 1 << 20

// decodeAPIError converts a non-2xx response into an *Error. The body is
// consumed but not closed.
func decodeAPIError(resp *http.Response) *Error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := parseErrorPayload(body)
	if apiErr == nil {
		apiErr = &Error{Kind: KindAPI}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = "unexpected status " + strconv.Itoa(resp.StatusCode)
	}
	apiErr.StatusCode = resp.StatusCode
	apiErr.RequestID = resp.Header.Get("X-Request-Id")
	apiErr.Body = body
	if readErr != nil {
		apiErr.Cause = readErr
	}
	return apiErr
}

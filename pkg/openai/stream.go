package openai

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync"
)

const (
	streamInitialBuffer = 64 * 1024
	streamMaxLine       = 8 * 1024 * 1024
)

var (
	sseDataPrefix = []byte("data:")
	sseDone       = []byte("[DONE]")
	errorKey      = []byte(`"error"`)
)

// Stream is a finite, non-restartable sequence of server-sent events decoded
// into T. It owns the underlying connection: read it until Recv returns
// io.EOF or an error, or call Close to release the connection early.
//
// A Stream is not safe for concurrent Recv calls, but Close may be called
// from any goroutine to abort a blocked Recv.
type Stream[T any] struct {
	ResponseMeta

	body    io.ReadCloser
	scanner *bufio.Scanner
	status  int

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
	closeErr  error
}

func newStream[T any](resp *http.Response) *Stream[T] {
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, streamInitialBuffer), streamMaxLine)

	s := &Stream[T]{
		body:    resp.Body,
		scanner: scanner,
		status:  resp.StatusCode,
	}
	s.setHeader(resp.Header)
	return s
}

// Recv returns the next event. It returns io.EOF once the server sent the
// [DONE] marker or closed the connection, and the same error on every call
// after the stream ended.
func (s *Stream[T]) Recv() (T, error) {
	var zero T

	if err := s.finished(); err != nil {
		return zero, err
	}

	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 || line[0] == ':' {
			// blank separators and comments
			continue
		}

		data, ok := bytes.CutPrefix(line, sseDataPrefix)
		if !ok {
			// A bare JSON line is an error body written without SSE framing;
			// event:, id: and retry: fields carry nothing we need.
			if line[0] == '{' {
				if apiErr := parseErrorPayload(line); apiErr != nil {
					return zero, s.fail(s.decorate(apiErr))
				}
			}
			continue
		}
		data = bytes.TrimSpace(data)

		if bytes.Equal(data, sseDone) {
			return zero, s.fail(io.EOF)
		}

		if bytes.Contains(data, errorKey) {
			if apiErr := parseErrorPayload(data); apiErr != nil {
				return zero, s.fail(s.decorate(apiErr))
			}
		}

		var event T
		if err := json.Unmarshal(data, &event); err != nil {
			return zero, s.fail(newDeserializationError(fmt.Sprintf("failed to decode stream event into %T", event), bytes.Clone(data), err))
		}
		return event, nil
	}

	if err := s.scanner.Err(); err != nil {
		if closed := s.finished(); closed != nil {
			return zero, closed
		}
		return zero, s.fail(newTransportError("failed to read stream", err))
	}
	return zero, s.fail(io.EOF)
}

// All iterates over the remaining events. Iteration stops at the end of the
// stream or after yielding the first error; the stream is closed either way.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer func() { _ = s.Close() }()
		for {
			event, err := s.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Err returns the error that ended the stream, nil while it is still open or
// when it ended normally.
func (s *Stream[T]) Err() error {
	err := s.finished()
	if errors.Is(err, io.EOF) || errors.Is(err, errStreamClosed) {
		return nil
	}
	return err
}

// Close releases the connection. It is safe to call more than once.
func (s *Stream[T]) Close() error {
	s.mu.Lock()
	if s.err == nil {
		s.err = errStreamClosed
	}
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}

// errStreamClosed is returned by Recv after Close was called
var errStreamClosed = &Error{Kind: KindTransport, Message: "stream closed", Cause: io.ErrClosedPipe}

func (s *Stream[T]) finished() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// fail records the terminal error and releases the connection
func (s *Stream[T]) fail(err error) error {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	err = s.err
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return err
}

func (s *Stream[T]) decorate(apiErr *Error) *Error {
	apiErr.StatusCode = s.status
	apiErr.RequestID = s.RequestID()
	return apiErr
}

package openai

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// FileInput is a file sent in a multipart upload. Set either Reader or Path;
// Name is the filename reported to the API, which uses its extension to
// detect the format.
type FileInput struct {
	Name   string
	Reader io.Reader
	Path   string
}

// FileFromPath references a local file, opened when the request is built
func FileFromPath(path string) FileInput {
	return FileInput{Name: filepath.Base(path), Path: path}
}

// FileFromReader wraps already opened content
func FileFromReader(name string, r io.Reader) FileInput {
	return FileInput{Name: name, Reader: r}
}

// FileFromBytes wraps in-memory content
func FileFromBytes(name string, data []byte) FileInput {
	return FileInput{Name: name, Reader: bytes.NewReader(data)}
}

// IsZero reports whether no file was given
func (f FileInput) IsZero() bool {
	return f.Reader == nil && f.Path == ""
}

// form builds a multipart/form-data body. The first error sticks and is
// reported by finish.
type form struct {
	buf *bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	buf := &bytes.Buffer{}
	return &form{buf: buf, w: multipart.NewWriter(buf)}
}

// file adds a file part; a zero FileInput is skipped
func (f *form) file(field string, in FileInput) *form {
	if f.err != nil || in.IsZero() {
		return f
	}

	r := in.Reader
	name := in.Name
	if r == nil {
		file, err := os.Open(in.Path)
		if err != nil {
			f.err = newSerializationError(fmt.Sprintf("failed to open %s", field), err)
			return f
		}
		defer func() { _ = file.Close() }()
		r = file
		if name == "" {
			name = filepath.Base(in.Path)
		}
	}
	if name == "" {
		name = field
	}

	part, err := f.w.CreateFormFile(field, name)
	if err != nil {
		f.err = newSerializationError(fmt.Sprintf("failed to add %s", field), err)
		return f
	}
	if _, err := io.Copy(part, r); err != nil {
		f.err = newSerializationError(fmt.Sprintf("failed to read %s", field), err)
	}
	return f
}

// field adds a text part; empty values are skipped
func (f *form) field(name, value string) *form {
	if f.err != nil || value == "" {
		return f
	}
	if err := f.w.WriteField(name, value); err != nil {
		f.err = newSerializationError(fmt.Sprintf("failed to add %s", name), err)
	}
	return f
}

func (f *form) intField(name string, v *int) *form {
	if v == nil {
		return f
	}
	return f.field(name, strconv.Itoa(*v))
}

func (f *form) floatField(name string, v *float32) *form {
	if v == nil {
		return f
	}
	return f.field(name, strconv.FormatFloat(float64(*v), 'f', -1, 32))
}

func (f *form) finish() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", newSerializationError("failed to finish multipart body", err)
	}
	return f.buf, f.w.FormDataContentType(), nil
}

// RawResponse is an undecoded response body, returned by the endpoints that
// produce binary content. The caller must close it.
type RawResponse struct {
	ResponseMeta
	io.ReadCloser
	ContentType string
}

func newRawResponse(resp *http.Response) *RawResponse {
	r := &RawResponse{
		ReadCloser:  resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
	}
	r.setHeader(resp.Header)
	return r
}

// Bytes reads the whole body and closes it
func (r *RawResponse) Bytes() ([]byte, error) {
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newTransportError("failed to read response body", err)
	}
	return data, nil
}

// SaveTo writes the body to path, creating missing parent directories, and
// closes it. It returns the number of bytes written.
func (r *RawResponse) SaveTo(path string) (int64, error) {
	defer func() { _ = r.Close() }()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := io.Copy(file, r)
	if err != nil {
		_ = file.Close()
		return n, newTransportError("failed to read response body", err)
	}
	if err := file.Close(); err != nil {
		return n, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return n, nil
}

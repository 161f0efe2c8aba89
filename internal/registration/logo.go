package registration

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	genericContentType = "application/octet-stream"
	dataURIScheme      = "data:"
	base64Marker       = ";base64,"
)

// ErrMalformedDataURI is returned when a data URI cannot be decoded.
var ErrMalformedDataURI = errors.New("registration: malformed data uri")

// Logo is the company image picked by the user. Its bytes are read lazily,
// at encoding time.
type Logo struct {
	Filename    string
	ContentType string
	open        func() (io.ReadCloser, error)
}

// NewLogo wraps bytes already in memory.
func NewLogo(filename, contentType string, data []byte) *Logo {
	return &Logo{
		Filename:    filename,
		ContentType: contentType,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// LogoFromMultipart wraps an uploaded file part. It returns nil when the
// file input was left empty.
func LogoFromMultipart(fh *multipart.FileHeader) *Logo {
	if fh == nil || fh.Filename == "" {
		return nil
	}
	return &Logo{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// LogoFromFile wraps a file on disk. Like a browser, it takes the type from
// the extension and leaves sniffing to encoding time.
func LogoFromFile(path string) (*Logo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("registration: logo: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("registration: logo: %s is a directory", path)
	}
	return &Logo{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// LogoFromDataURI rebuilds a logo carried back by a re-rendered form.
func LogoFromDataURI(uri string) (*Logo, error) {
	mediaType, data, err := decodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	return NewLogo("", mediaType, data), nil
}

// EncodeLogo turns the logo into a self-describing data URI. A nil logo
// encodes to nil, which the backend receives as JSON null.
func EncodeLogo(l *Logo) (*string, error) {
	if l == nil {
		return nil, nil
	}
	if l.open == nil {
		return nil, fmt.Errorf("registration: logo %q has no content", l.Filename)
	}
	rc, err := l.open()
	if err != nil {
		return nil, fmt.Errorf("registration: open logo: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("registration: read logo: %w", err)
	}
	uri := dataURIScheme + resolveMediaType(l.ContentType, data) + base64Marker + base64.StdEncoding.EncodeToString(data)
	return &uri, nil
}

// resolveMediaType keeps a specific declared type and sniffs otherwise.
func resolveMediaType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != genericContentType {
		return mediaType
	}
	if len(data) == 0 {
		return genericContentType
	}
	mediaType, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return genericContentType
	}
	return mediaType
}

func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, dataURIScheme)
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	mediaType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	if mediaType == "" {
		mediaType = genericContentType
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformedDataURI, err)
	}
	return mediaType, data, nil
}

// IsImageDataURI reports whether uri is a base64 data URI of an image type,
// which is what the form is allowed to preview.
func IsImageDataURI(uri string) bool {
	rest, ok := strings.CutPrefix(uri, dataURIScheme+"image/")
	return ok && strings.Contains(rest, base64Marker)
}

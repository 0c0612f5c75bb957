// Package codec converts user-supplied image files into the base64 transport
// encoding expected by the inference provider.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

var (
	// ErrUnreadable indicates the source file could not be read.
	ErrUnreadable = errors.New("could not read file")
	// ErrUnsupportedType indicates the file is not an accepted image type.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrTooLarge indicates the file exceeds the configured size limit.
	ErrTooLarge = errors.New("image exceeds maximum allowed size")
)

var acceptedTypes = []string{"image/png", "image/jpeg", "image/webp"}

// EncodedImage is the wire format for the inference provider: base64 payload
// plus the sniffed MIME type.
type EncodedImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// IsZero reports whether the image carries no payload.
func (e EncodedImage) IsZero() bool {
	return e.Data == ""
}

// Bytes decodes the base64 payload back into raw image bytes.
func (e EncodedImage) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Data)
}

// DataURL renders the image as a data URL for direct embedding by clients.
func (e EncodedImage) DataURL() string {
	return "data:" + e.MimeType + ";base64," + e.Data
}

// AcceptedType reports whether the MIME type is one the pipeline accepts.
func AcceptedType(mime string) bool {
	for _, t := range acceptedTypes {
		if mime == t {
			return true
		}
	}
	return false
}

// Codec reads uploaded files and produces EncodedImage values.
type Codec struct {
	maxSize int64
	logger  zerolog.Logger
}

// New constructs a Codec with the given upload size limit in megabytes.
func New(maxSizeMB int, logger zerolog.Logger) *Codec {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &Codec{
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		logger:  logger.With().Str("component", "codec").Logger(),
	}
}

// Encode reads the file, validates its type and size, and returns the
// base64 transport encoding.
func (c *Codec) Encode(file *multipart.FileHeader) (EncodedImage, error) {
	if file == nil {
		return EncodedImage{}, fmt.Errorf("%w: no file provided", ErrUnreadable)
	}

	if file.Size > c.maxSize {
		return EncodedImage{}, ErrTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return EncodedImage{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer handle.Close()

	return c.EncodeReader(handle)
}

// EncodeReader encodes raw bytes from a reader. Split out so callers that
// already hold a stream can bypass multipart handling.
func (c *Codec) EncodeReader(reader io.Reader) (EncodedImage, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(reader, c.maxSize+1)); err != nil {
		return EncodedImage{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if int64(buf.Len()) > c.maxSize {
		return EncodedImage{}, ErrTooLarge
	}

	if buf.Len() == 0 {
		return EncodedImage{}, fmt.Errorf("%w: empty file", ErrUnreadable)
	}

	mime := mimetype.Detect(buf.Bytes())
	if !AcceptedType(mime.String()) {
		return EncodedImage{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mime.String())
	}

	encoded := EncodedImage{
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType: mime.String(),
	}

	c.logger.Debug().Str("mime_type", encoded.MimeType).Int("bytes", buf.Len()).Msg("image encoded")

	return encoded, nil
}

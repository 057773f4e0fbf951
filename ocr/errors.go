package ocr

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS is configured and default credentials are unavailable.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrImageTooLarge is returned when the image exceeds the synchronous
	// processing limit of the cloud engines (20MB).
	ErrImageTooLarge = errors.New("image size exceeds the maximum limit (20MB)")

	// ErrInvalidImage is returned when the payload is not a decodable image.
	ErrInvalidImage = errors.New("invalid or unsupported image data")

	// ErrRecognitionFailed is returned when an engine processed the request
	// but produced an error response.
	ErrRecognitionFailed = errors.New("text recognition failed")

	// ErrNoText is returned when an engine succeeded but found no text.
	ErrNoText = errors.New("image contains no readable text")
)

// EngineError wraps an engine failure with the operation that produced it.
type EngineError struct {
	Op      string
	Err     error
	Details string
}

func (e *EngineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// WrapEngineError wraps err as an EngineError unless it already is one.
func WrapEngineError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return err
	}
	return &EngineError{Op: op, Err: err, Details: details}
}

// Package ocr turns prescription images into text. Two cloud engines are
// supported: Document AI (handwriting-oriented, primary) and Cloud Vision
// document text detection (fallback, fed an enhanced copy of the image).
// The adapter at the top of the package hides both behind the
// image-bytes-in, text-out boundary the analysis handlers consume.
package ocr

import (
	"context"
	"os"

	"google.golang.org/api/option"
)

// MaxImageSizeBytes is the synchronous processing limit shared by both
// cloud engines.
const MaxImageSizeBytes = 20 * 1024 * 1024

// Engine is one text recognition backend.
type Engine interface {
	// Name identifies the engine in logs, metrics and the health report.
	Name() string

	// Recognize extracts text from the image bytes. It returns ErrNoText
	// when processing succeeded but the image holds no readable text.
	Recognize(ctx context.Context, image []byte) (string, error)
}

// credentialOptions builds the client options for a Google Cloud client
// from the environment: inline GOOGLE_CREDENTIALS JSON first, then a
// GOOGLE_APPLICATION_CREDENTIALS file, otherwise default credentials.
func credentialOptions() []option.ClientOption {
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credJSON))}
	}
	if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(credFile)}
	}
	return nil
}

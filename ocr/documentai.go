package ocr

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIConfig identifies the Document AI OCR processor to call.
type DocumentAIConfig struct {
	ProjectID   string
	Location    string
	ProcessorID string
}

// DocumentAIEngine recognizes text with a Document AI OCR processor. It is
// the primary engine: its handwriting models cope far better with
// handwritten prescriptions than general-purpose text detection.
type DocumentAIEngine struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
}

// NewDocumentAIEngine creates the engine. Credentials come from the
// environment; a non-"us" location switches to the regional endpoint.
func NewDocumentAIEngine(ctx context.Context, config DocumentAIConfig) (*DocumentAIEngine, error) {
	const op = "NewDocumentAIEngine"

	if config.ProjectID == "" || config.ProcessorID == "" {
		return nil, WrapEngineError(op, ErrRecognitionFailed, "project ID and processor ID are required")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	options := credentialOptions()
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		options = append(options, option.WithEndpoint(endpoint))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, options...)
	if err != nil {
		if len(credentialOptions()) == 0 {
			return nil, WrapEngineError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapEngineError(op, err, fmt.Sprintf("failed to create Document AI client for location %s", config.Location))
	}

	return &DocumentAIEngine{client: client, config: config}, nil
}

// NewDocumentAIEngineWithClient creates the engine with an explicit client
// (for testing).
func NewDocumentAIEngineWithClient(client *documentai.DocumentProcessorClient, config DocumentAIConfig) *DocumentAIEngine {
	return &DocumentAIEngine{client: client, config: config}
}

func (e *DocumentAIEngine) Name() string { return "documentai" }

// Recognize sends the raw image to the processor and returns the document
// text.
func (e *DocumentAIEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	const op = "DocumentAIEngine.Recognize"

	if len(image) > MaxImageSizeBytes {
		return "", WrapEngineError(op, ErrImageTooLarge, fmt.Sprintf("image size: %d bytes", len(image)))
	}

	req := &documentaipb.ProcessRequest{
		Name: e.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  image,
				MimeType: http.DetectContentType(image),
			},
		},
	}

	resp, err := e.client.ProcessDocument(ctx, req)
	if err != nil {
		return "", e.classifyError(op, err)
	}
	if resp.Document == nil {
		return "", WrapEngineError(op, ErrRecognitionFailed, "no document in response")
	}

	text := resp.Document.Text
	if strings.TrimSpace(text) == "" {
		return "", WrapEngineError(op, ErrNoText, "")
	}
	return text, nil
}

func (e *DocumentAIEngine) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		e.config.ProjectID, e.config.Location, e.config.ProcessorID)
}

// classifyError maps Document AI failures onto the package sentinels.
func (e *DocumentAIEngine) classifyError(op string, err error) error {
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapEngineError(op, ErrMissingCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapEngineError(op, ErrInvalidImage, "image format not supported or corrupted")
	case strings.Contains(errStr, "context deadline exceeded"):
		return WrapEngineError(op, context.DeadlineExceeded, "recognition timeout")
	case strings.Contains(errStr, "context canceled"):
		return WrapEngineError(op, context.Canceled, "recognition canceled")
	default:
		return WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// Close closes the underlying client.
func (e *DocumentAIEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

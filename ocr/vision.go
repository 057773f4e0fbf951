package ocr

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

// VisionEngine recognizes text with Cloud Vision document text detection.
// It is the fallback engine; the adapter feeds it an enhanced copy of the
// image because general-purpose detection benefits from the cleanup.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine creates the engine with credentials from the environment.
func NewVisionEngine(ctx context.Context) (*VisionEngine, error) {
	const op = "NewVisionEngine"

	options := credentialOptions()
	client, err := vision.NewImageAnnotatorClient(ctx, options...)
	if err != nil {
		if len(options) == 0 {
			return nil, WrapEngineError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapEngineError(op, err, "failed to create Vision client")
	}

	return &VisionEngine{client: client}, nil
}

// NewVisionEngineWithClient creates the engine with an explicit client (for
// testing).
func NewVisionEngineWithClient(client *vision.ImageAnnotatorClient) *VisionEngine {
	return &VisionEngine{client: client}
}

func (e *VisionEngine) Name() string { return "vision" }

// Recognize runs DOCUMENT_TEXT_DETECTION over the image and returns the
// full text annotation.
func (e *VisionEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	const op = "VisionEngine.Recognize"

	if len(image) > MaxImageSizeBytes {
		return "", WrapEngineError(op, ErrImageTooLarge, fmt.Sprintf("image size: %d bytes", len(image)))
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", WrapEngineError(op, ErrRecognitionFailed, "no response from Vision API")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return "", WrapEngineError(op, ErrRecognitionFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}
	if annotation.FullTextAnnotation == nil || strings.TrimSpace(annotation.FullTextAnnotation.Text) == "" {
		return "", WrapEngineError(op, ErrNoText, "")
	}

	return annotation.FullTextAnnotation.Text, nil
}

// Close closes the underlying client.
func (e *VisionEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

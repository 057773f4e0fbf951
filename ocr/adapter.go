package ocr

import (
	"context"

	"github.com/ManolyaGambira/prescriptions-api/interfaces"
	"github.com/ManolyaGambira/prescriptions-api/logging"
	"github.com/ManolyaGambira/prescriptions-api/metrics"
)

// Compile-time checks to ensure both extractors implement TextExtractor
var (
	_ interfaces.TextExtractor = (*Adapter)(nil)
	_ interfaces.TextExtractor = (*Disabled)(nil)
)

// Adapter is the image-to-text boundary: it tries the primary engine with
// the raw image, then the fallback engine with an enhanced copy. An empty
// string is the only failure signal; no error crosses this boundary. There
// are no retries beyond the two engines and no timeout of its own, the
// caller's context is passed through.
type Adapter struct {
	primary  Engine
	fallback Engine
}

// NewAdapter builds the adapter. Either engine may be nil; its slot is
// skipped.
func NewAdapter(primary, fallback Engine) *Adapter {
	return &Adapter{primary: primary, fallback: fallback}
}

// ExtractText returns the recognized text, or "" when every configured
// engine failed.
func (a *Adapter) ExtractText(ctx context.Context, image []byte) string {
	if a.primary != nil {
		text, err := a.primary.Recognize(ctx, image)
		if err == nil {
			metrics.RecordOCRExtraction(a.primary.Name(), "success")
			return text
		}
		metrics.RecordOCRExtraction(a.primary.Name(), "failure")
		logging.Warn("Primary OCR engine failed",
			"engine", a.primary.Name(),
			"error", err.Error())
	}

	if a.fallback != nil {
		input := image
		if enhanced, err := EnhanceImage(image); err == nil {
			input = enhanced
		} else {
			logging.Warn("Image enhancement failed, using raw image",
				"error", err.Error())
		}

		text, err := a.fallback.Recognize(ctx, input)
		if err == nil {
			metrics.RecordOCRExtraction(a.fallback.Name(), "success")
			return text
		}
		metrics.RecordOCRExtraction(a.fallback.Name(), "failure")
		logging.Warn("Fallback OCR engine failed",
			"engine", a.fallback.Name(),
			"error", err.Error())
	}

	return ""
}

// EngineNames reports the configured engines in fallback order.
func (a *Adapter) EngineNames() []string {
	var names []string
	if a.primary != nil {
		names = append(names, a.primary.Name())
	}
	if a.fallback != nil {
		names = append(names, a.fallback.Name())
	}
	return names
}

// Disabled is the extractor wired when OCR is turned off or no engine
// could be created. Every extraction reports failure.
type Disabled struct{}

func (Disabled) ExtractText(ctx context.Context, image []byte) string { return "" }

func (Disabled) EngineNames() []string { return nil }

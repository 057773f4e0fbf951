package ocr

import (
	"bytes"
	"context"
	"image"
	"slices"
	"testing"
)

// stubEngine records what it was fed and returns a canned result.
type stubEngine struct {
	name  string
	text  string
	err   error
	calls int
	input []byte
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Recognize(ctx context.Context, img []byte) (string, error) {
	s.calls++
	s.input = img
	return s.text, s.err
}

func TestAdapterUsesPrimaryFirst(t *testing.T) {
	primary := &stubEngine{name: "primary", text: "aspirin 100mg"}
	fallback := &stubEngine{name: "fallback", text: "should not run"}

	adapter := NewAdapter(primary, fallback)
	got := adapter.ExtractText(context.Background(), []byte("raw"))

	if got != "aspirin 100mg" {
		t.Errorf("Expected primary text, got %q", got)
	}
	if fallback.calls != 0 {
		t.Error("Fallback engine should not have been called")
	}
}

func TestAdapterFallsBackWithEnhancedImage(t *testing.T) {
	raw := encodeTestImage(t, 200, 100)
	primary := &stubEngine{name: "primary", err: ErrRecognitionFailed}
	fallback := &stubEngine{name: "fallback", text: "metformin 500mg"}

	adapter := NewAdapter(primary, fallback)
	got := adapter.ExtractText(context.Background(), raw)

	if got != "metformin 500mg" {
		t.Errorf("Expected fallback text, got %q", got)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("Expected one call each, got %d and %d", primary.calls, fallback.calls)
	}
	if bytes.Equal(fallback.input, raw) {
		t.Error("Fallback should have received the enhanced image, not the raw bytes")
	}

	decoded, _, err := image.Decode(bytes.NewReader(fallback.input))
	if err != nil {
		t.Fatalf("Fallback input is not a decodable image: %v", err)
	}
	if decoded.Bounds().Dx() != upscaleTargetWidth {
		t.Errorf("Expected enhanced width %d, got %d", upscaleTargetWidth, decoded.Bounds().Dx())
	}
}

func TestAdapterFallsBackToRawOnEnhancementFailure(t *testing.T) {
	raw := []byte("not an image at all")
	primary := &stubEngine{name: "primary", err: ErrRecognitionFailed}
	fallback := &stubEngine{name: "fallback", text: "still worked"}

	adapter := NewAdapter(primary, fallback)
	got := adapter.ExtractText(context.Background(), raw)

	if got != "still worked" {
		t.Errorf("Expected fallback text, got %q", got)
	}
	if !bytes.Equal(fallback.input, raw) {
		t.Error("Fallback should have received the raw bytes when enhancement fails")
	}
}

func TestAdapterReturnsEmptyWhenAllFail(t *testing.T) {
	primary := &stubEngine{name: "primary", err: ErrRecognitionFailed}
	fallback := &stubEngine{name: "fallback", err: ErrNoText}

	adapter := NewAdapter(primary, fallback)
	if got := adapter.ExtractText(context.Background(), []byte("raw")); got != "" {
		t.Errorf("Expected empty string when every engine fails, got %q", got)
	}
}

func TestAdapterSkipsNilEngines(t *testing.T) {
	fallback := &stubEngine{name: "fallback", text: "vision only"}

	adapter := NewAdapter(nil, fallback)
	if got := adapter.ExtractText(context.Background(), []byte("raw")); got != "vision only" {
		t.Errorf("Expected fallback-only extraction, got %q", got)
	}

	empty := NewAdapter(nil, nil)
	if got := empty.ExtractText(context.Background(), []byte("raw")); got != "" {
		t.Errorf("Expected empty string with no engines, got %q", got)
	}
}

func TestEngineNames(t *testing.T) {
	adapter := NewAdapter(&stubEngine{name: "documentai"}, &stubEngine{name: "vision"})
	if got := adapter.EngineNames(); !slices.Equal(got, []string{"documentai", "vision"}) {
		t.Errorf("Expected [documentai vision], got %v", got)
	}

	if got := (Disabled{}).EngineNames(); got != nil {
		t.Errorf("Expected nil engine names for Disabled, got %v", got)
	}
	if got := (Disabled{}).ExtractText(context.Background(), []byte("raw")); got != "" {
		t.Errorf("Expected empty extraction for Disabled, got %q", got)
	}
}

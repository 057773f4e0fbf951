package ocr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestEnhanceImageUpscalesSmallImages(t *testing.T) {
	small := encodeTestImage(t, 200, 100)

	enhanced, err := EnhanceImage(small)
	if err != nil {
		t.Fatalf("EnhanceImage failed: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(enhanced))
	if err != nil {
		t.Fatalf("Enhanced output is not a decodable image: %v", err)
	}
	if got := decoded.Bounds().Dx(); got != upscaleTargetWidth {
		t.Errorf("Expected upscale to %d px wide, got %d", upscaleTargetWidth, got)
	}
}

func TestEnhanceImageKeepsLargeImageSize(t *testing.T) {
	large := encodeTestImage(t, 1500, 800)

	enhanced, err := EnhanceImage(large)
	if err != nil {
		t.Fatalf("EnhanceImage failed: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(enhanced))
	if err != nil {
		t.Fatalf("Enhanced output is not a decodable image: %v", err)
	}
	if got := decoded.Bounds().Dx(); got != 1500 {
		t.Errorf("Expected width preserved at 1500 px, got %d", got)
	}
}

func TestEnhanceImageGrayscales(t *testing.T) {
	enhanced, err := EnhanceImage(encodeTestImage(t, 1200, 600))
	if err != nil {
		t.Fatalf("EnhanceImage failed: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(enhanced))
	if err != nil {
		t.Fatalf("Enhanced output is not a decodable image: %v", err)
	}

	// Every pixel must have equal channels after grayscale conversion
	for _, p := range []image.Point{{10, 10}, {600, 300}, {1100, 550}} {
		r, g, b, _ := decoded.At(p.X, p.Y).RGBA()
		if r != g || g != b {
			t.Fatalf("Pixel %v not grayscale: r=%d g=%d b=%d", p, r, g, b)
		}
	}
}

func TestEnhanceImageRejectsGarbage(t *testing.T) {
	_, err := EnhanceImage([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("Expected error for undecodable payload")
	}
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage, got %v", err)
	}
}

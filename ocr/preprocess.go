package ocr

import (
	"bytes"
	"image/png"

	"github.com/disintegration/imaging"
)

// minWidthForUpscale is the width below which phone photos of prescriptions
// tend to lose stroke detail; smaller images are upscaled before the
// fallback engine sees them.
const (
	minWidthForUpscale = 1024
	upscaleTargetWidth = 3000

	contrastBoost   = 30
	sharpenStrength = 1.5
)

// EnhanceImage runs the fixed preprocessing pipeline used before the
// fallback engine: grayscale, contrast boost, sharpen, and a Lanczos
// upscale for small images. The result is re-encoded as PNG. Returns
// ErrInvalidImage when the payload cannot be decoded.
func EnhanceImage(image []byte) ([]byte, error) {
	const op = "EnhanceImage"

	src, err := imaging.Decode(bytes.NewReader(image), imaging.AutoOrientation(true))
	if err != nil {
		return nil, WrapEngineError(op, ErrInvalidImage, err.Error())
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, contrastBoost)
	img = imaging.Sharpen(img, sharpenStrength)

	if img.Bounds().Dx() < minWidthForUpscale {
		// height 0 preserves the aspect ratio
		img = imaging.Resize(img, upscaleTargetWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, WrapEngineError(op, err, "failed to encode enhanced image")
	}
	return buf.Bytes(), nil
}

package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/skanaga/veracity/internal/model"
)

// runOCR invokes tesseract on an encoded image. Package-level so tests can
// substitute a fake recognizer instead of requiring a tesseract install.
var runOCR = func(data []byte, languages []string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	return client.Text()
}

// ImageExtractor recognizes text in uploaded news screenshots and scans.
type ImageExtractor struct {
	languages     []string
	maxImageBytes int64
}

// NewImageExtractor creates an image extractor from the OCR configuration.
// The recognizer loads all configured scripts at once; the document's
// language is unknown before recognition runs.
func NewImageExtractor(cfg model.OCRConfig) *ImageExtractor {
	return &ImageExtractor{
		languages:     cfg.Languages,
		maxImageBytes: cfg.MaxImageBytes,
	}
}

// Extract decodes a PNG/JPEG image, converts it to grayscale, and runs
// multi-script OCR over it. Recognizer output is returned verbatim,
// whitespace untouched. Oversized and undecodable images return an empty
// string with the cause; callers treat empty output as invalid input.
func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if int64(len(data)) > e.maxImageBytes {
		return "", fmt.Errorf("image exceeds %d byte limit", e.maxImageBytes)
	}

	prepared, err := grayscale(data)
	if err != nil {
		return "", fmt.Errorf("prepare image: %w", err)
	}

	text, err := runOCR(prepared, e.languages)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return text, nil
}

// grayscale re-encodes a multi-channel image as single-channel PNG.
// Images that are already single-channel pass through untouched.
func grayscale(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if _, ok := img.(*image.Gray); ok {
		return data, nil
	}

	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

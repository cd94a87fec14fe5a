// Package ocrengine defines the OCR collaborator contract and its
// Tesseract-backed default implementation.
package ocrengine

import (
	"context"
	"image"
)

// Engine is the OCR provider contract: one raster image in, raw text out.
// Implementations should return empty text rather than an error for
// unreadable input; the pipeline treats both the same way.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (string, error)
}

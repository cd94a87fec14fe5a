package ocrengine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine using the gosseract client. A fresh
// client is created per recognition so a crashed attempt cannot poison
// later ones.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
	language      string
	variables     map[string]string
}

// NewTesseractEngine constructs a Tesseract engine for the given trained
// language (e.g. "tur") and page segmentation mode.
func NewTesseractEngine(language string, psm int) *TesseractEngine {
	return &TesseractEngine{
		clientFactory: gosseract.NewClient,
		language:      language,
		variables: map[string]string{
			"tessedit_pageseg_mode": fmt.Sprint(psm),
		},
	}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs OCR on img and returns the recognized text.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image for OCR: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if e.language != "" {
		if err := c.SetLanguage(e.language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	for k, v := range e.variables {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return "", fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

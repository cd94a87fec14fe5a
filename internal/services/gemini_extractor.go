package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"docsort/internal/models"
)

// GeminiExtractor implements ChequeExtractor using the Google Gemini API.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates a Gemini-backed cheque extractor. The API key
// is required: its absence is a configuration error for the cheque path.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required: set GEMINI_API_KEY or cheque.gemini_api_key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	log.Infof("Gemini cheque extractor initialized with model %s", model)
	return &GeminiExtractor{client: client, model: model}, nil
}

func (e *GeminiExtractor) Name() string { return "gemini" }

// Extract reads the cheque fields from one image. Any failure degrades to
// the all-null record for the file.
func (e *GeminiExtractor) Extract(ctx context.Context, imagePath string) models.ChequeRecord {
	fileName := filepath.Base(imagePath)

	data, err := os.ReadFile(imagePath)
	if err != nil {
		log.Warnf("read cheque image %s: %v", fileName, err)
		return models.NullChequeRecord(fileName)
	}

	model := e.client.GenerativeModel(e.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(extractionPrompt),
		genai.ImageData(imageFormat(imagePath), data),
	)
	if err != nil {
		log.Warnf("Gemini extraction failed for %s: %v", fileName, err)
		return models.NullChequeRecord(fileName)
	}

	return parseChequeResponse(responseText(resp), fileName)
}

// Close releases the underlying API client.
func (e *GeminiExtractor) Close() error {
	return e.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// imageFormat maps a file extension to the format label the Gemini SDK
// expects ("jpeg", "png", ...).
func imageFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "jpeg"
	}
}

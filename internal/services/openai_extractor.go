package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"docsort/internal/models"
)

// OpenAIExtractor implements ChequeExtractor using an OpenAI vision model.
// It exists as the alternate provider behind the cheque.provider switch.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

// NewOpenAIExtractor creates an OpenAI-backed cheque extractor.
func NewOpenAIExtractor(apiKey, model string) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required: set OPENAI_API_KEY or cheque.openai_api_key")
	}
	log.Infof("OpenAI cheque extractor initialized with model %s", model)
	return &OpenAIExtractor{client: openai.NewClient(apiKey), model: model}, nil
}

func (e *OpenAIExtractor) Name() string { return "openai" }

// Extract reads the cheque fields from one image. Any failure degrades to
// the all-null record for the file.
func (e *OpenAIExtractor) Extract(ctx context.Context, imagePath string) models.ChequeRecord {
	fileName := filepath.Base(imagePath)

	data, err := os.ReadFile(imagePath)
	if err != nil {
		log.Warnf("read cheque image %s: %v", fileName, err)
		return models.NullChequeRecord(fileName)
	}

	dataURL := fmt.Sprintf("data:image/%s;base64,%s",
		imageFormat(imagePath), base64.StdEncoding.EncodeToString(data))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		log.Warnf("OpenAI extraction failed for %s: %v", fileName, err)
		return models.NullChequeRecord(fileName)
	}
	if len(resp.Choices) == 0 {
		log.Warnf("OpenAI returned no choices for %s", fileName)
		return models.NullChequeRecord(fileName)
	}

	return parseChequeResponse(resp.Choices[0].Message.Content, fileName)
}

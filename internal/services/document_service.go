package services

import (
	"context"
	"fmt"
	"image"
	"strings"

	log "github.com/sirupsen/logrus"

	"docsort/internal/imaging"
	"docsort/internal/ocrengine"
	"docsort/pkg/identifier"
	"docsort/pkg/taxonomy"
)

// rotationAngles is the fixed attempt order of the retry machine.
var rotationAngles = [4]int{0, 90, 180, 270}

// DocumentService drives OCR attempts over a decoded image: each rotation
// in order, then one upscale escalation over the same rotations. The first
// attempt whose text classifies into a real category wins.
type DocumentService struct {
	decoder       imaging.Decoder
	engine        ocrengine.Engine
	classifier    *taxonomy.Classifier
	upscaleFactor float64
}

// NewDocumentService wires the orchestrator with its collaborators.
func NewDocumentService(decoder imaging.Decoder, engine ocrengine.Engine, classifier *taxonomy.Classifier, upscaleFactor float64) *DocumentService {
	return &DocumentService{
		decoder:       decoder,
		engine:        engine,
		classifier:    classifier,
		upscaleFactor: upscaleFactor,
	}
}

// ProcessDocument decodes the file at path and classifies it. A decode
// failure is fatal for this file and is returned to the caller; OCR
// failures are not.
func (s *DocumentService) ProcessDocument(ctx context.Context, path string) (taxonomy.Category, *identifier.Identifier, error) {
	img, err := s.decoder.Decode(path)
	if err != nil {
		return taxonomy.ErrorFiles, nil, fmt.Errorf("decode document: %w", err)
	}
	category, id := s.ProcessImage(ctx, img)
	return category, id, nil
}

// ProcessImage runs the full retry machine over an already decoded image.
// The identifier returned is the best candidate seen on any attempt,
// winning or not; nil when no valid TC or VKN appeared anywhere.
func (s *DocumentService) ProcessImage(ctx context.Context, img image.Image) (taxonomy.Category, *identifier.Identifier) {
	var best *identifier.Identifier

	if category, ok := s.tryRotations(ctx, img, &best); ok {
		return category, best
	}

	log.Debug("all rotations exhausted, retrying with upscaled image")
	if category, ok := s.tryRotations(ctx, imaging.Upscale(img, s.upscaleFactor), &best); ok {
		log.Debug("classified with upscaled image")
		return category, best
	}

	return taxonomy.Others, best
}

// tryRotations attempts OCR at each rotation angle in order. It returns the
// category and true as soon as an attempt classifies into a real category.
// best accumulates the strongest identifier candidate across attempts.
func (s *DocumentService) tryRotations(ctx context.Context, img image.Image, best **identifier.Identifier) (taxonomy.Category, bool) {
	for _, angle := range rotationAngles {
		category, matched := s.tryAngle(ctx, img, angle, best)
		if matched {
			return category, true
		}
	}
	return taxonomy.Others, false
}

// tryAngle performs one rotation attempt. Every failure mode of a single
// angle, including a panicking collaborator, is contained here so the
// remaining angles still run.
func (s *DocumentService) tryAngle(ctx context.Context, img image.Image, angle int, best **identifier.Identifier) (category taxonomy.Category, matched bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("OCR attempt at %d degrees panicked: %v", angle, r)
			category, matched = taxonomy.Others, false
		}
	}()

	rotated, err := imaging.Rotate(img, angle)
	if err != nil {
		log.Debugf("rotation by %d degrees failed: %v", angle, err)
		return taxonomy.Others, false
	}

	text, err := s.engine.Recognize(ctx, rotated)
	if err != nil {
		log.Debugf("OCR at %d degrees failed: %v", angle, err)
		return taxonomy.Others, false
	}
	if strings.TrimSpace(text) == "" {
		return taxonomy.Others, false
	}

	if id, ok := identifier.Extract(text); ok {
		keepBest(best, id)
	}

	category = s.classifier.Classify(text)
	return category, category != taxonomy.Others
}

// keepBest retains the strongest identifier across attempts: the first TC
// seen wins outright, a VKN only holds the slot until a TC appears.
func keepBest(best **identifier.Identifier, candidate identifier.Identifier) {
	if *best == nil || ((*best).Kind == identifier.KindVKN && candidate.Kind == identifier.KindTC) {
		*best = &candidate
	}
}

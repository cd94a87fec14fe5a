// Package app wires configuration and collaborators into the services the
// commands use.
package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"docsort/internal/config"
	"docsort/internal/imaging"
	"docsort/internal/ocrengine"
	"docsort/internal/services"
	"docsort/internal/store"
	"docsort/pkg/taxonomy"
)

type App struct {
	Config     *config.Config
	Classifier *taxonomy.Classifier

	DocumentService  *services.DocumentService
	PlacementService *services.PlacementService
	BatchService     *services.BatchService

	// History is nil when run history is disabled in config.
	History *store.HistoryStore
}

// NewApp builds the application from config. The OCR engine and decoder
// are the production implementations; tests construct services directly
// with fakes instead.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		Config:     cfg,
		Classifier: taxonomy.NewDefault(),
	}

	if cfg.History.Path != "" {
		history, err := store.NewHistoryStore(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("init history store: %w", err)
		}
		a.History = history
	} else {
		log.Debug("run history disabled (history.path is empty)")
	}

	engine := ocrengine.NewTesseractEngine(cfg.OCR.Language, cfg.OCR.PSM)
	a.DocumentService = services.NewDocumentService(
		imaging.NewFileDecoder(), engine, a.Classifier, cfg.OCR.UpscaleFactor)
	a.PlacementService = services.NewPlacementService(cfg.Upload.Dir)

	var recorder services.RunRecorder
	if a.History != nil {
		recorder = a.History
	}
	a.BatchService = services.NewBatchService(a.DocumentService, a.PlacementService, recorder)

	return a, nil
}

// NewChequeService builds the cheque extraction pipeline for the provider
// selected in config. A missing API key is fatal here, and only here; the
// classification pipeline never needs one. The returned closer releases
// the provider client and may be nil.
func (a *App) NewChequeService(ctx context.Context) (*services.ChequeService, func() error, error) {
	chequeDir := a.PlacementService.CategoryDir(taxonomy.Cheque)

	switch a.Config.Cheque.Provider {
	case "gemini":
		extractor, err := services.NewGeminiExtractor(ctx, a.Config.Cheque.GeminiAPIKey, a.Config.Cheque.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return services.NewChequeService(extractor, chequeDir), extractor.Close, nil
	case "openai":
		extractor, err := services.NewOpenAIExtractor(a.Config.Cheque.OpenAIAPIKey, a.Config.Cheque.OpenAIModel)
		if err != nil {
			return nil, nil, err
		}
		return services.NewChequeService(extractor, chequeDir), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cheque provider %q: expected gemini or openai", a.Config.Cheque.Provider)
	}
}

// Close releases application resources.
func (a *App) Close() {
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			log.Warnf("closing history store: %v", err)
		}
	}
}

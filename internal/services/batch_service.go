package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"docsort/internal/fileingest"
	"docsort/internal/models"
	"docsort/pkg/taxonomy"
)

// RunRecorder persists completed batch runs. Recording failures are logged
// by the coordinator, never surfaced: no error is fatal to a batch run.
type RunRecorder interface {
	SaveRun(ctx context.Context, summary models.RunSummary) error
}

// BatchService walks a directory and pushes every regular file through the
// classify-and-place pipeline, one file at a time.
type BatchService struct {
	documents *DocumentService
	placement *PlacementService
	recorder  RunRecorder // optional

	// OnFile, when set, is invoked after each file with its 1-based index,
	// the total file count, and the recorded outcome. Used for progress
	// reporting.
	OnFile func(idx, total int, outcome models.ProcessingOutcome)
}

// NewBatchService wires the coordinator. recorder may be nil to disable
// run history.
func NewBatchService(documents *DocumentService, placement *PlacementService, recorder RunRecorder) *BatchService {
	return &BatchService{documents: documents, placement: placement, recorder: recorder}
}

// ProcessDirectory processes every regular file under rootDir and returns
// the run summary. Per-file failures route the file to error_files and are
// recorded in its outcome; only an unreadable rootDir fails the run.
func (s *BatchService) ProcessDirectory(ctx context.Context, rootDir string) (models.RunSummary, error) {
	summary := models.RunSummary{
		ID:        uuid.NewString(),
		RootDir:   rootDir,
		StartedAt: time.Now(),
		Counts:    make(map[taxonomy.Category]int, len(taxonomy.Folders())),
	}
	for _, category := range taxonomy.Folders() {
		summary.Counts[category] = 0
	}

	files, err := fileingest.DiscoverFiles(ctx, rootDir)
	if err != nil {
		return summary, fmt.Errorf("list files under %s: %w", rootDir, err)
	}
	log.Infof("run %s: processing %d files under %s", summary.ID, len(files), rootDir)

	for i, f := range files {
		outcome := s.processFile(ctx, f.Path)
		summary.Counts[outcome.Category]++
		summary.Outcomes = append(summary.Outcomes, outcome)
		if s.OnFile != nil {
			s.OnFile(i+1, len(files), outcome)
		}
	}
	summary.FinishedAt = time.Now()

	if s.recorder != nil {
		if err := s.recorder.SaveRun(ctx, summary); err != nil {
			log.Warnf("failed to record run history: %v", err)
		}
	}
	return summary, nil
}

// processFile runs one file end to end: classify, derive the destination
// name, move, and record. Every failure lands the file in error_files
// under its original name.
func (s *BatchService) processFile(ctx context.Context, path string) models.ProcessingOutcome {
	fileName := fileingest.NormalizeFilename(filepath.Base(path))
	outcome := models.ProcessingOutcome{OriginalFilename: fileName}

	category, id, err := s.documents.ProcessDocument(ctx, path)
	if err != nil {
		return s.routeToErrorFiles(path, fileName, outcome, err)
	}
	outcome.Category = category

	destName := fileName
	if id != nil {
		ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
		destName = s.placement.GenerateUniqueName(id.Value, s.placement.CategoryDir(category), ext)
		outcome.RenamedTo = &destName
	}

	if _, err := s.placement.PlaceFile(path, category, destName); err != nil {
		outcome.RenamedTo = nil
		return s.routeToErrorFiles(path, fileName, outcome, err)
	}
	return outcome
}

func (s *BatchService) routeToErrorFiles(path, fileName string, outcome models.ProcessingOutcome, cause error) models.ProcessingOutcome {
	msg := cause.Error()
	outcome.Category = taxonomy.ErrorFiles
	outcome.Error = &msg

	if _, err := s.placement.PlaceFile(path, taxonomy.ErrorFiles, fileName); err != nil {
		// The file stays where it is; the outcome still records the run.
		log.Errorf("failed to move %s to error_files: %v", fileName, err)
	}
	return outcome
}

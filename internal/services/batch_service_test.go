package services_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsort/internal/models"
	"docsort/internal/services"
	"docsort/pkg/taxonomy"
)

// mapDecoder serves a fixed image per filename and fails for listed names.
type mapDecoder struct {
	imgs map[string]image.Image
	fail map[string]bool
}

func (d mapDecoder) Decode(path string) (image.Image, error) {
	name := filepath.Base(path)
	if d.fail[name] {
		return nil, errors.New("unreadable file")
	}
	return d.imgs[name], nil
}

// mapEngine recognizes text keyed by image identity. The first attempt of
// a pass runs on the unrotated image, so lookups hit on attempt one.
type mapEngine struct {
	texts map[image.Image]string
}

func (e mapEngine) Name() string { return "map" }

func (e mapEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	return e.texts[img], nil
}

type capturingRecorder struct {
	saved []models.RunSummary
}

func (r *capturingRecorder) SaveRun(ctx context.Context, s models.RunSummary) error {
	r.saved = append(r.saved, s)
	return nil
}

func TestProcessDirectoryEndToEnd(t *testing.T) {
	root := t.TempDir()
	inbox := filepath.Join(root, "inbox")
	require.NoError(t, os.MkdirAll(inbox, 0o755))

	invoiceImg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	unknownImg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for _, name := range []string{"invoice.pdf", "unknown.png", "broken.jpg"} {
		writeFile(t, filepath.Join(inbox, name))
	}

	decoder := mapDecoder{
		imgs: map[string]image.Image{
			"invoice.pdf": invoiceImg,
			"unknown.png": unknownImg,
		},
		fail: map[string]bool{"broken.jpg": true},
	}
	engine := mapEngine{texts: map[image.Image]string{
		invoiceImg: "e-fatura fatura no 123 müşteri 10000000146",
	}}

	uploadDir := filepath.Join(root, "uploads")
	placement := services.NewPlacementService(uploadDir)
	documents := services.NewDocumentService(decoder, engine, taxonomy.NewDefault(), 2.0)
	recorder := &capturingRecorder{}
	batch := services.NewBatchService(documents, placement, recorder)

	var progress []models.ProcessingOutcome
	batch.OnFile = func(idx, total int, outcome models.ProcessingOutcome) {
		assert.Equal(t, 3, total)
		progress = append(progress, outcome)
	}

	summary, err := batch.ProcessDirectory(context.Background(), inbox)
	require.NoError(t, err)

	// Every file landed in exactly one category folder.
	date := time.Now().Format("02012006")
	assert.FileExists(t, filepath.Join(uploadDir, "invoices", fmt.Sprintf("10000000146_%s.pdf", date)))
	assert.FileExists(t, filepath.Join(uploadDir, "others", "unknown.png"))
	assert.FileExists(t, filepath.Join(uploadDir, "error_files", "broken.jpg"))

	// The inbox is empty and nothing was processed twice.
	left, err := os.ReadDir(inbox)
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.Equal(t, 1, summary.Counts[taxonomy.Invoices])
	assert.Equal(t, 1, summary.Counts[taxonomy.Others])
	assert.Equal(t, 1, summary.Counts[taxonomy.ErrorFiles])
	assert.Equal(t, 3, summary.TotalFiles())
	assert.Len(t, progress, 3)

	require.Len(t, recorder.saved, 1)
	assert.Equal(t, summary.ID, recorder.saved[0].ID)
	require.Len(t, summary.Outcomes, 3)

	// Files are processed in path order: broken, invoice, unknown.
	assert.Equal(t, "broken.jpg", summary.Outcomes[0].OriginalFilename)
	require.NotNil(t, summary.Outcomes[0].Error)
	assert.Equal(t, "invoice.pdf", summary.Outcomes[1].OriginalFilename)
	require.NotNil(t, summary.Outcomes[1].RenamedTo)
	assert.Equal(t, fmt.Sprintf("10000000146_%s.pdf", date), *summary.Outcomes[1].RenamedTo)
	assert.Nil(t, summary.Outcomes[2].RenamedTo)
}

func TestProcessDirectoryMissingRoot(t *testing.T) {
	batch := services.NewBatchService(
		services.NewDocumentService(mapDecoder{}, mapEngine{}, taxonomy.NewDefault(), 2.0),
		services.NewPlacementService(t.TempDir()),
		nil,
	)
	_, err := batch.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package services_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsort/internal/services"
	"docsort/pkg/taxonomy"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestGenerateUniqueNameFirstFree(t *testing.T) {
	dir := t.TempDir()
	p := services.NewPlacementService(dir)

	date := time.Now().Format("02012006")
	name := p.GenerateUniqueName("10000000146", dir, "pdf")
	assert.Equal(t, fmt.Sprintf("10000000146_%s.pdf", date), name)
}

func TestGenerateUniqueNameSuffixesOnCollision(t *testing.T) {
	dir := t.TempDir()
	p := services.NewPlacementService(dir)
	date := time.Now().Format("02012006")

	writeFile(t, filepath.Join(dir, fmt.Sprintf("1111111115_%s.jpg", date)))
	writeFile(t, filepath.Join(dir, fmt.Sprintf("1111111115_%s(1).jpg", date)))

	name := p.GenerateUniqueName("1111111115", dir, "jpg")
	assert.Equal(t, fmt.Sprintf("1111111115_%s(2).jpg", date), name)
	assert.NoFileExists(t, filepath.Join(dir, name))
}

func TestGenerateUniqueNameNeverReturnsExisting(t *testing.T) {
	dir := t.TempDir()
	p := services.NewPlacementService(dir)

	for i := 0; i < 5; i++ {
		name := p.GenerateUniqueName("1111111115", dir, "png")
		assert.NoFileExists(t, filepath.Join(dir, name))
		writeFile(t, filepath.Join(dir, name))
	}
}

func TestPlaceFileCreatesFolderAndMoves(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "incoming.pdf")
	writeFile(t, src)

	p := services.NewPlacementService(filepath.Join(root, "uploads"))
	dest, err := p.PlaceFile(src, taxonomy.Invoices, "incoming.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "uploads", "invoices", "incoming.pdf"), dest)
	assert.FileExists(t, dest)
	assert.NoFileExists(t, src)
}

func TestPlaceFileNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	p := services.NewPlacementService(filepath.Join(root, "uploads"))

	occupied := filepath.Join(root, "uploads", "cheque", "scan.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(occupied), 0o755))
	require.NoError(t, os.WriteFile(occupied, []byte("original"), 0o644))

	src := filepath.Join(root, "scan.jpg")
	writeFile(t, src)

	dest, err := p.PlaceFile(src, taxonomy.Cheque, "scan.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "uploads", "cheque", "scan(1).jpg"), dest)

	kept, err := os.ReadFile(occupied)
	require.NoError(t, err)
	assert.Equal(t, "original", string(kept))
}

func TestEnsureCategoryFolders(t *testing.T) {
	root := t.TempDir()
	p := services.NewPlacementService(filepath.Join(root, "uploads"))
	require.NoError(t, p.EnsureCategoryFolders())

	for _, category := range taxonomy.Folders() {
		assert.DirExists(t, p.CategoryDir(category))
	}
}

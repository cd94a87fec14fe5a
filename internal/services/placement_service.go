package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docsort/pkg/taxonomy"
)

// PlacementService computes collision-free destination names and moves
// files into their category folders. It assumes it is the only writer to
// the upload tree for the duration of a run; the exists-then-move sequence
// is not atomic against concurrent external writers.
type PlacementService struct {
	uploadDir string
	now       func() time.Time
}

// NewPlacementService creates a placement service rooted at uploadDir.
func NewPlacementService(uploadDir string) *PlacementService {
	return &PlacementService{uploadDir: uploadDir, now: time.Now}
}

// UploadDir returns the upload root.
func (p *PlacementService) UploadDir() string { return p.uploadDir }

// CategoryDir returns the folder for a category under the upload root.
func (p *PlacementService) CategoryDir(category taxonomy.Category) string {
	return filepath.Join(p.uploadDir, string(category))
}

// EnsureCategoryFolders creates every category folder under the upload
// root, including others and error_files.
func (p *PlacementService) EnsureCategoryFolders() error {
	for _, category := range taxonomy.Folders() {
		if err := os.MkdirAll(p.CategoryDir(category), 0o755); err != nil {
			return fmt.Errorf("create category folder %s: %w", category, err)
		}
	}
	return nil
}

// GenerateUniqueName builds "{code}_{DDMMYYYY}.{ext}" and, when that name
// is taken in destFolder, appends (1), (2), ... until a free name is found.
func (p *PlacementService) GenerateUniqueName(code, destFolder, ext string) string {
	base := fmt.Sprintf("%s_%s", code, p.now().Format("02012006"))
	name := base
	if ext != "" {
		name = base + "." + ext
	}
	for counter := 1; exists(filepath.Join(destFolder, name)); counter++ {
		name = fmt.Sprintf("%s(%d)", base, counter)
		if ext != "" {
			name += "." + ext
		}
	}
	return name
}

// PlaceFile moves sourcePath into the category folder under filename,
// creating the folder if needed. A collision detected at move time gets
// the same (n) suffix scheme; an existing file is never overwritten.
// It returns the destination path.
func (p *PlacementService) PlaceFile(sourcePath string, category taxonomy.Category, filename string) (string, error) {
	destFolder := p.CategoryDir(category)
	if err := os.MkdirAll(destFolder, 0o755); err != nil {
		return "", fmt.Errorf("create category folder %s: %w", category, err)
	}

	destPath := filepath.Join(destFolder, filename)
	if exists(destPath) {
		ext := filepath.Ext(filename)
		base := strings.TrimSuffix(filename, ext)
		for counter := 1; exists(destPath); counter++ {
			destPath = filepath.Join(destFolder, fmt.Sprintf("%s(%d)%s", base, counter, ext))
		}
	}

	if err := moveFile(sourcePath, destPath); err != nil {
		return "", fmt.Errorf("move %s to %s: %w", sourcePath, destPath, err)
	}
	return destPath, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// moveFile renames when possible and falls back to copy-and-delete when
// source and destination live on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

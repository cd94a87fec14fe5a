package fileingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/unicode/norm"
)

// FileMeta holds metadata about a file queued for processing.
type FileMeta struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

/*
DiscoverFiles recursively finds all regular files under rootDir.

Results are sorted lexicographically by path so batch output is stable
across filesystems, which do not guarantee a walk order.
*/
func DiscoverFiles(ctx context.Context, rootDir string) ([]FileMeta, error) {
	var files []FileMeta
	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		info, statErr := d.Info()
		if statErr != nil {
			// Skip files we can't stat, but continue the walk.
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, FileMeta{
			Path:    path,
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// NormalizeFilename canonicalizes a filename to Unicode NFKC so names
// produced on macOS (NFD) and Windows compare and sort consistently.
// Normalization is idempotent.
func NormalizeFilename(name string) string {
	return norm.NFKC.String(name)
}

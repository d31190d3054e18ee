package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
)

// LocalSource reads import files from disk, resolving relative paths
// against BaseDir.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) ReadRows(ctx context.Context, sourcePath string) ([]ingest.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := DetectFormat(sourcePath)
	if err != nil {
		return nil, err
	}

	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	defer f.Close()

	return ReadRows(format, f)
}

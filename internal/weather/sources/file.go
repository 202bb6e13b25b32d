package sources

import (
	"context"
	"io"
	"os"

	"github.com/i474232898/climatrack/internal/common"
	"github.com/i474232898/climatrack/internal/weather"
)

// FileSource reads a weather CSV from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return s.path
}

// Open returns a *weather.FileError when the path is not a readable .csv file.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !common.HasAnySuffix(s.path, ".csv") {
		return nil, &weather.FileError{Path: s.path, Err: weather.ErrNotCSV}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &weather.FileError{Path: s.path, Err: err}
	}
	return f, nil
}

// Package source loads datasets from their supported origins: a JSON file on
// disk or a MongoDB database.
package source

import (
	"context"
	"os"

	"github.com/danilokhury/orbitmap/internal/config"
	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/model"
)

// Loader produces a normalized, validated dataset.
type Loader interface {
	Load(ctx context.Context) (*model.Dataset, error)
}

// Open picks a loader: an explicit file path wins, otherwise a configured
// MongoDB URI.
func Open(path string, cfg config.SourceConfig) (Loader, error) {
	if path != "" {
		return &FileSource{Path: path}, nil
	}
	if cfg.MongoURI != "" {
		return NewMongoSource(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeDatasetNotFound,
		"no dataset: pass a file or configure source.mongo_uri")
}

// FileSource loads a dataset from a JSON file.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) (*model.Dataset, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "dataset file %s not found", s.Path)
	}
	d, err := model.ReadDatasetFile(s.Path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "load %s", s.Path)
	}
	return d, nil
}

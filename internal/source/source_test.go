package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/danilokhury/orbitmap/internal/config"
	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
)

func TestOpenPrefersFile(t *testing.T) {
	cfg := config.SourceConfig{MongoURI: "mongodb://localhost"}
	loader, err := Open("data.json", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loader.(*FileSource); !ok {
		t.Errorf("loader = %T, want *FileSource", loader)
	}
}

func TestOpenMongoFallback(t *testing.T) {
	cfg := config.SourceConfig{MongoURI: "mongodb://localhost", MongoDatabase: "orbitmap", MongoCollection: "records"}
	loader, err := Open("", cfg)
	if err != nil {
		t.Fatal(err)
	}
	ms, ok := loader.(*MongoSource)
	if !ok {
		t.Fatalf("loader = %T, want *MongoSource", loader)
	}
	if ms.Database != "orbitmap" || ms.Collection != "records" {
		t.Errorf("mongo source = %+v", ms)
	}
}

func TestOpenNoSource(t *testing.T) {
	_, err := Open("", config.SourceConfig{})
	if !apperrors.Is(err, apperrors.ErrCodeDatasetNotFound) {
		t.Errorf("err = %v, want DATASET_NOT_FOUND", err)
	}
}

func TestFileSourceLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	content := `{
		"records": [
			{"id": "r1", "category": "alpha", "importance": 5, "content": "one"},
			{"id": "r2", "category": "beta", "importance": 20, "content": "two"}
		],
		"links": [{"source": "r1", "target": "r2"}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := (&FileSource{Path: path}).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(d.Records))
	}
	if d.Records[1].Importance != 10 {
		t.Errorf("importance not clamped: %d", d.Records[1].Importance)
	}
	if !d.Links[0].CrossCategory {
		t.Error("cross-category flag not derived")
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := (&FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}).Load(context.Background())
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFileSourceInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"records": [{"id": "dup"}, {"id": "dup"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := (&FileSource{Path: path}).Load(context.Background())
	if !apperrors.Is(err, apperrors.ErrCodeInvalidDataset) {
		t.Errorf("err = %v, want INVALID_DATASET", err)
	}
}

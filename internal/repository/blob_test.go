package repository

import (
	"os"
	"testing"

	"league-tracker/internal/config"

	"github.com/rs/zerolog"
)

func TestBlobStore(t *testing.T) {
	cfg := &config.Config{BlobDir: t.TempDir()}
	blobs, err := NewBlobStore(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}

	payload := []byte("fake image bytes")
	id, err := blobs.Save(payload)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned an empty id")
	}

	path, err := blobs.Path(id)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("blob content = %q", got)
	}
}

func TestBlobStorePathRejectsTraversal(t *testing.T) {
	cfg := &config.Config{BlobDir: t.TempDir()}
	blobs, err := NewBlobStore(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}

	for _, bad := range []string{"../secret", "a/b", ".", "", "id with spaces"} {
		if _, err := blobs.Path(bad); err == nil {
			t.Errorf("Path(%q) accepted a malformed id", bad)
		}
	}

	if _, err := blobs.Path("validbutmissing"); err == nil {
		t.Error("Path should fail for an id with no stored blob")
	}
}

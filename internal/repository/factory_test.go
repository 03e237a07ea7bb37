package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/repository/memrepo"
	"github.com/mrled/humantime/pkg/phrasebook"
)

func TestNewRepository_NoBackend(t *testing.T) {
	cfg := RepositoryConfig{}
	if cfg.Configured() {
		t.Error("empty config should not be configured")
	}
	if _, err := NewRepository(context.Background(), cfg); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Expected ErrNoBackend, got %v", err)
	}
}

func TestNewRepository_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "phrasebooks.json")

	repo, err := NewRepository(ctx, RepositoryConfig{FilePath: path})
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	if _, ok := repo.(*memrepo.MemoryRepository); !ok {
		t.Fatalf("Expected *memrepo.MemoryRepository, got %T", repo)
	}

	pb, err := phrasebook.Builtin("en")
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Store(ctx, model.NewPhrasebookRecord(pb, time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	reopened, err := NewRepository(ctx, RepositoryConfig{FilePath: path})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, err := reopened.Get(ctx, "en"); err != nil {
		t.Errorf("Expected stored phrasebook after reopen, got %v", err)
	}
}

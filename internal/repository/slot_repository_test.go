package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func exerciseSlots(t *testing.T, repo SlotRepository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "teamOrganiserPeople"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
	if err := repo.Put(ctx, "teamOrganiserPeople", []byte(`[{"id":"p1"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "teamOrganiserPeople", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "teamOrganiserPeople")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected last write to win, got %s", got)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestMemorySlotRepository(t *testing.T) {
	exerciseSlots(t, NewMemorySlotRepository())
}

func TestMemorySlotRepositoryCopiesValues(t *testing.T) {
	repo := NewMemorySlotRepository()
	ctx := context.Background()
	value := []byte(`{}`)
	if err := repo.Put(ctx, "k", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'x'
	got, _ := repo.Get(ctx, "k")
	if string(got) != `{}` {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
}

func TestFileSlotRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	repo, err := NewFileSlotRepository(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	exerciseSlots(t, repo)

	if _, err := os.Stat(filepath.Join(dir, "teamOrganiserPeople.json")); err != nil {
		t.Fatalf("expected slot file on disk: %v", err)
	}
}

func TestFileSlotRepositorySanitisesKeys(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSlotRepository(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Put(context.Background(), "../escape", []byte(`1`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the slot to stay inside %s, found %d entries", dir, len(entries))
	}
}

func TestMemoryPendingImportRepository(t *testing.T) {
	repo := NewMemoryPendingImportRepository()
	ctx := context.Background()
	expires := time.Now().Add(time.Minute)

	if err := repo.Create(ctx, &PendingImport{Token: "a", Payload: []byte(`{}`), ExpiresAt: expires}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Take(ctx, "a")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if string(got.Payload) != `{}` {
		t.Fatalf("unexpected payload %s", got.Payload)
	}
	if _, err := repo.Take(ctx, "a"); !errors.Is(err, ErrPendingImportNotFound) {
		t.Fatalf("second take should fail, got %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, ErrPendingImportNotFound) {
		t.Fatalf("delete of consumed token should fail, got %v", err)
	}
}

func TestMemoryPendingImportRepositoryExpires(t *testing.T) {
	repo := NewMemoryPendingImportRepository().(*memoryPendingImportRepository)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	if err := repo.Create(ctx, &PendingImport{Token: "a", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.Take(ctx, "a"); !errors.Is(err, ErrPendingImportNotFound) {
		t.Fatalf("expired import should be gone, got %v", err)
	}
}

package storage_test

import (
	"testing"

	"agenda/internal/storage"
)

func seedRaw(t *testing.T, raw string) (*storage.Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	if err := kv.Write("tasks", raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return storage.New(kv, testNow), kv
}

func TestMigrateLegacyFieldVariants(t *testing.T) {
	s, _ := seedRaw(t, `[{"texto":"pagar conta","horario":"14:00"}]`)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	list := s.GetForDate("2024-03-05")
	if len(list) != 1 {
		t.Fatalf("expected exactly one migrated task, got %d", len(list))
	}
	got := list[0]
	if got.Text != "pagar conta" || got.Time != "14:00" || got.Completed {
		t.Fatalf("unexpected migrated task: %+v", got)
	}
	if got.ID == "" {
		t.Fatalf("expected a generated id")
	}
}

func TestMigratePrefersNewFieldNames(t *testing.T) {
	s, _ := seedRaw(t, `[{"text":"new","texto":"old","time":"08:00","horario":"09:00"}]`)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	got := s.GetForDate("2024-03-05")[0]
	if got.Text != "new" {
		t.Fatalf("expected text to win the tie-break, got %q", got.Text)
	}
	if got.Time != "08:00" {
		t.Fatalf("expected time to win the tie-break, got %q", got.Time)
	}
}

func TestMigratePreservesIDAndCompleted(t *testing.T) {
	s, _ := seedRaw(t, `[{"id":"keep-me","text":"done thing","completed":true}]`)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	got := s.GetForDate("2024-03-05")[0]
	if got.ID != "keep-me" {
		t.Fatalf("expected legacy id preserved, got %q", got.ID)
	}
	if !got.Completed {
		t.Fatalf("expected completed flag preserved")
	}
}

func TestMigrateFillsPlaceholderText(t *testing.T) {
	s, _ := seedRaw(t, `[{"horario":"10:00"}]`)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	got := s.GetForDate("2024-03-05")[0]
	if got.Text != "untitled task" {
		t.Fatalf("expected placeholder text, got %q", got.Text)
	}
}

func TestMigrateMappingShapeIsNoop(t *testing.T) {
	raw := `{"2024-01-01":[{"id":"1","text":"hi","time":"","completed":false}]}`
	s, kv := seedRaw(t, raw)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	got, ok, err := kv.Read("tasks")
	if err != nil || !ok {
		t.Fatalf("read back: ok=%v err=%v", ok, err)
	}
	if got != raw {
		t.Fatalf("mapping-shaped value rewritten by migration: %q", got)
	}
}

func TestMigrateMalformedIsSwallowed(t *testing.T) {
	s, kv := seedRaw(t, "{{{")
	if err := s.Migrate(); err != nil {
		t.Fatalf("malformed data must not surface: %v", err)
	}
	got, _, _ := kv.Read("tasks")
	if got != "{{{" {
		t.Fatalf("malformed value rewritten by migration: %q", got)
	}
	if len(s.GetAll()) != 0 {
		t.Fatalf("expected empty store over malformed value")
	}
}

func TestMigrateAbsentIsNoop(t *testing.T) {
	kv := storage.NewMemory()
	s := storage.New(kv, testNow)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, ok, _ := kv.Read("tasks"); ok {
		t.Fatalf("migration wrote data where none existed")
	}
}

func TestMigrateRunsOncePerProcess(t *testing.T) {
	s, kv := seedRaw(t, `[{"text":"first"}]`)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(s.GetForDate("2024-03-05")) != 1 {
		t.Fatalf("expected migrated task")
	}

	// A second legacy value slipping in later must not be migrated again.
	if err := kv.Write("tasks", `[{"text":"second"}]`); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	got, _, _ := kv.Read("tasks")
	if got != `[{"text":"second"}]` {
		t.Fatalf("second migrate ran, value rewritten: %q", got)
	}
}

func TestMigrateEmptyLegacyArray(t *testing.T) {
	s, _ := seedRaw(t, `[]`)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	all := s.GetAll()
	if len(all) != 0 {
		t.Fatalf("expected no date keys from empty legacy list, got %v", all)
	}
}

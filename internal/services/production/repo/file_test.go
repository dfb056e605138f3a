package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	perr "linetrack/internal/platform/errors"
	"linetrack/internal/platform/testkit"
	"linetrack/internal/services/production/domain"
)

func sampleDoc() domain.Document {
	doc := domain.DefaultDocument()
	doc.Production = domain.ProductionState{
		CurrentItem:  "bracket",
		CycleSeconds: 10,
		Count:        2,
		StartTime:    domain.EpochOf(time.Unix(1705305600, 0)),
		Running:      true,
		TargetCount:  5,
		Queue:        []domain.QueuedItem{{Name: "bracket", CycleSeconds: 10, TargetCount: 5, Shift: "A"}},
	}
	doc.Reports = append(doc.Reports, domain.Report{
		ID: "r1", Item: "panel", SecondsPerItem: 4, Count: 2,
		StartTime: "2024-01-14 17:00:00", StopTime: "2024-01-14 17:00:08", TotalSeconds: 8, Shift: "C",
	})
	return doc
}

func TestFileStore_MissingFileIsDefault(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	doc, err := fs.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Production.HasCurrent() || len(doc.Reports) != 0 || doc.Production.Queue == nil {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(filepath.Join(dir, "data.json"))
	ctx := context.Background()

	want := sampleDoc()
	if err := fs.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Production.CurrentItem != "bracket" || !got.Production.StartTime.Equal(want.Production.StartTime.Time) {
		t.Fatalf("production = %+v", got.Production)
	}
	if len(got.Reports) != 1 || got.Reports[0] != want.Reports[0] {
		t.Fatalf("reports = %+v", got.Reports)
	}

	raw, err := os.ReadFile(fs.Path())
	if err != nil {
		t.Fatal(err)
	}
	testkit.MustContain(t, string(raw), "{\n    \"production_data\": {\n        \"current_item\": \"bracket\"")
	testkit.MustContain(t, string(raw), `"start_time": 1705305600,`)

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFileStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"production_data": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(path).Load(context.Background())
	if !errors.Is(err, domain.ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState", err)
	}
}

func TestFileStore_SaveIntoMissingDir(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nope", "data.json"))
	err := fs.Save(context.Background(), domain.DefaultDocument())
	if !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("err = %v", err)
	}
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	fs := NewFileStore(path)
	ctx := context.Background()
	if err := fs.Save(ctx, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(ctx, domain.DefaultDocument()); err != nil {
		t.Fatal(err)
	}
	doc, err := fs.Load(ctx)
	if err != nil || doc.Production.HasCurrent() || len(doc.Reports) != 0 {
		t.Fatalf("second save not visible: %+v %v", doc, err)
	}
}

func TestNewFileStore_PanicsOnEmptyPath(t *testing.T) {
	testkit.MustPanic(t, func() { NewFileStore("") })
}

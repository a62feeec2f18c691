package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "notes.json")
	s := New[note](path)
	ctx := context.Background()

	want := []note{{ID: "a", Text: "first"}, {ID: "b", Text: "second"}}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New[note](filepath.Join(t.TempDir(), "absent.json"))

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load = %+v, want empty", got)
	}
}

func TestSaveReplacesPreviousDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	s := New[note](path)
	ctx := context.Background()

	if err := s.Save(ctx, []note{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if err := s.Save(ctx, []note{{ID: "c"}}); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("Load = %+v, want [c]", got)
	}
}

func TestLoadSkipsUndecodableElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	doc := `[{"id":"a","text":"ok"},{"id":3,"text":false},{"id":"b","text":"ok"}]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := New[note](path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Load = %+v, want the two decodable notes", got)
	}
}

func TestLoadUnparseableDocumentFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	if _, err := New[note](path).Load(context.Background()); err == nil {
		t.Error("expected error for unparseable document")
	}
}

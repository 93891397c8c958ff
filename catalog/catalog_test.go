package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `
questions:
  - prompt: "How often do you check the news?"
    options:
      - "A. Daily"
      - "B. Weekly"
      - "C. Rarely"
      - "D. Never"
  - prompt: "Do you trust official sources?"
    options:
      - "A. Yes"
      - "B. Mostly"
      - "C. Rarely"
      - "D. No"
`)
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cat.Len())
	}
	q, ok := cat.At(1)
	if !ok || q.Prompt != "How often do you check the news?" {
		t.Errorf("At(1) = %+v, ok=%v", q, ok)
	}
	if len(q.Options) != 4 || q.Options[0] != "A. Daily" {
		t.Errorf("options not preserved in order: %v", q.Options)
	}
	if _, ok := cat.At(0); ok {
		t.Error("At(0) should be out of range")
	}
	if _, ok := cat.At(3); ok {
		t.Error("At(3) should be out of range")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyCatalog(t *testing.T) {
	path := writeCatalog(t, "questions: []\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeCatalog(t, "questions: [  {")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadEmptyPrompt(t *testing.T) {
	path := writeCatalog(t, "questions:\n  - prompt: \"\"\n    options: [\"A\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

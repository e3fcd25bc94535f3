package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	content := `{"id":"a","title":"First","text":"The first essay is short."}
not json
{"title":"Second","text":"The second essay has no id."}

{"id":"c","text":"   "}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.WarnLevel)
	docs, err := LoadJSONL(path, zap.New(core))
	if err != nil {
		t.Fatalf("LoadJSONL: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "a" || docs[0].Title != "First" {
		t.Errorf("unexpected first doc %+v", docs[0])
	}
	if docs[1].ID != "line-3" {
		t.Errorf("missing ID should be numbered by line, got %q", docs[1].ID)
	}
	if logs.Len() != 2 {
		t.Errorf("expected 2 warnings, got %d", logs.Len())
	}
}

func TestLoadJSONLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, []byte("\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJSONL(path, nil); err == nil {
		t.Fatal("expected error for empty corpus")
	}
}

func TestLoadJSONLMissing(t *testing.T) {
	if _, err := LoadJSONL("/nonexistent/corpus.jsonl", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

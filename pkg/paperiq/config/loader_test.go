package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/paperiq/internal/llm"
	"github.com/cognicore/paperiq/pkg/paperiq/archive/memstore"
	"github.com/cognicore/paperiq/pkg/paperiq/archive/sqlite"
	"github.com/cognicore/paperiq/pkg/paperiq/sentiment"
)

func TestLoaderDefaults(t *testing.T) {
	comp, err := (&Loader{}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Close()

	if comp.Analyzer == nil {
		t.Fatal("analyzer missing")
	}
	if _, ok := comp.Oracle.(*sentiment.CachedOracle); !ok {
		t.Errorf("default oracle should be cached, got %T", comp.Oracle)
	}
	if comp.Archive != nil {
		t.Errorf("archive should be disabled by default, got %T", comp.Archive)
	}
}

func TestLoaderArchives(t *testing.T) {
	cfg := Default()
	cfg.Archive.Path = ArchiveMemory
	comp, err := (&Loader{Config: cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := comp.Archive.(*memstore.Store); !ok {
		t.Errorf("expected memstore, got %T", comp.Archive)
	}
	comp.Close()

	cfg.Archive.Path = filepath.Join(t.TempDir(), "reports.db")
	comp, err = (&Loader{Config: cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Close()
	if _, ok := comp.Archive.(*sqlite.Store); !ok {
		t.Errorf("expected sqlite store, got %T", comp.Archive)
	}
}

func TestLoaderRemoteProviders(t *testing.T) {
	cfg := Default()
	cfg.Sentiment.CacheSize = 0
	cfg.Sentiment.Provider = ProviderOpenAI
	cfg.Sentiment.BaseURL = "https://llm.test/v1/chat/completions"
	cfg.Sentiment.Model = "test-model"
	cfg.Sentiment.RequestsPerSecond = 2

	comp, err := (&Loader{Config: cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	client, ok := comp.Oracle.(*llm.Client)
	if !ok {
		t.Fatalf("expected llm.Client, got %T", comp.Oracle)
	}
	if client.Limiter == nil {
		t.Error("rate limiter should be configured")
	}

	cfg.Sentiment.Provider = ProviderAnthropic
	cfg.Sentiment.APIKey = "test-key"
	comp, err = (&Loader{Config: cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := comp.Oracle.(*llm.AnthropicOracle); !ok {
		t.Fatalf("expected AnthropicOracle, got %T", comp.Oracle)
	}
}

func TestLoaderBadLexicon(t *testing.T) {
	cfg := Default()
	cfg.Sentiment.LexiconPath = "/nonexistent/lexicon.yaml"
	if _, err := (&Loader{Config: cfg}).Load(context.Background()); err == nil {
		t.Fatal("expected error for missing lexicon")
	}
}

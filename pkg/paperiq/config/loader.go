package config

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cognicore/paperiq/internal/llm"
	"github.com/cognicore/paperiq/pkg/paperiq"
	"github.com/cognicore/paperiq/pkg/paperiq/archive"
	"github.com/cognicore/paperiq/pkg/paperiq/archive/memstore"
	"github.com/cognicore/paperiq/pkg/paperiq/archive/sqlite"
	"github.com/cognicore/paperiq/pkg/paperiq/sentiment"
)

// Loader constructs runtime components from a Config
type Loader struct {
	Config *Config
}

// Components holds the constructed runtime components
type Components struct {
	Oracle   sentiment.Oracle
	Analyzer *paperiq.Analyzer
	// Archive is nil when archiving is disabled.
	Archive archive.Archive
}

// Close releases the archive, if any.
func (c *Components) Close() error {
	if c.Archive == nil {
		return nil
	}
	return c.Archive.Close()
}

// Load builds the oracle, archive and analyzer described by the config.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}

	oracle, err := buildOracle(cfg.Sentiment)
	if err != nil {
		return nil, fmt.Errorf("sentiment oracle: %w", err)
	}

	comp := &Components{
		Oracle: oracle,
		Analyzer: paperiq.New(paperiq.Options{
			Oracle:     oracle,
			TopFlagged: cfg.Analysis.TopFlagged,
			Sequential: cfg.Analysis.Sequential,
		}),
	}

	switch cfg.Archive.Path {
	case "":
	case ArchiveMemory:
		comp.Archive = memstore.New()
	default:
		st, err := sqlite.Open(ctx, cfg.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("open archive %s: %w", cfg.Archive.Path, err)
		}
		comp.Archive = st
	}

	return comp, nil
}

func buildOracle(cfg SentimentConfig) (sentiment.Oracle, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	limiter := llm.NewLimiter(cfg.RequestsPerSecond)

	var oracle sentiment.Oracle
	switch cfg.Provider {
	case ProviderLexicon, "":
		var lex *sentiment.Lexicon
		if cfg.LexiconPath != "" {
			var err error
			if lex, err = sentiment.LoadLexicon(cfg.LexiconPath); err != nil {
				return nil, fmt.Errorf("load lexicon: %w", err)
			}
		}
		oracle = sentiment.NewLexiconOracle(lex)
	case ProviderOpenAI:
		oracle = &llm.Client{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			HTTPClient: &http.Client{Timeout: timeout},
			Limiter:    limiter,
		}
	case ProviderAnthropic:
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		if timeout > 0 {
			opts = append(opts, option.WithRequestTimeout(timeout))
		}
		a, err := llm.NewAnthropicOracle(cfg.APIKey, cfg.Model, limiter, opts...)
		if err != nil {
			return nil, err
		}
		oracle = a
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if cfg.CacheSize > 0 {
		return sentiment.Cached(oracle, cfg.CacheSize)
	}
	return oracle, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cognicore/paperiq/internal/corpus"
	"github.com/cognicore/paperiq/internal/logging"
	"github.com/cognicore/paperiq/pkg/paperiq"
	"github.com/cognicore/paperiq/pkg/paperiq/archive"
	"github.com/cognicore/paperiq/pkg/paperiq/config"
	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"github.com/cognicore/paperiq/pkg/paperiq/score"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type docResult struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	ReportID  string    `json:"report_id,omitempty"`
	Scores    score.Set `json:"scores"`
	Flagged   []string  `json:"top_flagged_sentences"`
	Skipped   bool      `json:"skipped,omitempty"`
	SkipCause string    `json:"skip_reason,omitempty"`
}

type batchReport struct {
	Documents int         `json:"documents"`
	Analyzed  int         `json:"analyzed"`
	Mean      score.Set   `json:"mean"`
	Results   []docResult `json:"results"`
}

// options are the parsed command-line flags.
type options struct {
	input      string
	configPath string
	envFile    string
	workers    int
	output     string
	archive    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "Path to JSONL file with {id,title,text} lines (required)")
	flag.StringVar(&opts.configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&opts.envFile, "env-file", "", "Optional .env file")
	flag.IntVar(&opts.workers, "workers", 4, "Documents analyzed concurrently")
	flag.StringVar(&opts.output, "output", "", "Write the JSON report here instead of stdout")
	flag.BoolVar(&opts.archive, "archive", false, "Store every report in the configured archive")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx, opts, os.Stdout)
	stop()
	if err != nil {
		log.Printf("paperiq-batch: %v", err)
		os.Exit(1)
	}
}

// execute runs one batch and writes the JSON report to stdout or
// opts.output. Every resource it opens is released before it returns.
func execute(ctx context.Context, opts options, stdout io.Writer) (err error) {
	if opts.input == "" {
		return errors.New("--input required")
	}
	if opts.workers < 1 {
		opts.workers = 1
	}

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	loader := &config.Loader{Config: cfg}
	comp, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	defer func() {
		if cerr := comp.Close(); cerr != nil {
			logger.Warn("close archive", zap.Error(cerr))
		}
	}()

	var arch archive.Archive
	if opts.archive {
		if comp.Archive == nil {
			return fmt.Errorf("--archive needs archive.path: %w", internalerr.ErrArchiveDisabled)
		}
		arch = comp.Archive
	}

	docs, err := corpus.LoadJSONL(opts.input, logger)
	if err != nil {
		return fmt.Errorf("load docs %s: %w", opts.input, err)
	}
	logger.Info("loaded corpus", zap.Int("docs", len(docs)))

	rep, err := run(ctx, comp.Analyzer, arch, docs, opts.workers, logger)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	out := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("batch complete",
		zap.Int("analyzed", rep.Analyzed),
		zap.Float64("mean_composite", rep.Mean.Composite),
	)
	return nil
}

// run analyzes docs with up to workers goroutines. Results keep input order.
// Documents below the minimum length are reported as skipped; any other
// failure stops the batch.
func run(ctx context.Context, analyzer *paperiq.Analyzer, arch archive.Archive, docs []corpus.Doc, workers int, logger *zap.Logger) (batchReport, error) {
	results := make([]docResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		g.Go(func() error {
			res := docResult{ID: doc.ID, Title: doc.Title}
			if err := paperiq.ValidateInput(doc.Text); err != nil {
				res.Skipped = true
				res.SkipCause = err.Error()
				results[i] = res
				return nil
			}
			r, err := analyzer.Analyze(gctx, doc.Text)
			if err != nil {
				return fmt.Errorf("doc %s: %w", doc.ID, err)
			}
			res.Scores = r.Scores()
			res.Flagged = r.TopFlaggedSentences
			if arch != nil {
				rec, err := arch.Save(gctx, archive.Record{Source: doc.ID, Report: r})
				if err != nil {
					logger.Warn("archive report", zap.String("doc", doc.ID), zap.Error(err))
				} else {
					res.ReportID = rec.ID
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batchReport{}, err
	}

	rep := batchReport{Documents: len(docs), Results: results}
	var sum score.Set
	for _, r := range results {
		if r.Skipped {
			continue
		}
		rep.Analyzed++
		sum.Language += r.Scores.Language
		sum.Coherence += r.Scores.Coherence
		sum.Reasoning += r.Scores.Reasoning
		sum.Composite += r.Scores.Composite
	}
	if rep.Analyzed > 0 {
		n := float64(rep.Analyzed)
		rep.Mean = score.Set{
			Language:  score.Round2(sum.Language / n),
			Coherence: score.Round2(sum.Coherence / n),
			Reasoning: score.Round2(sum.Reasoning / n),
			Composite: score.Round2(sum.Composite / n),
		}
	}
	return rep, nil
}

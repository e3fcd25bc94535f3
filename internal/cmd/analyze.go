package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cognicore/paperiq/internal/extract"
	"github.com/cognicore/paperiq/internal/report"
	"github.com/cognicore/paperiq/pkg/paperiq"
	"github.com/cognicore/paperiq/pkg/paperiq/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inlineText string
	topFlagged int
	noArchive  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a document or text",
	Long: `Analyze writing quality and sentiment.

The input is a file (PDF, DOCX, ODT, HTML, Markdown or plain text), the
--text flag, or standard input when neither is given.

Examples:
  paperiq analyze thesis.pdf
  paperiq analyze --text "Short essays deserve feedback too."
  cat essay.md | paperiq analyze --format json`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	analyzeCmd.Flags().StringVarP(&inlineText, "text", "t", "", "Analyze this text instead of a file")
	analyzeCmd.Flags().IntVar(&topFlagged, "top", 0, "Number of flagged sentences to report (default from config)")
	analyzeCmd.Flags().BoolVar(&noArchive, "no-archive", false, "Do not store the report even when archiving is enabled")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && inlineText != "" {
		return fmt.Errorf("pass either a file or --text, not both")
	}

	ctx := cmd.Context()
	s, err := setup(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	text, source, err := readInput(cmd, args, s.logger)
	if err != nil {
		return err
	}
	if err := paperiq.ValidateInput(text); err != nil {
		return err
	}

	analyzer := s.comp.Analyzer
	if topFlagged > 0 {
		analyzer = paperiq.New(paperiq.Options{
			Oracle:     s.comp.Oracle,
			TopFlagged: topFlagged,
			Sequential: s.cfg.Analysis.Sequential,
		})
	}

	rep, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", source, err)
	}

	out := report.NewAnalysis(rep, source)
	if s.comp.Archive != nil && !noArchive {
		rec, err := s.comp.Archive.Save(ctx, archive.Record{Source: source, Report: rep})
		if err != nil {
			s.logger.Warn("archive report", zap.Error(err))
		} else {
			out.ID = rec.ID
		}
	}

	renderer, err := report.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.Render(out)
}

// readInput returns the text to analyze and a label for where it came from.
func readInput(cmd *cobra.Command, args []string, logger *zap.Logger) (string, string, error) {
	switch {
	case inlineText != "":
		return inlineText, "text", nil
	case len(args) > 0:
		doc, err := extract.File(args[0])
		if err != nil {
			return "", "", err
		}
		for _, w := range doc.Warnings {
			logger.Warn("extraction warning", zap.String("file", args[0]), zap.String("warning", w))
		}
		logger.Debug("extracted", zap.String("file", args[0]), zap.String("format", string(doc.Format)))
		return doc.Text, args[0], nil
	default:
		if f, ok := cmd.InOrStdin().(*os.File); ok && report.IsTerminal(f) {
			return "", "", fmt.Errorf("no input: pass a file, --text, or pipe text on stdin")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
}

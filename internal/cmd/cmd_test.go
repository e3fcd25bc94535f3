package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		inlineText, configPath, envFile, format = "", "", "", "terminal"
		topFlagged, listLimit = 0, 0
		noArchive, verbose = false, false
	})
}

func TestReadInputPrefersText(t *testing.T) {
	resetFlags(t)
	inlineText = "Inline text wins over stdin."
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("ignored"))

	text, source, err := readInput(cmd, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if text != inlineText || source != "text" {
		t.Errorf("got %q from %q", text, source)
	}
}

func TestReadInputStdin(t *testing.T) {
	resetFlags(t)
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("Piped essays are analyzed too."))

	text, source, err := readInput(cmd, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if text != "Piped essays are analyzed too." || source != "stdin" {
		t.Errorf("got %q from %q", text, source)
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	resetFlags(t)
	t.Setenv("PAPERIQ_ARCHIVE_PATH", "")
	t.Setenv("PAPERIQ_SENTIMENT_PROVIDER", "lexicon")

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"analyze", "--format", "json", "--top", "1",
		"--text", "The method is good. Therefore the results are excellent."})
	t.Cleanup(func() { RootCmd.SetArgs(nil); RootCmd.SetOut(nil) })

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if n := len(got["top_flagged_sentences"].([]any)); n != 1 {
		t.Errorf("expected 1 flagged sentence, got %d", n)
	}
	if _, ok := got["feedback"]; !ok {
		t.Error("missing feedback")
	}
}

func TestAnalyzeCommandRejectsShortText(t *testing.T) {
	resetFlags(t)
	t.Setenv("PAPERIQ_ARCHIVE_PATH", "")
	RootCmd.SetOut(&bytes.Buffer{})
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs([]string{"analyze", "--text", "short"})
	t.Cleanup(func() { RootCmd.SetArgs(nil); RootCmd.SetOut(nil); RootCmd.SetErr(nil) })

	if err := RootCmd.Execute(); err == nil {
		t.Fatal("expected an error for short text")
	}
}

func TestReportsNeedArchive(t *testing.T) {
	resetFlags(t)
	t.Setenv("PAPERIQ_ARCHIVE_PATH", "")
	RootCmd.SetOut(&bytes.Buffer{})
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs([]string{"reports"})
	t.Cleanup(func() { RootCmd.SetArgs(nil); RootCmd.SetOut(nil); RootCmd.SetErr(nil) })

	if err := RootCmd.Execute(); err == nil {
		t.Fatal("expected archive disabled error")
	}
}

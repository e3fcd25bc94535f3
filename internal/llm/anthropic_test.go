package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func anthropicServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "polarity") {
			t.Errorf("prompt missing from request")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"model":         string(DefaultAnthropicModel),
			"content":       []map[string]string{{"type": "text", "text": text}},
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"usage":         map[string]int{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicOracle(t *testing.T) {
	srv := anthropicServer(t, `{"polarity": -0.4, "subjectivity": 0.9}`)
	oracle, err := NewAnthropicOracle("test-key", "", nil, option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewAnthropicOracle: %v", err)
	}
	pol, subj, err := oracle.PolarityAndSubjectivity(context.Background(), "This is disappointing.")
	if err != nil {
		t.Fatalf("PolarityAndSubjectivity: %v", err)
	}
	if pol != -0.4 || subj != 0.9 {
		t.Fatalf("unexpected reading %v, %v", pol, subj)
	}
}

func TestAnthropicOracleBadReply(t *testing.T) {
	srv := anthropicServer(t, "no idea")
	oracle, err := NewAnthropicOracle("test-key", "claude-test", nil, option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewAnthropicOracle: %v", err)
	}
	if _, _, err := oracle.PolarityAndSubjectivity(context.Background(), "x"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAnthropicOracleRequiresKey(t *testing.T) {
	if _, err := NewAnthropicOracle("", "", nil); err == nil {
		t.Fatal("expected error without API key")
	}
}

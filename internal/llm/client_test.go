package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func replyWith(content string) *http.Client {
	return &http.Client{
		Transport: roundTrip(func(req *http.Request) *http.Response {
			body, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
			})
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(string(body))),
				Header:     make(http.Header),
			}
		}),
	}
}

func TestPolaritySuccess(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		APIKey:  "secret",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if got := req.Header.Get("Authorization"); got != "Bearer secret" {
					t.Errorf("Authorization = %q", got)
				}
				body, _ := io.ReadAll(req.Body)
				if !strings.Contains(string(body), "The results look promising.") {
					t.Fatalf("expected text in payload")
				}
				return &http.Response{
					StatusCode: 200,
					Body: io.NopCloser(strings.NewReader(`{
						"choices":[{"message":{"role":"assistant","content":"{\"polarity\": 0.6, \"subjectivity\": 0.7}"}}]
					}`)),
					Header: make(http.Header),
				}
			}),
		},
	}

	pol, subj, err := client.PolarityAndSubjectivity(context.Background(), "The results look promising.")
	if err != nil {
		t.Fatalf("PolarityAndSubjectivity: %v", err)
	}
	if pol != 0.6 || subj != 0.7 {
		t.Fatalf("unexpected reading %v, %v", pol, subj)
	}
}

func TestPolarityRejectsBadReplies(t *testing.T) {
	for _, reply := range []string{
		"I think it is positive.",
		`{"polarity": 1.5, "subjectivity": 0.2}`,
		`{"polarity": 0.5, "subjectivity": -0.1}`,
		`{"polarity": 0.5}`,
	} {
		client := &Client{BaseURL: "https://api.test", Model: "m", HTTPClient: replyWith(reply)}
		if _, _, err := client.PolarityAndSubjectivity(context.Background(), "x"); err == nil {
			t.Errorf("expected error for reply %q", reply)
		}
	}
}

func TestPolarityToleratesWrappedJSON(t *testing.T) {
	client := &Client{
		BaseURL:    "https://api.test",
		Model:      "m",
		HTTPClient: replyWith("```json\n{\"polarity\": -0.25, \"subjectivity\": 0}\n```"),
	}
	pol, subj, err := client.PolarityAndSubjectivity(context.Background(), "x")
	if err != nil {
		t.Fatalf("PolarityAndSubjectivity: %v", err)
	}
	if pol != -0.25 || subj != 0 {
		t.Fatalf("unexpected reading %v, %v", pol, subj)
	}
}

func TestChatError(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"bad"}}`)),
					Header:     make(http.Header),
				}
			}),
		},
	}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
}

func TestChatRequiresModel(t *testing.T) {
	client := &Client{BaseURL: "https://api.test"}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error without model")
	}
}

func TestChat(t *testing.T) {
	client := &Client{
		BaseURL:    "https://api.test/v1/chat/completions",
		Model:      "gpt-test",
		HTTPClient: replyWith("hi"),
		Limiter:    NewLimiter(100),
	}
	out, err := client.Chat(context.Background(), "system", "user prompt")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out != "hi" {
		t.Fatalf("unexpected chat output %s", out)
	}
}

func TestNewLimiterDisabled(t *testing.T) {
	if NewLimiter(0) != nil {
		t.Fatal("non-positive rate should disable limiting")
	}
}

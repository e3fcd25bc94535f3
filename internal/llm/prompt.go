package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const sentimentSystemPrompt = "You are a sentiment rater. Reply with JSON only."

// maxPromptRunes bounds how much of a span is sent to a model.
const maxPromptRunes = 8000

func sentimentPrompt(text string) string {
	return fmt.Sprintf(`Rate the sentiment of the text below.

Return ONLY a JSON object of the form {"polarity": P, "subjectivity": S} where
P is between -1 (negative) and 1 (positive) and S is between 0 (objective)
and 1 (subjective).

Text:
%s`, truncate(text, maxPromptRunes))
}

// parseReading extracts the first JSON object in reply and checks its ranges.
func parseReading(reply string) (float64, float64, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return 0, 0, fmt.Errorf("llm: no JSON object in reply %q", truncate(reply, 120))
	}

	var r struct {
		Polarity     *float64 `json:"polarity"`
		Subjectivity *float64 `json:"subjectivity"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &r); err != nil {
		return 0, 0, fmt.Errorf("llm: parse reading: %w", err)
	}
	if r.Polarity == nil || r.Subjectivity == nil {
		return 0, 0, fmt.Errorf("llm: reading missing polarity or subjectivity")
	}
	if *r.Polarity < -1 || *r.Polarity > 1 {
		return 0, 0, fmt.Errorf("llm: polarity %v outside [-1,1]", *r.Polarity)
	}
	if *r.Subjectivity < 0 || *r.Subjectivity > 1 {
		return 0, 0, fmt.Errorf("llm: subjectivity %v outside [0,1]", *r.Subjectivity)
	}
	return *r.Polarity, *r.Subjectivity, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

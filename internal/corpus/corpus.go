// Package corpus reads document collections for batch scoring.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Doc is one document of a JSONL corpus.
type Doc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// LoadJSONL loads documents from a JSONL file, one object per line.
// Malformed lines and lines without text are skipped with a warning.
// Documents without an ID are numbered by line.
func LoadJSONL(path string, logger *zap.Logger) ([]Doc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []Doc
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc Doc
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			logger.Warn("skipping malformed line", zap.String("path", path), zap.Int("line", i+1), zap.Error(err))
			continue
		}
		if strings.TrimSpace(doc.Text) == "" {
			logger.Warn("skipping document without text", zap.String("path", path), zap.Int("line", i+1))
			continue
		}
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("line-%d", i+1)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents found in %s", path)
	}

	return docs, nil
}

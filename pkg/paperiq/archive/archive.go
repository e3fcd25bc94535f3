// Package archive stores analysis reports for later retrieval. It sits
// outside the analysis pipeline; nothing in the core depends on it.
package archive

import (
	"bytes"
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/cognicore/paperiq/pkg/paperiq"
	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 20

// Record is an archived report.
type Record struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Source    string         `json:"source"`
	Report    paperiq.Report `json:"report"`
}

// Summary is the list view of a record.
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
	Composite float64   `json:"composite"`
}

// Summarize returns the list view of r.
func (r Record) Summarize() Summary {
	return Summary{ID: r.ID, CreatedAt: r.CreatedAt, Source: r.Source, Composite: r.Report.Composite}
}

// Archive persists records. List returns the newest records first.
type Archive interface {
	// Save stores r, assigning an ID and creation time when unset.
	Save(ctx context.Context, r Record) (Record, error)
	Get(ctx context.Context, id string) (Record, bool, error)
	List(ctx context.Context, limit int) ([]Summary, error)
	Close() error
}

// IDs issues lexically sortable record IDs.
type IDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDs creates an ID generator.
func NewIDs() *IDs {
	return &IDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns an ID for time t. IDs issued within the same millisecond
// still sort in issue order.
func (g *IDs) New(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// Prepare fills in the ID and creation time of r when unset.
func Prepare(r Record, ids *IDs, now time.Time) Record {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC()
	}
	if r.ID == "" {
		r.ID = ids.New(r.CreatedAt)
	}
	return r
}

// EncodeReport serialises a report into the compact archive payload.
func EncodeReport(r paperiq.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeReport reverses EncodeReport.
func DecodeReport(data []byte) (paperiq.Report, error) {
	var r paperiq.Report
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&r); err != nil {
		return paperiq.Report{}, err
	}
	return r, nil
}

// Limit normalises a caller-supplied list limit.
func Limit(n int) int {
	if n <= 0 {
		return DefaultListLimit
	}
	return n
}

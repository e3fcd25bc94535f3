package sentiment

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/cognicore/paperiq/pkg/paperiq/segment"
	"gopkg.in/yaml.v3"
)

// NegationWindow is how many words after a negation it still applies to.
const NegationWindow = 3

// negationFactor flips and dampens a negated word: "not good" is mildly
// negative, not the opposite of good.
const negationFactor = -0.5

//go:embed default_lexicon.yaml
var defaultLexiconYAML []byte

// Entry is the prior polarity and subjectivity of one word.
type Entry struct {
	Polarity     float64 `yaml:"polarity"`
	Subjectivity float64 `yaml:"subjectivity"`
}

// Lexicon is a word-level sentiment dictionary.
//
// Expected YAML format:
//
//	negations: [not, never, no]
//	modifiers:
//	  very: 1.3
//	  slightly: 0.5
//	words:
//	  good: {polarity: 0.7, subjectivity: 0.6}
//
// All keys are lowercased on load.
type Lexicon struct {
	Words     map[string]Entry
	Modifiers map[string]float64
	Negations map[string]struct{}
}

// LoadLexicon reads a lexicon from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes and validates a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var raw struct {
		Negations []string           `yaml:"negations"`
		Modifiers map[string]float64 `yaml:"modifiers"`
		Words     map[string]Entry   `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	lex := &Lexicon{
		Words:     make(map[string]Entry, len(raw.Words)),
		Modifiers: make(map[string]float64, len(raw.Modifiers)),
		Negations: make(map[string]struct{}, len(raw.Negations)),
	}
	for w, e := range raw.Words {
		if e.Polarity < -1 || e.Polarity > 1 {
			return nil, fmt.Errorf("word %q: polarity %v outside [-1,1]", w, e.Polarity)
		}
		if e.Subjectivity < 0 || e.Subjectivity > 1 {
			return nil, fmt.Errorf("word %q: subjectivity %v outside [0,1]", w, e.Subjectivity)
		}
		lex.Words[strings.ToLower(w)] = e
	}
	for m, f := range raw.Modifiers {
		if f <= 0 {
			return nil, fmt.Errorf("modifier %q: factor must be positive", m)
		}
		lex.Modifiers[strings.ToLower(m)] = f
	}
	for _, n := range raw.Negations {
		lex.Negations[strings.ToLower(n)] = struct{}{}
	}
	return lex, nil
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return lex
})

// DefaultLexicon returns the bundled English lexicon. The result is shared
// and must not be modified.
func DefaultLexicon() *Lexicon {
	return defaultLexicon()
}

// LexiconOracle is an offline Oracle backed by a Lexicon. A span's reading
// is the mean over the lexicon words it contains; a span with no lexicon
// words reads as neutral and objective.
type LexiconOracle struct {
	lex *Lexicon
}

// NewLexiconOracle returns an oracle over lex, or over the default lexicon
// when lex is nil.
func NewLexiconOracle(lex *Lexicon) *LexiconOracle {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &LexiconOracle{lex: lex}
}

// PolarityAndSubjectivity implements Oracle.
func (o *LexiconOracle) PolarityAndSubjectivity(ctx context.Context, text string) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	var polSum, subjSum float64
	var n int
	intensity := 1.0
	lastNegation := -NegationWindow - 1

	for i, w := range segment.Words(text) {
		if _, ok := o.lex.Negations[w]; ok {
			lastNegation = i
			continue
		}
		if f, ok := o.lex.Modifiers[w]; ok {
			intensity *= f
			continue
		}
		e, ok := o.lex.Words[w]
		if !ok {
			intensity = 1
			continue
		}

		pol := e.Polarity * intensity
		if i-lastNegation <= NegationWindow {
			pol *= negationFactor
			lastNegation = -NegationWindow - 1
		}
		polSum += clamp(pol, -1, 1)
		subjSum += clamp(e.Subjectivity*intensity, 0, 1)
		n++
		intensity = 1
	}

	if n == 0 {
		return 0, 0, nil
	}
	return polSum / float64(n), subjSum / float64(n), nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Package segment splits raw text into sentences and word tokens.
//
// All functions are pure: the same input always yields the same output and
// empty or whitespace-only input yields empty sequences.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// escapedNewline is the two-character sequence backslash + 'n' that leaks
// into pasted text from JSON or Python string literals.
const escapedNewline = `\n`

// Document is an input text together with its sentence and word sequences.
type Document struct {
	Text      string
	Sentences []string
	Words     []string
}

// Segment runs sentence splitting and word tokenization over text.
func Segment(text string) Document {
	return Document{
		Text:      text,
		Sentences: Sentences(text),
		Words:     Words(text),
	}
}

// Sentences splits text on every whitespace run that immediately follows
// '.', '!' or '?'. Escaped newlines inside a sentence collapse to a single
// space and empty candidates are dropped.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	var prev rune

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) || !isTerminal(prev) {
			prev = r
			i += size
			continue
		}

		// Boundary: swallow the whole whitespace run.
		end := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		sentences = appendSentence(sentences, text[start:end])
		start = i
		prev = ' '
	}

	return appendSentence(sentences, text[start:])
}

func appendSentence(sentences []string, candidate string) []string {
	candidate = strings.TrimSpace(strings.ReplaceAll(candidate, escapedNewline, " "))
	if candidate == "" {
		return sentences
	}
	return append(sentences, candidate)
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Words extracts lower-cased tokens made of word characters and apostrophes.
// Apostrophes only count inside a token: "'quoted'" yields "quoted" and
// "don't" stays whole.
func Words(text string) []string {
	return scan(lower(text), true)
}

// Terms extracts lower-cased runs of word characters only. Apostrophes act
// as separators, so "so's" yields "so" and "s". It is the tokenization used
// for whole-word marker matching.
func Terms(text string) []string {
	return scan(lower(text), false)
}

func scan(text string, apostrophes bool) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := strings.Trim(current.String(), "'")
		if token != "" {
			tokens = append(tokens, token)
		}
		current.Reset()
	}

	for _, r := range text {
		if isWordRune(r) || (apostrophes && r == '\'') {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// isWordRune reports whether r is a letter, a number or an underscore.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// lower applies full Unicode lower-casing. A Caser keeps state, so a new one
// is built per call.
func lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

// CharLen returns the length of a token in code points.
func CharLen(token string) int {
	return utf8.RuneCountInString(token)
}

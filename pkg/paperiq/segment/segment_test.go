package segment

import (
	"reflect"
	"testing"
)

func TestSentencesBasic(t *testing.T) {
	got := Sentences("Hello world. This is great! Is it? Yes")
	want := []string{"Hello world.", "This is great!", "Is it?", "Yes"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences = %q, want %q", got, want)
	}
}

func TestSentencesRequireWhitespaceAfterTerminal(t *testing.T) {
	got := Sentences("Version 1.5 is out.Really. Done")
	want := []string{"Version 1.5 is out.Really.", "Done"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences = %q, want %q", got, want)
	}
}

func TestSentencesWhitespaceRuns(t *testing.T) {
	got := Sentences("Wait...   what?\n\nOk.\t")
	want := []string{"Wait...", "what?", "Ok."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences = %q, want %q", got, want)
	}
}

func TestSentencesCollapseEscapedNewline(t *testing.T) {
	got := Sentences(`First line\nstill first. Second.\n`)
	want := []string{"First line still first.", "Second."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences = %q, want %q", got, want)
	}
}

func TestSentencesDropEmptyCandidates(t *testing.T) {
	got := Sentences(`One. \n`)
	want := []string{"One."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences = %q, want %q", got, want)
	}
}

func TestSentencesEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t  \n"} {
		if got := Sentences(in); len(got) != 0 {
			t.Errorf("Sentences(%q) = %q, want empty", in, got)
		}
	}
}

func TestSentencesIdempotent(t *testing.T) {
	text := "A first claim. Therefore a second one! And a third?"
	first := Sentences(text)
	second := Sentences(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Sentences not deterministic: %q vs %q", first, second)
	}
}

func TestWordsApostrophesAndCase(t *testing.T) {
	got := Words("Don't STOP 'believing' -- it's 2024_v2!")
	want := []string{"don't", "stop", "believing", "it's", "2024_v2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words = %q, want %q", got, want)
	}
}

func TestWordsPunctuationOnly(t *testing.T) {
	if got := Words("... !!! ' -- ''"); len(got) != 0 {
		t.Fatalf("Words = %q, want empty", got)
	}
}

func TestWordsUnicode(t *testing.T) {
	got := Words("Café NAÏVE résumé")
	want := []string{"café", "naïve", "résumé"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words = %q, want %q", got, want)
	}
}

func TestTermsSplitOnApostrophe(t *testing.T) {
	got := Terms("So's THEREFORE")
	want := []string{"so", "s", "therefore"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Terms = %q, want %q", got, want)
	}
}

func TestSegment(t *testing.T) {
	doc := Segment("The result failed. Therefore the hypothesis is rejected.")
	if len(doc.Sentences) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(doc.Sentences))
	}
	if len(doc.Words) != 8 {
		t.Errorf("expected 8 words, got %d", len(doc.Words))
	}
	if doc.Text == "" {
		t.Error("document text should be kept")
	}
}

func TestCharLen(t *testing.T) {
	if got := CharLen("naïve"); got != 5 {
		t.Errorf("CharLen(naïve) = %d, want 5", got)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cognicore/paperiq/pkg/paperiq/archive"
	"github.com/cognicore/paperiq/pkg/paperiq/feedback"
)

const barWidth = 20

// Terminal writes a human-readable report
type Terminal struct {
	w      io.Writer
	styles *Styles
}

// NewTerminal creates a terminal renderer. A nil styles disables styling.
func NewTerminal(w io.Writer, styles *Styles) *Terminal {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &Terminal{w: w, styles: styles}
}

func (t *Terminal) Render(a Analysis) error {
	s := t.styles
	var b strings.Builder

	title := "PaperIQ report"
	if a.Source != "" {
		title += "  " + s.Muted.Render(a.Source)
	}
	if a.ID != "" {
		title += "  " + s.Muted.Render("#"+a.ID)
	}
	fmt.Fprintln(&b, s.Header.Render(title))
	fmt.Fprintln(&b)

	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Composite", a.Composite},
		{"Language", a.Language},
		{"Coherence", a.Coherence},
		{"Reasoning", a.Reasoning},
	} {
		fmt.Fprintf(&b, "  %-10s %s %s\n", row.name, t.band(row.value).Render(fmt.Sprintf("%6.2f", row.value)), t.bar(row.value))
	}

	d := a.Diagnostics
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, s.Subheader.Render("Diagnostics"))
	fmt.Fprintf(&b, "  words %d  sentences %d  avg sentence %.1f  avg word %.2f\n",
		d.WordCount, d.SentenceCount, d.AvgSentenceLen, d.AvgWordLen)
	fmt.Fprintf(&b, "  ttr %.2f  lexical sophistication %.2f  coherence %.2f  reasoning %.2f\n",
		d.TTR, d.LexSoph, d.Coherence, d.ReasoningProxy)
	fmt.Fprintf(&b, "  sentiment polarity %+.2f  subjectivity %.2f\n",
		d.SentimentPolarity, d.SentimentSubjectivity)

	if len(a.Feedback) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, s.Subheader.Render("Feedback"))
		for _, n := range a.Feedback {
			style, icon := t.level(n.Level)
			fmt.Fprintf(&b, "  %s %s\n", style.Render(icon), n.Message)
		}
	}

	if len(a.TopFlaggedSentences) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, s.Subheader.Render("Sentences to revise"))
		for i, sentence := range a.TopFlaggedSentences {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, oneLine(sentence))
		}
	}

	if len(a.SentimentAnalysis) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, s.Subheader.Render("Sentence sentiment"))
		for _, r := range a.SentimentAnalysis {
			fmt.Fprintf(&b, "  %s %s\n",
				s.Muted.Render(fmt.Sprintf("%+.2f/%.2f", r.Polarity, r.Subjectivity)), oneLine(r.Text))
		}
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Terminal) RenderList(summaries []archive.Summary) error {
	s := t.styles
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(t.w, s.Muted.Render("No archived reports"))
		return err
	}

	var b strings.Builder
	fmt.Fprintln(&b, s.Header.Render(fmt.Sprintf("%-26s  %-20s  %9s  %s", "ID", "CREATED", "COMPOSITE", "SOURCE")))
	for _, sum := range summaries {
		fmt.Fprintf(&b, "%-26s  %-20s  %s  %s\n",
			sum.ID,
			sum.CreatedAt.Format("2006-01-02 15:04:05"),
			t.band(sum.Composite).Render(fmt.Sprintf("%9.2f", sum.Composite)),
			sum.Source)
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Terminal) band(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return t.styles.Success
	case score >= 50:
		return t.styles.Info
	default:
		return t.styles.Warning
	}
}

func (t *Terminal) bar(score float64) string {
	filled := int(score/100*barWidth + 0.5)
	filled = max(0, min(barWidth, filled))
	return t.styles.Bar.Render(strings.Repeat(t.styles.BarFull, filled) + strings.Repeat(t.styles.BarEmpty, barWidth-filled))
}

func (t *Terminal) level(l feedback.Level) (lipgloss.Style, string) {
	switch l {
	case feedback.Success:
		return t.styles.Success, t.styles.IconSuccess
	case feedback.Info:
		return t.styles.Info, t.styles.IconInfo
	case feedback.Error:
		return t.styles.Error, t.styles.IconError
	default:
		return t.styles.Warning, t.styles.IconWarning
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

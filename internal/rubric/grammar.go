package rubric

import (
	"strings"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// GrammarFinding is one counted grammar error with its category label.
type GrammarFinding struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// countGrammarErrors runs the deterministic grammar pass: every hit in the
// variant's error-pattern table counts once, plus two structural checks for
// fragments and run-ons. Stylistic choices that break no rule are not in the
// table and therefore never counted.
func countGrammarErrors(set *taxonomy.Set, text string) (int, []GrammarFinding) {
	var findings []GrammarFinding

	for _, match := range scanAxis(set.Axis(taxonomy.AxisGrammar), text) {
		findings = append(findings, GrammarFinding{
			Category: match.Entry.Tag,
			Text:     strings.TrimSpace(match.Text),
		})
	}

	for _, sentence := range splitSentences(text) {
		words := countWords(sentence)
		switch {
		case words < 3 && !isAcceptedShortSentence(sentence):
			findings = append(findings, GrammarFinding{
				Category: "sentence_fragment",
				Text:     sentence,
			})
		case words > 35 && strings.Count(sentence, ",") < 2:
			findings = append(findings, GrammarFinding{
				Category: "run_on_sentence",
				Text:     firstWords(sentence, 8),
			})
		}
	}

	return len(findings), findings
}

func isAcceptedShortSentence(sentence string) bool {
	switch strings.ToLower(strings.TrimSpace(sentence)) {
	case "yes", "no", "okay":
		return true
	}
	return false
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) <= n {
		return s
	}
	return strings.Join(fields[:n], " ") + "…"
}

package rubric

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// Match is one signal hit inside the scanned text.
type Match struct {
	Entry taxonomy.Entry
	Start int
	End   int
	Text  string
	order int
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks text on terminal punctuation and drops empty
// fragments. The sentence list preserves source order, which the matcher's
// tie-break depends on.
func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// scanAxis finds all non-overlapping matches of the axis rules in text.
// When matches overlap, the winner is chosen by the fixed tie-break:
// longer match first, then higher tier (lower tier number), then first
// occurrence in entry order. The ordering makes extraction reproducible
// across calls on identical input.
func scanAxis(axis taxonomy.Axis, text string) []Match {
	var candidates []Match
	order := 0
	for _, entry := range axis.Entries {
		for _, span := range entry.Pattern.FindAllStringIndex(text, -1) {
			candidates = append(candidates, Match{
				Entry: entry,
				Start: span[0],
				End:   span[1],
				Text:  text[span[0]:span[1]],
				order: order,
			})
			order++
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if alen, blen := a.End-a.Start, b.End-b.Start; alen != blen {
			return alen > blen
		}
		if a.Entry.Tier != b.Entry.Tier {
			return a.Entry.Tier < b.Entry.Tier
		}
		return a.order < b.order
	})

	kept := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		conflict := false
		for _, winner := range kept {
			if candidate.Start < winner.End && winner.Start < candidate.End {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, candidate)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// classifySentence returns the single best axis match for a sentence, which
// is how per-sentence tiering (effects, reasoning, synthesis) is decided.
func classifySentence(axis taxonomy.Axis, sentence string) (Match, bool) {
	matches := scanAxis(axis, sentence)
	if len(matches) == 0 {
		return Match{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Entry.Tier < best.Entry.Tier {
			best = m
		}
	}
	return best, true
}

// normalizeText lowercases, strips punctuation and collapses whitespace so
// phrasing comparisons are stable against surface noise.
func normalizeText(s string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsPunct(r):
			// dropped
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// tokens returns the normalized word set of s.
func tokens(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, word := range strings.Fields(normalizeText(s)) {
		set[word] = struct{}{}
	}
	return set
}

// jaccard measures token-set overlap between two phrases in [0,1].
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for word := range a {
		if _, ok := b[word]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// countWords reports whitespace-separated word count.
func countWords(s string) int {
	return len(strings.Fields(s))
}

package rubric

import "strings"

// similarityThreshold is the normalized token-overlap level above which two
// mentions with the same subject are treated as paraphrases of one claim.
// The rubric documents leave the exact criterion open; this value is the
// documented choice and is part of the engine's deterministic contract.
const similarityThreshold = 0.6

// dedupeMentions keeps the first occurrence of every distinct mention.
// Two mentions are the same item only when they share a referenced subject
// and their normalized phrasing overlaps at or above similarityThreshold,
// or when their normalized phrasing is identical. Earlier mentions always
// win, so output order is input order.
func dedupeMentions(mentions []string, subjects []string) []string {
	type seen struct {
		norm    string
		subject string
		tokens  map[string]struct{}
	}

	var kept []string
	var record []seen
	for _, mention := range mentions {
		norm := normalizeText(mention)
		if norm == "" {
			continue
		}
		subject := mentionSubject(mention, subjects)
		toks := tokens(mention)

		duplicate := false
		for _, prior := range record {
			if prior.norm == norm {
				duplicate = true
				break
			}
			if prior.subject == subject && jaccard(prior.tokens, toks) >= similarityThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		record = append(record, seen{norm: norm, subject: subject, tokens: toks})
		kept = append(kept, mention)
	}
	return kept
}

// mentionSubject picks the referenced textual subject of a mention: the
// first known topic it names, falling back to its first normalized word.
func mentionSubject(mention string, subjects []string) string {
	norm := " " + normalizeText(mention) + " "
	for _, subject := range subjects {
		if strings.Contains(norm, " "+normalizeText(subject)+" ") {
			return normalizeText(subject)
		}
	}
	fields := strings.Fields(norm)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

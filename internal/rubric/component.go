package rubric

import (
	"regexp"
	"strings"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// Detail quality tiers for the component variant, floor first.
const (
	DetailMissing  = "missing"
	DetailVague    = "vague"
	DetailSpecific = "specific"
	DetailPrecise  = "precise"
)

// TieredMention is an extracted phrase tagged with its taxonomy tier.
type TieredMention struct {
	Text  string `json:"text"`
	Tier  int    `json:"tier"`
	Label string `json:"label"`
}

// DetailEntry is one piece of textual evidence.
type DetailEntry struct {
	Text   string `json:"text"`
	Quoted bool   `json:"quoted"`
}

// InsightEntry is one analytical effect sentence tagged with its depth
// dimension and tier.
type InsightEntry struct {
	Text      string `json:"text"`
	Dimension string `json:"dimension"`
	Tier      int    `json:"tier"`
}

// ComponentRecord is the structured extraction output for component-based
// analytical writing. It is created once per evaluation and read-only
// afterwards.
type ComponentRecord struct {
	Topics            []string         `json:"topics"`
	Verbs             []TieredMention  `json:"verbs"`
	Objects           []string         `json:"objects"`
	Details           []DetailEntry    `json:"details"`
	DetailTier        string           `json:"detail_tier"`
	DetailScore       float64          `json:"detail_score"`
	Insights          []InsightEntry   `json:"insights"`
	DistinctInsights  int              `json:"distinct_insights"`
	Dimensions        []string         `json:"dimensions"`
	ConnectorTypes    []string         `json:"connector_types"`
	GrammarErrorCount int              `json:"grammar_error_count"`
	GrammarFindings   []GrammarFinding `json:"grammar_findings"`
	WordCount         int              `json:"word_count"`
}

var (
	quoteRe       = regexp.MustCompile(`"([^"]+)"`)
	attributionRe = regexp.MustCompile(`(?i)(?:p\.|page)\s*\d+|chapter\s+\d+`)
	detailClauseRe = regexp.MustCompile(`(?i)\b(?:when|through|by|with|since|after)\s+([^,.!?]+)`)
	objectReaderRe = regexp.MustCompile(`(?i)(?:make|makes|create|creates|cause|causes)\s+(?:the\s+)?readers?\s+(\w+)`)

	visualMarkerRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:eyes|face|hands|voice|body|snow|air|cold|warm|light|dark)\b`),
		regexp.MustCompile(`(?i)\b(?:walked|ran|felt|saw|heard|touched|breathed|looked)\b`),
		regexp.MustCompile(`(?i)\b(?:slowly|quickly|suddenly|carefully|gently|sharply)\b`),
	}
	whenRe    = regexp.MustCompile(`(?i)\b(?:when|after|before|during|while)\s+\w+|\b(?:in|at)\s+(?:chapter|page|the\s+beginning|the\s+end)`)
	whyRe     = regexp.MustCompile(`(?i)\b(?:because|since|due\s+to|as\s+a\s+result)\b|\bin\s+order\s+to\s+\w+`)
	howRe     = regexp.MustCompile(`(?i)\b(?:by|through|via|using)\s+\w+|\b(?:with|without)\s+\w+`)
	revealsRe = regexp.MustCompile(`(?i)(?:which|that|this)\s+(?:shows|reveals|demonstrates|suggests|indicates)|(?:revealing|showing|demonstrating)\s+(?:how|that|why)`)

	topicStopWords = map[string]struct{}{
		"the": {}, "this": {}, "that": {}, "chapter": {}, "in": {}, "and": {}, "for": {},
		"however": {}, "therefore": {}, "although": {}, "furthermore": {},
	}
)

// extractComponents maps a raw response onto a ComponentRecord. Malformed
// or empty input yields a record with every field at its floor state.
func extractComponents(set *taxonomy.Set, raw RawResponse) *ComponentRecord {
	text := raw.Text
	sentences := splitSentences(text)

	record := &ComponentRecord{
		Topics:     extractTopics(set, text, sentences),
		Verbs:      extractVerbs(set, text),
		WordCount:  raw.WordCount,
		DetailTier: DetailMissing,
	}
	record.Objects = extractObjects(text, record.Verbs)
	record.Details = extractDetails(text)
	record.DetailTier, record.DetailScore = assessDetailQuality(set, record.Details, text)

	insights := extractInsights(set, sentences)
	record.Insights, record.DistinctInsights, record.Dimensions = distinctInsights(insights, record.Topics)

	record.ConnectorTypes = connectorTypes(set, text)
	record.GrammarErrorCount, record.GrammarFindings = countGrammarErrors(set, text)
	return record
}

func extractTopics(set *taxonomy.Set, text string, sentences []string) []string {
	lower := strings.ToLower(text)
	var topics []string
	seen := map[string]struct{}{}
	add := func(topic string) {
		key := strings.ToLower(topic)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		topics = append(topics, topic)
	}

	for _, topic := range set.List(taxonomy.ListTopics) {
		if strings.Contains(lower, topic) {
			add(topic)
		}
	}

	// Capitalized words are treated as proper-name topics (characters,
	// places) unless they are common sentence starters.
	for _, sentence := range sentences {
		for _, word := range strings.Fields(sentence) {
			trimmed := strings.Trim(word, `",;:'`)
			if len(trimmed) <= 2 || trimmed[0] < 'A' || trimmed[0] > 'Z' {
				continue
			}
			if _, stop := topicStopWords[strings.ToLower(trimmed)]; stop {
				continue
			}
			add(trimmed)
		}
	}
	return topics
}

func extractVerbs(set *taxonomy.Set, text string) []TieredMention {
	var verbs []TieredMention
	seen := map[string]struct{}{}
	for _, match := range scanAxis(set.Axis(taxonomy.AxisVerbs), strings.ToLower(text)) {
		if _, ok := seen[match.Text]; ok {
			continue
		}
		seen[match.Text] = struct{}{}
		verbs = append(verbs, TieredMention{Text: match.Text, Tier: match.Entry.Tier, Label: match.Entry.Label})
	}
	return verbs
}

func extractObjects(text string, verbs []TieredMention) []string {
	lower := strings.ToLower(text)
	var objects []string
	seen := map[string]struct{}{}
	add := func(object string) {
		object = strings.Trim(object, `",;:'`)
		if len(object) <= 3 {
			return
		}
		if _, ok := seen[object]; ok {
			return
		}
		seen[object] = struct{}{}
		objects = append(objects, object)
	}

	for _, groups := range objectReaderRe.FindAllStringSubmatch(lower, -1) {
		add(groups[1])
	}

	// Nouns following an analytical verb are candidate objects.
	for _, sentence := range splitSentences(lower) {
		for _, verb := range verbs {
			if verb.Tier > taxonomy.VerbTierPattern {
				continue
			}
			_, after, found := strings.Cut(sentence, verb.Text)
			if !found {
				continue
			}
			fields := strings.Fields(after)
			if len(fields) > 5 {
				fields = fields[:5]
			}
			for _, field := range fields {
				add(field)
			}
		}
	}
	return objects
}

func extractDetails(text string) []DetailEntry {
	var details []DetailEntry
	for _, groups := range quoteRe.FindAllStringSubmatch(text, -1) {
		details = append(details, DetailEntry{Text: groups[1], Quoted: true})
	}
	for _, groups := range detailClauseRe.FindAllStringSubmatch(text, -1) {
		clause := strings.TrimSpace(groups[1])
		if clause != "" {
			details = append(details, DetailEntry{Text: clause})
		}
	}
	return details
}

// assessDetailQuality walks the shared threshold table: an item tiers
// upward only with a verifiable quotation, an attribution, and a counted
// number of contextual elements. Four or more elements reach the top tier,
// two or three the next tier down, a bare quote the mid tier, an unquoted
// description the low tier, and absence the floor.
func assessDetailQuality(set *taxonomy.Set, details []DetailEntry, text string) (string, float64) {
	if len(details) == 0 {
		return DetailMissing, 2.0
	}

	hasQuote := false
	for _, detail := range details {
		if detail.Quoted {
			hasQuote = true
			break
		}
	}

	if !hasQuote {
		if isVisualizable(text) && !isVagueHeavy(set, text) {
			return DetailSpecific, 4.0
		}
		return DetailVague, 3.0
	}

	if !attributionRe.MatchString(text) {
		return DetailSpecific, 4.0
	}

	elements := 0
	for _, check := range []*regexp.Regexp{whenRe, whyRe, howRe, revealsRe} {
		if check.MatchString(text) {
			elements++
		}
	}

	score := 4.0 + 0.25*float64(elements)
	switch {
	case elements >= 4:
		return DetailPrecise, 5.0
	case elements >= 2:
		return DetailPrecise, score
	default:
		return DetailSpecific, score
	}
}

func isVisualizable(text string) bool {
	hits := 0
	for _, marker := range visualMarkerRes {
		if marker.MatchString(text) {
			hits++
		}
	}
	return hits >= 2
}

func isVagueHeavy(set *taxonomy.Set, text string) bool {
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range set.List(taxonomy.ListVaguePhrases) {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count > 1
}

// extractInsights classifies every sentence against the effect axis. Only
// one classification per sentence survives, chosen by the fixed tie-break.
func extractInsights(set *taxonomy.Set, sentences []string) []InsightEntry {
	axis := set.Axis(taxonomy.AxisEffects)
	var insights []InsightEntry
	for _, sentence := range sentences {
		match, ok := classifySentence(axis, sentence)
		if !ok {
			continue
		}
		insights = append(insights, InsightEntry{
			Text:      sentence,
			Dimension: match.Entry.Tag,
			Tier:      match.Entry.Tier,
		})
	}
	return insights
}

// functionalInsightTier is the weakest effect tier that still counts as an
// analytical insight; generic and circular effects fall below it.
const functionalInsightTier = 3

// distinctInsights runs the dedup pass over functional insights and
// computes dimension coverage across the surviving items.
func distinctInsights(insights []InsightEntry, topics []string) ([]InsightEntry, int, []string) {
	var functional []InsightEntry
	mentions := make([]string, 0, len(insights))
	for _, insight := range insights {
		if insight.Tier <= functionalInsightTier {
			functional = append(functional, insight)
			mentions = append(mentions, insight.Text)
		}
	}

	keptTexts := dedupeMentions(mentions, topics)
	keptSet := make(map[string]struct{}, len(keptTexts))
	for _, text := range keptTexts {
		keptSet[text] = struct{}{}
	}

	var kept []InsightEntry
	var dimensions []string
	dimensionSeen := map[string]struct{}{}
	for _, insight := range functional {
		if _, ok := keptSet[insight.Text]; !ok {
			continue
		}
		delete(keptSet, insight.Text)
		kept = append(kept, insight)
		if _, ok := dimensionSeen[insight.Dimension]; !ok {
			dimensionSeen[insight.Dimension] = struct{}{}
			dimensions = append(dimensions, insight.Dimension)
		}
	}
	return kept, len(kept), dimensions
}

// connectorTypes returns the distinct connector types observed, in first
// occurrence order.
func connectorTypes(set *taxonomy.Set, text string) []string {
	var types []string
	seen := map[string]struct{}{}
	for _, match := range scanAxis(set.Axis(taxonomy.AxisConnectors), strings.ToLower(text)) {
		if _, ok := seen[match.Entry.Tag]; ok {
			continue
		}
		seen[match.Entry.Tag] = struct{}{}
		types = append(types, match.Entry.Tag)
	}
	return types
}

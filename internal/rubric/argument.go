package rubric

import (
	"regexp"
	"strings"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// Argument layer levels. Each level requires everything below it, so a
// response can never skip a layer.
const (
	LayerNone       = 0
	LayerPosition   = 1
	LayerComparison = 2
	LayerReasoned   = 3
	LayerQualified  = 4
)

var layerLabels = map[int]string{
	LayerNone:       "No Position",
	LayerPosition:   "Position Stated",
	LayerComparison: "Position with Comparison",
	LayerReasoned:   "Reasoned Argument",
	LayerQualified:  "Qualified Argument",
}

// layerStages carries the rubric document's stage names alongside the
// reader-facing labels.
var layerStages = map[int]string{
	LayerNone:       "No Position",
	LayerPosition:   "Definition",
	LayerComparison: "Comparison",
	LayerReasoned:   "Cause-Effect",
	LayerQualified:  "Problem-Solution",
}

// LayerLabel returns the display name for an argument layer, or the empty
// string for an unknown layer.
func LayerLabel(layer int) string {
	return layerLabels[layer]
}

// LayerStage returns the rubric stage name for an argument layer.
func LayerStage(layer int) string {
	return layerStages[layer]
}

// PositionClaim is the stance a response takes, with the strength tier of
// the strongest stance marker found.
type PositionClaim struct {
	Side     string `json:"side"`
	Strength int    `json:"strength"`
	Label    string `json:"label"`
	Text     string `json:"text"`
}

// EvidenceEntry is one piece of supporting material with its quality tier.
type EvidenceEntry struct {
	Text    string `json:"text"`
	Quality int    `json:"quality"`
	Label   string `json:"label"`
}

// ReasoningEntry is one reasoning move, typed by the chain it belongs to.
type ReasoningEntry struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// ArgumentRecord is the structured extraction output for argument-structure
// writing.
type ArgumentRecord struct {
	Position          *PositionClaim   `json:"position,omitempty"`
	Evidence          []EvidenceEntry  `json:"evidence"`
	Reasoning         []ReasoningEntry `json:"reasoning"`
	CauseEffectChains int              `json:"cause_effect_chains"`
	HasComparison     bool             `json:"has_comparison"`
	Counters          []string         `json:"counters"`
	Synthesis         []string         `json:"synthesis"`
	Contradiction     bool             `json:"contradiction"`
	Layer             int              `json:"layer"`
	LayerLabel        string           `json:"layer_label"`
	LayerStage        string           `json:"layer_stage"`
	ConnectorTypes    []string         `json:"connector_types"`
	GrammarErrorCount int              `json:"grammar_error_count"`
	GrammarFindings   []GrammarFinding `json:"grammar_findings"`
	WordCount         int              `json:"word_count"`
}

var (
	comparisonSideRe = regexp.MustCompile(`\bmore\s+(?:of\s+)?(?:a\s+)?(hero|victim)\s+than\b`)
	directSideRe     = regexp.MustCompile(`\bis\s+(?:truly\s+|really\s+|ultimately\s+)?(?:a\s+)?(hero|victim)\b`)
	bothSidesRe      = regexp.MustCompile(`\bboth\s+(?:a\s+)?hero\s+and\s+(?:a\s+)?victim\b|\bboth\s+(?:a\s+)?victim\s+and\s+(?:a\s+)?hero\b`)
)

// extractArgument maps a raw response onto an ArgumentRecord and resolves
// its layer.
func extractArgument(set *taxonomy.Set, raw RawResponse) *ArgumentRecord {
	text := raw.Text
	lower := strings.ToLower(text)
	sentences := splitSentences(lower)

	record := &ArgumentRecord{WordCount: raw.WordCount}
	record.Position = detectPosition(set, lower)
	record.Evidence = extractEvidence(set, sentences)
	record.Reasoning, record.CauseEffectChains, record.HasComparison = extractReasoning(set, lower)
	record.Counters = axisMentions(set, taxonomy.AxisCounters, lower)
	record.Synthesis = axisMentions(set, taxonomy.AxisSynthesis, lower)
	record.Contradiction = detectContradiction(lower, record)
	record.ConnectorTypes = connectorTypes(set, text)
	record.GrammarErrorCount, record.GrammarFindings = countGrammarErrors(set, text)
	record.Layer = resolveLayer(record)
	record.LayerLabel = layerLabels[record.Layer]
	record.LayerStage = layerStages[record.Layer]
	return record
}

// detectPosition needs both a side and a stance marker. A stance marker
// with no identifiable side is not a position.
func detectPosition(set *taxonomy.Set, lower string) *PositionClaim {
	side := detectSide(lower)
	if side == "" {
		return nil
	}

	matches := scanAxis(set.Axis(taxonomy.AxisPositions), lower)
	if len(matches) == 0 {
		return nil
	}
	best := matches[0]
	for _, match := range matches[1:] {
		if match.Entry.Tier < best.Entry.Tier {
			best = match
		}
	}
	return &PositionClaim{
		Side:     side,
		Strength: best.Entry.Tier,
		Label:    best.Entry.Label,
		Text:     best.Text,
	}
}

func detectSide(lower string) string {
	if bothSidesRe.MatchString(lower) {
		return "both"
	}
	if groups := comparisonSideRe.FindStringSubmatch(lower); groups != nil {
		return groups[1]
	}
	if groups := directSideRe.FindStringSubmatch(lower); groups != nil {
		return groups[1]
	}
	return ""
}

// extractEvidence scans sentence by sentence so that sentence-anchored
// assertion patterns behave, then dedups near-identical mentions.
func extractEvidence(set *taxonomy.Set, sentences []string) []EvidenceEntry {
	axis := set.Axis(taxonomy.AxisEvidence)
	var entries []EvidenceEntry
	mentions := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		for _, match := range scanAxis(axis, sentence) {
			entries = append(entries, EvidenceEntry{
				Text:    match.Text,
				Quality: match.Entry.Tier,
				Label:   match.Entry.Label,
			})
			mentions = append(mentions, match.Text)
		}
	}

	kept := dedupeMentions(mentions, nil)
	keptSet := make(map[string]int, len(kept))
	for _, text := range kept {
		keptSet[text]++
	}
	var out []EvidenceEntry
	for _, entry := range entries {
		if keptSet[entry.Text] == 0 {
			continue
		}
		keptSet[entry.Text]--
		out = append(out, entry)
	}
	return out
}

func extractReasoning(set *taxonomy.Set, lower string) ([]ReasoningEntry, int, bool) {
	var entries []ReasoningEntry
	chains := 0
	comparison := false
	for _, match := range scanAxis(set.Axis(taxonomy.AxisReasoning), lower) {
		entries = append(entries, ReasoningEntry{Text: match.Text, Type: match.Entry.Tag})
		switch match.Entry.Tag {
		case taxonomy.ReasoningCauseEffect:
			chains++
		case taxonomy.ReasoningComparison:
			comparison = true
		}
	}
	return entries, chains, comparison
}

func axisMentions(set *taxonomy.Set, axis, lower string) []string {
	var mentions []string
	for _, match := range scanAxis(set.Axis(axis), lower) {
		mentions = append(mentions, match.Text)
	}
	return mentions
}

// detectContradiction flags a response that asserts both sides directly
// without ever comparing them or conceding the other side.
func detectContradiction(lower string, record *ArgumentRecord) bool {
	if record.Position == nil || record.Position.Side == "both" {
		return false
	}
	if record.HasComparison || len(record.Counters) > 0 {
		return false
	}
	sides := map[string]struct{}{}
	for _, groups := range directSideRe.FindAllStringSubmatch(lower, -1) {
		sides[groups[1]] = struct{}{}
	}
	return len(sides) > 1
}

// resolveLayer walks the cumulative layer ladder. Each requirement gates
// all the ones above it, so evidence of a higher layer without a lower one
// does not advance the response.
func resolveLayer(record *ArgumentRecord) int {
	if record.Position == nil {
		return LayerNone
	}
	if !record.HasComparison {
		return LayerPosition
	}
	if record.CauseEffectChains < 2 {
		return LayerComparison
	}
	if len(record.Counters) == 0 || len(record.Synthesis) == 0 {
		return LayerReasoned
	}
	return LayerQualified
}

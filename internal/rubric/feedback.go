package rubric

import (
	"fmt"
	"strings"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/kernel"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// Feedback keys. The handler layer serializes the map as-is, so these
// names are part of the API contract.
const (
	FeedbackStructure     = "sm1"
	FeedbackStructureNext = "sm1_next"
	FeedbackDepth         = "sm2"
	FeedbackDepthNext     = "sm2_next"
	FeedbackCohesion      = "sm3"
	FeedbackCohesionNext  = "sm3_next"
	FeedbackDevice        = "device_function"
	FeedbackLayer         = "layer_guidance"
)

// componentFeedback renders one observation and one next step per
// sub-metric, plus a device-function sentence when the response names a
// catalog device without explaining what it does.
func componentFeedback(record *ComponentRecord, scores Scores, devices *kernel.Catalog, text string) map[string]string {
	fb := map[string]string{}

	missing := missingSlots(record)
	if len(missing) == 0 {
		fb[FeedbackStructure] = fmt.Sprintf(
			"Your analysis names all five components of the rubric, with %s supporting detail.",
			record.DetailTier)
	} else {
		fb[FeedbackStructure] = fmt.Sprintf(
			"Your analysis is missing: %s.", strings.Join(missing, ", "))
	}
	fb[FeedbackStructureNext] = structureNextStep(record, missing)

	switch {
	case record.DistinctInsights == 0:
		fb[FeedbackDepth] = "No analytical insight was found; the response stays at description."
		fb[FeedbackDepthNext] = "Add a sentence explaining what the technique reveals, shows or makes the reader feel."
	case len(record.Dimensions) <= 1:
		fb[FeedbackDepth] = fmt.Sprintf(
			"You offer %d distinct insight(s), all within one dimension of effect.",
			record.DistinctInsights)
		fb[FeedbackDepthNext] = "Branch into a second dimension: if you covered meaning, add what the reader feels or how the theme develops."
	default:
		fb[FeedbackDepth] = fmt.Sprintf(
			"You offer %d distinct insight(s) across %d dimensions of effect.",
			record.DistinctInsights, len(record.Dimensions))
		fb[FeedbackDepthNext] = "Push one insight further: connect an effect on the reader to the theme it serves."
	}

	fb[FeedbackCohesion], fb[FeedbackCohesionNext] = cohesionFeedback(
		len(record.ConnectorTypes), record.GrammarErrorCount)

	if record.DistinctInsights < 2 {
		if device, ok := devices.Identify(text, record.Topics); ok {
			fb[FeedbackDevice] = fmt.Sprintf(
				"You mention %s. Remember that %s %s.", device.Name, device.Name, device.Function)
		} else if len(record.Topics) > 0 {
			// Catalog miss is not fatal; fall back to a generic reminder.
			fb[FeedbackDevice] = fmt.Sprintf(
				"You mention %s. Remember to explain what the device does for the reader, not just name it.",
				record.Topics[0])
		}
	}

	return fb
}

func missingSlots(record *ComponentRecord) []string {
	var missing []string
	if len(record.Topics) == 0 {
		missing = append(missing, "the topic or technique being analyzed")
	}
	hasAnalyticalVerb := false
	for _, verb := range record.Verbs {
		if verb.Tier <= taxonomy.VerbTierPattern {
			hasAnalyticalVerb = true
			break
		}
	}
	if !hasAnalyticalVerb {
		missing = append(missing, "an analytical verb (reveals, demonstrates, creates)")
	}
	if len(record.Objects) == 0 {
		missing = append(missing, "what the technique acts on")
	}
	if len(record.Details) == 0 {
		missing = append(missing, "supporting detail from the text")
	}
	if record.DistinctInsights == 0 {
		missing = append(missing, "the effect the technique produces")
	}
	return missing
}

func structureNextStep(record *ComponentRecord, missing []string) string {
	if len(missing) > 0 {
		return "Complete the frame first: name the technique, say what it does, and quote the moment where it happens."
	}
	switch record.DetailTier {
	case DetailPrecise:
		return "Your evidence is precise. Keep anchoring each claim to a cited moment."
	case DetailSpecific:
		return "Add a page or chapter reference and say when and why the moment matters to reach precise evidence."
	default:
		return "Replace the general description with a direct quotation so the evidence is verifiable."
	}
}

// argumentFeedback mirrors the component renderer and adds the layer
// transition guidance. Guidance is keyed by the current layer: it always
// describes the single next requirement, never the whole ladder.
func argumentFeedback(record *ArgumentRecord, scores Scores) map[string]string {
	fb := map[string]string{}

	if record.Position == nil {
		fb[FeedbackStructure] = "No clear position was found; the reader cannot tell which side you take."
		fb[FeedbackStructureNext] = "Open with your stance in one sentence, then support it."
	} else {
		fb[FeedbackStructure] = fmt.Sprintf(
			"You take the %q side with a %s.", record.Position.Side, strings.ToLower(record.Position.Label))
		fb[FeedbackStructureNext] = evidenceNextStep(record.Evidence)
	}

	fb[FeedbackDepth] = fmt.Sprintf(
		"Your argument reaches the %q layer with %d cause-effect chain(s).",
		record.LayerLabel, record.CauseEffectChains)
	if record.Contradiction {
		fb[FeedbackDepth] += " It asserts both sides without reconciling them."
	}
	fb[FeedbackDepthNext] = layerGuidance[record.Layer]
	fb[FeedbackLayer] = layerGuidance[record.Layer]

	fb[FeedbackCohesion], fb[FeedbackCohesionNext] = cohesionFeedback(
		len(record.ConnectorTypes), record.GrammarErrorCount)

	return fb
}

// layerGuidance holds the fixed transition message for each layer. The
// top layer gets reinforcement rather than a next step.
var layerGuidance = map[int]string{
	LayerNone:       "State your position first: is he a hero, a victim, or more of one than the other?",
	LayerPosition:   "Strengthen the claim with a comparison: say which side he is more of, and than what.",
	LayerComparison: "Add reasoning chains: at least two because-therefore links connecting your evidence to your claim.",
	LayerReasoned:   "Acknowledge the other side and then weigh it: show why your evidence outweighs theirs.",
	LayerQualified:  "You qualify and weigh both sides. Keep grounding each concession in specific evidence.",
}

func evidenceNextStep(evidence []EvidenceEntry) string {
	if len(evidence) == 0 {
		return "Support the claim with at least two pieces of evidence from the text."
	}
	best := taxonomy.EvidenceTierAssertion
	for _, entry := range evidence {
		if entry.Quality < best {
			best = entry.Quality
		}
	}
	switch best {
	case taxonomy.EvidenceTierSpecific:
		if len(evidence) < 2 {
			return "Your evidence is specific. Add a second piece so the claim does not rest on one moment."
		}
		return "Your evidence is specific and plural. Keep citing the exact moments that carry your claim."
	case taxonomy.EvidenceTierParaphrased:
		return "Quote the scene you paraphrase so the evidence is verifiable."
	case taxonomy.EvidenceTierGeneral:
		return "Point to a specific scene or memory instead of the book in general."
	default:
		return "Back the assertion with a moment from the text that shows it."
	}
}

func cohesionFeedback(variety, grammarErrors int) (string, string) {
	observation := fmt.Sprintf(
		"You use %d type(s) of connector and the text has %d grammar issue(s).",
		variety, grammarErrors)

	switch {
	case grammarErrors >= 4:
		return observation, "Fix the grammar issues first; they cost more than missing connectors."
	case variety == 0:
		return observation, "Link your sentences: a contrast word (however) and a cause word (therefore) are the fastest gains."
	case variety < 3:
		return observation, "Add one more connector family, such as exemplification (for example) or summary (in conclusion)."
	default:
		return observation, "Your transitions are varied. Keep each connector doing real logical work."
	}
}

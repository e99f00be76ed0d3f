package taxonomy

// Position strength tiers for the argument variant. Tier order doubles as
// the tie-break rank when a span matches several stance markers.
const (
	StanceTierStrong   = 1
	StanceTierModerate = 2
	StanceTierImplicit = 3
	StanceTierHedged   = 4
)

// Evidence quality tiers, strongest first.
const (
	EvidenceTierSpecific    = 1
	EvidenceTierParaphrased = 2
	EvidenceTierGeneral     = 3
	EvidenceTierAssertion   = 4
)

// Reasoning chain types.
const (
	ReasoningCauseEffect = "cause_effect"
	ReasoningComparison  = "comparison"
	ReasoningElaboration = "elaboration"
	ReasoningDefinition  = "definition"
)

// ArgumentSet builds the table set for argument-structure writing.
func ArgumentSet() *Set {
	set := NewSet(VariantArgument)

	set.AddAxis(AxisPositions, []Entry{
		pattern(StanceTierStrong, "strong", "Strong Stance", 1.0, `\b(?:i\s+)?(?:strongly\s+)?believe\s+(?:that\s+)?`),
		pattern(StanceTierStrong, "strong", "Strong Stance", 1.0, `\b(?:i\s+am\s+)?convinced\s+(?:that\s+)?`),
		pattern(StanceTierStrong, "strong", "Strong Stance", 1.0, `\bit\s+is\s+(?:clear|evident|obvious)\s+that\b`),
		pattern(StanceTierStrong, "strong", "Strong Stance", 1.0, `\bwithout\s+(?:a\s+)?doubt\b`),
		pattern(StanceTierStrong, "strong", "Strong Stance", 1.0, `\b(?:definitely|clearly)\b`),
		pattern(StanceTierModerate, "moderate", "Moderate Stance", 0.75, `\bi\s+(?:think|feel)\s+(?:that\s+)?`),
		pattern(StanceTierModerate, "moderate", "Moderate Stance", 0.75, `\bin\s+my\s+opinion\b`),
		pattern(StanceTierModerate, "moderate", "Moderate Stance", 0.75, `\bi\s+would\s+(?:say|argue)\s+(?:that\s+)?`),
		pattern(StanceTierModerate, "moderate", "Moderate Stance", 0.75, `\b(?:to\s+me|personally)\b`),
		pattern(StanceTierImplicit, "implicit", "Implicit Stance", 0.6, `\bis\s+more\s+(?:of\s+)?a\b`),
		pattern(StanceTierImplicit, "implicit", "Implicit Stance", 0.6, `\bis\s+(?:a\s+)?(?:hero|victim)\b`),
		pattern(StanceTierImplicit, "implicit", "Implicit Stance", 0.6, `\b(?:rather\s+than|instead\s+of)\b`),
		pattern(StanceTierHedged, "hedged", "Hedged Stance", 0.5, `\b(?:maybe|perhaps)\b`),
		pattern(StanceTierHedged, "hedged", "Hedged Stance", 0.5, `\b(?:might|could)\s+be\b`),
		pattern(StanceTierHedged, "hedged", "Hedged Stance", 0.5, `\b(?:sort|kind)\s+of\b`),
	})

	set.AddAxis(AxisEvidence, []Entry{
		pattern(EvidenceTierSpecific, "specific", "Specific Textual Evidence", 1.0, `"[^"]{10,}"`),
		pattern(EvidenceTierSpecific, "specific", "Specific Textual Evidence", 1.0, `\b(?:when|where)\s+(?:jonas|he|she)\s+\w+`),
		pattern(EvidenceTierSpecific, "specific", "Specific Textual Evidence", 1.0, `\b(?:chapter|scene|part)\s+(?:where|when)\b`),
		pattern(EvidenceTierSpecific, "specific", "Specific Textual Evidence", 1.0, `\b(?:the\s+)?memor(?:y|ies)\s+of\s+\w+`),
		pattern(EvidenceTierSpecific, "specific", "Specific Textual Evidence", 1.0, `\b(?:the\s+)?moment\s+(?:when|where)\b`),
		pattern(EvidenceTierParaphrased, "paraphrased", "Paraphrased Evidence", 0.75, `\b(?:this\s+is\s+)?shown\s+when\b`),
		pattern(EvidenceTierParaphrased, "paraphrased", "Paraphrased Evidence", 0.75, `\bwe\s+(?:see|saw)\s+(?:this|that)\s+when\b`),
		pattern(EvidenceTierParaphrased, "paraphrased", "Paraphrased Evidence", 0.75, `\bfor\s+(?:example|instance)\b`),
		pattern(EvidenceTierParaphrased, "paraphrased", "Paraphrased Evidence", 0.75, `\bsuch\s+as\s+when\b`),
		pattern(EvidenceTierGeneral, "general", "General Reference", 0.5, `\bin\s+the\s+(?:book|story|novel|text)\b`),
		pattern(EvidenceTierGeneral, "general", "General Reference", 0.5, `\bthroughout\s+the\s+(?:book|story)\b`),
		pattern(EvidenceTierGeneral, "general", "General Reference", 0.5, `\b(?:he|she)\s+(?:tried|attempted|wanted)\s+to\b`),
		pattern(EvidenceTierGeneral, "general", "General Reference", 0.5, `\b(?:he|she)\s+(?:suffered|saved|escaped|helped)\b`),
		pattern(EvidenceTierAssertion, "assertion", "Assertion Without Evidence", 0.25, `^(?:he|she|jonas|it)\s+(?:is|was)\b`),
		pattern(EvidenceTierAssertion, "assertion", "Assertion Without Evidence", 0.25, `\bbecause\s+(?:he|she|it)\s+(?:is|was)\b`),
	})

	set.AddAxis(AxisReasoning, []Entry{
		pattern(1, ReasoningCauseEffect, "Cause-Effect Reasoning", 1.0, `\b(?:because|since|therefore|thus|consequently)\b`),
		pattern(1, ReasoningCauseEffect, "Cause-Effect Reasoning", 1.0, `\bas\s+a\s+result\b`),
		pattern(1, ReasoningCauseEffect, "Cause-Effect Reasoning", 1.0, `\b(?:which|this)\s+(?:means|shows|proves|demonstrates)\b`),
		pattern(1, ReasoningCauseEffect, "Cause-Effect Reasoning", 1.0, `\bcaus(?:es|ed|ing)\b`),
		pattern(1, ReasoningCauseEffect, "Cause-Effect Reasoning", 1.0, `\b(?:leads?|led)\s+to\b`),
		pattern(2, ReasoningComparison, "Comparative Reasoning", 0.75, `\bmore\s+(?:of\s+a\s+)?\w+\s+than\b`),
		pattern(2, ReasoningComparison, "Comparative Reasoning", 0.75, `\bless\s+(?:of\s+a\s+)?\w+\s+than\b`),
		pattern(2, ReasoningComparison, "Comparative Reasoning", 0.75, `\b(?:rather\s+than|instead\s+of|unlike|compared\s+to|whereas)\b`),
		pattern(3, ReasoningElaboration, "Elaboration", 0.5, `\b(?:furthermore|moreover|additionally)\b`),
		pattern(4, ReasoningDefinition, "Definition-Based", 0.5, `\b(?:a\s+)?(?:hero|victim)\s+(?:is\s+someone|means)\b`),
		pattern(4, ReasoningDefinition, "Definition-Based", 0.5, `\bwhat\s+it\s+means\s+to\s+be\b`),
		pattern(4, ReasoningDefinition, "Definition-Based", 0.5, `\bby\s+definition\b`),
	})

	set.AddAxis(AxisCounters, []Entry{
		pattern(1, "acknowledgment", "Explicit Counter-Acknowledgment", 1.0, `\bon\s+(?:the\s+)?other\s+hand\b`),
		pattern(1, "acknowledgment", "Explicit Counter-Acknowledgment", 1.0, `\b(?:however|although|even\s+though|despite)\b`),
		pattern(1, "acknowledgment", "Explicit Counter-Acknowledgment", 1.0, `\bwhile\s+(?:it\s+is\s+)?true\s+that\b`),
		pattern(1, "acknowledgment", "Explicit Counter-Acknowledgment", 1.0, `\bsome\s+(?:might|may|could)\s+(?:say|argue)\b`),
		pattern(2, "concession", "Concession", 0.75, `\b(?:he|she)\s+(?:is\s+)?also\s+(?:a\s+)?(?:hero|victim)\b`),
		pattern(2, "concession", "Concession", 0.75, `\b(?:can\s+)?be\s+seen\s+as\s+both\b`),
		pattern(3, "qualification", "Qualification", 0.5, `\bnot\s+(?:really|entirely|completely)\b`),
		pattern(3, "qualification", "Qualification", 0.5, `\b(?:still|mostly)\b`),
	})

	set.AddAxis(AxisSynthesis, []Entry{
		pattern(1, "conclusive", "Conclusive Synthesis", 1.0, `\btherefore\b.*\b(?:more|is)\s+(?:a\s+)?(?:hero|victim)\b`),
		pattern(1, "conclusive", "Conclusive Synthesis", 1.0, `\b(?:in\s+conclusion|overall|ultimately|finally)\b`),
		pattern(1, "conclusive", "Conclusive Synthesis", 1.0, `\bso\s+i\s+(?:strongly\s+)?believe\b`),
		pattern(1, "conclusive", "Conclusive Synthesis", 1.0, `\bthis\s+is\s+why\b`),
		pattern(2, "weighing", "Evidence Weighing", 0.75, `\b(?:suffered|saved|helped)\s+more\s+than\b`),
		pattern(2, "weighing", "Evidence Weighing", 0.75, `\boutweighs?\b`),
		pattern(2, "weighing", "Evidence Weighing", 0.75, `\bthe\s+evidence\s+(?:shows|suggests|proves)\b`),
		pattern(2, "weighing", "Evidence Weighing", 0.75, `\bweighing\b`),
	})

	set.AddAxis(AxisConnectors, connectorEntries())
	set.AddAxis(AxisGrammar, grammarEntries())

	set.AddList(ListFlowMarkers, []string{
		"first", "firstly", "second", "secondly", "third", "thirdly",
		"finally", "furthermore", "moreover", "in addition",
		"however", "nevertheless", "therefore",
	})

	return set
}

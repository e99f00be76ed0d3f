package taxonomy

// Verb tiers for the component variant. Tier 1 verbs mark critical
// analysis, tier 2 pattern recognition, tier 3 plain description.
const (
	VerbTierCritical    = 1
	VerbTierPattern     = 2
	VerbTierDescription = 3
)

// Effect depth dimensions. Every effect entry carries one of these tags so
// dimension coverage can be computed from distinct insight matches.
const (
	DimensionReaderResponse = "reader_response"
	DimensionMeaningCreation = "meaning_creation"
	DimensionThematicImpact  = "thematic_impact"
)

// Grammar error categories shared by both variants.
const (
	GrammarAgreement = "subject_verb_agreement"
	GrammarTense     = "tense_inconsistency"
	GrammarArticle   = "missing_article_preposition"
	GrammarWordForm  = "malformed_word_form"
	GrammarInformal  = "informal_register"
)

// ComponentSet builds the table set for component-based analytical writing.
func ComponentSet() *Set {
	set := NewSet(VariantComponent)

	verbs := literals(VerbTierCritical, "verb", "Critical Analysis", 1.0,
		"creates", "reveals", "demonstrates", "challenges",
		"undermines", "exposes", "critiques", "interrogates",
		"disrupts", "subverts", "constructs", "deconstructs",
	)
	verbs = append(verbs, literals(VerbTierPattern, "verb", "Pattern Recognition", 0.5,
		"shows", "indicates", "suggests", "implies",
		"reflects", "illustrates", "represents", "conveys",
		"establishes", "develops", "presents", "depicts",
		"portrays", "allows", "enables", "helps", "hints",
		"prepares", "builds",
	)...)
	verbs = append(verbs, literals(VerbTierDescription, "verb", "Description", 0.0,
		"is", "are", "was", "were", "has", "have", "had",
		"uses", "employs", "does", "makes", "gets",
		"becomes", "seems", "appears", "looks", "leaves",
	)...)
	set.AddAxis(AxisVerbs, verbs)

	set.AddAxis(AxisEffects, []Entry{
		pattern(1, DimensionMeaningCreation, "Meaning Production", 1.0, `reveal(?:s|ing)?\s+(?:how|that|why)`),
		pattern(1, DimensionMeaningCreation, "Meaning Production", 1.0, `demonstrat(?:es|ing)\s+(?:how|that)`),
		pattern(1, DimensionMeaningCreation, "Meaning Production", 1.0, `expos(?:es|ing)\s+(?:the\s+)?(?:system|pattern|contradiction)`),
		pattern(1, DimensionMeaningCreation, "Meaning Production", 1.0, `generat(?:es|ing)\s+meaning\s+through`),
		pattern(2, DimensionMeaningCreation, "Meaning Production", 0.75, `show(?:s|ing)?\s+(?:how|that)`),
		pattern(2, DimensionMeaningCreation, "Meaning Production", 0.75, `suggest(?:s|ing)?\s+(?:how|that|why)`),
		pattern(2, DimensionThematicImpact, "Thematic Impact", 0.75, `reinforc(?:es|ing)\s+(?:the\s+)?theme\s+of`),
		pattern(2, DimensionThematicImpact, "Thematic Impact", 0.75, `connect(?:s|ing)?\s+to\s+(?:the\s+)?theme`),
		pattern(2, DimensionThematicImpact, "Thematic Impact", 0.75, `develop(?:s|ing)?\s+(?:the\s+)?theme\s+of`),
		pattern(3, DimensionReaderResponse, "Reader Engagement", 0.5, `makes?\s+(?:the\s+)?readers?\s+(?:feel|understand|question|recognize|wonder)`),
		pattern(3, DimensionReaderResponse, "Reader Engagement", 0.5, `(?:forc|enabl|requir)(?:es|ing)\s+(?:the\s+)?readers?\s+to`),
		pattern(3, DimensionReaderResponse, "Reader Engagement", 0.5, `(?:allows?|helps?|invit(?:es|ing)|encourag(?:es|ing))\s+(?:the\s+)?readers?\s+to`),
		pattern(4, DimensionReaderResponse, "Generic Effect", 0.25, `makes?\s+(?:it|this|the\s+story)\s+(?:more\s+)?(?:interesting|engaging|meaningful)`),
		pattern(4, DimensionReaderResponse, "Generic Effect", 0.25, `creates?\s+(?:tension|suspense|interest|mystery)`),
		pattern(4, DimensionReaderResponse, "Generic Effect", 0.25, `adds?\s+(?:depth|meaning|significance)`),
		pattern(5, DimensionReaderResponse, "Circular Effect", 0.0, `affects?\s+(?:the\s+reader|us)\s*$`),
	})

	set.AddAxis(AxisConnectors, connectorEntries())
	set.AddAxis(AxisGrammar, grammarEntries())

	set.AddList(ListTopics, []string{
		"narrator", "narration", "point of view", "pov", "perspective",
		"character", "protagonist", "author", "lowry", "fitzgerald",
		"tone", "theme", "conflict", "resolution", "setting",
		"metaphor", "symbolism", "irony", "foreshadowing", "imagery",
		"reliable narrator", "unreliable narrator", "third person", "first person",
	})
	set.AddList(ListVaguePhrases, []string{
		"careful language", "curious about things", "emotions and memories",
		"shows emotions", "different things", "special ability",
		"make the reader",
	})

	return set
}

// connectorEntries classifies connectors by function. The tag is the
// connector type; distinct tags feed the cohesion sub-metric.
func connectorEntries() []Entry {
	entries := literals(1, "contrast", "Contrast", 1.0,
		"however", "nevertheless", "whereas", "although", "yet", "but",
		"on the other hand", "conversely",
	)
	entries = append(entries, literals(1, "cause_effect", "Cause-Effect", 1.0,
		"therefore", "thus", "consequently", "hence", "thereby", "as a result",
	)...)
	entries = append(entries, literals(1, "addition", "Addition", 1.0,
		"furthermore", "moreover", "additionally", "in addition", "besides",
	)...)
	entries = append(entries, literals(1, "elaboration", "Elaboration", 1.0,
		"whereby", "wherein", "through which", "by which",
	)...)
	entries = append(entries, literals(1, "exemplification", "Exemplification", 1.0,
		"for example", "for instance", "specifically", "such as", "namely",
	)...)
	entries = append(entries, literals(1, "summary", "Summary", 1.0,
		"overall", "in conclusion", "ultimately", "finally", "in summary",
	)...)
	return entries
}

// grammarEntries lists rule-breaking patterns counted by the grammar pass.
// Transcription artifacts and stylistic choices are deliberately absent.
func grammarEntries() []Entry {
	return []Entry{
		pattern(1, GrammarAgreement, "Subject-verb agreement", 1.0, `\b(?:description|narrator|character|theme|conflict)\s+are\b`),
		pattern(1, GrammarAgreement, "Subject-verb agreement", 1.0, `\b(?:descriptions|narrators|characters|themes)\s+is\b`),
		pattern(1, GrammarAgreement, "Subject-verb agreement", 1.0, `\b(?:he|she|it|this|that)\s+(?:have|are|were)\b`),
		pattern(1, GrammarAgreement, "Subject-verb agreement", 1.0, `\b(?:they|we|these|those)\s+(?:has|is|was)\b`),
		pattern(1, GrammarTense, "Tense inconsistency", 1.0, `\b(?:yesterday|earlier|before)\s+(?:he|she|they)\s+(?:goes|runs|says|makes|shows)\b`),
		pattern(1, GrammarTense, "Tense inconsistency", 1.0, `\bwill\s+\w+ed\b`),
		pattern(1, GrammarArticle, "Missing article", 1.0, `\bmakes?\s+reader\b`),
		pattern(1, GrammarArticle, "Missing preposition", 1.0, `\bmake\s+the\s+reader\s+to\b`),
		pattern(1, GrammarWordForm, "Malformed word form", 1.0, `\bfeel\s+more\s+deep\s+in\b`),
		pattern(1, GrammarWordForm, "Malformed word form", 1.0, `\bmore\s+(?:good|bad|sad|happy)\b`),
		pattern(1, GrammarInformal, "Informal register", 1.0, `\b(?:gonna|wanna|kinda|sorta)\b`),
	}
}

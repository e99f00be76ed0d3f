package rubric

import "github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"

// componentSM1Rows maps slot presence and detail quality to the structure
// score and its ceiling. Rows are ordered strongest first; the first row
// whose thresholds are met wins.
var componentSM1Rows = []sm1Row{
	{minPresent: 5, minDetail: 5.0, value: 5.0, ceiling: 5.0},
	{minPresent: 5, minDetail: 4.5, value: 4.5, ceiling: 4.5},
	{minPresent: 5, minDetail: 4.0, value: 4.0, ceiling: 4.0},
	{minPresent: 4, minDetail: 4.0, value: 3.5, ceiling: 4.0},
	{minPresent: 4, minDetail: 0, value: 3.0, ceiling: 3.0},
	{minPresent: 0, minDetail: 3.0, value: 3.0, ceiling: 3.0},
	{minPresent: 3, minDetail: 0, value: 2.5, ceiling: 3.0},
	{minPresent: 2, minDetail: 0, value: 2.0, ceiling: 2.5},
	{minPresent: 0, minDetail: 0, value: 1.5, ceiling: 2.0},
}

// componentSM2Table gives depth scores per ceiling, keyed by distinct
// insight count and dimension coverage. Higher ceilings unlock higher
// depth bands for the same extraction.
var componentSM2Table = map[float64][]sm2Row{
	5.0: {
		{minCount: 5, minCoverage: 3, score: 5.0},
		{minCount: 4, minCoverage: 2, score: 4.5},
		{minCount: 5, minCoverage: 1, score: 4.5},
		{minCount: 3, minCoverage: 0, score: 4.0},
		{minCount: 2, minCoverage: 0, score: 3.5},
		{minCount: 1, minCoverage: 0, score: 3.0},
		{minCount: 0, minCoverage: 0, score: 2.5},
	},
	4.5: {
		{minCount: 4, minCoverage: 2, score: 4.5},
		{minCount: 3, minCoverage: 2, score: 4.0},
		{minCount: 2, minCoverage: 0, score: 3.5},
		{minCount: 1, minCoverage: 0, score: 3.0},
		{minCount: 0, minCoverage: 0, score: 2.5},
	},
	4.0: {
		{minCount: 3, minCoverage: 2, score: 4.0},
		{minCount: 2, minCoverage: 0, score: 3.5},
		{minCount: 1, minCoverage: 0, score: 3.0},
		{minCount: 0, minCoverage: 0, score: 2.5},
	},
	3.0: {
		{minCount: 3, minCoverage: 0, score: 3.0},
		{minCount: 2, minCoverage: 0, score: 2.5},
		{minCount: 1, minCoverage: 0, score: 2.0},
		{minCount: 0, minCoverage: 0, score: 1.5},
	},
	2.5: {
		{minCount: 2, minCoverage: 0, score: 2.5},
		{minCount: 1, minCoverage: 0, score: 2.0},
		{minCount: 0, minCoverage: 0, score: 1.5},
	},
	2.0: {
		{minCount: 2, minCoverage: 0, score: 2.0},
		{minCount: 1, minCoverage: 0, score: 1.5},
		{minCount: 0, minCoverage: 0, score: 1.0},
	},
}

// cohesionTable is shared by both variants: connector variety picks the
// base cohesion score within the ceiling band, then grammar deductions
// apply.
var cohesionTable = map[float64][]sm3Row{
	5.0: {
		{minVariety: 4, score: 5.0},
		{minVariety: 3, score: 4.5},
		{minVariety: 2, score: 4.0},
		{minVariety: 1, score: 3.5},
		{minVariety: 0, score: 3.0},
	},
	4.5: {
		{minVariety: 3, score: 4.5},
		{minVariety: 2, score: 4.0},
		{minVariety: 1, score: 3.5},
		{minVariety: 0, score: 3.0},
	},
	4.0: {
		{minVariety: 3, score: 4.0},
		{minVariety: 2, score: 3.5},
		{minVariety: 1, score: 3.0},
		{minVariety: 0, score: 2.5},
	},
	3.0: {
		{minVariety: 2, score: 3.0},
		{minVariety: 1, score: 2.5},
		{minVariety: 0, score: 2.0},
	},
	2.5: {
		{minVariety: 1, score: 2.5},
		{minVariety: 0, score: 2.0},
	},
	2.0: {
		{minVariety: 1, score: 2.0},
		{minVariety: 0, score: 1.5},
	},
}

// presentSlots counts the five rubric slots the record fills. A verb slot
// requires an analytical tier, an effect slot a functional insight.
func presentSlots(record *ComponentRecord) int {
	present := 0
	if len(record.Topics) > 0 {
		present++
	}
	for _, verb := range record.Verbs {
		if verb.Tier <= taxonomy.VerbTierPattern {
			present++
			break
		}
	}
	if len(record.Objects) > 0 {
		present++
	}
	if len(record.Details) > 0 {
		present++
	}
	if record.DistinctInsights > 0 {
		present++
	}
	return present
}

func scoreComponent(record *ComponentRecord) Scores {
	sm1 := lookupSM1(componentSM1Rows, presentSlots(record), record.DetailScore)
	sm2 := lookupSM2(componentSM2Table, sm1.Ceiling, record.DistinctInsights, len(record.Dimensions))
	sm3 := lookupSM3(cohesionTable, sm1.Ceiling, len(record.ConnectorTypes), record.GrammarErrorCount)
	return combineScores(sm1, sm2, sm3)
}

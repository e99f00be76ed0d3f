package rubric

import "github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"

// argumentSM1Rows maps the raw position-and-evidence points to the
// structure score and ceiling, strongest row first.
var argumentSM1Rows = []struct {
	minRaw  float64
	value   float64
	ceiling float64
}{
	{minRaw: 4.5, value: 5.0, ceiling: 5.0},
	{minRaw: 4.0, value: 4.5, ceiling: 4.5},
	{minRaw: 3.5, value: 4.0, ceiling: 4.0},
	{minRaw: 3.0, value: 3.5, ceiling: 4.0},
	{minRaw: 2.0, value: 3.0, ceiling: 3.0},
	{minRaw: 1.0, value: 2.0, ceiling: 2.5},
	{minRaw: 0, value: 1.5, ceiling: 2.0},
}

// layerDepthBase is the depth score each argument layer starts from before
// chain bonuses, contradiction deductions and length caps.
var layerDepthBase = map[int]float64{
	LayerNone:       1.5,
	LayerPosition:   2.5,
	LayerComparison: 3.5,
	LayerReasoned:   4.0,
	LayerQualified:  5.0,
}

func positionPoints(position *PositionClaim) float64 {
	if position == nil {
		return 0
	}
	points := 1.0
	switch position.Strength {
	case taxonomy.StanceTierStrong, taxonomy.StanceTierModerate:
		points += 1.0
	case taxonomy.StanceTierImplicit:
		points += 0.5
	case taxonomy.StanceTierHedged:
		points += 0.25
	}
	return points
}

// evidencePoints scores the strongest evidence tier present, discounted
// when the response leans on a single item and lightly boosted when it
// stacks four or more.
func evidencePoints(evidence []EvidenceEntry) float64 {
	if len(evidence) == 0 {
		return 0
	}
	best := taxonomy.EvidenceTierAssertion
	for _, entry := range evidence {
		if entry.Quality < best {
			best = entry.Quality
		}
	}

	points := map[int]float64{
		taxonomy.EvidenceTierSpecific:    3.0,
		taxonomy.EvidenceTierParaphrased: 2.0,
		taxonomy.EvidenceTierGeneral:     1.0,
		taxonomy.EvidenceTierAssertion:   0.5,
	}[best]

	if len(evidence) < 2 {
		points *= 0.7
	} else if len(evidence) >= 4 {
		points *= 1.1
		if points > 3.0 {
			points = 3.0
		}
	}
	return points
}

func argumentStructure(record *ArgumentRecord) CeilingedScore {
	raw := positionPoints(record.Position) + evidencePoints(record.Evidence)
	for _, row := range argumentSM1Rows {
		if raw >= row.minRaw {
			return CeilingedScore{Value: row.value, Ceiling: row.ceiling}
		}
	}
	return CeilingedScore{Value: metricFloor, Ceiling: metricFloor}
}

func argumentDepth(record *ArgumentRecord, ceiling float64) float64 {
	score := layerDepthBase[record.Layer]
	if record.CauseEffectChains >= 4 {
		score += 0.5
	} else if record.CauseEffectChains >= 2 {
		score += 0.25
	}
	if record.Contradiction {
		score -= 0.5
	}

	// Very short responses cannot demonstrate sustained depth no matter
	// which layer their markers reach.
	if record.WordCount < 30 && score > 3.0 {
		score = 3.0
	} else if record.WordCount < 50 && score > 4.0 {
		score = 4.0
	}
	return clampMetric(score, ceiling)
}

func scoreArgument(record *ArgumentRecord) Scores {
	sm1 := argumentStructure(record)
	sm2 := argumentDepth(record, sm1.Ceiling)
	sm3 := lookupSM3(cohesionTable, sm1.Ceiling, len(record.ConnectorTypes), record.GrammarErrorCount)
	return combineScores(sm1, sm2, sm3)
}

package rubric

import "math"

// Sub-metric weights and the points multiplier are fixed constants of the
// engine, not configuration.
const (
	weightStructure = 0.40
	weightDepth     = 0.30
	weightCohesion  = 0.30
	pointsPerScale  = 5.0
)

// Metric score bounds.
const (
	metricFloor = 1.0
	metricMax   = 5.0
)

// CeilingedScore pairs the first sub-metric's value with the ceiling it
// imposes on sub-metrics two and three. The ceiling is a non-decreasing
// step function of the value.
type CeilingedScore struct {
	Value   float64 `json:"value"`
	Ceiling float64 `json:"ceiling"`
}

// Scores is the complete numeric outcome of one evaluation.
type Scores struct {
	SM1                float64 `json:"sm1"`
	SM2                float64 `json:"sm2"`
	SM3                float64 `json:"sm3"`
	Ceiling            float64 `json:"ceiling"`
	Overall            float64 `json:"overall"`
	TotalPoints        float64 `json:"total_points"`
	OverallDisplay     float64 `json:"overall_display"`
	TotalPointsDisplay float64 `json:"total_points_display"`
}

// sm1Row is one row of the structural sub-metric table. Rows are evaluated
// top-down with greater-or-equal thresholds, highest value first, so a
// record satisfying several rows takes the most favorable one.
type sm1Row struct {
	minPresent int
	minDetail  float64
	value      float64
	ceiling    float64
}

func lookupSM1(rows []sm1Row, present int, detail float64) CeilingedScore {
	for _, row := range rows {
		if present >= row.minPresent && detail >= row.minDetail {
			return CeilingedScore{Value: row.value, Ceiling: row.ceiling}
		}
	}
	// Tables end with an unconditional floor row, so this is unreachable
	// for well-formed tables; bottom out anyway.
	return CeilingedScore{Value: 1.5, Ceiling: 2.0}
}

// sm2Row maps a (distinct-item count, coverage-set size) threshold pair to a
// score under one ceiling tier. Lookup is always ceiling first, then count,
// then coverage; the same count scores differently under different ceilings.
type sm2Row struct {
	minCount    int
	minCoverage int
	score       float64
}

func lookupSM2(table map[float64][]sm2Row, ceiling float64, count, coverage int) float64 {
	rows := table[ceiling]
	for _, row := range rows {
		if count >= row.minCount && coverage >= row.minCoverage {
			return clampMetric(row.score, ceiling)
		}
	}
	return metricFloor
}

// sm3Row maps a connector-type variety threshold to a base cohesion score
// under one ceiling tier.
type sm3Row struct {
	minVariety int
	score      float64
}

func lookupSM3(table map[float64][]sm3Row, ceiling float64, variety, grammarErrors int) float64 {
	base := metricFloor
	for _, row := range table[ceiling] {
		if variety >= row.minVariety {
			base = row.score
			break
		}
	}
	return clampMetric(base-grammarDeduction(grammarErrors), ceiling)
}

// grammarDeduction returns the cohesion deduction for an error count band.
func grammarDeduction(errors int) float64 {
	switch {
	case errors <= 1:
		return 0
	case errors <= 3:
		return 0.5
	case errors <= 5:
		return 1.0
	default:
		return 1.5
	}
}

// clampMetric keeps a sub-metric inside [1.0, ceiling].
func clampMetric(value, ceiling float64) float64 {
	if value > ceiling {
		value = ceiling
	}
	if value < metricFloor {
		value = metricFloor
	}
	return value
}

// combineScores computes the fixed weighted overall and total points. The
// exact values satisfy overall == 0.40*SM1 + 0.30*SM2 + 0.30*SM3 and
// total == overall*5; the display pair rounds to one decimal, half away
// from zero, for report rendering.
func combineScores(sm1 CeilingedScore, sm2, sm3 float64) Scores {
	overall := weightStructure*sm1.Value + weightDepth*sm2 + weightCohesion*sm3
	total := overall * pointsPerScale
	overallDisplay := roundDisplay(overall)
	return Scores{
		SM1:                sm1.Value,
		SM2:                sm2,
		SM3:                sm3,
		Ceiling:            sm1.Ceiling,
		Overall:            overall,
		TotalPoints:        total,
		OverallDisplay:     overallDisplay,
		TotalPointsDisplay: overallDisplay * pointsPerScale,
	}
}

// roundDisplay rounds to one decimal, half away from zero.
func roundDisplay(v float64) float64 {
	return math.Round(v*10) / 10
}

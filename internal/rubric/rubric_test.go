package rubric

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(taxonomy.Default())
}

func TestEvaluateComponentFixture(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Evaluate(taxonomy.VariantComponent, analysisFixture)
	require.NoError(t, err)
	require.Equal(t, taxonomy.VariantComponent, result.Variant)
	require.NotNil(t, result.Component)
	require.Nil(t, result.Argument)

	scores := result.Scores
	require.Equal(t, 4.0, scores.SM1)
	require.Equal(t, 4.0, scores.Ceiling)
	require.Equal(t, 3.5, scores.SM2)
	require.Equal(t, 3.0, scores.SM3)
	require.InDelta(t, 3.55, scores.Overall, 1e-9)
	require.InDelta(t, 17.75, scores.TotalPoints, 1e-9)
	require.Equal(t, 3.6, scores.OverallDisplay)
	require.Equal(t, 18.0, scores.TotalPointsDisplay)
}

func TestEvaluateComponentFloor(t *testing.T) {
	engine := newTestEngine(t)

	for _, text := range []string{"", "It was cold. He was there."} {
		result, err := engine.Evaluate(taxonomy.VariantComponent, text)
		require.NoError(t, err, "text %q", text)

		scores := result.Scores
		require.Equal(t, 1.5, scores.SM1)
		require.Equal(t, 2.0, scores.Ceiling)
		require.Equal(t, 1.0, scores.SM2)
		require.Equal(t, 1.5, scores.SM3)
	}
}

func TestEvaluateArgumentBareAssertion(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Evaluate(taxonomy.VariantArgument, "Jonas is a victim.")
	require.NoError(t, err)
	require.Equal(t, LayerPosition, result.Layer)
	require.Equal(t, "Definition", result.LayerStage)

	scores := result.Scores
	require.Equal(t, 2.0, scores.SM1)
	require.Equal(t, 2.5, scores.Ceiling)
	require.Equal(t, 2.5, scores.SM2)
	require.LessOrEqual(t, scores.SM3, scores.Ceiling)
}

func TestEvaluateArgumentFullLadder(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Evaluate(taxonomy.VariantArgument, argumentFixture)
	require.NoError(t, err)
	require.Equal(t, LayerQualified, result.Layer)
	require.Equal(t, "Qualified Argument", result.LayerLabel)
	require.Equal(t, "Problem-Solution", result.LayerStage)

	scores := result.Scores
	require.Equal(t, 5.0, scores.SM1)
	require.Equal(t, 5.0, scores.Ceiling)
	require.Equal(t, 5.0, scores.SM2)
	require.Equal(t, 4.5, scores.SM3)
}

func TestEvaluateUnregisteredVariant(t *testing.T) {
	engine := NewEngine(taxonomy.NewRegistry())

	_, err := engine.Evaluate(taxonomy.VariantComponent, "anything")
	require.Error(t, err)
	require.True(t, errors.Is(err, taxonomy.ErrVariantNotRegistered))
}

// corpus exercises both variants across quality levels for the invariant
// checks below.
var corpus = []string{
	"",
	"Jonas.",
	"It was cold. He was there.",
	"Jonas is a victim.",
	"Jonas is a hero. Jonas is a victim.",
	"The imagery creates tension and makes it more interesting.",
	"I think Jonas is more of a victim than a hero because he carries every painful memory alone.",
	analysisFixture,
	argumentFixture,
}

func TestEvaluateInvariants(t *testing.T) {
	engine := newTestEngine(t)

	for _, variant := range []taxonomy.Variant{taxonomy.VariantComponent, taxonomy.VariantArgument} {
		for _, text := range corpus {
			result, err := engine.Evaluate(variant, text)
			require.NoError(t, err, "variant %s text %q", variant, text)

			s := result.Scores
			require.GreaterOrEqual(t, s.SM1, 1.0)
			require.LessOrEqual(t, s.SM1, 5.0)
			require.GreaterOrEqual(t, s.Ceiling, s.SM1)
			require.LessOrEqual(t, s.SM2, s.Ceiling, "variant %s text %q", variant, text)
			require.LessOrEqual(t, s.SM3, s.Ceiling, "variant %s text %q", variant, text)
			require.GreaterOrEqual(t, s.SM2, 1.0)
			require.GreaterOrEqual(t, s.SM3, 1.0)

			require.InDelta(t, 0.40*s.SM1+0.30*s.SM2+0.30*s.SM3, s.Overall, 1e-9)
			require.InDelta(t, s.Overall*5, s.TotalPoints, 1e-9)
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	for _, variant := range []taxonomy.Variant{taxonomy.VariantComponent, taxonomy.VariantArgument} {
		for _, text := range corpus {
			first, err := engine.Evaluate(variant, text)
			require.NoError(t, err)
			for i := 0; i < 5; i++ {
				again, err := engine.Evaluate(variant, text)
				require.NoError(t, err)
				require.Equal(t, first, again, "variant %s text %q", variant, text)
			}
		}
	}
}

func TestGrammarBandBoundaries(t *testing.T) {
	tests := []struct {
		errors int
		want   float64
	}{
		{0, 0}, {1, 0},
		{2, 0.5}, {3, 0.5},
		{4, 1.0}, {5, 1.0},
		{6, 1.5}, {10, 1.5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, grammarDeduction(tt.errors), "errors=%d", tt.errors)
	}
}

func TestDepthNeverExceedsCeilingAsInsightsGrow(t *testing.T) {
	// A weak structure must cap depth no matter how many insights pile up.
	for count := 0; count <= 8; count++ {
		for coverage := 0; coverage <= 3; coverage++ {
			score := lookupSM2(componentSM2Table, 2.0, count, coverage)
			require.LessOrEqual(t, score, 2.0)
		}
	}
}

func TestDepthIsMonotoneInInsightCount(t *testing.T) {
	for ceiling := range componentSM2Table {
		for coverage := 0; coverage <= 3; coverage++ {
			prev := 0.0
			for count := 0; count <= 8; count++ {
				score := lookupSM2(componentSM2Table, ceiling, count, coverage)
				require.GreaterOrEqual(t, score, prev,
					"ceiling=%v count=%d coverage=%d", ceiling, count, coverage)
				prev = score
			}
		}
	}
}

func TestCohesionIsMonotoneInVariety(t *testing.T) {
	for ceiling := range cohesionTable {
		prev := 0.0
		for variety := 0; variety <= 6; variety++ {
			score := lookupSM3(cohesionTable, ceiling, variety, 0)
			require.GreaterOrEqual(t, score, prev, "ceiling=%v variety=%d", ceiling, variety)
			prev = score
		}
	}
}

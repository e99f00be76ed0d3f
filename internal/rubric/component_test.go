package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// analysisFixture fills all five rubric slots, quotes without citing a
// page, offers two distinct insights in one dimension, uses two connector
// families and carries three planted grammar errors.
const analysisFixture = "Lowry uses imagery to show the cost of sameness. " +
	"The imagery reveals how the community trades feeling for safety. " +
	"However, Jonas shows that he can no longer share his pain with his family. " +
	"The memory of snow, \"gone with climate control\", therefore makes reader see what was lost. " +
	"He have no words for the colors he sees, and he is gonna lose even more."

func TestExtractComponentsFullAnalysis(t *testing.T) {
	set := taxonomy.ComponentSet()

	record := extractComponents(set, NewRawResponse(analysisFixture))

	require.Contains(t, record.Topics, "imagery")
	require.Contains(t, record.Topics, "lowry")
	require.Contains(t, record.Topics, "Jonas")

	hasAnalytical := false
	for _, verb := range record.Verbs {
		if verb.Tier <= taxonomy.VerbTierPattern {
			hasAnalytical = true
		}
	}
	require.True(t, hasAnalytical)
	require.NotEmpty(t, record.Objects)

	require.NotEmpty(t, record.Details)
	require.True(t, record.Details[0].Quoted)
	require.Equal(t, DetailSpecific, record.DetailTier)
	require.Equal(t, 4.0, record.DetailScore)

	require.Equal(t, 2, record.DistinctInsights)
	require.Equal(t, []string{taxonomy.DimensionMeaningCreation}, record.Dimensions)

	require.ElementsMatch(t, []string{"contrast", "cause_effect"}, record.ConnectorTypes)
	require.Equal(t, 3, record.GrammarErrorCount)
	require.Equal(t, 5, presentSlots(record))
}

func TestExtractComponentsDegenerateInput(t *testing.T) {
	set := taxonomy.ComponentSet()

	for _, text := range []string{"", "   ", "It was cold. He was there."} {
		record := extractComponents(set, NewRawResponse(text))
		require.Equal(t, 0, presentSlots(record), "text %q", text)
		require.Equal(t, DetailMissing, record.DetailTier)
		require.Equal(t, 2.0, record.DetailScore)
		require.Zero(t, record.DistinctInsights)
	}
}

func TestAssessDetailQuality(t *testing.T) {
	set := taxonomy.ComponentSet()

	tests := []struct {
		name      string
		details   []DetailEntry
		text      string
		wantTier  string
		wantScore float64
	}{
		{
			name:      "no details",
			details:   nil,
			text:      "The narrator is unreliable.",
			wantTier:  DetailMissing,
			wantScore: 2.0,
		},
		{
			name:      "unquoted vague description",
			details:   []DetailEntry{{Text: "his careful language"}},
			text:      "The author uses careful language and shows emotions through different things.",
			wantTier:  DetailVague,
			wantScore: 3.0,
		},
		{
			name:    "unquoted but visualizable",
			details: []DetailEntry{{Text: "the cold air on the hill"}},
			text: "Jonas slowly walked through the cold air and felt the snow " +
				"sting his face as the light faded.",
			wantTier:  DetailSpecific,
			wantScore: 4.0,
		},
		{
			name:      "quote without attribution",
			details:   []DetailEntry{{Text: "gone with climate control", Quoted: true}},
			text:      `The memory of snow was "gone with climate control".`,
			wantTier:  DetailSpecific,
			wantScore: 4.0,
		},
		{
			name:    "quote with attribution and context",
			details: []DetailEntry{{Text: "gone forever", Quoted: true}},
			text: `On page 84, when Jonas receives the memory, the snow is "gone forever" ` +
				`because the community erased winter through climate control.`,
			wantTier:  DetailPrecise,
			wantScore: 4.75,
		},
		{
			name:      "quote with attribution but bare context",
			details:   []DetailEntry{{Text: "the snow stopped falling", Quoted: true}},
			text:      `The book says "the snow stopped falling" on page 84 because of sameness.`,
			wantTier:  DetailSpecific,
			wantScore: 4.25,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, score := assessDetailQuality(set, tt.details, tt.text)
			require.Equal(t, tt.wantTier, tier)
			require.Equal(t, tt.wantScore, score)
		})
	}
}

func TestDistinctInsightsCollapsesParaphrases(t *testing.T) {
	insights := []InsightEntry{
		{Text: "the imagery reveals how the community hides loss", Dimension: taxonomy.DimensionMeaningCreation, Tier: 1},
		{Text: "the imagery reveals how the community hides the loss", Dimension: taxonomy.DimensionMeaningCreation, Tier: 1},
		{Text: "the imagery makes the reader question every rule", Dimension: taxonomy.DimensionReaderResponse, Tier: 3},
		{Text: "it just affects the reader", Dimension: taxonomy.DimensionReaderResponse, Tier: 5},
	}

	kept, count, dimensions := distinctInsights(insights, []string{"imagery"})
	require.Equal(t, 2, count)
	require.Len(t, kept, 2)
	require.Equal(t, []string{taxonomy.DimensionMeaningCreation, taxonomy.DimensionReaderResponse}, dimensions)
}

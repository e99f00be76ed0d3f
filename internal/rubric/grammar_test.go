package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

func TestCountGrammarErrors(t *testing.T) {
	set := taxonomy.ComponentSet()

	tests := []struct {
		name       string
		text       string
		wantCount  int
		wantFirst  string
	}{
		{
			name:      "clean text",
			text:      "The narrator reveals how the community hides the truth.",
			wantCount: 0,
		},
		{
			name:      "subject verb agreement",
			text:      "He have no idea what the colors mean.",
			wantCount: 1,
			wantFirst: taxonomy.GrammarAgreement,
		},
		{
			name:      "missing article",
			text:      "The ending makes reader sad about the community.",
			wantCount: 1,
			wantFirst: taxonomy.GrammarArticle,
		},
		{
			name:      "informal register",
			text:      "Jonas is gonna lose everything he knows here.",
			wantCount: 1,
			wantFirst: taxonomy.GrammarInformal,
		},
		{
			name:      "sentence fragment",
			text:      "Because cold. The rest of the sentence is fine here.",
			wantCount: 1,
			wantFirst: "sentence_fragment",
		},
		{
			name:      "accepted short sentence",
			text:      "Yes. The narrator still reveals how the truth stays hidden.",
			wantCount: 0,
		},
		{
			name:      "multiple errors accumulate",
			text:      "He have no words and he is gonna cry because the ending makes reader sad.",
			wantCount: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, findings := countGrammarErrors(set, tt.text)
			require.Equal(t, tt.wantCount, count)
			require.Len(t, findings, count)
			if tt.wantFirst != "" {
				require.Equal(t, tt.wantFirst, findings[0].Category)
			}
		})
	}
}

func TestCountGrammarErrorsRunOn(t *testing.T) {
	set := taxonomy.ComponentSet()

	long := "the narrator keeps going and going and going and going and going and going " +
		"and going and going and going and going and going and going and going and going " +
		"without ever stopping to breathe or pausing at all in any place"

	count, findings := countGrammarErrors(set, long)
	require.Equal(t, 1, count)
	require.Equal(t, "run_on_sentence", findings[0].Category)
}

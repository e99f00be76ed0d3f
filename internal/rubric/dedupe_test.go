package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupeMentions(t *testing.T) {
	subjects := []string{"imagery", "narrator"}

	tests := []struct {
		name     string
		mentions []string
		want     []string
	}{
		{
			name:     "identical normalized phrasing collapses",
			mentions: []string{"The imagery reveals loss.", "the imagery reveals loss"},
			want:     []string{"The imagery reveals loss."},
		},
		{
			name: "same subject with overlapping phrasing collapses",
			mentions: []string{
				"the imagery reveals how the community hides loss",
				"the imagery reveals how the community hides the loss",
			},
			want: []string{"the imagery reveals how the community hides loss"},
		},
		{
			name: "same subject with different claims survives",
			mentions: []string{
				"the imagery reveals how the community hides loss",
				"the imagery makes the reader question every rule",
			},
			want: []string{
				"the imagery reveals how the community hides loss",
				"the imagery makes the reader question every rule",
			},
		},
		{
			name: "different subjects survive even when phrased alike",
			mentions: []string{
				"the imagery reveals how control erases feeling",
				"the narrator reveals how control erases feeling",
			},
			want: []string{
				"the imagery reveals how control erases feeling",
				"the narrator reveals how control erases feeling",
			},
		},
		{
			name:     "blank mentions are dropped",
			mentions: []string{"...", "the imagery reveals loss"},
			want:     []string{"the imagery reveals loss"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, dedupeMentions(tt.mentions, subjects))
		})
	}
}

func TestDedupeMentionsFirstOccurrenceWins(t *testing.T) {
	kept := dedupeMentions([]string{"The Imagery reveals loss", "the imagery reveals loss!"}, nil)
	require.Equal(t, []string{"The Imagery reveals loss"}, kept)
}

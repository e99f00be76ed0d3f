package taxonomy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	registry := Default()

	set, err := registry.Resolve(VariantComponent)
	require.NoError(t, err)
	require.Equal(t, VariantComponent, set.Variant())

	set, err = registry.Resolve(VariantArgument)
	require.NoError(t, err)
	require.Equal(t, VariantArgument, set.Variant())
}

func TestRegistryResolveUnknownVariant(t *testing.T) {
	registry := Default()

	_, err := registry.Resolve(Variant("persuasive"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrVariantNotRegistered))
	require.Contains(t, err.Error(), "persuasive")
}

func TestRegistryRegisterCustomVariant(t *testing.T) {
	custom := NewSet(Variant("poetry")).
		AddAxis(AxisVerbs, literals(1, "verb", "Analysis", 1.0, "evokes")).
		AddList(ListTopics, []string{"stanza"})

	registry := NewRegistry().Register(custom)

	set, err := registry.Resolve(Variant("poetry"))
	require.NoError(t, err)
	require.Len(t, set.Axis(AxisVerbs).Entries, 1)
	require.Equal(t, []string{"stanza"}, set.List(ListTopics))
}

func TestMissingAxisDegradesToEmpty(t *testing.T) {
	set := NewSet(VariantComponent)

	axis := set.Axis(AxisEffects)
	require.Equal(t, AxisEffects, axis.Name)
	require.Empty(t, axis.Entries)
	require.Nil(t, set.List(ListFlowMarkers))
}

func TestComponentSetAxes(t *testing.T) {
	set := ComponentSet()

	for _, name := range []string{AxisVerbs, AxisEffects, AxisConnectors, AxisGrammar} {
		require.NotEmpty(t, set.Axis(name).Entries, "axis %s", name)
	}
	require.NotEmpty(t, set.List(ListTopics))
}

func TestArgumentSetAxes(t *testing.T) {
	set := ArgumentSet()

	for _, name := range []string{
		AxisPositions, AxisEvidence, AxisReasoning,
		AxisCounters, AxisSynthesis, AxisConnectors, AxisGrammar,
	} {
		require.NotEmpty(t, set.Axis(name).Entries, "axis %s", name)
	}
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	set := ComponentSet()

	matched := false
	for _, entry := range set.Axis(AxisVerbs).Entries {
		if entry.Pattern.MatchString("The author REVEALS the cost") {
			matched = true
			break
		}
	}
	require.True(t, matched)
}

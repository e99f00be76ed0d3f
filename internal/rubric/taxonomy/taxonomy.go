// Package taxonomy holds the immutable signal-pattern tables that drive
// component extraction and scoring. Tables are built once at process start
// and are never mutated afterwards, so concurrent readers need no locking.
package taxonomy

import (
	"errors"
	"fmt"
	"regexp"
)

// Variant identifies a rubric variant with its own table set.
type Variant string

const (
	// VariantComponent grades component-based analytical writing.
	VariantComponent Variant = "component"
	// VariantArgument grades argument-structure writing.
	VariantArgument Variant = "argument"
)

// ErrVariantNotRegistered indicates the requested rubric variant has no
// taxonomy table set. This is the only configuration error that must
// propagate to the caller; the engine cannot guess a rubric.
var ErrVariantNotRegistered = errors.New("rubric variant not registered")

// Axis names shared by the built-in variants.
const (
	AxisVerbs      = "verbs"
	AxisEffects    = "effects"
	AxisConnectors = "connectors"
	AxisGrammar    = "grammar"
	AxisPositions  = "positions"
	AxisEvidence   = "evidence"
	AxisReasoning  = "reasoning"
	AxisCounters   = "counters"
	AxisSynthesis  = "synthesis"
)

// Literal word-list names.
const (
	ListTopics       = "topics"
	ListVaguePhrases = "vague_phrases"
	ListFlowMarkers  = "flow_markers"
)

// Entry maps one lexical signal to a classification tag. Tier ranks quality
// within an axis (lower number = stronger signal); Tag carries the axis
// label such as a depth dimension, connector type or error category.
type Entry struct {
	Pattern *regexp.Regexp
	Tier    int
	Tag     string
	Label   string
	Weight  float64
}

// Axis is an ordered rule list for one classification axis. Order is part of
// the contract: the extractor's tie-break falls back to entry order, so two
// loads of the same table set always classify identically.
type Axis struct {
	Name    string
	Entries []Entry
}

// Set is the full table set for one rubric variant. Axes absent from a
// variant simply resolve to an empty rule list.
type Set struct {
	variant Variant
	axes    map[string]Axis
	lists   map[string][]string
}

// NewSet builds a table set for the given variant.
func NewSet(variant Variant) *Set {
	return &Set{
		variant: variant,
		axes:    map[string]Axis{},
		lists:   map[string][]string{},
	}
}

// Variant reports which rubric variant this set belongs to.
func (s *Set) Variant() Variant { return s.variant }

// AddAxis installs an ordered rule list under the given axis name.
func (s *Set) AddAxis(name string, entries []Entry) *Set {
	s.axes[name] = Axis{Name: name, Entries: entries}
	return s
}

// AddList installs a literal word list under the given name.
func (s *Set) AddList(name string, words []string) *Set {
	s.lists[name] = words
	return s
}

// Axis returns the rule list registered under name. Missing axes return an
// empty axis so extraction degrades to "no evidence found" rather than
// failing.
func (s *Set) Axis(name string) Axis {
	if axis, ok := s.axes[name]; ok {
		return axis
	}
	return Axis{Name: name}
}

// List returns the literal word list registered under name.
func (s *Set) List(name string) []string {
	return s.lists[name]
}

// Registry maps rubric variants to their table sets. All registration
// happens at construction time; Resolve is a pure lookup afterwards.
type Registry struct {
	sets map[Variant]*Set
}

// NewRegistry builds an empty registry. Callers register every variant
// before handing the registry to the engine.
func NewRegistry() *Registry {
	return &Registry{sets: map[Variant]*Set{}}
}

// Register installs a variant table set. Registering the same variant twice
// keeps the last set; new variants are added by data registration, not by
// changing extraction or scoring code.
func (r *Registry) Register(set *Set) *Registry {
	r.sets[set.Variant()] = set
	return r
}

// Resolve returns the table set for the variant or ErrVariantNotRegistered.
func (r *Registry) Resolve(variant Variant) (*Set, error) {
	set, ok := r.sets[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVariantNotRegistered, variant)
	}
	return set, nil
}

// Default returns a registry with both built-in variants registered.
func Default() *Registry {
	return NewRegistry().
		Register(ComponentSet()).
		Register(ArgumentSet())
}

// pattern compiles a case-insensitive signal pattern.
func pattern(tier int, tag, label string, weight float64, expr string) Entry {
	return Entry{
		Pattern: regexp.MustCompile(`(?i)` + expr),
		Tier:    tier,
		Tag:     tag,
		Label:   label,
		Weight:  weight,
	}
}

// literal builds an entry matching a whole word or phrase.
func literal(tier int, tag, label string, weight float64, phrase string) Entry {
	return pattern(tier, tag, label, weight, `\b`+regexp.QuoteMeta(phrase)+`\b`)
}

// literals expands a word list into one entry per phrase, preserving order.
func literals(tier int, tag, label string, weight float64, phrases ...string) []Entry {
	entries := make([]Entry, 0, len(phrases))
	for _, phrase := range phrases {
		entries = append(entries, literal(tier, tag, label, weight, phrase))
	}
	return entries
}

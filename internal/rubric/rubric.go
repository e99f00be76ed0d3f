// Package rubric implements deterministic, ceiling-constrained scoring of
// free-text student writing. An Engine resolves a rubric variant to its
// taxonomy tables, extracts a structured record from the raw text, scores
// three sub-metrics under the structural ceiling and renders actionable
// feedback. Identical input always produces an identical Result.
package rubric

import (
	"fmt"
	"strings"

	"github.com/noah-isme/rubrica-go-api/internal/rubric/kernel"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

// RawResponse is the normalized input to an evaluation.
type RawResponse struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// NewRawResponse trims the text and counts its words.
func NewRawResponse(text string) RawResponse {
	trimmed := strings.TrimSpace(text)
	return RawResponse{Text: trimmed, WordCount: countWords(trimmed)}
}

// Result is the complete outcome of one evaluation. Exactly one of
// Component and Argument is set, matching Variant.
type Result struct {
	Variant    taxonomy.Variant  `json:"variant"`
	Scores     Scores            `json:"scores"`
	Layer      int               `json:"layer,omitempty"`
	LayerLabel string            `json:"layer_label,omitempty"`
	LayerStage string            `json:"layer_stage,omitempty"`
	Component  *ComponentRecord  `json:"component,omitempty"`
	Argument   *ArgumentRecord   `json:"argument,omitempty"`
	Feedback   map[string]string `json:"feedback"`
}

// Engine evaluates responses against registered rubric variants. It is
// stateless between calls and safe for concurrent use.
type Engine struct {
	registry *taxonomy.Registry
	devices  *kernel.Catalog
}

// Option configures an Engine.
type Option func(*Engine)

// WithDeviceCatalog replaces the embedded literary device catalog.
func WithDeviceCatalog(catalog *kernel.Catalog) Option {
	return func(e *Engine) { e.devices = catalog }
}

// NewEngine builds an engine over the given taxonomy registry.
func NewEngine(registry *taxonomy.Registry, opts ...Option) *Engine {
	engine := &Engine{
		registry: registry,
		devices:  kernel.Default(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Evaluate grades text under the given variant. Degenerate input is not an
// error: empty or off-rubric text grades at the floor. The only error is
// an unregistered variant.
func (e *Engine) Evaluate(variant taxonomy.Variant, text string) (*Result, error) {
	set, err := e.registry.Resolve(variant)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	raw := NewRawResponse(text)
	switch variant {
	case taxonomy.VariantComponent:
		record := extractComponents(set, raw)
		scores := scoreComponent(record)
		return &Result{
			Variant:   variant,
			Scores:    scores,
			Component: record,
			Feedback:  componentFeedback(record, scores, e.devices, raw.Text),
		}, nil
	case taxonomy.VariantArgument:
		record := extractArgument(set, raw)
		scores := scoreArgument(record)
		return &Result{
			Variant:    variant,
			Scores:     scores,
			Layer:      record.Layer,
			LayerLabel: record.LayerLabel,
			LayerStage: record.LayerStage,
			Argument:   record,
			Feedback:   argumentFeedback(record, scores),
		}, nil
	default:
		// A set resolved for a variant the engine has no strategy for.
		return nil, fmt.Errorf("evaluate: %w: no strategy for %q", taxonomy.ErrVariantNotRegistered, variant)
	}
}

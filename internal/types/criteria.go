package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// HardConstraints are filter conditions that must be satisfied for a record to
// be admitted. Each kind holds an ordered, de-duplicated set of values; a
// record failing any non-empty kind is removed unconditionally.
type HardConstraints struct {
	NameMatches          []string `json:"nameMatches,omitempty"`
	LocationRequirements []string `json:"locationRequirements,omitempty"`
	TitleRequirements    []string `json:"titleRequirements,omitempty"`
	CompanyRequirements  []string `json:"companyRequirements,omitempty"`
	Exclusions           []string `json:"exclusions,omitempty"`
}

// Empty reports whether no constraint kind has any values.
func (h HardConstraints) Empty() bool {
	return len(h.NameMatches) == 0 &&
		len(h.LocationRequirements) == 0 &&
		len(h.TitleRequirements) == 0 &&
		len(h.CompanyRequirements) == 0 &&
		len(h.Exclusions) == 0
}

// Merge appends the other constraint set's values, dropping duplicates and
// empty strings, and returns the combined set.
func (h HardConstraints) Merge(other HardConstraints) HardConstraints {
	return HardConstraints{
		NameMatches:          mergeValues(h.NameMatches, other.NameMatches),
		LocationRequirements: mergeValues(h.LocationRequirements, other.LocationRequirements),
		TitleRequirements:    mergeValues(h.TitleRequirements, other.TitleRequirements),
		CompanyRequirements:  mergeValues(h.CompanyRequirements, other.CompanyRequirements),
		Exclusions:           mergeValues(h.Exclusions, other.Exclusions),
	}
}

func mergeValues(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, v := range append(append([]string{}, a...), b...) {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// KeywordSearch holds free-text search terms grouped by strength.
type KeywordSearch struct {
	Required  []string `json:"required,omitempty"`
	Preferred []string `json:"preferred,omitempty"`
	Phrases   []string `json:"phrases,omitempty"`
	Excluded  []string `json:"excluded,omitempty"`
}

// TextualCriteria holds keyword search terms plus field-bucket-specific terms
// (e.g. "skills" -> ["go", "distributed systems"]).
type TextualCriteria struct {
	KeywordSearch       KeywordSearch       `json:"keywordSearch"`
	FieldSpecificSearch map[string][]string `json:"fieldSpecificSearch,omitempty"`
}

// IntentAnalysis captures the interpreted goal of the query. It seeds the
// lexical query when no explicit search terms were produced.
type IntentAnalysis struct {
	PrimaryGoal string `json:"primaryGoal,omitempty"`
	Context     string `json:"context,omitempty"`
}

// ContextualCriteria is free-form descriptive context consumed only by the
// contextual re-ranker's external call.
type ContextualCriteria struct {
	ExperienceLevel   string         `json:"experienceLevel,omitempty"`
	CareerStage       string         `json:"careerStage,omitempty"`
	WorkingStyle      string         `json:"workingStyle,omitempty"`
	PersonalityTraits []string       `json:"personalityTraits,omitempty"`
	IntentAnalysis    IntentAnalysis `json:"intentAnalysis,omitempty"`
}

// Weights describe the score fusion formula. They apply, in order, to the
// lexical score, the contextual relevance score, and the field-match count.
// By convention they sum to 1, but this is not enforced.
type Weights struct {
	BM25Score    float64 `json:"bm25Score" validate:"gte=0"`
	LLMRelevance float64 `json:"llmRelevance" validate:"gte=0"`
	FieldMatches float64 `json:"fieldMatches" validate:"gte=0"`
}

// IsZero reports whether no weight was set at all.
func (w Weights) IsZero() bool {
	return w.BM25Score == 0 && w.LLMRelevance == 0 && w.FieldMatches == 0
}

// DefaultWeights is the fusion weighting used when criteria carry none.
func DefaultWeights() Weights {
	return Weights{BM25Score: 0.4, LLMRelevance: 0.5, FieldMatches: 0.1}
}

// Criteria is the structured search criteria consumed by the pipeline, either
// produced by the external criteria generator or by the deterministic
// fallback builder.
type Criteria struct {
	HardConstraints    HardConstraints    `json:"hardConstraints"`
	TextualCriteria    TextualCriteria    `json:"textualCriteria"`
	ContextualCriteria ContextualCriteria `json:"contextualCriteria"`
	Weights            Weights            `json:"weights"`
}

var validate = validator.New()

// Validate checks structural invariants: weights must be non-negative.
func (c *Criteria) Validate() error {
	if err := validate.Struct(c.Weights); err != nil {
		return fmt.Errorf("invalid criteria weights: %w", err)
	}
	return nil
}

// EffectiveWeights returns the criteria's weights, falling back to the
// defaults when none were provided.
func (c *Criteria) EffectiveWeights() Weights {
	if c.Weights.IsZero() {
		return DefaultWeights()
	}
	return c.Weights
}

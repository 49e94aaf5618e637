package criteria

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/talent-ranker/internal/llm"
	"github.com/jonathan/talent-ranker/internal/prompts"
	"github.com/jonathan/talent-ranker/internal/types"
)

// Question is one follow-up question offered to refine a search query.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

type questionsResponse struct {
	Questions []Question `json:"questions"`
}

// GenerateOptions carries the optional context available when translating a
// query into criteria.
type GenerateOptions struct {
	DatasetSchema   []string          // Known dataset field names, if any
	FollowUpAnswers map[string]string // Answers to previously issued questions
}

// Generate translates a natural-language query into structured Criteria using
// the reasoning client. Hard constraints are extracted with the conservative
// pattern rules first and merged into whatever the client returns, so an
// over-creative response can never lose an explicit requirement.
//
// Generate never fails: if the client is nil, errors, or returns output that
// does not parse or validate, the deterministic fallback builder is used.
func Generate(ctx context.Context, client llm.Client, query string, opts GenerateOptions) *types.Criteria {
	hc := ExtractHardConstraints(query)

	if client == nil {
		return Fallback(query, hc)
	}

	prompt := buildTranslatePrompt(query, hc, opts)
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		fmt.Printf("Warning: criteria generation failed: %v. Using fallback criteria.\n", err)
		return Fallback(query, hc)
	}

	parsed, ok := parseCriteria(raw)
	if !ok {
		fmt.Printf("Warning: criteria response did not parse. Using fallback criteria.\n")
		return Fallback(query, hc)
	}

	parsed.HardConstraints = parsed.HardConstraints.Merge(hc)
	return parsed
}

// parseCriteria is the tagged decode of the reasoning service's criteria
// output: either a validated Criteria value or a parse failure, never a
// best-effort partial.
func parseCriteria(raw string) (*types.Criteria, bool) {
	cleaned, ok := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if !ok {
		return nil, false
	}

	var c types.Criteria
	if err := json.Unmarshal([]byte(cleaned), &c); err != nil {
		return nil, false
	}
	if err := c.Validate(); err != nil {
		return nil, false
	}
	return &c, true
}

// FollowUpQuestions asks the reasoning client for 2-3 refinement questions.
// Returns an empty slice when the client is absent or the response is
// malformed; question generation is best-effort and never fatal.
func FollowUpQuestions(ctx context.Context, client llm.Client, query string, schema []string) ([]Question, error) {
	if client == nil {
		return nil, nil
	}

	template := prompts.MustGet("criteria.json", "follow-up-questions")
	prompt := prompts.Format(template, map[string]string{
		"Query":  query,
		"Schema": formatSchema(schema),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	cleaned, ok := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if !ok {
		return nil, nil
	}

	var resp questionsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, nil
	}
	return resp.Questions, nil
}

func buildTranslatePrompt(query string, hc types.HardConstraints, opts GenerateOptions) string {
	hcJSON, _ := json.MarshalIndent(hc, "", "  ")

	answers := "None provided"
	if len(opts.FollowUpAnswers) > 0 {
		if b, err := json.MarshalIndent(opts.FollowUpAnswers, "", "  "); err == nil {
			answers = string(b)
		}
	}

	template := prompts.MustGet("criteria.json", "translate-query")
	return prompts.Format(template, map[string]string{
		"Query":           query,
		"HardConstraints": string(hcJSON),
		"Schema":          formatSchema(opts.DatasetSchema),
		"Answers":         answers,
	})
}

func formatSchema(schema []string) string {
	if len(schema) == 0 {
		return "No schema provided"
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return "No schema provided"
	}
	return string(b)
}

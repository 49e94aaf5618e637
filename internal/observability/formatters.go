// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCriteria outputs a human-readable summary of the generated search criteria.
func (p *Printer) PrintCriteria(c *types.Criteria) {
	if c == nil {
		return
	}

	var sb strings.Builder

	hc := c.HardConstraints
	if !hc.Empty() {
		sb.WriteString("Hard Constraints:\n")
		writeConstraintLine(&sb, "Names", hc.NameMatches)
		writeConstraintLine(&sb, "Locations", hc.LocationRequirements)
		writeConstraintLine(&sb, "Titles", hc.TitleRequirements)
		writeConstraintLine(&sb, "Companies", hc.CompanyRequirements)
		writeConstraintLine(&sb, "Exclusions", hc.Exclusions)
		sb.WriteString("\n")
	}

	ks := c.TextualCriteria.KeywordSearch
	if len(ks.Required) > 0 {
		sb.WriteString(fmt.Sprintf("Required:  %s\n", joinTruncated(ks.Required, 40)))
	}
	if len(ks.Preferred) > 0 {
		sb.WriteString(fmt.Sprintf("Preferred: %s\n", joinTruncated(ks.Preferred, 40)))
	}
	if len(ks.Excluded) > 0 {
		sb.WriteString(fmt.Sprintf("Excluded:  %s\n", joinTruncated(ks.Excluded, 40)))
	}

	if len(c.TextualCriteria.FieldSpecificSearch) > 0 {
		sb.WriteString(fmt.Sprintf("Field buckets: %d\n", len(c.TextualCriteria.FieldSpecificSearch)))
	}

	w := c.EffectiveWeights()
	sb.WriteString(fmt.Sprintf("\nWeights: lexical %.2f / contextual %.2f / fields %.2f", w.BM25Score, w.LLMRelevance, w.FieldMatches))

	p.printBox("SEARCH CRITERIA", sb.String())
}

// PrintRankedCandidates outputs the top N ranked candidates with scores and reasons.
func (p *Printer) PrintRankedCandidates(candidates []types.ScoredCandidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, c.Record.DisplayName()))
		sb.WriteString(fmt.Sprintf("    Score: %.3f (lexical: %.3f", c.OverallScore, c.LexicalScore))
		if c.ContextualScore != nil {
			sb.WriteString(fmt.Sprintf(", contextual: %.2f", *c.ContextualScore))
		}
		sb.WriteString(")\n")
		if len(c.Reasons) > 0 {
			reason := c.Reasons[0]
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("TOP RANKED CANDIDATES", sb.String())
}

// PrintRunSummary outputs stage-by-stage record counts for a finished run.
func (p *Printer) PrintRunSummary(total, afterConstraints, afterLexical, final int, elapsed string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records loaded:     %d\n", total))
	sb.WriteString(fmt.Sprintf("After constraints:  %d\n", afterConstraints))
	sb.WriteString(fmt.Sprintf("After lexical:      %d\n", afterLexical))
	sb.WriteString(fmt.Sprintf("Final results:      %d\n", final))
	sb.WriteString(fmt.Sprintf("\nProcessing time: %s", elapsed))

	p.printBox("RUN SUMMARY", sb.String())
}

func writeConstraintLine(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("  %s: %s\n", label, joinTruncated(values, 40)))
}

func joinTruncated(values []string, width int) string {
	joined := strings.Join(values, ", ")
	if len(joined) > width {
		joined = joined[:width-3] + "..."
	}
	return joined
}

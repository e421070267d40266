// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
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

func writeSkillList(sb *strings.Builder, label string, skills []string) {
	if len(skills) == 0 {
		return
	}
	sb.WriteString(label + "\n")
	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintFitProfile outputs a human-readable summary of the skills-gap analysis.
func (p *Printer) PrintFitProfile(fit *types.FitProfile) {
	if fit == nil {
		return
	}

	var sb strings.Builder

	if fit.Job.Title != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", fit.Job.Title))
	}
	if fit.Job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", fit.Job.Company))
	}
	sb.WriteString("\n")

	writeSkillList(&sb, "Matching Hard Skills:", fit.OverlapHardSkills)
	writeSkillList(&sb, "Missing Hard Skills:", fit.MissingHardSkills)
	writeSkillList(&sb, "Matching Soft Skills:", fit.OverlapSoftSkills)
	writeSkillList(&sb, "Missing Soft Skills:", fit.MissingSoftSkills)

	if fit.FitSummary != "" {
		sb.WriteString("Summary:\n")
		sb.WriteString("  " + fit.FitSummary + "\n")
	}

	p.printBox("SKILLS-GAP PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintPlan outputs the generated interview plan.
func (p *Printer) PrintPlan(plan types.InterviewPlan) {
	var sb strings.Builder
	if len(plan) == 0 {
		sb.WriteString("(no questions)")
	}
	for i, item := range plan {
		sb.WriteString(fmt.Sprintf("%2d. [%s] %s\n", i+1, item.Type, item.Question))
	}
	p.printBox("INTERVIEW PLAN", strings.TrimRight(sb.String(), "\n"))
}

// PrintEvaluation outputs the per-answer scores and feedback lists.
func (p *Printer) PrintEvaluation(eval *types.EvaluationResult) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:     %d/10\n", eval.Score))
	sb.WriteString(fmt.Sprintf("Clarity:   %d/5   Relevance: %d/5\n", eval.Clarity, eval.Relevance))
	sb.WriteString(fmt.Sprintf("Alignment: %d/5   Depth:     %d/5\n", eval.Alignment, eval.Depth))
	sb.WriteString("\n")

	writeSkillList(&sb, "Strengths:", eval.Strengths)
	writeSkillList(&sb, "Weaknesses:", eval.Weaknesses)
	writeSkillList(&sb, "Improvements:", eval.Improvements)

	p.printBox("ANSWER EVALUATION", strings.TrimRight(sb.String(), "\n"))
}

// PrintStats outputs the aggregate interview statistics.
func (p *Printer) PrintStats(stats types.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Questions answered: %d\n", stats.NQuestions))
	if stats.NQuestions > 0 {
		sb.WriteString(fmt.Sprintf("Average score:      %.2f/10\n", stats.AvgScore))
		sb.WriteString(fmt.Sprintf("Clarity:   %.2f/5   Relevance: %.2f/5\n", stats.AvgClarity, stats.AvgRelevance))
		sb.WriteString(fmt.Sprintf("Alignment: %.2f/5   Depth:     %.2f/5\n", stats.AvgAlignment, stats.AvgDepth))
	}
	p.printBox("INTERVIEW STATISTICS", strings.TrimRight(sb.String(), "\n"))
}

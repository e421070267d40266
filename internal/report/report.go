package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// NoHistoryMessage is returned for an empty history; the gateway is never
// called in that case.
const NoHistoryMessage = "No interview history available. The final report cannot be generated."

// GenerateFinalReport renders the full history plus aggregate stats into a
// narrative prompt and returns the LLM's prose unmodified.
func GenerateFinalReport(ctx context.Context, client llm.Client, history types.History) (string, error) {
	if len(history) == 0 {
		return NoHistoryMessage, nil
	}

	stats := ComputeStats(history)
	prompt := prompts.Format(prompts.MustGet("report.json", "final-report"), map[string]string{
		"Summary": buildHistorySummary(history, stats),
	})

	return client.GenerateContent(ctx, prompt, llm.TierAdvanced)
}

// buildHistorySummary serializes the stats and every record into the plain
// text block the report prompt consumes.
func buildHistorySummary(history types.History, stats types.Stats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Questions asked: %d\n", stats.NQuestions))
	sb.WriteString(fmt.Sprintf(
		"Score averages: overall = %.2f / 10, clarity = %.2f / 5, relevance = %.2f / 5, alignment = %.2f / 5, depth = %.2f / 5.\n",
		stats.AvgScore, stats.AvgClarity, stats.AvgRelevance, stats.AvgAlignment, stats.AvgDepth,
	))
	sb.WriteString("\nQuestion by question detail:\n")

	for i, record := range history {
		sb.WriteString(fmt.Sprintf("\nQuestion %d: %s\n", i+1, record.Question))
		sb.WriteString(fmt.Sprintf("Candidate answer: %s\n", record.Answer))
		sb.WriteString(fmt.Sprintf(
			"Scores -> overall: %d/10, clarity: %d/5, relevance: %d/5, alignment: %d/5, depth: %d/5\n",
			record.Evaluation.Score, record.Evaluation.Clarity, record.Evaluation.Relevance,
			record.Evaluation.Alignment, record.Evaluation.Depth,
		))
	}

	return sb.String()
}

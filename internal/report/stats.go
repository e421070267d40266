// Package report reduces a finished interview history into aggregate
// statistics and a narrative final report.
package report

import (
	"github.com/jonathan/interview-coach/internal/types"
)

// ComputeStats averages the evaluation marks across the history. An empty
// history yields zero-value stats with NQuestions = 0, not an error.
func ComputeStats(history types.History) types.Stats {
	if len(history) == 0 {
		return types.Stats{}
	}

	var totalScore, totalClarity, totalRelevance, totalAlignment, totalDepth int
	for _, record := range history {
		totalScore += record.Evaluation.Score
		totalClarity += record.Evaluation.Clarity
		totalRelevance += record.Evaluation.Relevance
		totalAlignment += record.Evaluation.Alignment
		totalDepth += record.Evaluation.Depth
	}

	n := float64(len(history))
	return types.Stats{
		NQuestions:   len(history),
		AvgScore:     float64(totalScore) / n,
		AvgClarity:   float64(totalClarity) / n,
		AvgRelevance: float64(totalRelevance) / n,
		AvgAlignment: float64(totalAlignment) / n,
		AvgDepth:     float64(totalDepth) / n,
	}
}

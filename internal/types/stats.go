package types

// Stats holds the aggregate score statistics over a session history.
// An empty history yields the zero value with NQuestions = 0.
type Stats struct {
	NQuestions   int     `json:"n_questions"`
	AvgScore     float64 `json:"avg_score"`
	AvgClarity   float64 `json:"avg_clarity"`
	AvgRelevance float64 `json:"avg_relevance"`
	AvgAlignment float64 `json:"avg_alignment"`
	AvgDepth     float64 `json:"avg_depth"`
}

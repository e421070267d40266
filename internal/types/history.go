package types

// HistoryRecord is one answered question with its evaluation. Records carry
// denormalized copies of the question fields so the history stays readable
// after the plan is gone.
type HistoryRecord struct {
	Question   string           `json:"question"`
	Type       QuestionType     `json:"type"`
	Topic      string           `json:"topic"`
	Answer     string           `json:"answer"`
	Evaluation EvaluationResult `json:"evaluation"`
}

// History is the ordered, append-only record of answered questions. Appended
// to exactly once per submitted answer, in plan order; never reordered.
type History []HistoryRecord

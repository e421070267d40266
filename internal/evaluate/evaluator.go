// Package evaluate scores candidate answers against the job context.
package evaluate

import (
	"context"
	"encoding/json"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/types"
)

// defaultJobContext is used when no job text is available, matching the
// prompt's instruction to judge general answer quality instead.
const defaultJobContext = "Not specified (focus on the general quality of the answer)."

// Evaluator produces an EvaluationResult for one (question, answer) pair.
// The session state machine depends on this interface rather than on the LLM
// client directly.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer, jobContext string) (*types.EvaluationResult, error)
}

// LLMEvaluator delegates scoring to the text-completion gateway.
type LLMEvaluator struct {
	client llm.Client
}

// NewLLMEvaluator creates an Evaluator backed by the given client.
func NewLLMEvaluator(client llm.Client) *LLMEvaluator {
	return &LLMEvaluator{client: client}
}

// rawEvaluation tolerates feedback fields arriving as a bare string instead
// of a list; models do that despite the schema in the prompt.
type rawEvaluation struct {
	Score     int `json:"score"`
	Clarity   int `json:"clarity"`
	Relevance int `json:"relevance"`
	Alignment int `json:"alignment"`
	Depth     int `json:"depth"`

	Strengths    stringList `json:"strengths"`
	Weaknesses   stringList `json:"weaknesses"`
	Improvements stringList `json:"improvements"`
}

type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = []string{single}
	return nil
}

// Evaluate scores the answer. Transport failures and undecodable responses
// propagate typed; out-of-range marks are clamped locally.
func (e *LLMEvaluator) Evaluate(ctx context.Context, question, answer, jobContext string) (*types.EvaluationResult, error) {
	if jobContext == "" {
		jobContext = defaultJobContext
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "evaluate"), map[string]string{
		"JobContext": jobContext,
		"Question":   question,
		"Answer":     answer,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var decoded rawEvaluation
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &decoded); err != nil {
		return nil, &llm.ParseError{Message: "evaluation is not valid JSON", Raw: raw, Cause: err}
	}

	result := &types.EvaluationResult{
		Score:        decoded.Score,
		Clarity:      decoded.Clarity,
		Relevance:    decoded.Relevance,
		Alignment:    decoded.Alignment,
		Depth:        decoded.Depth,
		Strengths:    decoded.Strengths,
		Weaknesses:   decoded.Weaknesses,
		Improvements: decoded.Improvements,
	}
	result.ApplyDefaults()

	return result, nil
}
